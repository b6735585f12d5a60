package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandscope/brandscope/infrastructure/explore"
	"github.com/brandscope/brandscope/infrastructure/store"
)

var (
	exploreTask        string
	exploreResultsFile string
	exploreOutputFile  string
	exploreProvider    string
	exploreModel       string
)

func newExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Discover candidate brands in a result set",
		Long: `Explore extracts brand names from collected answers with an LLM,
counts their frequency, and generates a task configuration template.
The template is a starting point: review the dictionary, merge aliases,
and trim the whitelist before scoring.`,
		RunE: exploreCommandE,
	}

	cmd.Flags().StringVarP(&exploreTask, "task", "t", "", "Task name for the generated template (required)")
	cmd.Flags().StringVar(&exploreResultsFile, "results", "", "Result file to explore (required)")
	cmd.Flags().StringVarP(&exploreOutputFile, "output", "o", "", "Template output path (default: config_<task>.yaml)")
	cmd.Flags().StringVar(&exploreProvider, "provider", "openai", "LLM provider for brand extraction")
	cmd.Flags().StringVarP(&exploreModel, "model", "m", "", "Model for brand extraction (default: provider default)")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func exploreCommandE(cmd *cobra.Command, _ []string) error {
	records, err := store.LoadResultFile(exploreResultsFile)
	if err != nil {
		return err
	}

	client, err := buildClient(exploreProvider, exploreModel, 2)
	if err != nil {
		return err
	}

	explorer, err := explore.NewExplorer(client, slog.Default())
	if err != nil {
		return err
	}

	candidates, err := explorer.Explore(cmd.Context(), records)
	if err != nil {
		return err
	}

	outputFile := exploreOutputFile
	if outputFile == "" {
		outputFile = fmt.Sprintf("config_%s.yaml", exploreTask)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating template file: %w", err)
	}
	defer f.Close()

	if err := explore.WriteConfigTemplate(f, exploreTask, candidates, exploreResultsFile); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}

	fmt.Printf("Found %d candidate brands; template written to %s\n", len(candidates), outputFile)
	return nil
}
