package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/brandscope/brandscope/infrastructure/collection"
	"github.com/brandscope/brandscope/infrastructure/store"
)

var (
	collectTask           string
	collectQuestionsFile  string
	collectProvider       string
	collectModel          string
	collectDBPath         string
	collectCategoryPrefix string
	collectConcurrency    int
	collectWebSearch      bool
	collectRPS            float64
)

func newCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect answers for a question set from an LLM provider",
		Long: `Collect puts every question in the question set to the configured
model and persists the answers. Runs are incremental: questions already
answered by the same model are skipped, so an interrupted run can be
resumed by re-running the command.`,
		RunE: collectCommandE,
	}

	cmd.Flags().StringVarP(&collectTask, "task", "t", "", "Task name the answers are stored under (required)")
	cmd.Flags().StringVarP(&collectQuestionsFile, "questions", "q", "", "Question set file (required)")
	cmd.Flags().StringVar(&collectProvider, "provider", "google", "LLM provider (openai, anthropic, google)")
	cmd.Flags().StringVarP(&collectModel, "model", "m", "", "Model name (default: provider default)")
	cmd.Flags().StringVar(&collectDBPath, "db", "brandscope.db", "Answer database path")
	cmd.Flags().StringVar(&collectCategoryPrefix, "category-prefix", "", "Only collect questions whose category starts with this prefix")
	cmd.Flags().IntVar(&collectConcurrency, "concurrency", collection.DefaultConcurrency, "Parallel in-flight requests")
	cmd.Flags().BoolVar(&collectWebSearch, "web-search", false, "Request grounded answers with source citations")
	cmd.Flags().Float64Var(&collectRPS, "rps", 2, "Request rate limit per second")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("questions")

	return cmd
}

func collectCommandE(cmd *cobra.Command, _ []string) error {
	questions, err := store.LoadQuestionFile(collectQuestionsFile)
	if err != nil {
		return err
	}

	client, err := buildClient(collectProvider, collectModel, collectRPS)
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(collectDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	collector, err := collection.NewCollector(client, db, slog.Default())
	if err != nil {
		return err
	}

	records, err := collector.Collect(cmd.Context(), collectTask, questions, collection.Options{
		CategoryPrefix: collectCategoryPrefix,
		Concurrency:    collectConcurrency,
		WebSearch:      collectWebSearch,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Collected %d answers for task %s\n", len(records), collectTask)
	return nil
}
