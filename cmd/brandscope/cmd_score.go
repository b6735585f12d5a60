package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandscope/brandscope/infrastructure/report"
	"github.com/brandscope/brandscope/infrastructure/sentiment"
	"github.com/brandscope/brandscope/infrastructure/store"
	"github.com/brandscope/brandscope/internal/application"
	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

var (
	scoreConfigFile        string
	scoreResultsFile       string
	scoreOutputFile        string
	scoreSentimentProvider string
	scoreSentimentModel    string
)

func newScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a collected result set and write the ranking report",
		Long: `Score runs the brand-scoring pipeline over a collected result set:
alias matching, per-answer metric extraction, cross-answer aggregation,
and weighted composite scoring. The ranked leaderboard is written as a
Markdown report.

Sentiment uses an LLM classifier when --sentiment-provider is given;
otherwise the rule-based estimate derived from strong-recommendation
counts is used.`,
		RunE: scoreCommandE,
	}

	cmd.Flags().StringVarP(&scoreConfigFile, "config", "c", "", "Task configuration file (required)")
	cmd.Flags().StringVar(&scoreResultsFile, "results", "", "Result file to score (default: results_file from config)")
	cmd.Flags().StringVarP(&scoreOutputFile, "output", "o", "", "Report output path (default: ranking_output_file from config)")
	cmd.Flags().StringVar(&scoreSentimentProvider, "sentiment-provider", "", "LLM provider for sentiment classification (openai, anthropic, google)")
	cmd.Flags().StringVar(&scoreSentimentModel, "sentiment-model", "", "Model for sentiment classification")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, _ []string) error {
	config, err := application.LoadTaskConfig(scoreConfigFile)
	if err != nil {
		return err
	}

	resultsFile := scoreResultsFile
	if resultsFile == "" {
		resultsFile = config.ResultsFile
	}
	if resultsFile == "" {
		return fmt.Errorf("no results file: set --results or results_file in the config")
	}

	records, err := store.LoadResultFile(resultsFile)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: %s holds no answer records", domain.ErrNoData, resultsFile)
	}

	classifier, err := buildSentimentClassifier()
	if err != nil {
		return err
	}

	pipeline, err := application.NewPipeline(config, classifier, slog.Default())
	if err != nil {
		return err
	}

	run, err := pipeline.Score(cmd.Context(), config.TaskName, records)
	if err != nil {
		return err
	}

	outputFile := scoreOutputFile
	if outputFile == "" {
		outputFile = config.RankingOutputFile
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := report.NewMarkdownRenderer().Render(f, config.ReportTitle, run); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	fmt.Printf("Report written to %s (%d brands ranked)\n", outputFile, len(run.Overall))
	return nil
}

func buildSentimentClassifier() (ports.SentimentClassifier, error) {
	if scoreSentimentProvider == "" {
		return nil, nil
	}

	client, err := buildClient(scoreSentimentProvider, scoreSentimentModel, 2)
	if err != nil {
		return nil, fmt.Errorf("building sentiment client: %w", err)
	}
	return sentiment.NewClassifier(client, slog.Default())
}
