package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/brandscope/brandscope/infrastructure/llm"
	"github.com/brandscope/brandscope/infrastructure/metrics"
	"github.com/brandscope/brandscope/internal/ports"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brandscope",
		Short: "Brandscope - brand prominence scoring for LLM answers",
		Long: `Brandscope collects free-text answers from LLM providers for a fixed
set of market-research questions, then scores brand prominence within
those answers to produce a ranked leaderboard per product category.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newCollectCommand())
	cmd.AddCommand(newExploreCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// apiKeyEnvVars maps provider names to the environment variable their
// API key is read from.
var apiKeyEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"google":    "GEMINI_API_KEY",
}

// processMetrics registers the Prometheus metrics once; score may build
// two clients (answers plus sentiment) and they share the collectors.
var processMetrics = sync.OnceValue(func() ports.MetricsCollector {
	return metrics.NewPrometheusCollector()
})

var providerDefaultModels = map[string]string{
	"openai":    llm.OpenAIDefaultModel,
	"anthropic": llm.AnthropicDefaultModel,
	"google":    llm.GoogleDefaultModel,
}

// buildClient creates a provider client with the standard middleware
// chain: rate limiting outermost, then retries, then a per-request
// timeout.
func buildClient(provider, model string, rps float64) (*llm.Client, error) {
	envVar, ok := apiKeyEnvVars[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", envVar)
	}

	if model == "" {
		model = providerDefaultModels[provider]
	}

	return llm.NewClient(provider, llm.ClientConfig{
		APIKey: apiKey,
		Model:  model,
		Middleware: []llm.Middleware{
			llm.MetricsMiddleware(processMetrics()),
			llm.RateLimitMiddleware(rate.Limit(rps), 1),
			llm.RetryMiddleware(3, time.Second, 30*time.Second),
			llm.TimeoutMiddleware(2 * time.Minute),
		},
	})
}
