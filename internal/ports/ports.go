// Package ports defines the interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/brandscope/brandscope/internal/domain"
)

// SentimentClassifier is the external five-class sentiment model the
// scoring engine consumes as a black box. Implementations must accept
// batches; the engine never sends more than the sentence sample cap in
// one call.
//
// The classifier's lifecycle is owned by the caller: constructed once,
// injected into the scoring pipeline, reused across runs, and released
// at process shutdown. A failing classifier never aborts a scoring run;
// the engine falls back to rule-based estimation.
type SentimentClassifier interface {
	// Predict returns one result per input sentence, in input order.
	// Implementations should return domain.SentimentNeutral results
	// rather than partial output when individual sentences cannot be
	// classified.
	Predict(ctx context.Context, sentences []string) ([]domain.SentimentResult, error)
}

// LLMClient defines the interface for interacting with Large Language
// Model providers. Implementations handle provider-specific details
// like authentication, request formatting, rate limiting, and retries.
type LLMClient interface {
	// Complete sends a prompt and returns the generated text.
	// The options map carries provider-specific parameters such as
	// "temperature" (float64), "max_tokens" (int) and "model" (string).
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// CompleteWithReferences additionally returns source attributions
	// for the answer, populated from provider grounding metadata when
	// available or scraped from URLs in the answer text otherwise.
	CompleteWithReferences(ctx context.Context, prompt string, options map[string]any) (string, []domain.Reference, error)

	// EstimateTokens approximates the token count of the text, for cost
	// estimation and rate limiting.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier used by this client.
	GetModel() string
}

// ResultStore persists collected answer records and loads result sets
// for scoring.
type ResultStore interface {
	// SaveAnswers persists the records. Saving the same record twice is
	// allowed; stores may deduplicate on (task, question, model).
	SaveAnswers(ctx context.Context, task string, records []domain.AnswerRecord) error

	// LoadAnswers returns every record stored for the task, in
	// unspecified order. Aggregation is order-independent, so callers
	// must not rely on ordering.
	LoadAnswers(ctx context.Context, task string) ([]domain.AnswerRecord, error)

	// Close releases the store's resources.
	Close() error
}

// ReportRenderer turns a finished scoring run into formatted output.
// Serialization concerns belong entirely to implementations; the
// scoring engine only produces the run.
type ReportRenderer interface {
	// Render writes the formatted report for the run, using the given
	// title as the document heading.
	Render(w io.Writer, title string, run domain.ScoringRun) error
}

// MetricsCollector defines the interface for collecting operational
// metrics. Implementations integrate with observability platforms such
// as Prometheus.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)
}
