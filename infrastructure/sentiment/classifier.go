// Package sentiment implements a five-class sentiment classifier for
// brand-bearing sentences, backed by an LLM client. The scoring
// pipeline consumes it through the SentimentClassifier port and falls
// back to rule-based estimation when classification fails, so this
// package never needs to guarantee availability.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

const classifyPromptHeader = `You are a sentiment classifier for product recommendation text.
Classify each numbered sentence into exactly one of these labels:
strong_negative, negative, neutral, positive, strong_positive.

Respond with a JSON array of label strings, one per sentence, in order.
Respond with the JSON array only, no other text.

Sentences:
`

// Classifier classifies sentences with an LLM and maps the returned
// labels onto the fixed five-class score scale. Unparseable or missing
// labels degrade to neutral per sentence rather than failing the batch.
type Classifier struct {
	client ports.LLMClient
	logger *slog.Logger
}

var _ ports.SentimentClassifier = (*Classifier)(nil)

// NewClassifier creates a classifier backed by the given LLM client.
// A nil logger disables logging.
func NewClassifier(client ports.LLMClient, logger *slog.Logger) (*Classifier, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Classifier{client: client, logger: logger}, nil
}

// Predict returns one sentiment result per input sentence, in input
// order. The whole batch goes to the model in a single prompt; only
// transport-level failures are returned as errors, while malformed
// model output degrades to neutral results.
func (c *Classifier) Predict(ctx context.Context, sentences []string) ([]domain.SentimentResult, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	response, err := c.client.Complete(ctx, buildPrompt(sentences), map[string]any{
		"temperature": 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("sentiment classification request: %w", err)
	}

	labels, err := parseLabels(response)
	if err != nil {
		c.logger.Warn("unparseable classifier output, defaulting batch to neutral",
			"error", err, "sentences", len(sentences))
		return neutralResults(len(sentences)), nil
	}

	if len(labels) != len(sentences) {
		c.logger.Warn("classifier returned wrong label count",
			"want", len(sentences), "got", len(labels))
	}

	results := make([]domain.SentimentResult, len(sentences))
	for i := range sentences {
		label := domain.SentimentNeutral
		if i < len(labels) {
			if parsed := normalizeLabel(labels[i]); parsed.Valid() {
				label = parsed
			}
		}
		results[i] = domain.SentimentResult{Label: label, Score: label.Score()}
	}
	return results, nil
}

// buildPrompt numbers the sentences so the model keeps ordering stable.
func buildPrompt(sentences []string) string {
	var b strings.Builder
	b.WriteString(classifyPromptHeader)
	for i, sentence := range sentences {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sentence)
	}
	return b.String()
}

// parseLabels extracts the JSON label array from the model response,
// tolerating surrounding prose or markdown fencing.
func parseLabels(response string) ([]string, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var labels []string
	if err := json.Unmarshal([]byte(response[start:end+1]), &labels); err != nil {
		return nil, fmt.Errorf("decoding label array: %w", err)
	}
	return labels, nil
}

func normalizeLabel(raw string) domain.SentimentLabel {
	return domain.SentimentLabel(strings.ToLower(strings.TrimSpace(raw)))
}

func neutralResults(n int) []domain.SentimentResult {
	results := make([]domain.SentimentResult, n)
	for i := range results {
		results[i] = domain.SentimentResult{
			Label: domain.SentimentNeutral,
			Score: domain.NeutralSentimentScore,
		}
	}
	return results
}
