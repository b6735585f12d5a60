package analysis

import (
	"context"
	"log/slog"
	"math"

	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

// SentenceSampleCap bounds how many brand-bearing sentences are sent to
// the classifier per brand. When more accumulated, the first
// SentenceSampleCap are kept; truncation is deterministic.
const SentenceSampleCap = 50

// SentimentAdapter reduces a brand's collected sentences to a single
// 0-100 sentiment score. It forwards batches to an injected external
// classifier and falls back to a rule-based estimate derived from
// strong-recommendation counts when the classifier is absent or fails.
// Classifier failures are logged and recovered, never propagated.
type SentimentAdapter struct {
	classifier ports.SentimentClassifier
	logger     *slog.Logger
}

// NewSentimentAdapter builds an adapter around the classifier. A nil
// classifier is valid and forces the rule-based fallback for every
// brand. A nil logger defaults to slog.Default.
func NewSentimentAdapter(classifier ports.SentimentClassifier, logger *slog.Logger) *SentimentAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SentimentAdapter{classifier: classifier, logger: logger}
}

// ScoreBrand computes one brand's sentiment dimension. With a working
// classifier the score is the mean classifier score over the sampled
// sentences, or neutral when the brand has no sentences at all. Without
// one, the score is sqrt((strong+1)/(maxStrong+1))*100.
func (a *SentimentAdapter) ScoreBrand(ctx context.Context, sentences []string, strongCount, maxStrongCount int) float64 {
	if a.classifier != nil {
		if len(sentences) == 0 {
			return domain.NeutralSentimentScore
		}
		sample := sentences
		if len(sample) > SentenceSampleCap {
			sample = sample[:SentenceSampleCap]
		}

		results, err := a.classifier.Predict(ctx, sample)
		if err == nil && len(results) > 0 {
			sum := 0.0
			for _, r := range results {
				sum += r.Score
			}
			return sum / float64(len(results))
		}
		if err != nil {
			a.logger.Warn("sentiment classifier failed, using rule-based fallback",
				"sentences", len(sample), "error", err)
		}
	}

	return ruleBasedSentiment(strongCount, maxStrongCount)
}

// ruleBasedSentiment estimates sentiment from strong-recommendation
// counts. The +1 offsets keep the ratio defined when no brand was ever
// strongly recommended.
func ruleBasedSentiment(strongCount, maxStrongCount int) float64 {
	ratio := float64(strongCount+1) / float64(maxStrongCount+1)
	return math.Sqrt(ratio) * 100
}
