package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/brandscope/internal/domain"
)

// stubClassifier returns canned results or a canned error and records
// the batches it receives.
type stubClassifier struct {
	results []domain.SentimentResult
	err     error
	batches [][]string
}

func (s *stubClassifier) Predict(_ context.Context, sentences []string) ([]domain.SentimentResult, error) {
	s.batches = append(s.batches, sentences)
	if s.err != nil {
		return nil, s.err
	}
	if s.results != nil {
		return s.results, nil
	}
	results := make([]domain.SentimentResult, len(sentences))
	for i := range sentences {
		results[i] = domain.SentimentResult{Label: domain.SentimentPositive, Score: 75}
	}
	return results, nil
}

func TestSentimentAdapter_ClassifierMean(t *testing.T) {
	classifier := &stubClassifier{
		results: []domain.SentimentResult{
			{Label: domain.SentimentStrongPositive, Score: 100},
			{Label: domain.SentimentNeutral, Score: 50},
			{Label: domain.SentimentNegative, Score: 25},
		},
	}
	adapter := NewSentimentAdapter(classifier, nil)

	score := adapter.ScoreBrand(context.Background(), []string{"a", "b", "c"}, 0, 0)

	assert.InDelta(t, (100.0+50+25)/3, score, 1e-9)
}

func TestSentimentAdapter_SampleCap(t *testing.T) {
	classifier := &stubClassifier{}
	adapter := NewSentimentAdapter(classifier, nil)

	sentences := make([]string, SentenceSampleCap+20)
	for i := range sentences {
		sentences[i] = fmt.Sprintf("sentence %d", i)
	}

	adapter.ScoreBrand(context.Background(), sentences, 0, 0)

	require.Len(t, classifier.batches, 1)
	assert.Len(t, classifier.batches[0], SentenceSampleCap)
	// Truncation is deterministic: the first SentenceSampleCap sentences.
	assert.Equal(t, "sentence 0", classifier.batches[0][0])
	assert.Equal(t, fmt.Sprintf("sentence %d", SentenceSampleCap-1),
		classifier.batches[0][SentenceSampleCap-1])
}

func TestSentimentAdapter_NoSentencesIsNeutral(t *testing.T) {
	adapter := NewSentimentAdapter(&stubClassifier{}, nil)

	score := adapter.ScoreBrand(context.Background(), nil, 3, 5)

	assert.Equal(t, domain.NeutralSentimentScore, score)
}

func TestSentimentAdapter_FallbackWithoutClassifier(t *testing.T) {
	adapter := NewSentimentAdapter(nil, nil)

	tests := []struct {
		name      string
		strong    int
		maxStrong int
		want      float64
	}{
		{name: "no recommendations anywhere", strong: 0, maxStrong: 0, want: 100},
		{name: "brand matches the maximum", strong: 4, maxStrong: 4, want: 100},
		{name: "brand below the maximum", strong: 1, maxStrong: 3, want: math.Sqrt(0.5) * 100},
		{name: "zero against nonzero maximum", strong: 0, maxStrong: 9, want: math.Sqrt(0.1) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ScoreBrand(context.Background(), []string{"ignored"}, tt.strong, tt.maxStrong)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSentimentAdapter_FallbackOnClassifierError(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("model unavailable")}
	adapter := NewSentimentAdapter(classifier, nil)

	score := adapter.ScoreBrand(context.Background(), []string{"a"}, 2, 2)

	// Failure falls back to the rule-based estimate and never propagates.
	assert.InDelta(t, 100, score, 1e-9)
	require.Len(t, classifier.batches, 1)
}
