package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/brandscope/internal/domain"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	extractor, err := NewExtractor(domain.BrandDictionary{
		"Roborock": {"roborock", "石头科技"},
		"Xiaomi":   {"xiaomi", "小米"},
		"Dyson":    {"dyson"},
	})
	require.NoError(t, err)
	return extractor
}

func TestExtractor_ExtractAnswer(t *testing.T) {
	extractor := newTestExtractor(t)

	record := domain.AnswerRecord{
		Category:  "vacuum",
		ModelName: "test-model",
		Response: domain.Response{
			Answer: "Roborock是最佳扫地机器人首选。Xiaomi的产品也不错。Roborock still leads.",
			References: []domain.Reference{
				{URL: "https://example.com/roborock-review", Title: "Roborock S8 review"},
				{URL: "https://example.com/other", Title: "Vacuum roundup", Snippet: "xiaomi vs dyson"},
			},
		},
	}

	metrics := extractor.ExtractAnswer(context.Background(), record)

	require.Contains(t, metrics, "Roborock")
	require.Contains(t, metrics, "Xiaomi")
	assert.NotContains(t, metrics, "Dyson", "dyson only appears in references, not the answer")

	roborock := metrics["Roborock"]
	assert.Equal(t, 0, roborock.FirstPosition)
	assert.Equal(t, 2, roborock.MentionCount)
	assert.True(t, roborock.StrongRecommendation)
	assert.Equal(t, domain.TopNLimit, roborock.TopNPoints, "earliest brand gets full points")
	assert.Equal(t, 1, roborock.ReferenceCount)
	assert.Len(t, roborock.SentimentSentences, 2)

	xiaomi := metrics["Xiaomi"]
	assert.Equal(t, 1, xiaomi.MentionCount)
	assert.False(t, xiaomi.StrongRecommendation)
	assert.Equal(t, domain.TopNLimit-1, xiaomi.TopNPoints)
	assert.Equal(t, 1, xiaomi.ReferenceCount, "snippet mentions the canonical name")
	assert.Len(t, xiaomi.SentimentSentences, 1)
}

func TestExtractor_EmptyAnswer(t *testing.T) {
	extractor := newTestExtractor(t)

	metrics := extractor.ExtractAnswer(context.Background(), domain.AnswerRecord{
		Response: domain.Response{Answer: ""},
	})

	assert.Empty(t, metrics)
}

func TestExtractor_NoKnownBrands(t *testing.T) {
	extractor := newTestExtractor(t)

	metrics := extractor.ExtractAnswer(context.Background(), domain.AnswerRecord{
		Response: domain.Response{Answer: "Nothing relevant appears in this answer at all."},
	})

	assert.Empty(t, metrics)
}

func TestExtractor_SentimentSentenceCollection(t *testing.T) {
	extractor := newTestExtractor(t)

	record := domain.AnswerRecord{
		Response: domain.Response{
			Answer: "Roborock wins. Xiaomi and Roborock both compete. Unrelated sentence here.",
		},
	}

	metrics := extractor.ExtractAnswer(context.Background(), record)

	require.Contains(t, metrics, "Roborock")
	assert.Equal(t, []string{
		"Roborock wins",
		"Xiaomi and Roborock both compete",
	}, metrics["Roborock"].SentimentSentences)

	require.Contains(t, metrics, "Xiaomi")
	assert.Equal(t, []string{
		"Xiaomi and Roborock both compete",
	}, metrics["Xiaomi"].SentimentSentences)
}

func TestCountBrandReferences(t *testing.T) {
	refs := []domain.Reference{
		{URL: "https://news.example/roborock-launch"},
		{Title: "ROBOROCK annual report"},
		{Snippet: "nothing related"},
		{Publisher: "roborock official"},
	}

	assert.Equal(t, 3, countBrandReferences("Roborock", refs))
	assert.Equal(t, 0, countBrandReferences("Dyson", refs))
	assert.Equal(t, 0, countBrandReferences("Roborock", nil))
}
