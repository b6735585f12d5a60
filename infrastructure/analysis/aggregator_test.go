package analysis

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/brandscope/internal/domain"
)

func newTestAggregator(t *testing.T, whitelist []string) *Aggregator {
	t.Helper()
	extractor, err := NewExtractor(domain.BrandDictionary{
		"Roborock": {"roborock", "石头科技"},
		"Xiaomi":   {"xiaomi", "小米"},
		"Dyson":    {"dyson"},
	})
	require.NoError(t, err)

	aggregator, err := NewAggregator(extractor, domain.NewWhitelist(whitelist))
	require.NoError(t, err)
	return aggregator
}

func testRecords() []domain.AnswerRecord {
	return []domain.AnswerRecord{
		{
			Category: "vacuum",
			Response: domain.Response{Answer: "Roborock是最佳扫地机器人首选"},
		},
		{
			Category: "vacuum",
			Response: domain.Response{Answer: "Xiaomi 和 Roborock都不错"},
		},
		{
			Category: "vacuum",
			Response: domain.Response{Answer: ""},
		},
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	aggregator := newTestAggregator(t, []string{"Roborock", "Xiaomi"})

	result := aggregator.Aggregate(context.Background(), testRecords())

	require.Contains(t, result.Brands, "Roborock")
	require.Contains(t, result.Brands, "Xiaomi")

	roborock := result.Brands["Roborock"]
	assert.Equal(t, 2, roborock.AnswerOccurrenceCount)
	assert.Equal(t, 2, roborock.TotalMentions)
	assert.Equal(t, 1, roborock.StrongRecommendCount, "only the first answer endorses")

	xiaomi := result.Brands["Xiaomi"]
	assert.Equal(t, 1, xiaomi.AnswerOccurrenceCount)
	assert.Equal(t, 1, xiaomi.TotalMentions)
	assert.Zero(t, xiaomi.StrongRecommendCount)

	assert.Equal(t, 3, result.Bases.TotalMentionsAcrossBrands)
	assert.Equal(t, 2, result.Bases.MaxMentions)
	assert.Equal(t, 1, result.Bases.MaxStrongRecommendCount)
}

func TestAggregator_WhitelistFiltering(t *testing.T) {
	// Xiaomi is in the dictionary but not the whitelist; it must never
	// appear in aggregates no matter how often it is mentioned.
	aggregator := newTestAggregator(t, []string{"Roborock"})

	records := []domain.AnswerRecord{
		{Response: domain.Response{Answer: "xiaomi xiaomi xiaomi and roborock"}},
	}
	result := aggregator.Aggregate(context.Background(), records)

	assert.Contains(t, result.Brands, "Roborock")
	assert.NotContains(t, result.Brands, "Xiaomi")
	assert.Equal(t, 1, result.Bases.TotalMentionsAcrossBrands,
		"non-whitelisted mentions do not count toward share of voice")
}

func TestAggregator_ZeroMentionAbsence(t *testing.T) {
	aggregator := newTestAggregator(t, []string{"Roborock", "Xiaomi", "Dyson"})

	records := []domain.AnswerRecord{
		{Response: domain.Response{Answer: "roborock only here"}},
	}
	result := aggregator.Aggregate(context.Background(), records)

	assert.NotContains(t, result.Brands, "Dyson")
	assert.NotContains(t, result.Brands, "Xiaomi")
}

func TestAggregator_EmptyResultSet(t *testing.T) {
	aggregator := newTestAggregator(t, []string{"Roborock"})

	result := aggregator.Aggregate(context.Background(), nil)

	assert.Empty(t, result.Brands)
	assert.Zero(t, result.Bases.TotalMentionsAcrossBrands)
}

func TestAggregator_OrderIndependence(t *testing.T) {
	aggregator := newTestAggregator(t, []string{"Roborock", "Xiaomi"})

	records := []domain.AnswerRecord{
		{Response: domain.Response{Answer: "Roborock是首选。小米也可以。"}},
		{Response: domain.Response{Answer: "Xiaomi leads, roborock follows."}},
		{Response: domain.Response{Answer: "石头科技 roborock roborock"}},
		{Response: domain.Response{Answer: "nothing relevant"}},
	}

	baseline := aggregator.Aggregate(context.Background(), records)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := make([]domain.AnswerRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		permuted := aggregator.Aggregate(context.Background(), shuffled)

		require.Equal(t, len(baseline.Brands), len(permuted.Brands))
		for brand, want := range baseline.Brands {
			got := permuted.Brands[brand]
			require.NotNil(t, got, "brand %s missing after permutation", brand)
			assert.Equal(t, want.TotalMentions, got.TotalMentions)
			assert.Equal(t, want.FirstPositionSum, got.FirstPositionSum)
			assert.Equal(t, want.StrongRecommendCount, got.StrongRecommendCount)
			assert.Equal(t, want.Top10ScoreSum, got.Top10ScoreSum)
			assert.Equal(t, want.AnswerOccurrenceCount, got.AnswerOccurrenceCount)
			assert.ElementsMatch(t, want.SentimentSentences, got.SentimentSentences)
		}
		assert.Equal(t, baseline.Bases, permuted.Bases)
	}
}

func TestAggregator_ParallelMatchesSequential(t *testing.T) {
	aggregator := newTestAggregator(t, []string{"Roborock", "Xiaomi", "Dyson"})

	records := make([]domain.AnswerRecord, 0, 40)
	answers := []string{
		"Roborock是首选，小米其次。",
		"Dyson is excellent. Xiaomi too.",
		"roborock roborock roborock",
		"",
		"Nothing to see here.",
	}
	for i := 0; i < 8; i++ {
		for _, answer := range answers {
			records = append(records, domain.AnswerRecord{Response: domain.Response{Answer: answer}})
		}
	}

	sequential := aggregator.Aggregate(context.Background(), records)
	parallel, err := aggregator.AggregateParallel(context.Background(), records, 4)
	require.NoError(t, err)

	require.Equal(t, len(sequential.Brands), len(parallel.Brands))
	for brand, want := range sequential.Brands {
		got := parallel.Brands[brand]
		require.NotNil(t, got)
		assert.Equal(t, want.TotalMentions, got.TotalMentions)
		assert.Equal(t, want.AnswerOccurrenceCount, got.AnswerOccurrenceCount)
		assert.Equal(t, want.Top10ScoreSum, got.Top10ScoreSum)
		assert.ElementsMatch(t, want.SentimentSentences, got.SentimentSentences)
	}
	assert.Equal(t, sequential.Bases, parallel.Bases)
}

func TestNewAggregator_RequiresExtractor(t *testing.T) {
	_, err := NewAggregator(nil, domain.NewWhitelist(nil))
	assert.ErrorIs(t, err, ErrNilExtractor)
}
