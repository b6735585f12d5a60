package analysis

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/brandscope/brandscope/internal/domain"
)

// Brand-prominence thresholds over the average first-occurrence offset,
// in characters: full score below prominenceFullScoreOffset, linear
// decay to zero at prominenceZeroScoreOffset.
const (
	prominenceFullScoreOffset = 500
	prominenceZeroScoreOffset = 1500
)

// CompositeScorer converts aggregated raw metrics into the five
// dimension scores and combines them into the weighted brand index.
// Every ratio is guarded against zero denominators; a degenerate result
// set produces zero scores, never an error.
type CompositeScorer struct {
	weights   domain.Weights
	sentiment *SentimentAdapter
	tracer    trace.Tracer
}

// NewCompositeScorer builds a scorer with the given weights and
// sentiment adapter. Weights must be non-negative; they conventionally
// sum to 100 but the sum is not enforced.
func NewCompositeScorer(weights domain.Weights, sentiment *SentimentAdapter) (*CompositeScorer, error) {
	if err := validate.Struct(weights); err != nil {
		return nil, fmt.Errorf("weight validation failed: %w", err)
	}
	if sentiment == nil {
		sentiment = NewSentimentAdapter(nil, nil)
	}
	return &CompositeScorer{
		weights:   weights,
		sentiment: sentiment,
		tracer:    otel.Tracer("composite-scorer"),
	}, nil
}

// Score computes one BrandScoreResult per aggregated brand. An empty
// aggregate yields an empty map.
func (s *CompositeScorer) Score(ctx context.Context, result AggregateResult) map[string]domain.BrandScoreResult {
	ctx, span := s.tracer.Start(ctx, "CompositeScorer.Score",
		trace.WithAttributes(attribute.Int("brands.count", len(result.Brands))),
	)
	defer span.End()

	scores := make(map[string]domain.BrandScoreResult, len(result.Brands))
	for brand, metrics := range result.Brands {
		dims := domain.DimensionScores{
			BrandProminence: prominenceScore(metrics.AveragePosition()),
			ShareOfVoice:    shareOfVoiceScore(metrics.TotalMentions, result.Bases.TotalMentionsAcrossBrands),
			Top10Visibility: top10VisibilityScore(metrics.Top10ScoreSum, result.Bases.MaxTop10ScoreSum),
			Competitiveness: competitivenessScore(metrics.TotalMentions, result.Bases.MaxMentions),
			SentimentAnalysis: clampScore(s.sentiment.ScoreBrand(
				ctx, metrics.SentimentSentences,
				metrics.StrongRecommendCount, result.Bases.MaxStrongRecommendCount,
			)),
		}

		scores[brand] = domain.BrandScoreResult{
			BrandIndex:           s.weightedIndex(dims),
			TotalMentions:        metrics.TotalMentions,
			OccurrenceCount:      metrics.AnswerOccurrenceCount,
			StrongRecommendCount: metrics.StrongRecommendCount,
			MeanMentionDensity:   metrics.MentionDensity(),
			Dimensions:           dims,
		}
	}
	return scores
}

// weightedIndex combines the dimensions into the final brand index.
// The division by 100 assumes weights conventionally summing to 100.
func (s *CompositeScorer) weightedIndex(dims domain.DimensionScores) float64 {
	return (dims.BrandProminence*s.weights.BrandProminence +
		dims.ShareOfVoice*s.weights.ShareOfVoice +
		dims.Top10Visibility*s.weights.Top10Visibility +
		dims.Competitiveness*s.weights.Competitiveness +
		dims.SentimentAnalysis*s.weights.SentimentAnalysis) / 100
}

// prominenceScore is a step function of the average first-occurrence
// offset: 100 when brands surface early, linear decay through the
// mid-range, zero for late or never-mentioned brands.
func prominenceScore(avgPosition float64) float64 {
	switch {
	case math.IsInf(avgPosition, 1):
		return 0
	case avgPosition < prominenceFullScoreOffset:
		return 100
	case avgPosition < prominenceZeroScoreOffset:
		return clampScore(100 * (1 - (avgPosition-prominenceFullScoreOffset)/(prominenceZeroScoreOffset-prominenceFullScoreOffset)))
	default:
		return 0
	}
}

// shareOfVoiceScore log-compresses the brand's share of total mention
// volume so a single dominant brand cannot saturate the scale.
func shareOfVoiceScore(mentions, totalMentions int) float64 {
	if totalMentions == 0 {
		return 0
	}
	ratio := float64(mentions) / float64(totalMentions)
	return clampScore(math.Log(1+ratio*1000) / math.Log(1001) * 100)
}

// top10VisibilityScore square-root-compresses the positional ranking
// reward relative to the best-ranked brand. The +1 offsets keep the
// ratio defined when no brand earned any points.
func top10VisibilityScore(sum, maxSum int) float64 {
	return clampScore(math.Sqrt(float64(sum+1)/float64(maxSum+1)) * 100)
}

// competitivenessScore is the linear mention share against the
// most-mentioned brand in the set.
func competitivenessScore(mentions, maxMentions int) float64 {
	if maxMentions == 0 {
		return 0
	}
	return clampScore(float64(mentions) / float64(maxMentions) * 100)
}

// clampScore restricts a dimension score to [0, 100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
