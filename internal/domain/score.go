package domain

import (
	"sort"
	"time"
)

// DimensionScores holds the five independently-normalized dimension
// scores of one brand, each clamped to [0, 100].
type DimensionScores struct {
	// BrandProminence rewards early first mentions: 100 below an
	// average offset of 500 characters, linear decay to 0 at 1500.
	BrandProminence float64 `json:"brand_prominence"`

	// ShareOfVoice is the log-compressed share of total mention volume.
	ShareOfVoice float64 `json:"share_of_voice"`

	// Top10Visibility is the square-root-compressed positional ranking
	// reward relative to the best-ranked brand.
	Top10Visibility float64 `json:"top10_visibility"`

	// Competitiveness is the linear mention share relative to the
	// most-mentioned brand.
	Competitiveness float64 `json:"competitiveness"`

	// SentimentAnalysis is the mean classifier score over sampled
	// brand-bearing sentences.
	SentimentAnalysis float64 `json:"sentiment_analysis"`
}

// BrandScoreResult is the externally-visible scoring artifact for one
// brand, handed to the report renderer.
type BrandScoreResult struct {
	// BrandIndex is the weighted composite of the dimension scores
	// divided by 100. With weights summing to 100 it lands near the
	// 0-100 range; no hard clamp is applied.
	BrandIndex float64 `json:"brand_index"`

	// TotalMentions is the brand's mention volume across the result set.
	TotalMentions int `json:"total_mentions"`

	// OccurrenceCount is the number of answers mentioning the brand.
	OccurrenceCount int `json:"occurrence_count"`

	// StrongRecommendCount counts answers flagged as strong
	// recommendations.
	StrongRecommendCount int `json:"strong_recommend_count"`

	// MeanMentionDensity is the mean mentions per mentioning answer.
	MeanMentionDensity float64 `json:"mean_mention_density"`

	// Dimensions holds the five normalized dimension scores.
	Dimensions DimensionScores `json:"dimension_scores"`
}

// RankedBrand pairs a canonical brand name with its score for ordered
// presentation.
type RankedBrand struct {
	Brand string
	BrandScoreResult
}

// Rank orders a score map by descending brand index. Ties are broken
// by canonical name so that rendering is deterministic.
func Rank(scores map[string]BrandScoreResult) []RankedBrand {
	ranked := make([]RankedBrand, 0, len(scores))
	for brand, score := range scores {
		ranked = append(ranked, RankedBrand{Brand: brand, BrandScoreResult: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].BrandIndex != ranked[j].BrandIndex {
			return ranked[i].BrandIndex > ranked[j].BrandIndex
		}
		return ranked[i].Brand < ranked[j].Brand
	})
	return ranked
}

// ScoringRun is the complete outcome of one scoring pass: the overall
// leaderboard plus optional per-subcategory leaderboards computed
// independently over each subcategory's answer subset.
type ScoringRun struct {
	// ID uniquely identifies this run (a UUID).
	ID string `json:"id"`

	// Task names the analysis task the run belongs to.
	Task string `json:"task"`

	// GeneratedAt records when the run completed.
	GeneratedAt time.Time `json:"generated_at"`

	// Overall maps canonical brand name to its score over the full
	// result set. Empty when no whitelisted brand was ever mentioned.
	Overall map[string]BrandScoreResult `json:"overall"`

	// Subcategories maps subcategory name to that subcategory's
	// independently-computed leaderboard.
	Subcategories map[string]map[string]BrandScoreResult `json:"subcategories,omitempty"`
}
