package domain

import "math"

// TopNLimit is the number of distinct brands per answer that receive
// positional ranking points. The earliest-mentioned brand receives
// TopNLimit points, the TopNLimit-th receives one point, and every
// later brand receives zero.
const TopNLimit = 10

// PerAnswerBrandMetrics is the transient per-(answer, brand) record
// produced by the metrics extractor. Brands never mentioned in an
// answer have no record at all; absence and "zero mentions" are
// equivalent to callers.
type PerAnswerBrandMetrics struct {
	// FirstPosition is the smallest character offset at which any alias
	// of the brand occurs in the lower-cased answer text. It is only
	// meaningful for records that exist, since unmentioned brands
	// produce no record.
	FirstPosition int

	// MentionCount is the number of non-overlapping alias occurrences
	// across all aliases of the brand.
	MentionCount int

	// StrongRecommendation is set when at least one sentence contains
	// the brand together with a positive-recommendation pattern and no
	// negation keyword. A single match across the answer suffices.
	StrongRecommendation bool

	// TopNPoints is the positional ranking reward, TopNLimit down to 1
	// for the first TopNLimit distinct brands by first occurrence, else 0.
	TopNPoints int

	// ReferenceCount is the number of reference attributions whose text
	// contains the brand's canonical name.
	ReferenceCount int

	// SentimentSentences collects every sentence of the answer that
	// contains the brand, for later sentiment classification.
	SentimentSentences []string
}

// AggregatedBrandMetrics accumulates per-answer metrics for one brand
// across an entire whitelist-filtered result set. The fold is additive
// and commutative: any processing order of the same result set yields
// identical aggregates.
type AggregatedBrandMetrics struct {
	// TotalMentions is the sum of per-answer mention counts.
	TotalMentions int

	// FirstPositionSum sums first-occurrence offsets over the answers
	// that mention the brand.
	FirstPositionSum int

	// StrongRecommendCount counts answers flagged as strong
	// recommendations for the brand.
	StrongRecommendCount int

	// Top10ScoreSum sums positional ranking points across answers.
	Top10ScoreSum int

	// TotalReferenceCount sums per-answer reference counts.
	TotalReferenceCount int

	// AnswerOccurrenceCount counts answers in which the brand was
	// mentioned at least once.
	AnswerOccurrenceCount int

	// SentimentSentences accumulates brand-bearing sentences across
	// answers. The list is unbounded here and capped at analysis time.
	SentimentSentences []string
}

// Fold adds one per-answer record into the aggregate.
func (m *AggregatedBrandMetrics) Fold(p PerAnswerBrandMetrics) {
	m.TotalMentions += p.MentionCount
	m.FirstPositionSum += p.FirstPosition
	if p.StrongRecommendation {
		m.StrongRecommendCount++
	}
	m.Top10ScoreSum += p.TopNPoints
	m.TotalReferenceCount += p.ReferenceCount
	m.AnswerOccurrenceCount++
	m.SentimentSentences = append(m.SentimentSentences, p.SentimentSentences...)
}

// Merge combines another aggregate into this one. It is used to reduce
// partial aggregates produced by parallel folds over disjoint answer
// subsets.
func (m *AggregatedBrandMetrics) Merge(other *AggregatedBrandMetrics) {
	m.TotalMentions += other.TotalMentions
	m.FirstPositionSum += other.FirstPositionSum
	m.StrongRecommendCount += other.StrongRecommendCount
	m.Top10ScoreSum += other.Top10ScoreSum
	m.TotalReferenceCount += other.TotalReferenceCount
	m.AnswerOccurrenceCount += other.AnswerOccurrenceCount
	m.SentimentSentences = append(m.SentimentSentences, other.SentimentSentences...)
}

// AveragePosition returns the mean first-occurrence offset across the
// answers that mention the brand, or +Inf when the brand never occurred.
func (m *AggregatedBrandMetrics) AveragePosition() float64 {
	if m.AnswerOccurrenceCount == 0 {
		return math.Inf(1)
	}
	return float64(m.FirstPositionSum) / float64(m.AnswerOccurrenceCount)
}

// MentionDensity returns the mean number of mentions per answer that
// mentions the brand, or 0 when the brand never occurred.
func (m *AggregatedBrandMetrics) MentionDensity() float64 {
	if m.AnswerOccurrenceCount == 0 {
		return 0
	}
	return float64(m.TotalMentions) / float64(m.AnswerOccurrenceCount)
}

// NormalizationBases holds the cross-brand constants required to
// normalize raw aggregates into dimension scores. They are computed
// once after the fold completes and are read-only afterwards.
type NormalizationBases struct {
	// TotalMentionsAcrossBrands is the sum of whitelisted brand
	// mentions over the whole result set; the share-of-voice
	// denominator.
	TotalMentionsAcrossBrands int

	// MaxMentions is the largest TotalMentions of any brand in the set.
	MaxMentions int

	// MaxStrongRecommendCount is the largest StrongRecommendCount of
	// any brand in the set.
	MaxStrongRecommendCount int

	// MaxTop10ScoreSum is the largest Top10ScoreSum of any brand in
	// the set.
	MaxTop10ScoreSum int
}

// ComputeNormalizationBases derives the cross-brand maxima from a
// finished aggregate map. The total-mentions counter is accumulated
// during the fold and passed through unchanged.
func ComputeNormalizationBases(aggregates map[string]*AggregatedBrandMetrics, totalMentions int) NormalizationBases {
	bases := NormalizationBases{TotalMentionsAcrossBrands: totalMentions}
	for _, m := range aggregates {
		bases.MaxMentions = max(bases.MaxMentions, m.TotalMentions)
		bases.MaxStrongRecommendCount = max(bases.MaxStrongRecommendCount, m.StrongRecommendCount)
		bases.MaxTop10ScoreSum = max(bases.MaxTop10ScoreSum, m.Top10ScoreSum)
	}
	return bases
}
