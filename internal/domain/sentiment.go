package domain

// SentimentLabel is one of the five classes emitted by the sentiment
// classifier.
type SentimentLabel string

// The five sentiment classes, in ascending order of positivity.
const (
	SentimentStrongNegative SentimentLabel = "strong_negative"
	SentimentNegative       SentimentLabel = "negative"
	SentimentNeutral        SentimentLabel = "neutral"
	SentimentPositive       SentimentLabel = "positive"
	SentimentStrongPositive SentimentLabel = "strong_positive"
)

// NeutralSentimentScore is the default score for brands with no
// classifiable sentences and for failed classifications.
const NeutralSentimentScore = 50.0

// sentimentScores maps each class to its 0-100 score.
var sentimentScores = map[SentimentLabel]float64{
	SentimentStrongNegative: 0,
	SentimentNegative:       25,
	SentimentNeutral:        50,
	SentimentPositive:       75,
	SentimentStrongPositive: 100,
}

// Score returns the 0-100 score of the label, or the neutral score for
// unrecognized labels.
func (l SentimentLabel) Score() float64 {
	if score, ok := sentimentScores[l]; ok {
		return score
	}
	return NeutralSentimentScore
}

// Valid reports whether the label is one of the five known classes.
func (l SentimentLabel) Valid() bool {
	_, ok := sentimentScores[l]
	return ok
}

// SentimentResult is the classifier's verdict for one sentence.
type SentimentResult struct {
	// Label is the predicted sentiment class.
	Label SentimentLabel `json:"label"`

	// Confidence is the classifier's confidence in the label, 0.0-1.0.
	Confidence float64 `json:"confidence"`

	// Score is the label's 0-100 sentiment score.
	Score float64 `json:"score"`
}
