package analysis

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/brandscope/brandscope/internal/domain"
)

// Extractor composes the alias matcher, segmenter, and salience
// detectors into one pass over a single answer, producing a raw metric
// record per mentioned brand. It is stateless after construction and
// safe for concurrent use across answers.
type Extractor struct {
	matcher *AliasMatcher
	strong  *StrongRecommendDetector
	tracer  trace.Tracer
}

// NewExtractor builds an extractor over the brand dictionary.
func NewExtractor(dict domain.BrandDictionary) (*Extractor, error) {
	matcher, err := NewAliasMatcher(dict)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		matcher: matcher,
		strong:  NewStrongRecommendDetector(matcher),
		tracer:  otel.Tracer("brand-metrics-extractor"),
	}, nil
}

// Matcher exposes the extractor's alias matcher for components that
// need containment tests against the same dictionary.
func (e *Extractor) Matcher() *AliasMatcher { return e.matcher }

// ExtractAnswer analyzes one answer and returns a metric record for
// every brand mentioned in it. Brands never mentioned are absent from
// the map. An empty answer yields an empty map.
func (e *Extractor) ExtractAnswer(ctx context.Context, record domain.AnswerRecord) map[string]*domain.PerAnswerBrandMetrics {
	_, span := e.tracer.Start(ctx, "Extractor.ExtractAnswer",
		trace.WithAttributes(
			attribute.String("answer.category", record.Category),
			attribute.String("answer.model", record.ModelName),
			attribute.Int("answer.length", len(record.Response.Answer)),
		),
	)
	defer span.End()

	answer := record.Response.Answer
	mentions := e.matcher.Match(answer)
	if len(mentions) == 0 {
		return map[string]*domain.PerAnswerBrandMetrics{}
	}

	topPoints := AssignTopNPoints(mentions, e.matcher.Order())
	recommended := e.strong.Detect(Sentences(answer), mentions)

	metrics := make(map[string]*domain.PerAnswerBrandMetrics, len(mentions))
	for brand, mention := range mentions {
		metrics[brand] = &domain.PerAnswerBrandMetrics{
			FirstPosition:        mention.FirstPosition,
			MentionCount:         mention.Count,
			StrongRecommendation: recommended[brand],
			TopNPoints:           topPoints[brand],
			ReferenceCount:       countBrandReferences(brand, record.Response.References),
		}
	}

	// Collect brand-bearing sentences for the sentiment stage. Each
	// sentence is attributed to every mentioned brand it contains.
	for sentence := range Sentences(answer) {
		for brand := range mentions {
			if e.matcher.ContainsBrand(brand, sentence) {
				metrics[brand].SentimentSentences = append(metrics[brand].SentimentSentences, sentence)
			}
		}
	}

	span.SetAttributes(attribute.Int("answer.brands_mentioned", len(metrics)))
	return metrics
}

// countBrandReferences counts the attributions whose text contains the
// brand's canonical name.
func countBrandReferences(brand string, refs []domain.Reference) int {
	count := 0
	for _, ref := range refs {
		if ref.Contains(brand) {
			count++
		}
	}
	return count
}
