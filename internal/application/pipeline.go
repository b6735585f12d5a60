package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/brandscope/brandscope/infrastructure/analysis"
	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

// DefaultAggregationConcurrency bounds parallel answer extraction
// during aggregation.
const DefaultAggregationConcurrency = 8

// Pipeline runs the full extract-aggregate-score pass over a result
// set, producing the overall leaderboard and independent
// per-subcategory leaderboards.
type Pipeline struct {
	aggregator  *analysis.Aggregator
	scorer      *analysis.CompositeScorer
	logger      *slog.Logger
	tracer      trace.Tracer
	concurrency int
	now         func() time.Time
}

// NewPipeline assembles a scoring pipeline from a validated task
// configuration. The classifier may be nil; scoring then uses the
// rule-based sentiment fallback throughout.
func NewPipeline(config *TaskConfig, classifier ports.SentimentClassifier, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	extractor, err := analysis.NewExtractor(config.Dictionary())
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}

	aggregator, err := analysis.NewAggregator(extractor, config.Whitelist())
	if err != nil {
		return nil, fmt.Errorf("building aggregator: %w", err)
	}

	scorer, err := analysis.NewCompositeScorer(
		config.ScoringWeights(),
		analysis.NewSentimentAdapter(classifier, logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}

	return &Pipeline{
		aggregator:  aggregator,
		scorer:      scorer,
		logger:      logger,
		tracer:      otel.Tracer("scoring-pipeline"),
		concurrency: DefaultAggregationConcurrency,
		now:         time.Now,
	}, nil
}

// Score runs one complete scoring pass: the overall leaderboard over
// the full result set, then an independent leaderboard per subcategory
// found in the records' categories.
func (p *Pipeline) Score(ctx context.Context, task string, records []domain.AnswerRecord) (domain.ScoringRun, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.score",
		trace.WithAttributes(
			attribute.String("task", task),
			attribute.Int("records", len(records)),
		))
	defer span.End()

	run := domain.ScoringRun{
		ID:   uuid.NewString(),
		Task: task,
	}

	overall, err := p.scoreSubset(ctx, records)
	if err != nil {
		return domain.ScoringRun{}, err
	}
	run.Overall = overall

	subcategories := groupBySubcategory(records)
	if len(subcategories) > 0 {
		run.Subcategories = make(map[string]map[string]domain.BrandScoreResult, len(subcategories))
		for name, subset := range subcategories {
			scores, err := p.scoreSubset(ctx, subset)
			if err != nil {
				return domain.ScoringRun{}, fmt.Errorf("scoring subcategory %s: %w", name, err)
			}
			if len(scores) > 0 {
				run.Subcategories[name] = scores
			}
		}
	}

	run.GeneratedAt = p.now()
	p.logger.Info("scoring run complete",
		"task", task,
		"run_id", run.ID,
		"brands", len(run.Overall),
		"subcategories", len(run.Subcategories))
	return run, nil
}

func (p *Pipeline) scoreSubset(ctx context.Context, records []domain.AnswerRecord) (map[string]domain.BrandScoreResult, error) {
	aggregate, err := p.aggregator.AggregateParallel(ctx, records, p.concurrency)
	if err != nil {
		return nil, fmt.Errorf("aggregating %d records: %w", len(records), err)
	}
	return p.scorer.Score(ctx, aggregate), nil
}

// groupBySubcategory buckets records by the subcategory suffix of
// their category. Records without a subcategory only contribute to the
// overall leaderboard.
func groupBySubcategory(records []domain.AnswerRecord) map[string][]domain.AnswerRecord {
	groups := make(map[string][]domain.AnswerRecord)
	for _, record := range records {
		if sub, ok := record.Subcategory(); ok {
			groups[sub] = append(groups[sub], record)
		}
	}
	return groups
}
