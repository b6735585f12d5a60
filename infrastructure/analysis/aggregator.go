package analysis

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/brandscope/brandscope/internal/domain"
)

// AggregateResult is the output of one aggregation pass: the per-brand
// raw aggregates plus the cross-brand normalization bases. Both are
// read-only inputs to the composite scorer once the fold completes.
type AggregateResult struct {
	// Brands maps canonical name to its accumulated metrics. Empty when
	// no whitelisted brand was mentioned anywhere; an empty result is a
	// valid terminal state, not an error.
	Brands map[string]*domain.AggregatedBrandMetrics

	// Bases holds the normalization constants shared by all brands.
	Bases domain.NormalizationBases
}

// Aggregator folds per-answer metric records across an entire result
// set, keeping only whitelisted brands. The fold is additive and
// commutative, so answer ordering never affects the result.
type Aggregator struct {
	extractor *Extractor
	whitelist domain.Whitelist
	tracer    trace.Tracer
}

// NewAggregator builds an aggregator over the extractor and whitelist.
func NewAggregator(extractor *Extractor, whitelist domain.Whitelist) (*Aggregator, error) {
	if extractor == nil {
		return nil, ErrNilExtractor
	}
	return &Aggregator{
		extractor: extractor,
		whitelist: whitelist,
		tracer:    otel.Tracer("brand-aggregator"),
	}, nil
}

// Aggregate processes the result set in a single accumulating pass.
// Answers with empty text are skipped silently. Brands outside the
// whitelist are dropped before folding.
func (a *Aggregator) Aggregate(ctx context.Context, records []domain.AnswerRecord) AggregateResult {
	ctx, span := a.tracer.Start(ctx, "Aggregator.Aggregate",
		trace.WithAttributes(attribute.Int("answers.count", len(records))),
	)
	defer span.End()

	brands := make(map[string]*domain.AggregatedBrandMetrics)
	totalMentions := 0

	for _, record := range records {
		if record.Response.Answer == "" {
			continue
		}
		perAnswer := a.extractor.ExtractAnswer(ctx, record)
		totalMentions += foldAnswer(brands, perAnswer, a.whitelist)
	}

	span.SetAttributes(
		attribute.Int("brands.count", len(brands)),
		attribute.Int("mentions.total", totalMentions),
	)
	return AggregateResult{
		Brands: brands,
		Bases:  domain.ComputeNormalizationBases(brands, totalMentions),
	}
}

// AggregateParallel fans the extraction out over the answers with
// bounded concurrency, then reduces per-answer partial maps into one
// aggregate. Because the fold is commutative, the result is identical
// to the sequential pass. A workers value below one defaults to
// runtime.NumCPU.
func (a *Aggregator) AggregateParallel(ctx context.Context, records []domain.AnswerRecord, workers int) (AggregateResult, error) {
	ctx, span := a.tracer.Start(ctx, "Aggregator.AggregateParallel",
		trace.WithAttributes(attribute.Int("answers.count", len(records))),
	)
	defer span.End()

	if workers < 1 {
		workers = runtime.NumCPU()
	}

	partials := make([]map[string]*domain.PerAnswerBrandMetrics, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, record := range records {
		if record.Response.Answer == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partials[i] = a.extractor.ExtractAnswer(gctx, record)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return AggregateResult{}, err
	}

	brands := make(map[string]*domain.AggregatedBrandMetrics)
	totalMentions := 0
	for _, perAnswer := range partials {
		totalMentions += foldAnswer(brands, perAnswer, a.whitelist)
	}

	span.SetAttributes(attribute.Int("brands.count", len(brands)))
	return AggregateResult{
		Brands: brands,
		Bases:  domain.ComputeNormalizationBases(brands, totalMentions),
	}, nil
}

// foldAnswer merges one answer's metric records into the running
// aggregate and returns how many whitelisted mentions it contributed.
func foldAnswer(brands map[string]*domain.AggregatedBrandMetrics, perAnswer map[string]*domain.PerAnswerBrandMetrics, whitelist domain.Whitelist) int {
	mentions := 0
	for brand, metrics := range perAnswer {
		if !whitelist.Contains(brand) {
			continue
		}
		aggregate, ok := brands[brand]
		if !ok {
			aggregate = &domain.AggregatedBrandMetrics{}
			brands[brand] = aggregate
		}
		aggregate.Fold(*metrics)
		mentions += metrics.MentionCount
	}
	return mentions
}
