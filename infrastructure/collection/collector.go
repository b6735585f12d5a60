// Package collection drives answer gathering: it fans market-research
// questions out to a configured LLM model and persists the resulting
// answer records for later scoring.
package collection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

// DefaultConcurrency bounds parallel in-flight provider requests when
// the caller does not specify a limit.
const DefaultConcurrency = 4

// Options configures a collection run.
type Options struct {
	// CategoryPrefix restricts the run to questions whose category
	// starts with the prefix. Empty means all questions.
	CategoryPrefix string

	// Concurrency bounds parallel provider requests.
	// Zero or negative means DefaultConcurrency.
	Concurrency int

	// WebSearch requests grounded answers with source citations from
	// providers that support it.
	WebSearch bool
}

// Collector gathers answers for a question set from one model and
// persists them. Runs are incremental: questions already answered by
// the same model in the store are skipped, so an interrupted run can be
// resumed without re-querying.
type Collector struct {
	client ports.LLMClient
	store  ports.ResultStore
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewCollector creates a collector for the given client and store.
// A nil logger disables logging.
func NewCollector(client ports.LLMClient, store ports.ResultStore, logger *slog.Logger) (*Collector, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if store == nil {
		return nil, fmt.Errorf("result store is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Collector{
		client: client,
		store:  store,
		logger: logger,
		tracer: otel.Tracer("answer-collector"),
		now:    time.Now,
	}, nil
}

// Collect runs the question set against the collector's model and
// returns the newly collected records. A provider failure on one
// question yields a record with an empty answer rather than aborting
// the run; empty answers contribute nothing to scoring.
func (c *Collector) Collect(ctx context.Context, task string, questions []domain.Question, opts Options) ([]domain.AnswerRecord, error) {
	ctx, span := c.tracer.Start(ctx, "collection.collect",
		trace.WithAttributes(
			attribute.String("task", task),
			attribute.String("model", c.client.GetModel()),
			attribute.Int("questions.total", len(questions)),
		))
	defer span.End()

	pending, err := c.pendingQuestions(ctx, task, questions, opts.CategoryPrefix)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("questions.pending", len(pending)))

	if len(pending) == 0 {
		c.logger.Info("no pending questions", "task", task)
		return nil, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	records := make([]domain.AnswerRecord, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, question := range pending {
		g.Go(func() error {
			records[i] = c.collectOne(gctx, question, opts)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := c.store.SaveAnswers(ctx, task, records); err != nil {
		return nil, fmt.Errorf("persisting %d answers: %w", len(records), err)
	}

	c.logger.Info("collection run complete",
		"task", task, "model", c.client.GetModel(), "collected", len(records))
	return records, nil
}

// pendingQuestions filters the question set down to those matching the
// category prefix and not yet answered by this model.
func (c *Collector) pendingQuestions(ctx context.Context, task string, questions []domain.Question, prefix string) ([]domain.Question, error) {
	existing, err := c.store.LoadAnswers(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("loading existing answers: %w", err)
	}

	model := c.client.GetModel()
	answered := make(map[string]struct{}, len(existing))
	for _, record := range existing {
		if record.ModelName == model {
			answered[record.QuestionID] = struct{}{}
		}
	}

	pending := make([]domain.Question, 0, len(questions))
	for _, question := range questions {
		if prefix != "" && !strings.HasPrefix(question.Category, prefix) {
			continue
		}
		if _, done := answered[question.ID]; done {
			continue
		}
		pending = append(pending, question)
	}
	return pending, nil
}

func (c *Collector) collectOne(ctx context.Context, question domain.Question, opts Options) domain.AnswerRecord {
	record := domain.AnswerRecord{
		Category:    question.Category,
		QuestionID:  question.ID,
		Question:    question.Text,
		ModelName:   c.client.GetModel(),
		CollectedAt: c.now(),
	}

	options := map[string]any{}
	if opts.WebSearch {
		options["web_search"] = true
	}

	answer, references, err := c.client.CompleteWithReferences(ctx, question.Text, options)
	if err != nil {
		c.logger.Warn("question failed, recording empty answer",
			"question_id", question.ID, "error", err)
		return record
	}

	record.Response = domain.Response{Answer: answer, References: references}
	return record
}
