// Package processor scores batches of records in parallel using a worker
// pool.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/quality"
	"github.com/tackle-hunger/data-quality/internal/telemetry"
)

const defaultConcurrency = 10

// Record kinds accepted by the batch scorer.
const (
	KindSite         = "site"
	KindOrganization = "organization"
)

// ScoreResult pairs a record with its quality score.
type ScoreResult struct {
	Record domain.Record        `json:"-"`
	ID     string               `json:"id"`
	Name   string               `json:"name"`
	Kind   string               `json:"kind"`
	Score  *domain.QualityScore `json:"score"`
	Grade  string               `json:"grade"`
}

// BatchScorer scores records in parallel. Results preserve input order
// regardless of worker scheduling.
type BatchScorer struct {
	aggregator  *quality.Aggregator
	concurrency int
	telemetry   *telemetry.Provider
	log         logger.Logger
}

// NewBatchScorer creates a batch scorer with the given worker count. The
// telemetry provider may be nil.
func NewBatchScorer(aggregator *quality.Aggregator, concurrency int, provider *telemetry.Provider, log logger.Logger) *BatchScorer {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchScorer{
		aggregator:  aggregator,
		concurrency: concurrency,
		telemetry:   provider,
		log:         log,
	}
}

type job struct {
	index  int
	record domain.Record
}

// Score scores a batch of records of the given kind. Scoring is total, so
// every input record yields a result; the output is in input order.
func (b *BatchScorer) Score(ctx context.Context, records []domain.Record, kind string) []ScoreResult {
	if len(records) == 0 {
		return []ScoreResult{}
	}

	b.log.Info("starting batch scoring",
		logger.Int("batch_size", len(records)),
		logger.Int("concurrency", b.concurrency),
		logger.String("kind", kind))

	start := time.Now()

	jobs := make(chan job, len(records))
	results := make([]ScoreResult, len(records))

	if b.telemetry != nil {
		b.telemetry.RecordBatch(ctx, len(records))
		b.telemetry.SetActiveWorkers(b.concurrency)
	}

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, results, kind, &wg)
	}

	for i, rec := range records {
		jobs <- job{index: i, record: rec}
	}
	close(jobs)
	wg.Wait()

	if b.telemetry != nil {
		b.telemetry.SetActiveWorkers(0)
	}

	b.log.Info("batch scoring complete",
		logger.Int("total", len(records)),
		logger.Duration("duration", time.Since(start)))

	return results
}

// worker writes each result to its job's slot in the results slice, which
// keeps output order independent of scheduling.
func (b *BatchScorer) worker(ctx context.Context, jobs <-chan job, results []ScoreResult, kind string, wg *sync.WaitGroup) {
	defer wg.Done()

	for j := range jobs {
		if ctx.Err() != nil {
			results[j.index] = ScoreResult{
				Record: j.record,
				ID:     j.record.ID(),
				Name:   j.record.Name(),
				Kind:   kind,
			}
			continue
		}

		scoreStart := time.Now()
		var score *domain.QualityScore
		if kind == KindOrganization {
			score = b.aggregator.ScoreOrganization(j.record)
		} else {
			score = b.aggregator.ScoreSite(j.record)
		}

		if b.telemetry != nil {
			b.telemetry.RecordScore(ctx, kind, score.OverallScore, time.Since(scoreStart))
		}

		results[j.index] = ScoreResult{
			Record: j.record,
			ID:     j.record.ID(),
			Name:   j.record.Name(),
			Kind:   kind,
			Score:  score,
			Grade:  quality.Grade(score.OverallScore),
		}
	}
}
