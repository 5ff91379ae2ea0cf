// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/policy-engine/internal/metrics"
	"github.com/pdiddy/policy-engine/pkg/types"
)

const defaultWorkers = 4

// ProcessSummary holds counts from one batch.
type ProcessSummary struct {
	Processed int
	Failed    int
}

// Total returns the number of records seen.
func (s ProcessSummary) Total() int {
	return s.Processed + s.Failed
}

// Processor scores batches of records in parallel.
type Processor struct {
	scorer  *Scorer
	workers int
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewProcessor builds a Processor. A nil logger uses slog.Default; a nil
// collector disables metrics.
func NewProcessor(scorer *Scorer, cfg types.EvidenceConfig, m *metrics.Collector, logger *slog.Logger) *Processor {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		scorer:  scorer,
		workers: workers,
		metrics: m,
		logger:  logger.With("component", "evidence.processor"),
	}
}

// Process scores every record and returns the results in input order.
// A record whose scoring fails is logged, counted and skipped; it never
// aborts the batch. The only error returned is context cancellation.
func (p *Processor) Process(ctx context.Context, records []types.ArticleRecord) ([]types.ScoredEvidence, ProcessSummary, error) {
	scored := make([]types.ScoredEvidence, len(records))
	ok := make([]bool, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := range records {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ev, err := p.scoreOne(records[i])
			if err != nil {
				p.logger.Warn("skipping record", "pmid", records[i].ID, "error", err)
				return nil
			}
			scored[i], ok[i] = ev, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ProcessSummary{}, fmt.Errorf("processing records: %w", err)
	}

	out := make([]types.ScoredEvidence, 0, len(records))
	var summary ProcessSummary
	for i := range scored {
		if !ok[i] {
			summary.Failed++
			p.metrics.RecordFailed()
			continue
		}
		summary.Processed++
		p.metrics.RecordScored(scored[i].Quality)
		out = append(out, scored[i])
	}

	p.logger.Info("processed records", "processed", summary.Processed, "failed", summary.Failed)
	return out, summary, nil
}

// scoreOne is the record boundary: a panic while scoring becomes an error.
func (p *Processor) scoreOne(rec types.ArticleRecord) (ev types.ScoredEvidence, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring record %q: %v", rec.ID, r)
		}
	}()
	return p.scorer.Score(rec), nil
}
