// Package simulator drives a concurrent random workload against a ledger
// engine and checks the ledger's invariants afterwards.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/utils"
)

// Options carries the optional collaborators of a run
type Options struct {
	Logger *zap.Logger

	// Progress is called after each operation with the running total.
	// It runs on worker goroutines and must be safe for concurrent use.
	Progress func(completed int64)
}

// Report summarizes a finished run
type Report struct {
	RunID      string
	Seed       uint64
	Workers    int
	Operations int64
	Metrics    Snapshot
	Violations []ledger.Violation
}

// targets are the entity IDs workers choose from
type targets struct {
	customers []string
	accounts  []string
	loans     []string
	cards     []string
}

// Run performs cfg.Workers × cfg.Operations random operations against e.
// Ledger rejections are counted, not returned. Any other error aborts the
// run. When the workers finish the engine is audited and any violation
// makes Run return ErrAuditFailed along with the report.
func Run(ctx context.Context, e *ledger.Engine, cfg config.SimulateConfig, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers <= 0 || cfg.Operations <= 0 {
		return nil, fmt.Errorf("workers and operations must be positive")
	}

	t := targets{
		customers: e.IDs(ledger.KindCustomer),
		accounts:  e.IDs(ledger.KindAccount),
		loans:     e.IDs(ledger.KindLoan),
		cards:     e.IDs(ledger.KindCreditCard),
	}
	if len(t.accounts) == 0 {
		return nil, fmt.Errorf("ledger has no accounts to simulate against")
	}

	rng := utils.NewRandom(cfg.Seed)
	report := &Report{
		RunID:   uuid.NewString(),
		Seed:    rng.Seed(),
		Workers: cfg.Workers,
	}
	log = log.With(zap.String("run_id", report.RunID))
	log.Info("simulation starting",
		zap.Uint64("seed", report.Seed),
		zap.Int("workers", cfg.Workers),
		zap.Int("operations", cfg.Operations))

	metrics := NewMetrics()
	picker := newOperationPicker(cfg)

	g, gctx := errgroup.WithContext(ctx)
	for i, wrng := range rng.ForkN(cfg.Workers) {
		w := &worker{
			id:      i,
			engine:  e,
			rng:     wrng,
			targets: t,
			picker:  picker,
			max:     utils.FromFloat(cfg.MaxAmount),
		}
		g.Go(func() error {
			for n := 0; n < cfg.Operations; n++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				op, latency, err := w.step()
				if IsInfrastructureError(err) {
					return fmt.Errorf("worker %d: %s failed: %w", w.id, op, err)
				}
				metrics.RecordOperation(op, latency, err)
				if opts.Progress != nil {
					opts.Progress(metrics.Completed())
				}
				if cfg.ThinkTime > 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					case <-time.After(w.thinkTime(cfg.ThinkTime)):
					}
				}
			}
			return nil
		})
	}

	runErr := g.Wait()
	report.Metrics = metrics.Snapshot()
	report.Operations = report.Metrics.TotalOperations
	report.Violations = e.Audit()

	log.Info("simulation finished",
		zap.Int64("operations", report.Operations),
		zap.Int64("rejected", report.Metrics.Rejected),
		zap.Int("violations", len(report.Violations)))

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return report, runErr
	}
	if len(report.Violations) > 0 {
		return report, fmt.Errorf("%w: %d violations, first: %s", ErrAuditFailed, len(report.Violations), report.Violations[0])
	}
	return report, runErr
}
