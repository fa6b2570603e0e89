package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/data"
	"github.com/willfong/mockbank/internal/database"
	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/tools"
)

var errNoSnapshotPath = errors.New("no snapshot file configured (use --db)")

// openEngine loads the configured snapshot, or the embedded seed.
func openEngine() (*ledger.Engine, error) {
	snap, err := data.Open(appCfg.Ledger.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}
	e, err := ledger.New(snap, ledger.WithLogger(logger.Named("ledger")))
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger: %w", err)
	}
	return e, nil
}

// openRegistry wraps a freshly loaded engine in the tool registry.
func openRegistry() (*tools.Registry, error) {
	e, err := openEngine()
	if err != nil {
		return nil, err
	}
	return tools.NewRegistry(e,
		tools.WithHistoryLimit(appCfg.Ledger.HistoryLimit),
		tools.WithLogger(logger.Named("tools")),
	), nil
}

// saveEngine writes the engine's state back to the snapshot file.
func saveEngine(e *ledger.Engine) error {
	path := appCfg.Ledger.DBPath
	if path == "" {
		return errNoSnapshotPath
	}
	if err := data.Save(path, e.Snapshot()); err != nil {
		return err
	}
	logger.Info("ledger saved", zap.String("path", path))
	return nil
}

// openQueries connects to the configured SQL database and makes sure the
// schema exists. The returned close function releases the pool.
func openQueries(ctx context.Context) (*database.Queries, func(), error) {
	pool, err := database.NewPool(appCfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Connect(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	q := database.NewQueries(pool)
	if err := q.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	closeFn := func() {
		stats := pool.Stats()
		logger.Debug("database pool closed",
			zap.String("driver", pool.Driver()),
			zap.Int64("queries", stats.TotalQueries),
			zap.Int64("failed", stats.FailedQueries),
			zap.Duration("avg_latency", stats.AvgLatency))
		pool.Close()
	}
	return q, closeFn, nil
}
