// Package worker runs background jobs against the fact overlay store.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// MaintenanceStore defines the store operations needed by the maintenance worker.
type MaintenanceStore interface {
	Maintain(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// MaintenanceWorker periodically compacts the overlay database.
type MaintenanceWorker struct {
	store    MaintenanceStore
	interval time.Duration
}

// NewMaintenanceWorker creates a worker with the given store and interval.
func NewMaintenanceWorker(store MaintenanceStore, interval time.Duration) *MaintenanceWorker {
	return &MaintenanceWorker{
		store:    store,
		interval: interval,
	}
}

// Run starts the worker loop. Blocks until ctx is cancelled.
// Does NOT run immediately on start.
func (w *MaintenanceWorker) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "store-maintenance",
		"interval", w.interval.String(),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "store-maintenance",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

// runCycle executes a single maintenance pass. Failures are logged and the
// next tick tries again.
func (w *MaintenanceWorker) runCycle(ctx context.Context) {
	start := time.Now()

	if err := w.store.Maintain(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("maintenance failed",
			"component", "worker",
			"action", "maintenance_failed",
			"error", err,
		)
		return
	}

	overlays, err := w.store.Count(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("overlay count failed",
			"component", "worker",
			"error", err,
		)
	}

	slog.Info("maintenance cycle completed",
		"component", "worker",
		"action", "maintenance_complete",
		"overlays", overlays,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
