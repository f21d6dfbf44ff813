package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/hyperengineering/statefacts/internal/config"
	"github.com/hyperengineering/statefacts/internal/reference"
	"github.com/hyperengineering/statefacts/internal/states"
	"github.com/hyperengineering/statefacts/internal/store"
)

// openAttempts bounds how often opening the overlay database is retried.
const openAttempts = 3

// backend bundles everything a command needs to run fact operations.
type backend struct {
	cfg   *config.Config
	refs  *reference.Store
	store store.Store
	svc   *states.Service
}

// Close releases the overlay store.
func (b *backend) Close() error {
	return b.store.Close()
}

// loadBackend loads config, then opens the backend it describes.
func loadBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return openBackend(ctx, cfg)
}

// openBackend loads the reference dataset and opens the overlay store.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	refs, err := loadReferences(cfg)
	if err != nil {
		return nil, err
	}

	s, err := openStore(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &backend{
		cfg:   cfg,
		refs:  refs,
		store: s,
		svc:   states.NewService(refs, store.NewOverlays(s), nil),
	}, nil
}

// loadReferences reads the configured dataset, or the embedded one.
func loadReferences(cfg *config.Config) (*reference.Store, error) {
	if cfg.Reference.Path == "" {
		return reference.Load()
	}
	refs, err := reference.LoadFile(cfg.Reference.Path)
	if err != nil {
		return nil, fmt.Errorf("load reference dataset: %w", err)
	}
	return refs, nil
}

// openStore opens the configured overlay store. SQLite opens are retried
// with exponential backoff, since a locked or briefly unavailable file
// should not fail startup outright.
func openStore(ctx context.Context, dbCfg config.DatabaseConfig) (store.Store, error) {
	if dbCfg.Driver == config.DriverMemory {
		return store.NewMemoryStore(), nil
	}

	var db *store.SQLiteStore
	backoff := retry.WithMaxRetries(openAttempts-1, retry.NewExponential(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		s, err := store.NewSQLiteStore(dbCfg.Path)
		if err != nil {
			slog.Warn("open store failed", "path", dbCfg.Path, "error", err)
			return retry.RetryableError(err)
		}
		db = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}

// newLogger builds the process logger from config.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
