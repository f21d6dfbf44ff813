package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/statefacts/internal/api"
	"github.com/hyperengineering/statefacts/internal/config"
	"github.com/hyperengineering/statefacts/internal/store"
	"github.com/hyperengineering/statefacts/internal/worker"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "statefacts",
	Short:        "statefacts - US state reference data with user-contributed fun facts",
	Version:      Version,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(statesCmd)
}

func run(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 3. Initialize logger
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))
	slog.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	// 3a. Reference data and store (migrations, WAL mode)
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Info("reference data loaded", "states", b.refs.Len())
	slog.Info("store initialized", "driver", cfg.Database.Driver, "path", cfg.Database.Path)

	// 4. Initialize HTTP router
	handler := api.NewHandler(b.svc, Version)
	router := api.NewRouter(handler,
		cfg.Limits.MutationBurst,
		time.Duration(cfg.Limits.MutationRefill))
	slog.Info("router initialized")

	// 5. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 6. Background workers
	var wg sync.WaitGroup
	if sq, ok := b.store.(*store.SQLiteStore); ok && cfg.Database.MaintenanceInterval > 0 {
		maintenance := worker.NewMaintenanceWorker(sq, time.Duration(cfg.Database.MaintenanceInterval))
		startWorker(ctx, &wg, "store-maintenance", maintenance.Run)
	}

	// 7. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called gracefully.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel() // Trigger shutdown on server failure
		}
	}()

	// 8. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 9. Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	// 9a. Stop HTTP server (drains in-flight requests)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// 9b. Wait for workers to complete
	wg.Wait()

	// 9c. Close store
	if err := b.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// startWorker launches a background worker goroutine that respects context cancellation.
// Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
