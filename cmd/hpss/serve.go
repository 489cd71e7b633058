package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/internal/config"
	"github.com/jcalabro/hpss/internal/httpapi"
	"github.com/jcalabro/hpss/internal/metrics"
	"github.com/jcalabro/hpss/store"
	"github.com/jcalabro/hpss/universe"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation service",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfg config.Config
	var watcher *config.Watcher
	if configPath != "" {
		var err error
		watcher, cfg, err = config.Watch(configPath, func(reloaded config.Config, err error) {
			if err != nil {
				logger.Error("config reload failed, keeping previous configuration", "error", err)
				return
			}
			logger.Info("configuration reloaded", "path", configPath)
		})
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		defer watcher.Close()
	} else {
		cfg = config.Default()
	}

	u, closeUniverse, err := buildUniverse(cmd.Context(), cfg.Universe)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if closeUniverse != nil {
		defer closeUniverse()
	}

	st, closeStore, err := buildStore(cmd.Context(), cfg.Store)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	api := httpapi.New(u, st, m, cfg.Generation, cfg.Verify)

	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting hpss server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownGraceS)*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

func buildUniverse(ctx context.Context, cfg config.UniverseConfig) (hpss.Universe, func(), error) {
	switch cfg.Backend {
	case "sql":
		sqlUniverse, err := universe.OpenSQL(ctx, cfg.Driver, cfg.DSN,
			universe.WithTable(cfg.Table),
			universe.WithColumns(cfg.IDColumn, cfg.StratumColumn),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open sql universe: %w", err)
		}
		return sqlUniverse, func() { sqlUniverse.Close() }, nil
	default:
		return universe.NewMemorySequential(cfg.MemorySize), nil, nil
	}
}

func buildStore(ctx context.Context, cfg config.StoreConfig) (store.SetStore, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		sqliteStore, err := store.OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return sqliteStore, func() { sqliteStore.Close() }, nil
	default:
		return store.NewMemory(), nil, nil
	}
}
