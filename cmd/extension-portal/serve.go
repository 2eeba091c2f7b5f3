package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/terra-clan/extension-portal/internal/api"
	"github.com/terra-clan/extension-portal/internal/cache"
	"github.com/terra-clan/extension-portal/internal/enrollment"
	"github.com/terra-clan/extension-portal/internal/health"
	"github.com/terra-clan/extension-portal/internal/refresh"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	cfg := a.cfg

	slog.Info("starting extension-portal",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database", cfg.Database.Enabled(),
		"redis", cfg.Redis.Enabled(),
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Query cache
	queryCache, err := a.openCache(initCtx)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer queryCache.Close()

	// Portal dataset
	svc, repo, err := a.loadPortal(initCtx, queryCache)
	if err != nil {
		return err
	}
	if repo != nil {
		defer repo.Close()
	}

	// Readiness checks
	registry := health.NewRegistry(2 * time.Second)
	registry.Register("dataset", svc)

	if cfg.Database.Enabled() {
		pg, err := health.NewPostgresChecker(initCtx, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to create postgres checker: %w", err)
		}
		defer pg.Close()
		registry.Register("postgres", pg)
	}
	if rc, ok := queryCache.(*cache.RedisCache); ok {
		registry.Register("redis", rc)
	}

	// Enrollment submissions
	opts := enrollment.Options{EnforceCapacity: cfg.Portal.EnforceCapacity}
	if repo != nil {
		opts.Recorder = repo
	}
	enrollments := enrollment.NewService(svc, opts)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start refresh worker
	var refreshed <-chan struct{}
	if cfg.Refresh.Interval > 0 {
		refreshed = refresh.NewRefresher(svc, cfg.Refresh.Interval).Start(ctx)
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cfg.Portal, svc, enrollments, registry)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal or a server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()
	if refreshed != nil {
		<-refreshed
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("extension-portal stopped")
	return nil
}
