package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/extension-portal/internal/metrics"
)

// Reloader re-reads the portal dataset
type Reloader interface {
	Reload(ctx context.Context) error
}

// Refresher periodically reloads the dataset so edits to the fixtures or the
// database show up without a restart
type Refresher struct {
	reloader Reloader
	interval time.Duration
}

// NewRefresher creates a new refresh worker
func NewRefresher(reloader Reloader, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Refresher{
		reloader: reloader,
		interval: interval,
	}
}

// Start begins the refresh worker in a goroutine. The returned channel is
// closed once the worker has stopped.
func (r *Refresher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.run(ctx)
	}()
	return done
}

// run is the main loop for the refresh worker
func (r *Refresher) run(ctx context.Context) {
	slog.Info("refresh worker started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh worker stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh reloads once. A failed reload keeps serving the previous dataset.
func (r *Refresher) refresh(ctx context.Context) {
	slog.Debug("running refresh cycle")

	start := time.Now()
	if err := r.reloader.Reload(ctx); err != nil {
		metrics.Reloads.WithLabelValues("error").Inc()
		slog.Error("failed to reload dataset", "error", err)
		return
	}

	metrics.Reloads.WithLabelValues("ok").Inc()
	slog.Debug("dataset reloaded", "duration", time.Since(start))
}
