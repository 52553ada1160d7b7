// Package worker keeps the current period's shared document provisioned so
// members find their regions in place before they submit.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PageProvisioner creates the current period's document when it is missing.
type PageProvisioner interface {
	EnsurePage(ctx context.Context) (docID string, created bool, err error)
}

// Worker runs the provisioner on a ticker.
type Worker struct {
	provisioner      PageProvisioner
	interval         time.Duration
	operationTimeout time.Duration // Timeout for one provisioning cycle
	wg               sync.WaitGroup
}

// Option is a functional option for configuring Worker.
type Option func(*Worker)

// WithInterval sets how often the worker checks the current period.
// Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithOperationTimeout sets the timeout for one provisioning cycle.
// Non-positive values keep the default.
func WithOperationTimeout(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.operationTimeout = d
		}
	}
}

// New creates a new Worker with the given provisioner and options.
func New(provisioner PageProvisioner, opts ...Option) *Worker {
	w := &Worker{
		provisioner:      provisioner,
		interval:         1 * time.Hour,
		operationTimeout: 2 * time.Minute,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start runs one cycle immediately and then one per interval until ctx is
// cancelled. On shutdown it waits for the in-flight cycle and returns nil.
func (w *Worker) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "page provisioner started", "interval", w.interval)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), w.operationTimeout)
	if err := w.RunOnce(startupCtx); err != nil {
		slog.ErrorContext(startupCtx, "provisioning on startup failed", "error", err)
	}
	startupCancel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.wg.Go(func() {
				opCtx, cancel := context.WithTimeout(context.Background(), w.operationTimeout)
				defer cancel()
				if err := w.RunOnce(opCtx); err != nil {
					slog.ErrorContext(opCtx, "provisioning failed", "error", err)
				}
			})
		case <-ctx.Done():
			slog.InfoContext(ctx, "shutdown requested, waiting for in-flight provisioning")
			w.wg.Wait()
			slog.InfoContext(ctx, "page provisioner stopped")
			return nil
		}
	}
}

// RunOnce executes a single provisioning cycle.
func (w *Worker) RunOnce(ctx context.Context) error {
	docID, created, err := w.provisioner.EnsurePage(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure weekly document: %w", err)
	}
	if created {
		slog.InfoContext(ctx, "weekly document provisioned", "doc_id", docID)
	} else {
		slog.DebugContext(ctx, "weekly document already present", "doc_id", docID)
	}
	return nil
}
