package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/weekly/internal/application/worker"
	"github.com/rezkam/weekly/internal/bootstrap"
	"github.com/rezkam/weekly/internal/config"
	"github.com/rezkam/weekly/internal/infrastructure/observability"
)

const telemetryFlushTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serviceName := cfg.Observability.ServiceName
	if serviceName == "" {
		serviceName = observability.DefaultServiceName + "-worker"
	}
	providers, _, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := providers.Shutdown(telemetryFlushTimeout); err != nil {
			slog.Error("failed to shutdown telemetry providers", "error", err)
		}
	}()

	app, err := bootstrap.NewWeekly(ctx, bootstrap.Settings{
		Notion: cfg.Notion,
		Ledger: cfg.Ledger,
		Roster: cfg.Roster,
		Time:   cfg.Time,
	})
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	w := worker.New(app.Service,
		worker.WithInterval(cfg.Interval),
		worker.WithOperationTimeout(cfg.OperationTimeout),
	)

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	slog.Info("page provisioner shut down gracefully")
	return nil
}
