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

	"github.com/rezkam/weekly/internal/bootstrap"
	"github.com/rezkam/weekly/internal/config"
	httpserver "github.com/rezkam/weekly/internal/infrastructure/http"
	"github.com/rezkam/weekly/internal/infrastructure/http/handler"
	"github.com/rezkam/weekly/internal/infrastructure/observability"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	telemetryFlushTimeout  = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		// slog might not be initialized if config fails
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	// Root context, cancelled on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration via OTEL_* env vars (endpoint, headers, resource attributes)
	providers, _, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := providers.Shutdown(telemetryFlushTimeout); err != nil {
			slog.Error("failed to shutdown telemetry providers", "error", err)
		}
	}()

	slog.InfoContext(ctx, "starting weekly service")

	app, err := bootstrap.NewWeekly(ctx, bootstrap.Settings{
		Notion:  cfg.Notion,
		Rewrite: &cfg.Rewrite,
		Ledger:  cfg.Ledger,
		Roster:  cfg.Roster,
		Time:    cfg.Time,
	})
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	if cfg.AdminToken == "" {
		slog.WarnContext(ctx, "WEEKLY_ADMIN_TOKEN is not set, admin routes are unauthenticated")
	}

	api, err := handler.NewOpenAPIRouter(app.Service, cfg.AdminToken)
	if err != nil {
		return err
	}

	server := httpserver.NewAPIServer(api, httpserver.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		shutdownCtx, cancel := newShutdownContext(cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown timed out", "error", err)
		}
		return nil
	case err := <-errResult:
		return err
	}
}

// newShutdownContext creates a fresh context with timeout for graceful shutdown operations.
// Uses Background() since the main context is already cancelled at shutdown time.
func newShutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}
