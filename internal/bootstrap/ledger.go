// Package bootstrap builds the weekly service and its adapters from
// configuration. The server, the worker and weeklyctl share it.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/rezkam/weekly/internal/application/ledger"
	"github.com/rezkam/weekly/internal/config"
	"github.com/rezkam/weekly/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/weekly/internal/storage/fs"
	"github.com/rezkam/weekly/internal/storage/gcs"
	"github.com/rezkam/weekly/internal/storage/memory"
	"github.com/rezkam/weekly/internal/storage/sqlite"
)

// OpenLedger opens the configured ledger repository. The closer releases the
// backend's resources and is never nil.
func OpenLedger(ctx context.Context, cfg config.LedgerConfig) (ledger.Repository, io.Closer, error) {
	switch backend := cfg.BackendName(); backend {
	case config.LedgerMemory:
		return memory.NewRepository(), nopCloser{}, nil

	case config.LedgerFile:
		path := cfg.FilePath
		if path == "" {
			path = config.DefaultLedgerFile
		}
		repo, err := fs.NewRepository(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open ledger file: %w", err)
		}
		slog.InfoContext(ctx, "ledger initialized", "backend", backend, "path", path)
		return repo, nopCloser{}, nil

	case config.LedgerSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = config.DefaultLedgerSQLite
		}
		repo, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open ledger database: %w", err)
		}
		slog.InfoContext(ctx, "ledger initialized", "backend", backend, "path", path)
		return repo, repo, nil

	case config.LedgerPostgres:
		store, err := postgres.OpenStore(ctx, postgres.PoolConfig{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxOpenConns,
			MinConns:        cfg.Database.MaxIdleConns,
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create store: %w", err)
		}
		slog.InfoContext(ctx, "ledger initialized", "backend", backend, "url", MaskPassword(cfg.Database.DSN))
		return store, store, nil

	case config.LedgerGCS:
		repo, err := gcs.NewRepository(ctx, cfg.GCSBucket, cfg.GCSObject)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open ledger bucket: %w", err)
		}
		slog.InfoContext(ctx, "ledger initialized", "backend", backend, "bucket", cfg.GCSBucket)
		return repo, repo, nil

	default:
		return nil, nil, fmt.Errorf("unknown ledger backend: %s", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// MaskPassword masks the password in a connection string for logging.
func MaskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		// If parsing fails, fall back to full redaction to be safe
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
