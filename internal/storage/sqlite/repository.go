// Package sqlite stores the ledger record in a single-row SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rezkam/weekly/internal/domain"
)

const driverName = "sqlite"

// Repository is a SQLite-backed ledger repository.
type Repository struct {
	db *sql.DB
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return newRepository(db)
}

// OpenInMemory opens a private in-memory database.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	return newRepository(db)
}

func newRepository(db *sql.DB) (*Repository, error) {
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ledger (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			period_key TEXT NOT NULL,
			document_id TEXT NOT NULL DEFAULT '',
			submissions_json TEXT NOT NULL DEFAULT '{}',
			leaves_json TEXT NOT NULL DEFAULT '{}',
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Load returns the stored record, or nil when the table is empty.
func (r *Repository) Load(ctx context.Context) (*domain.LedgerRecord, error) {
	var (
		rec                 domain.LedgerRecord
		submissions, leaves string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT period_key, document_id, submissions_json, leaves_json FROM ledger WHERE id = 1`,
	).Scan(&rec.PeriodKey, &rec.DocumentID, &submissions, &leaves)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	if err := json.Unmarshal([]byte(submissions), &rec.Submissions); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	if err := json.Unmarshal([]byte(leaves), &rec.Leaves); err != nil {
		return nil, fmt.Errorf("decode leaves: %w", err)
	}
	return rec.Clone(), nil
}

// Save upserts the single ledger row.
func (r *Repository) Save(ctx context.Context, record *domain.LedgerRecord) error {
	rec := record.Clone()
	submissions, err := json.Marshal(rec.Submissions)
	if err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}
	leaves, err := json.Marshal(rec.Leaves)
	if err != nil {
		return fmt.Errorf("encode leaves: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ledger (id, period_key, document_id, submissions_json, leaves_json, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			period_key = excluded.period_key,
			document_id = excluded.document_id,
			submissions_json = excluded.submissions_json,
			leaves_json = excluded.leaves_json,
			updated_at = excluded.updated_at`,
		rec.PeriodKey, rec.DocumentID, string(submissions), string(leaves),
		time.Now().UTC().Format(time.RFC3339Nano), //nolint:wallclock // audit column
	)
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
