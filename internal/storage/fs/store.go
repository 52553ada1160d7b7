// Package fs stores the ledger record as a JSON file.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rezkam/weekly/internal/domain"
)

// DefaultFileName is the ledger file name inside the data directory.
const DefaultFileName = "submissions.json"

// Repository is a filesystem-backed ledger repository.
type Repository struct {
	path string
	mu   sync.RWMutex
}

// NewRepository creates a repository writing to path. The parent directory is
// created if missing.
func NewRepository(path string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return &Repository{path: path}, nil
}

// Load reads the ledger file. A missing file means no record.
func (r *Repository) Load(ctx context.Context) (*domain.LedgerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var rec domain.LedgerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger: %w", err)
	}
	return rec.Clone(), nil
}

// Save writes the record to a temporary file and renames it over the ledger
// file, so readers never observe a half-written record.
func (r *Repository) Save(ctx context.Context, record *domain.LedgerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
