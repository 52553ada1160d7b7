// Package memory keeps the ledger record in process memory. State does not
// survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/rezkam/weekly/internal/domain"
)

// Repository is an in-process ledger repository.
type Repository struct {
	mu     sync.RWMutex
	record *domain.LedgerRecord
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Load returns a copy of the stored record, or nil.
func (r *Repository) Load(_ context.Context) (*domain.LedgerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.record.Clone(), nil
}

// Save replaces the stored record with a copy of record.
func (r *Repository) Save(_ context.Context, record *domain.LedgerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record = record.Clone()
	return nil
}
