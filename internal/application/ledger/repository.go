package ledger

import (
	"context"

	"github.com/rezkam/weekly/internal/domain"
)

// Repository persists the single ledger record.
// Backends have no compare-and-swap; Save overwrites the stored record wholesale.
type Repository interface {
	// Load returns the stored record, or nil when nothing has been saved yet.
	Load(ctx context.Context) (*domain.LedgerRecord, error)
	Save(ctx context.Context, record *domain.LedgerRecord) error
}
