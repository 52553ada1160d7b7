package postgres

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/weekly/internal/domain"
)

// Load reads the ledger record and its member rows in one snapshot.
func (s *Store) Load(ctx context.Context) (*domain.LedgerRecord, error) {
	var rec *domain.LedgerRecord

	err := s.executeInTransaction(ctx, "load_ledger", func(tx pgx.Tx) error {
		var (
			periodKey  time.Time
			documentID string
		)
		err := tx.QueryRow(ctx,
			`SELECT period_key, document_id FROM ledger_period WHERE id = 1`,
		).Scan(&periodKey, &documentID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read ledger period: %w", err)
		}

		rec = domain.NewLedgerRecord(periodKey.Format(domain.PeriodKeyLayout))
		rec.DocumentID = documentID

		rows, err := tx.Query(ctx,
			`SELECT member_id, submitted, submitted_at, on_leave FROM ledger_member ORDER BY member_id`)
		if err != nil {
			return fmt.Errorf("failed to read ledger members: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				member      string
				submitted   *bool
				submittedAt *time.Time
				onLeave     *bool
			)
			if err := rows.Scan(&member, &submitted, &submittedAt, &onLeave); err != nil {
				return fmt.Errorf("failed to scan ledger member: %w", err)
			}
			if submitted != nil {
				entry := domain.Submission{Submitted: *submitted}
				if submittedAt != nil {
					entry.SubmittedAt = submittedAt.UTC()
				}
				rec.Submissions[member] = entry
			}
			if onLeave != nil {
				rec.Leaves[member] = *onLeave
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Save replaces the stored record wholesale.
func (s *Store) Save(ctx context.Context, record *domain.LedgerRecord) error {
	periodKey, err := time.Parse(domain.PeriodKeyLayout, record.PeriodKey)
	if err != nil {
		return fmt.Errorf("invalid period key %q: %w", record.PeriodKey, err)
	}

	return s.executeInTransaction(ctx, "save_ledger", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO ledger_period (id, period_key, document_id, updated_at)
			VALUES (1, $1, $2, NOW())
			ON CONFLICT (id) DO UPDATE SET
				period_key = EXCLUDED.period_key,
				document_id = EXCLUDED.document_id,
				updated_at = EXCLUDED.updated_at`,
			periodKey, record.DocumentID)
		if err != nil {
			return fmt.Errorf("failed to write ledger period: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM ledger_member`); err != nil {
			return fmt.Errorf("failed to clear ledger members: %w", err)
		}

		batch := &pgx.Batch{}
		for _, member := range memberIDs(record) {
			var (
				submitted   *bool
				submittedAt *time.Time
				onLeave     *bool
			)
			if sub, ok := record.Submissions[member]; ok {
				submitted = &sub.Submitted
				if !sub.SubmittedAt.IsZero() {
					at := sub.SubmittedAt.UTC()
					submittedAt = &at
				}
			}
			if leave, ok := record.Leaves[member]; ok {
				onLeave = &leave
			}
			batch.Queue(
				`INSERT INTO ledger_member (member_id, submitted, submitted_at, on_leave) VALUES ($1, $2, $3, $4)`,
				member, submitted, submittedAt, onLeave)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to write ledger members: %w", err)
		}
		return nil
	})
}

// memberIDs returns every member present in either map, sorted.
func memberIDs(record *domain.LedgerRecord) []string {
	seen := make(map[string]struct{}, len(record.Submissions)+len(record.Leaves))
	for id := range record.Submissions {
		seen[id] = struct{}{}
	}
	for id := range record.Leaves {
		seen[id] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
