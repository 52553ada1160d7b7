// Package ledger tracks per-period submission and leave state.
//
// Read-modify-write cycles are serialized within one process only. Two
// processes sharing a backend can both observe "not yet submitted" before
// either saves, so the duplicate-submit guard is best effort.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rezkam/weekly/internal/clock"
	"github.com/rezkam/weekly/internal/domain"
)

// Service is the submission ledger bound to a repository and a clock.
type Service struct {
	repo  Repository
	clock clock.Clock
	mu    sync.Mutex
}

// NewService creates a ledger service.
func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// PeriodKey returns the key of the current period.
func (s *Service) PeriodKey() string {
	return domain.PeriodKey(s.clock.Now())
}

// Snapshot returns a copy of the current period's record. A missing or stale
// stored record reads as an empty record for the current period; the stored
// record is not modified.
func (s *Service) Snapshot(ctx context.Context) (*domain.LedgerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

// EnsureNotSubmitted fails with ConflictError when member has already submitted
// in the current period.
func (s *Service) EnsureNotSubmitted(ctx context.Context, member string) error {
	if member == "" {
		return domain.ValidationError{Field: "member", Issue: "required"}
	}
	rec, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if rec.IsSubmitted(member) {
		return domain.ConflictError{Member: member, Reason: "already submitted this week"}
	}
	return nil
}

// MarkSubmitted records member's submission. Submissions are write-once: a
// second attempt returns ConflictError and leaves the stored entry as it was.
// docID, when set, is remembered as the period's document.
func (s *Service) MarkSubmitted(ctx context.Context, member, docID string) (domain.Submission, error) {
	if member == "" {
		return domain.Submission{}, domain.ValidationError{Field: "member", Issue: "required"}
	}

	var entry domain.Submission
	err := s.update(ctx, member, func(rec *domain.LedgerRecord, now time.Time) error {
		if rec.IsSubmitted(member) {
			return domain.ConflictError{Member: member, Reason: "already submitted this week"}
		}
		entry = domain.Submission{Submitted: true, SubmittedAt: now}
		rec.Submissions[member] = entry
		if docID != "" {
			rec.DocumentID = docID
		}
		return nil
	})
	if err != nil {
		return domain.Submission{}, err
	}

	slog.InfoContext(ctx, "submission recorded", "member", member, "at", entry.SubmittedAt)
	return entry, nil
}

// SetLeave toggles member's leave flag. A member who already submitted
// cannot be put on leave. Persistence failures are returned to the caller.
func (s *Service) SetLeave(ctx context.Context, member string, onLeave bool) error {
	if member == "" {
		return domain.ValidationError{Field: "memberId", Issue: "required"}
	}

	return s.update(ctx, member, func(rec *domain.LedgerRecord, _ time.Time) error {
		if onLeave && rec.IsSubmitted(member) {
			return domain.ConflictError{Member: member, Reason: "already submitted, cannot be marked on leave"}
		}
		rec.Leaves[member] = onLeave
		return nil
	})
}

// SetDocumentID remembers the current period's document ID.
func (s *Service) SetDocumentID(ctx context.Context, docID string) error {
	return s.update(ctx, "", func(rec *domain.LedgerRecord, _ time.Time) error {
		rec.DocumentID = docID
		return nil
	})
}

// Statuses joins the roster with the current period's record, in roster order.
func (s *Service) Statuses(ctx context.Context, roster []domain.Member) ([]domain.MemberStatus, error) {
	rec, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MemberStatus, 0, len(roster))
	for _, m := range roster {
		st := domain.MemberStatus{ID: m.ID, Name: m.Name, OnLeave: rec.OnLeave(m.ID)}
		if sub, ok := rec.Submissions[m.ID]; ok && sub.Submitted {
			at := sub.SubmittedAt
			st.Submitted = true
			st.SubmittedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// update runs one read-modify-write cycle under the service mutex.
// mutate sees a private copy; nothing is saved when it returns an error.
func (s *Service) update(ctx context.Context, member string, mutate func(*domain.LedgerRecord, time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.current(ctx)
	if err != nil {
		return err
	}
	if err := mutate(rec, s.clock.Now()); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return domain.ExternalCallError{Op: "save ledger", Member: member, Err: err}
	}
	return nil
}

// current must be called with s.mu held.
func (s *Service) current(ctx context.Context) (*domain.LedgerRecord, error) {
	key := s.PeriodKey()

	stored, err := s.repo.Load(ctx)
	if err != nil {
		return nil, domain.ExternalCallError{Op: "load ledger", Err: err}
	}
	if stored == nil || stored.PeriodKey != key {
		if stored != nil {
			slog.DebugContext(ctx, "stale ledger record ignored", "stored", stored.PeriodKey, "current", key)
		}
		return domain.NewLedgerRecord(key), nil
	}
	return stored.Clone(), nil
}
