package weekly

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rezkam/weekly/internal/document"
	"github.com/rezkam/weekly/internal/domain"
)

// SetLeave flags or clears a member's leave for the current period.
func (s *Service) SetLeave(ctx context.Context, memberID string, onLeave bool) (err error) {
	ctx, span := tracer.Start(ctx, "weekly.SetLeave", trace.WithAttributes(
		attribute.String("member", memberID),
		attribute.Bool("on_leave", onLeave)))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(memberID) == "" {
		return domain.ValidationError{Field: "memberId", Issue: "required"}
	}
	return s.ledger.SetLeave(ctx, memberID, onLeave)
}

// LeaveSync reports the outcome of SyncLeave.
type LeaveSync struct {
	DocumentID string `json:"documentId,omitempty"`
	Created    bool   `json:"created"`
	Updated    int    `json:"updated"`
}

// SyncLeave writes the on-leave placeholder into the regions of the given
// members. When the period document does not exist yet it is created with
// those members already marked on leave. A failure on one region is logged
// and the others are still attempted. Unknown member IDs and members who
// already submitted this period are skipped and not counted.
func (s *Service) SyncLeave(ctx context.Context, memberIDs []string) (res LeaveSync, err error) {
	ctx, span := tracer.Start(ctx, "weekly.SyncLeave", trace.WithAttributes(attribute.Int("members", len(memberIDs))))
	defer func() { endSpan(span, err) }()

	if len(memberIDs) == 0 {
		return LeaveSync{}, nil
	}

	rec, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return LeaveSync{}, err
	}

	var known []domain.Member
	for _, id := range memberIDs {
		m, ok := s.member(id)
		switch {
		case !ok:
			slog.WarnContext(ctx, "leave sync skipped unknown member", "member", id)
			continue
		case rec.IsSubmitted(id):
			slog.WarnContext(ctx, "leave sync skipped submitted member", "member", id)
			continue
		}
		known = append(known, m)
	}

	key := rec.PeriodKey
	docID, found, err := s.docs.FindDocument(ctx, key)
	if err != nil {
		return LeaveSync{}, err
	}

	if !found {
		onLeave := func(id string) bool {
			return slices.ContainsFunc(known, func(m domain.Member) bool { return m.ID == id })
		}
		docID, _, err = s.docs.EnsureDocument(ctx, key, s.slots(onLeave))
		if err != nil {
			return LeaveSync{}, err
		}
		if err := s.ledger.SetDocumentID(ctx, docID); err != nil {
			slog.WarnContext(ctx, "document id not recorded", "doc_id", docID, "error", err)
		}
		return LeaveSync{DocumentID: docID, Created: true, Updated: len(known)}, nil
	}

	placeholder := []domain.Block{domain.Paragraph(document.LeavePlaceholder)}
	updated := 0
	for _, m := range known {
		if err := s.docs.ReplaceRegion(ctx, docID, m.Name, placeholder); err != nil {
			slog.WarnContext(ctx, "leave placeholder not written", "member", m.ID, "error", err)
			continue
		}
		updated++
	}
	return LeaveSync{DocumentID: docID, Updated: updated}, nil
}
