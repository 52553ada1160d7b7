package document

import (
	"context"
	"log/slog"

	"github.com/rezkam/weekly/internal/domain"
)

// Synchronizer replaces member regions of the shared weekly document.
type Synchronizer struct {
	store Store
}

// NewSynchronizer creates a synchronizer backed by store.
func NewSynchronizer(store Store) *Synchronizer {
	return &Synchronizer{store: store}
}

// ReplaceRegion swaps the content under the heading labeled label for fragment.
//
// The heading must exist; otherwise a NotFoundError is returned and nothing is
// touched. Nodes are deleted one call at a time. If a deletion fails the
// region is left partially cleared and a PartialDeleteError is returned
// without retrying. On success fragment is inserted right after the heading,
// followed by one empty paragraph spacer.
func (s *Synchronizer) ReplaceRegion(ctx context.Context, docID, label string, fragment []domain.Block) error {
	nodes, err := s.store.ListTopLevelNodes(ctx, docID)
	if err != nil {
		return domain.ExternalCallError{Op: "list document nodes", Member: label, Err: err}
	}

	region, ok := BuildRegions(nodes)[label]
	if !ok {
		return domain.NotFoundError{Resource: "member region", Key: label}
	}

	stale := nodes[region.Start:region.EndExclusive]
	for i, n := range stale {
		if err := s.store.DeleteNode(ctx, n.ID); err != nil {
			slog.WarnContext(ctx, "region partially cleared",
				"doc_id", docID,
				"label", label,
				"removed", i,
				"remaining", len(stale)-i,
				"error", err)
			return domain.PartialDeleteError{Label: label, Removed: i, Remaining: len(stale) - i, Err: err}
		}
	}

	blocks := make([]domain.Block, 0, len(fragment)+1)
	blocks = append(blocks, fragment...)
	blocks = append(blocks, domain.Paragraph(""))

	if err := s.store.AppendNodes(ctx, docID, region.AnchorID, blocks); err != nil {
		return domain.ExternalCallError{Op: "append region content", Member: label, Err: err}
	}

	slog.DebugContext(ctx, "region replaced",
		"doc_id", docID,
		"label", label,
		"removed", len(stale),
		"inserted", len(blocks))
	return nil
}

// FindDocument returns the ID of the document titled periodKey.
// Lookup is a linear scan over every document's title.
func (s *Synchronizer) FindDocument(ctx context.Context, periodKey string) (string, bool, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return "", false, domain.ExternalCallError{Op: "list documents", Err: err}
	}
	for _, d := range docs {
		if d.Title == periodKey {
			return d.ID, true, nil
		}
	}
	return "", false, nil
}

// EnsureDocument returns the period's document, creating it from slots when
// it does not exist yet. created reports whether a new document was made.
func (s *Synchronizer) EnsureDocument(ctx context.Context, periodKey string, slots []Slot) (id string, created bool, err error) {
	id, found, err := s.FindDocument(ctx, periodKey)
	if err != nil {
		return "", false, err
	}
	if found {
		return id, false, nil
	}

	id, err = s.store.CreateDocument(ctx, periodKey, InitialPage(slots))
	if err != nil {
		return "", false, domain.ExternalCallError{Op: "create document", Err: err}
	}
	slog.InfoContext(ctx, "weekly document created", "period", periodKey, "doc_id", id, "members", len(slots))
	return id, true, nil
}

// AppendToEnd adds blocks at the bottom of the document.
func (s *Synchronizer) AppendToEnd(ctx context.Context, docID string, blocks []domain.Block) error {
	if err := s.store.AppendNodes(ctx, docID, "", blocks); err != nil {
		return domain.ExternalCallError{Op: "append document content", Err: err}
	}
	return nil
}

// Placeholder returns the single-line region content for a member with no report.
func Placeholder(onLeave bool) string {
	if onLeave {
		return LeavePlaceholder
	}
	return PendingPlaceholder
}
