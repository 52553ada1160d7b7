package weekly

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/report"
)

// SubmitRequest is a member's final report.
type SubmitRequest struct {
	MemberID  string
	Content   string
	ExtraInfo string
}

// SubmitResult describes a completed submission.
type SubmitResult struct {
	DocumentID  string    `json:"documentId"`
	Created     bool      `json:"created"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Submit writes the report into the member's region of the period document
// and records the submission.
//
// The duplicate check runs before any document mutation. The ledger entry is
// written only after the region was replaced.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (res SubmitResult, err error) {
	ctx, span := tracer.Start(ctx, "weekly.Submit", trace.WithAttributes(attribute.String("member", req.MemberID)))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(req.MemberID) == "" {
		return SubmitResult{}, domain.ValidationError{Field: "member", Issue: "required"}
	}
	if strings.TrimSpace(req.Content) == "" {
		return SubmitResult{}, domain.ValidationError{Field: "content", Issue: "required"}
	}

	// Multi-line text with no section heading parses to nothing.
	fragment := report.Parse(req.Content)
	if len(fragment) == 0 {
		return SubmitResult{}, domain.ValidationError{Field: "content", Issue: "no report sections found"}
	}
	fragment = append(fragment, report.Parse(report.WithInfoSync("", req.ExtraInfo))...)

	if err := s.ledger.EnsureNotSubmitted(ctx, req.MemberID); err != nil {
		return SubmitResult{}, err
	}

	label := s.label(req.MemberID)
	docID, created, err := s.EnsurePage(ctx)
	if err != nil {
		return SubmitResult{}, withMember(err, label)
	}

	if err := s.docs.ReplaceRegion(ctx, docID, label, fragment); err != nil {
		return SubmitResult{}, err
	}

	sub, err := s.ledger.MarkSubmitted(ctx, req.MemberID, docID)
	if err != nil {
		return SubmitResult{}, err
	}
	s.metrics.submissions.Add(ctx, 1)

	slog.InfoContext(ctx, "weekly report submitted",
		"member", req.MemberID,
		"doc_id", docID,
		"blocks", len(fragment))
	return SubmitResult{DocumentID: docID, Created: created, SubmittedAt: sub.SubmittedAt}, nil
}

// withMember attributes a document call failure to the submitting member.
func withMember(err error, label string) error {
	var ext domain.ExternalCallError
	if errors.As(err, &ext) && ext.Member == "" {
		ext.Member = label
		return ext
	}
	return err
}

// EnsurePage returns the current period's document, creating it when absent.
// A new document gets one region per roster member, with the leave flags
// currently in the ledger.
func (s *Service) EnsurePage(ctx context.Context) (docID string, created bool, err error) {
	rec, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return "", false, err
	}

	docID, created, err = s.docs.EnsureDocument(ctx, rec.PeriodKey, s.slots(rec.OnLeave))
	if err != nil {
		return "", false, err
	}
	if created || rec.DocumentID != docID {
		if err := s.ledger.SetDocumentID(ctx, docID); err != nil {
			slog.WarnContext(ctx, "document id not recorded", "doc_id", docID, "error", err)
		}
	}
	return docID, created, nil
}
