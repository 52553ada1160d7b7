package weekly

import (
	"context"
	"log/slog"

	"github.com/rezkam/weekly/internal/document"
	"github.com/rezkam/weekly/internal/domain"
)

// TeamSummaryResult reports what AppendTeamSummary wrote.
type TeamSummaryResult struct {
	DocumentID string `json:"documentId"`
	Members    int    `json:"members"`
}

// AppendTeamSummary appends the team status overview and risk warnings to
// the bottom of the current period's document. Members whose tasks cannot
// be fetched are left out.
func (s *Service) AppendTeamSummary(ctx context.Context) (res TeamSummaryResult, err error) {
	ctx, span := tracer.Start(ctx, "weekly.AppendTeamSummary")
	defer func() { endSpan(span, err) }()

	key := s.ledger.PeriodKey()
	docID, found, err := s.docs.FindDocument(ctx, key)
	if err != nil {
		return TeamSummaryResult{}, err
	}
	if !found {
		return TeamSummaryResult{}, domain.NotFoundError{Resource: "weekly document", Key: key}
	}

	entries := make([]document.MemberTasks, 0, len(s.roster))
	for _, m := range s.roster {
		set, err := s.FetchTasks(ctx, m.Name)
		if err != nil {
			slog.WarnContext(ctx, "member left out of team summary", "member", m.ID, "error", err)
			continue
		}
		entries = append(entries, document.MemberTasks{Member: m.Name, Tasks: set.All()})
	}

	if err := s.docs.AppendToEnd(ctx, docID, document.TeamSummary(entries)); err != nil {
		return TeamSummaryResult{}, err
	}
	return TeamSummaryResult{DocumentID: docID, Members: len(entries)}, nil
}
