package weekly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/report"
)

const promptTemplate = `You are editing the weekly report of team member %s.
Rewrite the task and subtask wording below so it reads naturally.
Keep every "###" heading, item label, progress bar, percentage and ✅ marker exactly as written.
Reply with the report only.

%s`

// Draft is a generated report.
type Draft struct {
	Report string `json:"report"`
	// Fallback is true when the report came from the deterministic renderer.
	Fallback bool `json:"fallback"`
}

// Prompt wraps a rendered draft in the fixed rewrite instruction.
func Prompt(member, draft string) string {
	return fmt.Sprintf(promptTemplate, member, draft)
}

// GenerateReport renders the report for a classified task set. When a
// rewriter is configured the draft is rewritten; a rewrite error or an empty
// reply falls back to the draft.
func (s *Service) GenerateReport(ctx context.Context, member string, set domain.TaskSet) (draft Draft, err error) {
	ctx, span := tracer.Start(ctx, "weekly.GenerateReport", trace.WithAttributes(attribute.String("member", member)))
	defer func() {
		span.SetAttributes(attribute.Bool("report.fallback", draft.Fallback))
		endSpan(span, err)
	}()

	if strings.TrimSpace(member) == "" {
		return Draft{}, domain.ValidationError{Field: "member", Issue: "required"}
	}

	rendered := report.Fallback(set)
	if s.rewriter == nil {
		return Draft{Report: rendered, Fallback: true}, nil
	}

	text, rerr := s.rewriter.Rewrite(ctx, Prompt(member, rendered))
	if rerr == nil && strings.TrimSpace(text) == "" {
		rerr = errors.New("empty rewrite")
	}
	if rerr != nil {
		slog.WarnContext(ctx, "report rewrite failed, using rendered draft", "member", member, "error", rerr)
		s.metrics.fallbacks.Add(ctx, 1)
		return Draft{Report: rendered, Fallback: true}, nil
	}
	return Draft{Report: strings.TrimRight(text, "\n") + "\n"}, nil
}
