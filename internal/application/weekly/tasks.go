package weekly

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/tasks"
)

// FetchTasks returns member's classified tasks.
//
// Every page of the query is accumulated before classification. Contents are
// fetched concurrently; a task whose content fetch fails keeps no subtasks
// and the batch continues. The result keeps query order.
func (s *Service) FetchTasks(ctx context.Context, member string) (set domain.TaskSet, err error) {
	ctx, span := tracer.Start(ctx, "weekly.FetchTasks", trace.WithAttributes(attribute.String("member", member)))
	defer func() { endSpan(span, err) }()

	member = strings.TrimSpace(member)
	if member == "" {
		return domain.TaskSet{}, domain.ValidationError{Field: "member", Issue: "required"}
	}

	matched, err := s.queryAll(ctx, member)
	if err != nil {
		return domain.TaskSet{}, err
	}

	contents := make([][]domain.RawLine, len(matched))
	var g errgroup.Group
	g.SetLimit(s.fetchConcurrency)
	for i, raw := range matched {
		g.Go(func() error {
			lines, err := s.source.FetchContent(ctx, raw.ID)
			if err != nil {
				slog.WarnContext(ctx, "task content unavailable",
					"task_id", raw.ID,
					"member", member,
					"error", err)
				s.metrics.degraded.Add(ctx, 1)
				return nil
			}
			contents[i] = lines
			return nil
		})
	}
	_ = g.Wait()

	now := s.clock.Now()
	enriched := make([]domain.Task, 0, len(matched))
	for i, raw := range matched {
		t, ok := tasks.Enrich(raw, member, tasks.NormalizeLines(contents[i]), now)
		if !ok {
			slog.DebugContext(ctx, "task with unknown status skipped", "task_id", raw.ID, "status", raw.Status)
			continue
		}
		enriched = append(enriched, t)
	}

	set = tasks.Classify(enriched, now)
	span.SetAttributes(
		attribute.Int("tasks.current", len(set.Current)),
		attribute.Int("tasks.recently_done", len(set.RecentlyDone)))
	return set, nil
}

// queryAll pages through the task source and keeps the tasks assigned to member.
func (s *Service) queryAll(ctx context.Context, member string) ([]domain.RawTask, error) {
	var (
		matched []domain.RawTask
		cursor  string
	)
	for {
		page, err := s.source.QueryTasks(ctx, domain.ReportableStatuses, cursor)
		if err != nil {
			return nil, domain.ExternalCallError{Op: "query tasks", Member: member, Err: err}
		}
		for _, raw := range page.Tasks {
			if tasks.MatchesMember(raw.Assignees, member) {
				matched = append(matched, raw)
			}
		}
		if !page.HasMore || page.NextCursor == "" {
			return matched, nil
		}
		cursor = page.NextCursor
	}
}
