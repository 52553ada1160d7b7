// Package tasks turns raw task-source records into enriched, classified tasks.
package tasks

import (
	"math"
	"strings"
	"time"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/progress"
)

const day = 24 * time.Hour

// RecentlyDoneWindow bounds how far back a Done task's last edit may be to
// appear in the "completed" section.
const RecentlyDoneWindow = 7 * day

// UntitledTask is used when the source record has no title.
const UntitledTask = "Untitled task"

// Enrich builds a Task from a raw record and its normalized content lines.
// assignee is the member the task was matched for. ok is false when the raw
// status is not one of the reportable statuses.
func Enrich(raw domain.RawTask, assignee string, lines []string, now time.Time) (domain.Task, bool) {
	status, ok := domain.ParseTaskStatus(raw.Status)
	if !ok {
		return domain.Task{}, false
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = UntitledTask
	}

	t := domain.Task{
		ID:             raw.ID,
		Title:          title,
		Status:         status,
		Assignee:       assignee,
		Project:        raw.Project,
		LastModifiedAt: raw.LastModifiedAt,
		Subtasks:       lines,
		Start:          raw.Start,
		End:            raw.End,
	}
	if t.Subtasks == nil {
		t.Subtasks = []string{}
	}
	// A date with only a start is treated as a single-day task.
	if t.End == nil && t.Start != nil {
		t.End = t.Start
	}

	if t.End != nil && status != domain.TaskStatusDone {
		t.DaysRemaining = DaysUntil(*t.End, now)
		if t.DaysRemaining < 0 {
			t.IsOverdue = true
			t.DaysOverdue = -t.DaysRemaining
		}
	}
	t.TimeProgress = TimeProgress(t.Start, t.End, now)

	return t, true
}

// DaysUntil returns ceil((end - now) / 24h). Negative values mean end has passed.
func DaysUntil(end, now time.Time) int {
	days := math.Ceil(float64(end.Sub(now)) / float64(day))
	if days == 0 {
		// math.Ceil keeps the sign of small negative inputs (-0).
		return 0
	}
	return int(days)
}

// TimeProgress returns the elapsed share of [start, end] at now, clamped to 0..100.
// It is 0 when either bound is missing or the interval is empty.
func TimeProgress(start, end *time.Time, now time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	span := end.Sub(*start)
	if span <= 0 {
		if !now.Before(*end) {
			return 100
		}
		return 0
	}
	pct := math.Round(100 * float64(now.Sub(*start)) / float64(span))
	return int(min(max(pct, 0), 100))
}

// NormalizeLines keeps the content lines that carry subtask text.
// A checked checkbox without a visible completion marker gets one appended.
func NormalizeLines(lines []domain.RawLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		switch l.Kind {
		case domain.LineKindToDo, domain.LineKindBullet, domain.LineKindNumbered, domain.LineKindParagraph:
		default:
			continue
		}
		text := l.Text
		if strings.TrimSpace(text) == "" {
			continue
		}
		if l.Checked != nil && *l.Checked && !progress.IsComplete(text) {
			text += " " + progress.CompletionMarker
		}
		out = append(out, text)
	}
	return out
}

// MatchesMember reports whether any assignee equals member, exactly or case-insensitively.
func MatchesMember(assignees []string, member string) bool {
	for _, a := range assignees {
		if a == member || strings.EqualFold(a, member) {
			return true
		}
	}
	return false
}
