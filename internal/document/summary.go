package document

import (
	"fmt"
	"math"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/progress"
)

// Team summary text.
const (
	SummaryTitle      = "📊 Team task status overview"
	RiskTitle         = "🚨 Risk warnings"
	overdueCallout    = "🔴 Overdue tasks (%d)"
	nearDeadlineTitle = "⚠️ Due soon (%d)"
)

// MemberTasks is one member's tasks as input to the team summary.
type MemberTasks struct {
	Member string
	Tasks  []domain.Task
}

var summaryRows = []struct {
	status domain.TaskStatus
	label  string
}{
	{domain.TaskStatusDone, "✅ Done       "},
	{domain.TaskStatusInProgress, "🔄 In progress"},
	{domain.TaskStatusNextUp, "📋 Next up    "},
	{domain.TaskStatusReview, "👀 In review  "},
}

type memberTask struct {
	member string
	task   domain.Task
}

// TeamSummary builds the status overview and risk warnings appended at the
// bottom of a weekly document.
func TeamSummary(entries []MemberTasks) []domain.Block {
	counts := make(map[domain.TaskStatus]int)
	total := 0
	var overdue, dueSoon []memberTask

	for _, e := range entries {
		for _, t := range e.Tasks {
			total++
			counts[t.Status]++
			switch {
			case t.IsOverdue:
				overdue = append(overdue, memberTask{e.Member, t})
			case progress.NearDeadline(t):
				dueSoon = append(dueSoon, memberTask{e.Member, t})
			}
		}
	}

	blocks := []domain.Block{domain.Divider(), domain.Heading(SummaryTitle)}
	for _, row := range summaryRows {
		n := counts[row.status]
		pct := 0
		if total > 0 {
			pct = int(math.Round(100 * float64(n) / float64(total)))
		}
		blocks = append(blocks, domain.Paragraph(
			fmt.Sprintf("%s  %s %d task(s) (%d%%)", row.label, progress.Bar(pct), n, pct)))
	}

	if len(overdue) == 0 && len(dueSoon) == 0 {
		return blocks
	}

	blocks = append(blocks, domain.Paragraph(""), domain.Heading(RiskTitle))
	if len(overdue) > 0 {
		blocks = append(blocks, domain.Callout(fmt.Sprintf(overdueCallout, len(overdue))))
		for _, o := range overdue {
			blocks = append(blocks, domain.Bullet(
				fmt.Sprintf("%s — %s — overdue %d day(s)", o.task.Title, o.member, o.task.DaysOverdue)))
		}
	}
	if len(dueSoon) > 0 {
		blocks = append(blocks, domain.Callout(fmt.Sprintf(nearDeadlineTitle, len(dueSoon))))
		for _, d := range dueSoon {
			blocks = append(blocks, domain.Bullet(
				fmt.Sprintf("%s — %s — %d day(s) left", d.task.Title, d.member, d.task.DaysRemaining)))
		}
	}
	return blocks
}
