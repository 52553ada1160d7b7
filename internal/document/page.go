package document

import "github.com/rezkam/weekly/internal/domain"

// Region placeholders.
const (
	PendingPlaceholder = "(pending)"
	LeavePlaceholder   = "(on leave)"
)

// Fixed text of a new weekly document.
const (
	ReminderText      = "Are the OKRs updated? Are last meeting's to-dos updated?"
	OKRProgressTitle  = "OKR / project progress"
	WorkProgressTitle = "Work progress & info sync"
	NoneText          = "None"
	LastWeekProgress  = "Last week's progress"
	ThisWeekPlan      = "This week's plan"
	InfoSyncAndIssues = "Info sync / issues / learning"
)

// Slot is one member's region in a new document.
type Slot struct {
	Label   string
	OnLeave bool
}

// InitialPage lays out a fresh weekly document: a reminder, two instruction
// groupings, a divider, then a heading, a placeholder and a divider per member.
func InitialPage(slots []Slot) []domain.Block {
	blocks := []domain.Block{
		domain.Callout(ReminderText),
		domain.Numbered(OKRProgressTitle, domain.Bullet(NoneText)),
		domain.Numbered(WorkProgressTitle,
			domain.Bullet(LastWeekProgress),
			domain.Bullet(ThisWeekPlan),
			domain.Bullet(InfoSyncAndIssues),
		),
		domain.Divider(),
	}
	for _, s := range slots {
		blocks = append(blocks,
			domain.Heading(s.Label),
			domain.Paragraph(Placeholder(s.OnLeave)),
			domain.Divider(),
		)
	}
	return blocks
}
