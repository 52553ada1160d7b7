package domain

import (
	"strings"
	"time"
)

// TaskStatus is the workflow column of a task in the tracking source.
type TaskStatus string

const (
	TaskStatusNextUp     TaskStatus = "NEXT_UP"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// ReportableStatuses are the statuses queried from the task source.
var ReportableStatuses = []TaskStatus{
	TaskStatusNextUp,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusDone,
}

// ParseTaskStatus accepts both the source display names ("Next Up", "In Progress")
// and the canonical constants. ok is false for any other status.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)

	switch key {
	case "NEXTUP":
		return TaskStatusNextUp, true
	case "INPROGRESS":
		return TaskStatusInProgress, true
	case "REVIEW":
		return TaskStatusReview, true
	case "DONE":
		return TaskStatusDone, true
	default:
		return "", false
	}
}

// DisplayName returns the name used by the tracking source for the status.
func (s TaskStatus) DisplayName() string {
	switch s {
	case TaskStatusNextUp:
		return "Next Up"
	case TaskStatusInProgress:
		return "In Progress"
	case TaskStatusReview:
		return "Review"
	case TaskStatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// IsCurrent reports whether the status belongs to the current-period plan.
func (s TaskStatus) IsCurrent() bool {
	return s == TaskStatusNextUp || s == TaskStatusInProgress || s == TaskStatusReview
}

// RawTask is a task record as returned by the task source, before enrichment.
type RawTask struct {
	ID             string
	Title          string
	Status         string
	Assignees      []string
	Project        string
	Start          *time.Time
	End            *time.Time
	LastModifiedAt time.Time
}

// RawLine is one content line of a task page.
// Checked is set only for checkbox lines.
type RawLine struct {
	Kind    string
	Text    string
	Checked *bool
}

// Content line kinds that carry subtask text.
const (
	LineKindToDo      = "to_do"
	LineKindBullet    = "bulleted_list_item"
	LineKindNumbered  = "numbered_list_item"
	LineKindParagraph = "paragraph"
)

// TaskPage is one page of a paginated task-source query.
type TaskPage struct {
	Tasks      []RawTask
	NextCursor string
	HasMore    bool
}

// Task is an enriched task. It is created once per fetch and not mutated afterwards.
//
// Invariant: IsOverdue ⇔ End != nil ∧ Status != Done ∧ DaysRemaining < 0,
// and DaysOverdue == -DaysRemaining when overdue, else 0.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Status         TaskStatus `json:"status"`
	Assignee       string     `json:"assignee"`
	Project        string     `json:"project"`
	LastModifiedAt time.Time  `json:"lastModifiedAt"`
	Subtasks       []string   `json:"subtasks"`
	Start          *time.Time `json:"startDate,omitempty"`
	End            *time.Time `json:"endDate,omitempty"`
	IsOverdue      bool       `json:"isOverdue"`
	DaysOverdue    int        `json:"daysOverdue"`
	DaysRemaining  int        `json:"daysRemaining"`
	TimeProgress   int        `json:"timeProgress"`
}

// TaskSet is the classified view of one member's tasks.
type TaskSet struct {
	Current      []Task `json:"current"`
	RecentlyDone []Task `json:"recentlyDone"`
}

// All returns current tasks followed by recently done tasks.
func (s TaskSet) All() []Task {
	all := make([]Task, 0, len(s.Current)+len(s.RecentlyDone))
	all = append(all, s.Current...)
	return append(all, s.RecentlyDone...)
}
