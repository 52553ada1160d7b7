package weekly

import (
	"context"

	"github.com/rezkam/weekly/internal/domain"
)

// TaskSource is the external work-tracking system.
type TaskSource interface {
	// QueryTasks returns one page of tasks whose status is any of statuses.
	// An empty cursor requests the first page.
	QueryTasks(ctx context.Context, statuses []domain.TaskStatus, cursor string) (domain.TaskPage, error)
	// FetchContent returns the content lines of one task.
	FetchContent(ctx context.Context, taskID string) ([]domain.RawLine, error)
}

// Rewriter polishes a deterministic report draft. It is optional; any
// failure falls back to the draft.
type Rewriter interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}
