package tasks

import (
	"time"

	"github.com/rezkam/weekly/internal/domain"
)

// Classify splits enriched tasks into the current plan and the recently
// completed set. Input order is preserved within each group.
func Classify(tasks []domain.Task, now time.Time) domain.TaskSet {
	set := domain.TaskSet{
		Current:      []domain.Task{},
		RecentlyDone: []domain.Task{},
	}
	cutoff := now.Add(-RecentlyDoneWindow)

	for _, t := range tasks {
		switch {
		case t.Status.IsCurrent():
			set.Current = append(set.Current, t)
		case t.Status == domain.TaskStatusDone && !t.LastModifiedAt.Before(cutoff):
			set.RecentlyDone = append(set.RecentlyDone, t)
		}
	}
	return set
}
