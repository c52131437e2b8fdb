package testutil

import (
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// FixtureNow is the evaluation time used by SampleSnapshot.
var FixtureNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// SampleSnapshot returns a small snapshot that yields the overdue-tasks and
// focus-high-priority suggestions when evaluated at FixtureNow.
func SampleSnapshot() *domain.Snapshot {
	due := FixtureNow.Add(-24 * time.Hour)
	home, june := 1, 1
	return &domain.Snapshot{
		Tasks: []domain.Task{
			{
				ID: 1, Title: "Pay rent", Priority: domain.PriorityHigh,
				DueDate: &due, CategoryID: &home, ListID: &june,
				CreatedAt: FixtureNow.Add(-48 * time.Hour),
			},
			{
				ID: 2, Title: "Read book", Priority: domain.PriorityLow, Completed: true,
				CategoryID: &home, ListID: &june, CreatedAt: FixtureNow.Add(-72 * time.Hour),
			},
		},
		Categories: []domain.Category{{ID: 1, Name: "Home"}},
		Lists:      []domain.TaskList{{ID: 1, Name: "June"}},
	}
}
