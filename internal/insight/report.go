package insight

import (
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// ComputeStats summarizes a task collection at evaluation time now.
func ComputeStats(tasks []domain.Task, now time.Time) domain.Stats {
	stats := domain.Stats{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed {
			stats.Completed++
		}
		if tasks[i].IsOverdue(now) {
			stats.Overdue++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	stats.CompletionRate = percent(stats.Completed, stats.Total)
	return stats
}

// OverdueTasks returns incomplete tasks whose due date is strictly before now.
func OverdueTasks(tasks []domain.Task, now time.Time) []domain.Task {
	var overdue []domain.Task
	for i := range tasks {
		if tasks[i].IsOverdue(now) {
			overdue = append(overdue, tasks[i])
		}
	}
	return overdue
}

// BuildReport runs every analyzer over the snapshot and packages the results.
// It is the only entry point most callers need. The same snapshot and time
// always produce an equal report.
func (e *Engine) BuildReport(snapshot *domain.Snapshot, now time.Time) *domain.Report {
	tasks := snapshot.Tasks
	overdue := OverdueTasks(tasks, now)

	return &domain.Report{
		GeneratedAt:   now,
		Language:      e.Language(),
		Stats:         ComputeStats(tasks, now),
		Productivity:  e.AnalyzeProductivity(tasks),
		Patterns:      e.RecognizePatterns(tasks, snapshot.Categories, snapshot.Lists, now),
		Suggestions:   e.GenerateSuggestions(tasks, snapshot.Categories, snapshot.Lists, overdue),
		Optimizations: e.FindOptimizations(tasks, snapshot.Categories, snapshot.Lists),
		Alerts:        e.CheckDeadlines(tasks, now),
		Breakdown: domain.Breakdown{
			ByPriority: CountByPriority(tasks),
			Weekly:     e.WeeklyTrend(tasks, now),
		},
	}
}
