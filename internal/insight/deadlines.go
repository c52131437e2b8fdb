package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// DueSoonTasks returns incomplete tasks due within domain.DueSoonWindow after now.
func DueSoonTasks(tasks []domain.Task, now time.Time) []domain.Task {
	var due []domain.Task
	for i := range tasks {
		if tasks[i].IsDueSoon(now, domain.DueSoonWindow) {
			due = append(due, tasks[i])
		}
	}
	return due
}

// CheckDeadlines returns one alert per incomplete task that is due soon or overdue.
// Due-soon alerts come first, each group ordered by due date then task id.
func (e *Engine) CheckDeadlines(tasks []domain.Task, now time.Time) []domain.Alert {
	dueSoon := DueSoonTasks(tasks, now)
	overdue := OverdueTasks(tasks, now)
	sortByDueDate(dueSoon)
	sortByDueDate(overdue)

	alerts := make([]domain.Alert, 0, len(dueSoon)+len(overdue))
	for i := range dueSoon {
		t := &dueSoon[i]
		alerts = append(alerts, domain.Alert{
			ID:       fmt.Sprintf("task-%d-due", t.ID),
			Kind:     domain.AlertDueSoon,
			Severity: domain.SeverityWarning,
			Title:    e.T("Task due soon"),
			Message:  e.T(`"%s" is due soon`, t.Title),
			TaskID:   t.ID,
			DueDate:  *t.DueDate,
		})
	}
	for i := range overdue {
		t := &overdue[i]
		alerts = append(alerts, domain.Alert{
			ID:       fmt.Sprintf("task-%d-overdue", t.ID),
			Kind:     domain.AlertOverdue,
			Severity: domain.SeverityError,
			Title:    e.T("Overdue task"),
			Message:  e.T(`"%s" is overdue`, t.Title),
			TaskID:   t.ID,
			DueDate:  *t.DueDate,
		})
	}
	return alerts
}

func sortByDueDate(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].DueDate.Equal(*tasks[j].DueDate) {
			return tasks[i].DueDate.Before(*tasks[j].DueDate)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
