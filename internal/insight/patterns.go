package insight

import (
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

const (
	recentWindow      = 7 * 24 * time.Hour
	overloadThreshold = 10
)

// RecognizePatterns returns usage patterns: the most productive category,
// the most used priority and the recent task creation activity.
// A sub-check with nothing to report emits nothing.
func (e *Engine) RecognizePatterns(tasks []domain.Task, categories []domain.Category, _ []domain.TaskList, now time.Time) []domain.Pattern {
	patterns := make([]domain.Pattern, 0, 3)

	if p, ok := e.topCategoryPattern(tasks, categories); ok {
		patterns = append(patterns, p)
	}
	if p, ok := e.priorityPattern(tasks); ok {
		patterns = append(patterns, p)
	}
	if p, ok := e.recentActivityPattern(tasks, now); ok {
		patterns = append(patterns, p)
	}

	return patterns
}

// topCategoryPattern picks the category with the highest completion rate.
// Only categories with at least one task compete; ties keep the earlier category.
func (e *Engine) topCategoryPattern(tasks []domain.Task, categories []domain.Category) (domain.Pattern, bool) {
	var (
		best     *domain.Category
		bestRate float64
	)
	for i := range categories {
		c := &categories[i]
		total, completed := 0, 0
		for j := range tasks {
			if !tasks[j].InCategory(c.ID) {
				continue
			}
			total++
			if tasks[j].Completed {
				completed++
			}
		}
		if total == 0 {
			continue
		}
		rate := percent(completed, total)
		if best == nil || rate > bestRate {
			best = c
			bestRate = rate
		}
	}
	if best == nil {
		return domain.Pattern{}, false
	}

	return domain.Pattern{
		Kind:        domain.PatternTopCategory,
		Title:       e.T("Most productive category"),
		Description: e.T(`You are most productive in "%s" with %d%% completion.`, best.Name, DisplayRate(bestRate)),
		Guidance:    e.T("Consider applying this category's strategies to other areas."),
	}, true
}

// priorityPattern picks the most used priority; ties resolve high, medium, low.
func (e *Engine) priorityPattern(tasks []domain.Task) (domain.Pattern, bool) {
	counts := CountByPriority(tasks)

	var top domain.Priority
	topCount := 0
	for _, p := range domain.Priorities() {
		if n := counts.Get(p); n > topCount {
			top = p
			topCount = n
		}
	}
	if topCount == 0 {
		return domain.Pattern{}, false
	}

	return domain.Pattern{
		Kind:        domain.PatternPriorityUsage,
		Title:       e.T("Priority pattern"),
		Description: e.T(`You use the "%s" priority the most (%d tasks).`, e.PriorityLabel(top), topCount),
		Guidance:    e.T("Balance your priorities for more effective management."),
	}, true
}

// recentActivityPattern counts tasks created at or after now minus seven days.
func (e *Engine) recentActivityPattern(tasks []domain.Task, now time.Time) (domain.Pattern, bool) {
	since := now.Add(-recentWindow)
	recent := 0
	for i := range tasks {
		if !tasks[i].CreatedAt.Before(since) {
			recent++
		}
	}
	if recent == 0 {
		return domain.Pattern{}, false
	}

	guidance := e.T("Keep up the pace of task creation.")
	if recent > overloadThreshold {
		guidance = e.T("You are very active! Be careful not to overload yourself.")
	}

	return domain.Pattern{
		Kind:        domain.PatternRecentActivity,
		Title:       e.T("Recent activity"),
		Description: e.T("You created %d tasks in the last week.", recent),
		Guidance:    guidance,
	}, true
}
