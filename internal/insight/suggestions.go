package insight

import (
	"unicode/utf8"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Suggestion thresholds. A rule fires when its count is strictly greater.
const (
	uncategorizedThreshold = 5
	unlistedThreshold      = 3
	largeDescriptionRunes  = 200
)

// Action types hint the client which screen a suggestion leads to.
const (
	ActionReviewOverdue  = "review-overdue"
	ActionCategorize     = "categorize"
	ActionCreateLists    = "create-lists"
	ActionFocusPriority  = "focus-priority"
	ActionCreateSubtasks = "create-subtasks"
)

// GenerateSuggestions evaluates each suggestion rule in a fixed order and
// returns the ones whose threshold is met. Ids are stable across calls.
func (e *Engine) GenerateSuggestions(tasks []domain.Task, _ []domain.Category, _ []domain.TaskList, overdue []domain.Task) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0, 5)

	if n := len(overdue); n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			ID:          domain.SuggestionOverdueTasks,
			Kind:        domain.SuggestionUrgent,
			Title:       e.T("Overdue tasks need attention"),
			Description: e.T("You have %d overdue task(s).", n),
			Action:      e.T("Review and reschedule overdue tasks"),
			ActionType:  ActionReviewOverdue,
			Count:       n,
		})
	}

	var uncategorized, unlisted, highPending, large int
	for i := range tasks {
		t := &tasks[i]
		if !t.HasCategory() {
			uncategorized++
		}
		if !t.HasList() {
			unlisted++
		}
		if t.Completed {
			continue
		}
		if t.Priority == domain.PriorityHigh {
			highPending++
		}
		if utf8.RuneCountInString(t.Description) > largeDescriptionRunes && t.Subtasks() == 0 {
			large++
		}
	}

	if uncategorized > uncategorizedThreshold {
		suggestions = append(suggestions, domain.Suggestion{
			ID:          domain.SuggestionCategorizeTasks,
			Kind:        domain.SuggestionOptimization,
			Title:       e.T("Organize your tasks"),
			Description: e.T("%d tasks have no category.", uncategorized),
			Action:      e.T("Categorize pending tasks"),
			ActionType:  ActionCategorize,
			Count:       uncategorized,
		})
	}

	if unlisted > unlistedThreshold {
		suggestions = append(suggestions, domain.Suggestion{
			ID:          domain.SuggestionOrganizeLists,
			Kind:        domain.SuggestionOptimization,
			Title:       e.T("Create themed lists"),
			Description: e.T("%d tasks could be organized into lists.", unlisted),
			Action:      e.T("Create lists to organize tasks"),
			ActionType:  ActionCreateLists,
			Count:       unlisted,
		})
	}

	if highPending > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			ID:          domain.SuggestionFocusHighPriority,
			Kind:        domain.SuggestionProductivity,
			Title:       e.T("Focus on high priorities"),
			Description: e.T("You have %d pending high-priority task(s).", highPending),
			Action:      e.T("Work on priority tasks"),
			ActionType:  ActionFocusPriority,
			Count:       highPending,
		})
	}

	if large > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			ID:          domain.SuggestionBreakDownTasks,
			Kind:        domain.SuggestionStrategy,
			Title:       e.T("Break down complex tasks"),
			Description: e.T("%d complex task(s) could be split into subtasks.", large),
			Action:      e.T("Create subtasks for complex tasks"),
			ActionType:  ActionCreateSubtasks,
			Count:       large,
		})
	}

	return suggestions
}
