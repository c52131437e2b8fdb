package insight

import "github.com/runoshun/taskpulse/internal/domain"

// FindOptimizations reports structural cleanup opportunities.
func (e *Engine) FindOptimizations(tasks []domain.Task, categories []domain.Category, lists []domain.TaskList) []domain.Optimization {
	optimizations := make([]domain.Optimization, 0, 3)

	if CountDuplicates(tasks) > 0 {
		optimizations = append(optimizations, domain.Optimization{
			Kind:        domain.OptimizationDuplicates,
			Title:       e.T("Duplicate tasks detected"),
			Description: e.T("Found possible duplicate tasks in your system."),
			Impact:      e.T("Reduce redundancy and confusion"),
			Effort:      domain.EffortLow,
			EffortLabel: e.EffortLabel(domain.EffortLow),
		})
	}

	emptyCategories, emptyLists := countEmptyContainers(tasks, categories, lists)
	if emptyCategories > 0 || emptyLists > 0 {
		optimizations = append(optimizations, domain.Optimization{
			Kind:        domain.OptimizationCleanup,
			Title:       e.T("Organization cleanup"),
			Description: e.T("%d empty category(ies) and %d empty list(s).", emptyCategories, emptyLists),
			Impact:      e.T("Cleaner, more organized interface"),
			Effort:      domain.EffortLow,
			EffortLabel: e.EffortLabel(domain.EffortLow),
		})
	}

	if hasCompletedWithSubtasks(tasks) {
		optimizations = append(optimizations, domain.Optimization{
			Kind:        domain.OptimizationSubtaskStrategy,
			Title:       e.T("Success pattern identified"),
			Description: e.T("Tasks with subtasks have a higher completion rate."),
			Impact:      e.T("Apply the subtask strategy to more projects"),
			Effort:      domain.EffortMedium,
			EffortLabel: e.EffortLabel(domain.EffortMedium),
		})
	}

	return optimizations
}

// CountDuplicates returns how many tasks repeat the normalized title of an
// earlier task. The first occurrence of a title is never counted.
func CountDuplicates(tasks []domain.Task) int {
	seen := make(map[string]struct{}, len(tasks))
	duplicates := 0
	for i := range tasks {
		title := tasks[i].NormalizedTitle()
		if _, ok := seen[title]; ok {
			duplicates++
			continue
		}
		seen[title] = struct{}{}
	}
	return duplicates
}

func countEmptyContainers(tasks []domain.Task, categories []domain.Category, lists []domain.TaskList) (emptyCategories, emptyLists int) {
	usedCategories := make(map[int]struct{})
	usedLists := make(map[int]struct{})
	for i := range tasks {
		if id := tasks[i].CategoryID; id != nil {
			usedCategories[*id] = struct{}{}
		}
		if id := tasks[i].ListID; id != nil {
			usedLists[*id] = struct{}{}
		}
	}

	for _, c := range categories {
		if _, ok := usedCategories[c.ID]; !ok {
			emptyCategories++
		}
	}
	for _, l := range lists {
		if _, ok := usedLists[l.ID]; !ok {
			emptyLists++
		}
	}
	return emptyCategories, emptyLists
}

func hasCompletedWithSubtasks(tasks []domain.Task) bool {
	for i := range tasks {
		if tasks[i].Completed && tasks[i].Subtasks() > 0 {
			return true
		}
	}
	return false
}
