package insight

import "github.com/runoshun/taskpulse/internal/domain"

// Productivity thresholds, in percent.
const (
	highProductivityRate     = 80
	moderateProductivityRate = 60
	onTimeSuccessRate        = 80
)

// AnalyzeProductivity returns the completion-rate insight, always, followed by
// the on-time insight when at least one task has a due date.
//
// An empty collection has a completion rate of 0 and therefore yields the
// low-productivity insight.
func (e *Engine) AnalyzeProductivity(tasks []domain.Task) []domain.Insight {
	insights := make([]domain.Insight, 0, 2)

	completed := 0
	withDue := 0
	onTime := 0
	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			completed++
		}
		if t.HasDueDate() {
			withDue++
			if t.CompletedOnTime() {
				onTime++
			}
		}
	}

	rate := percent(completed, len(tasks))
	insights = append(insights, e.completionInsight(rate))

	if withDue > 0 {
		insights = append(insights, e.onTimeInsight(percent(onTime, withDue)))
	}

	return insights
}

func (e *Engine) completionInsight(rate float64) domain.Insight {
	shown := DisplayRate(rate)
	switch {
	case rate >= highProductivityRate:
		return domain.Insight{
			Kind:        domain.InsightCompletionRate,
			Severity:    domain.SeveritySuccess,
			Title:       e.T("High productivity!"),
			Description: e.T("You have a completion rate of %d%%. Keep it up!", shown),
			Action:      e.T("Consider raising your goals or taking on more challenging projects."),
			Rate:        rate,
		}
	case rate >= moderateProductivityRate:
		return domain.Insight{
			Kind:        domain.InsightCompletionRate,
			Severity:    domain.SeverityWarning,
			Title:       e.T("Good productivity"),
			Description: e.T("Completion rate of %d%%. There is room for improvement.", shown),
			Action:      e.T("Try focusing on high-priority tasks first."),
			Rate:        rate,
		}
	default:
		return domain.Insight{
			Kind:        domain.InsightCompletionRate,
			Severity:    domain.SeverityError,
			Title:       e.T("Low productivity"),
			Description: e.T("Completion rate of %d%%. Let's improve that!", shown),
			Action:      e.T("Consider breaking large tasks into smaller subtasks."),
			Rate:        rate,
		}
	}
}

func (e *Engine) onTimeInsight(rate float64) domain.Insight {
	shown := DisplayRate(rate)
	if rate >= onTimeSuccessRate {
		return domain.Insight{
			Kind:        domain.InsightOnTimeRate,
			Severity:    domain.SeveritySuccess,
			Title:       e.T("Excellent time management"),
			Description: e.T("%d%% of your tasks are completed on time.", shown),
			Action:      e.T("You are great at meeting deadlines! Keep up the discipline."),
			Rate:        rate,
		}
	}
	return domain.Insight{
		Kind:        domain.InsightOnTimeRate,
		Severity:    domain.SeverityWarning,
		Title:       e.T("Time management needs improvement"),
		Description: e.T("Only %d%% of tasks are completed on time.", shown),
		Action:      e.T("Try setting more realistic deadlines or using reminders."),
		Rate:        rate,
	}
}
