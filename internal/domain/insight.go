package domain

import "time"

// Severity classifies a productivity insight.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// InsightKind identifies which productivity check produced an insight.
type InsightKind string

const (
	InsightCompletionRate InsightKind = "completion_rate"
	InsightOnTimeRate     InsightKind = "on_time_rate"
)

// Insight is a short productivity observation with a severity.
// Rate is the unrounded percentage (0-100) the insight was derived from.
type Insight struct {
	Kind        InsightKind `json:"kind" yaml:"kind"`
	Severity    Severity    `json:"severity" yaml:"severity"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Action      string      `json:"action" yaml:"action"`
	Rate        float64     `json:"rate" yaml:"rate"`
}

// PatternKind identifies which usage trend a pattern describes.
type PatternKind string

const (
	PatternTopCategory    PatternKind = "top_category"
	PatternPriorityUsage  PatternKind = "priority_usage"
	PatternRecentActivity PatternKind = "recent_activity"
)

// Pattern is a descriptive observation about usage trends.
type Pattern struct {
	Kind        PatternKind `json:"kind" yaml:"kind"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Guidance    string      `json:"guidance" yaml:"guidance"`
}

// SuggestionKind is the category tag of a suggestion.
type SuggestionKind string

const (
	SuggestionUrgent       SuggestionKind = "urgent"
	SuggestionOptimization SuggestionKind = "optimization"
	SuggestionProductivity SuggestionKind = "productivity"
	SuggestionStrategy     SuggestionKind = "strategy"
)

// Stable suggestion identifiers. Callers persist dismissals under these ids.
const (
	SuggestionOverdueTasks      = "overdue-tasks"
	SuggestionCategorizeTasks   = "categorize-tasks"
	SuggestionOrganizeLists     = "organize-lists"
	SuggestionFocusHighPriority = "focus-high-priority"
	SuggestionBreakDownTasks    = "break-down-tasks"
)

// SuggestionIDs returns every suggestion id in emission order.
func SuggestionIDs() []string {
	return []string{
		SuggestionOverdueTasks,
		SuggestionCategorizeTasks,
		SuggestionOrganizeLists,
		SuggestionFocusHighPriority,
		SuggestionBreakDownTasks,
	}
}

// IsKnownSuggestion reports whether id is one of the stable suggestion ids.
func IsKnownSuggestion(id string) bool {
	for _, known := range SuggestionIDs() {
		if known == id {
			return true
		}
	}
	return false
}

// Suggestion is an actionable, dismissible recommendation.
// Fields are ordered to minimize memory padding.
type Suggestion struct {
	ID          string         `json:"id" yaml:"id"`
	Kind        SuggestionKind `json:"kind" yaml:"kind"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Action      string         `json:"action" yaml:"action"`
	ActionType  string         `json:"action_type" yaml:"action_type"`
	Count       int            `json:"count" yaml:"count"`
}

// Effort is the qualitative effort of applying an optimization.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// OptimizationKind identifies which structural check produced an optimization.
type OptimizationKind string

const (
	OptimizationDuplicates      OptimizationKind = "duplicates"
	OptimizationCleanup         OptimizationKind = "cleanup"
	OptimizationSubtaskStrategy OptimizationKind = "subtask_strategy"
)

// Optimization is a structural cleanup opportunity.
type Optimization struct {
	Kind        OptimizationKind `json:"kind" yaml:"kind"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Impact      string           `json:"impact" yaml:"impact"`
	Effort      Effort           `json:"effort" yaml:"effort"`
	EffortLabel string           `json:"effort_label" yaml:"effort_label"`
}

// AlertKind distinguishes deadline alerts.
type AlertKind string

const (
	AlertDueSoon AlertKind = "due_soon"
	AlertOverdue AlertKind = "overdue"
)

const (
	// DueSoonWindow is how far ahead of now an incomplete task counts as due soon.
	DueSoonWindow = 24 * time.Hour
	// DeadlineCheckInterval is the longest gap between deadline checks while watching.
	DeadlineCheckInterval = 30 * time.Minute
)

// Alert is a deadline notice about one incomplete task.
// ID is stable per task and kind ("task-7-due", "task-7-overdue").
// Fields are ordered to minimize memory padding.
type Alert struct {
	DueDate  time.Time `json:"due_date" yaml:"due_date"`
	ID       string    `json:"id" yaml:"id"`
	Kind     AlertKind `json:"kind" yaml:"kind"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Title    string    `json:"title" yaml:"title"`
	Message  string    `json:"message" yaml:"message"`
	TaskID   int       `json:"task_id" yaml:"task_id"`
}

// Stats summarizes a snapshot. CompletionRate is an unrounded percentage (0-100).
type Stats struct {
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate"`
	Total          int     `json:"total" yaml:"total"`
	Completed      int     `json:"completed" yaml:"completed"`
	Pending        int     `json:"pending" yaml:"pending"`
	Overdue        int     `json:"overdue" yaml:"overdue"`
}

// PriorityCounts holds the number of tasks per priority.
type PriorityCounts struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Get returns the count for the given priority.
func (c PriorityCounts) Get(p Priority) int {
	switch p {
	case PriorityHigh:
		return c.High
	case PriorityMedium:
		return c.Medium
	case PriorityLow:
		return c.Low
	}
	return 0
}

// WeekBucket counts tasks created within one week of the trend window.
type WeekBucket struct {
	Start     time.Time `json:"start" yaml:"start"`
	End       time.Time `json:"end" yaml:"end"`
	Label     string    `json:"label" yaml:"label"`
	Created   int       `json:"created" yaml:"created"`
	Completed int       `json:"completed" yaml:"completed"`
}

// Breakdown holds the distribution data shown alongside the report.
type Breakdown struct {
	Weekly     []WeekBucket   `json:"weekly" yaml:"weekly"`
	ByPriority PriorityCounts `json:"by_priority" yaml:"by_priority"`
}

// Report is the engine output for one snapshot. It is never persisted.
// Fields are ordered to minimize memory padding.
type Report struct {
	GeneratedAt   time.Time      `json:"generated_at" yaml:"generated_at"`
	Language      string         `json:"language" yaml:"language"`
	Productivity  []Insight      `json:"productivity" yaml:"productivity"`
	Patterns      []Pattern      `json:"patterns" yaml:"patterns"`
	Suggestions   []Suggestion   `json:"suggestions" yaml:"suggestions"`
	Optimizations []Optimization `json:"optimizations" yaml:"optimizations"`
	Alerts        []Alert        `json:"alerts" yaml:"alerts"`
	Breakdown     Breakdown      `json:"breakdown" yaml:"breakdown"`
	Stats         Stats          `json:"stats" yaml:"stats"`
}
