// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level assigned to a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns the priorities in tie-breaking order (high first).
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is one of the known values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a read-only snapshot of a task as served by the REST API.
// Optional fields are pointers: nil means "not set", never zero.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt             time.Time  `json:"created_at" yaml:"created_at"`
	DueDate               *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	CategoryID            *int       `json:"category,omitempty" yaml:"category,omitempty"`
	ListID                *int       `json:"task_list,omitempty" yaml:"task_list,omitempty"`
	SubtaskCount          *int       `json:"subtasks_count,omitempty" yaml:"subtasks_count,omitempty"`
	CompletedSubtaskCount *int       `json:"completed_subtasks_count,omitempty" yaml:"completed_subtasks_count,omitempty"`
	Title                 string     `json:"title" yaml:"title"`
	Description           string     `json:"description,omitempty" yaml:"description,omitempty"` // Empty means not set
	Priority              Priority   `json:"priority" yaml:"priority"`
	Tags                  []string   `json:"tags_names,omitempty" yaml:"tags_names,omitempty"`
	ID                    int        `json:"id" yaml:"id"`
	Completed             bool       `json:"completed" yaml:"completed"`
}

// HasDueDate returns true if a due date is set.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil
}

// HasCategory returns true if the task references a category.
func (t *Task) HasCategory() bool {
	return t.CategoryID != nil
}

// HasList returns true if the task references a list.
func (t *Task) HasList() bool {
	return t.ListID != nil
}

// InCategory reports whether the task references the given category.
func (t *Task) InCategory(id int) bool {
	return t.CategoryID != nil && *t.CategoryID == id
}

// InList reports whether the task references the given list.
func (t *Task) InList(id int) bool {
	return t.ListID != nil && *t.ListID == id
}

// Subtasks returns the subtask count, or 0 when unset.
func (t *Task) Subtasks() int {
	if t.SubtaskCount == nil {
		return 0
	}
	return *t.SubtaskCount
}

// IsOverdue returns true if the task is incomplete and its due date is strictly before now.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// IsDueSoon returns true if the task is incomplete and due after now but no later than now+window.
func (t *Task) IsDueSoon(now time.Time, window time.Duration) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.After(now) && !t.DueDate.After(now.Add(window))
}

// CompletedOnTime returns true if the task was completed at or before its due date.
// A completed task without a completion timestamp is never counted as on time.
func (t *Task) CompletedOnTime() bool {
	if !t.Completed || t.CompletedAt == nil || t.DueDate == nil {
		return false
	}
	return !t.CompletedAt.After(*t.DueDate)
}

// NormalizedTitle returns the title lowercased with surrounding whitespace removed.
func (t *Task) NormalizedTitle() string {
	return strings.ToLower(strings.TrimSpace(t.Title))
}

// Category groups tasks by a general context (work, studies, personal).
type Category struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
	ID          int    `json:"id" yaml:"id"`
	TaskCount   int    `json:"tasks_count,omitempty" yaml:"tasks_count,omitempty"`
}

// TaskList groups tasks by project or any user-defined criterion.
type TaskList struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ID          int    `json:"id" yaml:"id"`
	TaskCount   int    `json:"tasks_count,omitempty" yaml:"tasks_count,omitempty"`
}

// Snapshot is an immutable, point-in-time copy of the collections the engine reads.
type Snapshot struct {
	FetchedAt  time.Time  `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
	Tasks      []Task     `json:"tasks" yaml:"tasks"`
	Categories []Category `json:"categories" yaml:"categories"`
	Lists      []TaskList `json:"lists" yaml:"lists"`
}

// Validate checks the snapshot for contract violations and names the first offending field.
func (s *Snapshot) Validate() error {
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.ID <= 0 {
			return fmt.Errorf("%w: tasks[%d].id must be positive", ErrInvalidSnapshot, i)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: tasks[%d].title is empty", ErrInvalidSnapshot, i)
		}
		if !t.Priority.IsValid() {
			return fmt.Errorf("%w: tasks[%d].priority %q is unknown", ErrInvalidSnapshot, i, t.Priority)
		}
	}
	for i, c := range s.Categories {
		if c.ID <= 0 {
			return fmt.Errorf("%w: categories[%d].id must be positive", ErrInvalidSnapshot, i)
		}
	}
	for i, l := range s.Lists {
		if l.ID <= 0 {
			return fmt.Errorf("%w: lists[%d].id must be positive", ErrInvalidSnapshot, i)
		}
	}
	return nil
}
