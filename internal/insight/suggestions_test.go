package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpulse/internal/domain"
)

func suggestionIDs(suggestions []domain.Suggestion) []string {
	ids := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		ids = append(ids, s.ID)
	}
	return ids
}

func organized(t *domain.Task) {
	t.CategoryID = ptr(1)
	t.ListID = ptr(1)
}

func TestGenerateSuggestions_Overdue(t *testing.T) {
	e := New(domain.LanguageEnglish)

	t.Run("one overdue task", func(t *testing.T) {
		tasks := []domain.Task{task(1, "late", organized, dueIn(-24*time.Hour))}
		suggestions := e.GenerateSuggestions(tasks, nil, nil, OverdueTasks(tasks, evalTime))

		require.Len(t, suggestions, 1)
		s := suggestions[0]
		assert.Equal(t, "overdue-tasks", s.ID)
		assert.Equal(t, domain.SuggestionUrgent, s.Kind)
		assert.Equal(t, "You have 1 overdue task(s).", s.Description)
		assert.Equal(t, ActionReviewOverdue, s.ActionType)
		assert.Equal(t, 1, s.Count)
	})

	t.Run("no overdue task", func(t *testing.T) {
		tasks := []domain.Task{task(1, "future", organized, dueIn(24*time.Hour))}
		suggestions := e.GenerateSuggestions(tasks, nil, nil, OverdueTasks(tasks, evalTime))

		assert.NotContains(t, suggestionIDs(suggestions), "overdue-tasks")
	})
}

func TestGenerateSuggestions_Thresholds(t *testing.T) {
	e := New(domain.LanguageEnglish)

	bare := func(n int) []domain.Task {
		tasks := make([]domain.Task, 0, n)
		for i := 0; i < n; i++ {
			tasks = append(tasks, task(i+1, "t", completed))
		}
		return tasks
	}

	tests := []struct {
		name    string
		tasks   []domain.Task
		want    []string
		notWant []string
	}{
		{
			name:    "four unorganized tasks only trigger lists",
			tasks:   bare(4),
			want:    []string{"organize-lists"},
			notWant: []string{"categorize-tasks"},
		},
		{
			name:    "three unlisted tasks trigger nothing",
			tasks:   bare(3),
			notWant: []string{"organize-lists", "categorize-tasks"},
		},
		{
			name:    "five uncategorized tasks do not trigger categorize",
			tasks:   bare(5),
			notWant: []string{"categorize-tasks"},
		},
		{
			name:  "six uncategorized tasks trigger categorize",
			tasks: bare(6),
			want:  []string{"categorize-tasks", "organize-lists"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := suggestionIDs(e.GenerateSuggestions(tt.tasks, nil, nil, nil))
			for _, id := range tt.want {
				assert.Contains(t, ids, id)
			}
			for _, id := range tt.notWant {
				assert.NotContains(t, ids, id)
			}
		})
	}
}

func TestGenerateSuggestions_HighPriority(t *testing.T) {
	e := New(domain.LanguageEnglish)
	tasks := []domain.Task{
		task(1, "a", organized, withPriority(domain.PriorityHigh)),
		task(2, "b", organized, withPriority(domain.PriorityHigh), completed),
		task(3, "c", organized, withPriority(domain.PriorityLow)),
	}

	suggestions := e.GenerateSuggestions(tasks, nil, nil, nil)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "focus-high-priority", suggestions[0].ID)
	assert.Equal(t, domain.SuggestionProductivity, suggestions[0].Kind)
	assert.Equal(t, 1, suggestions[0].Count)
}

func TestGenerateSuggestions_BreakDown(t *testing.T) {
	e := New(domain.LanguageEnglish)
	long := strings.Repeat("x", 201)
	exact := strings.Repeat("x", 200)
	accented := strings.Repeat("ç", 150) // 300 bytes, 150 characters

	withDescription := func(d string) func(*domain.Task) {
		return func(t *domain.Task) { t.Description = d }
	}

	tests := []struct {
		name string
		task domain.Task
		want bool
	}{
		{"long without subtasks", task(1, "a", organized, withDescription(long)), true},
		{"long with zero subtasks", task(1, "a", organized, withDescription(long), withSubtasks(0)), true},
		{"long with subtasks", task(1, "a", organized, withDescription(long), withSubtasks(2)), false},
		{"exactly 200 characters", task(1, "a", organized, withDescription(exact)), false},
		{"multibyte counted by character", task(1, "a", organized, withDescription(accented)), false},
		{"long but completed", task(1, "a", organized, withDescription(long), completed), false},
		{"no description", task(1, "a", organized), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := suggestionIDs(e.GenerateSuggestions([]domain.Task{tt.task}, nil, nil, nil))
			if tt.want {
				assert.Contains(t, ids, "break-down-tasks")
			} else {
				assert.NotContains(t, ids, "break-down-tasks")
			}
		})
	}
}

func TestGenerateSuggestions_OrderAndStability(t *testing.T) {
	e := New(domain.LanguageEnglish)
	long := strings.Repeat("y", 250)

	tasks := make([]domain.Task, 0, 6)
	for i := 0; i < 6; i++ {
		tasks = append(tasks, task(i+1, "t",
			withPriority(domain.PriorityHigh),
			dueIn(-time.Hour),
			func(t *domain.Task) { t.Description = long },
		))
	}
	overdue := OverdueTasks(tasks, evalTime)

	first := e.GenerateSuggestions(tasks, nil, nil, overdue)
	second := e.GenerateSuggestions(tasks, nil, nil, overdue)

	assert.Equal(t, domain.SuggestionIDs(), suggestionIDs(first))
	assert.Equal(t, first, second)
}

func TestGenerateSuggestions_Portuguese(t *testing.T) {
	e := New(domain.LanguagePortuguese)
	tasks := []domain.Task{task(1, "late", organized, dueIn(-time.Hour))}

	suggestions := e.GenerateSuggestions(tasks, nil, nil, OverdueTasks(tasks, evalTime))

	require.Len(t, suggestions, 1)
	assert.Equal(t, "Tarefas Atrasadas Precisam de Atenção", suggestions[0].Title)
	assert.Equal(t, "Você tem 1 tarefa(s) atrasada(s).", suggestions[0].Description)
	assert.Equal(t, "Revisar e reagendar tarefas atrasadas", suggestions[0].Action)
}
