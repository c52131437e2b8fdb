package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpulse/internal/domain"
)

func findPattern(patterns []domain.Pattern, kind domain.PatternKind) (domain.Pattern, bool) {
	for _, p := range patterns {
		if p.Kind == kind {
			return p, true
		}
	}
	return domain.Pattern{}, false
}

func TestRecognizePatterns_TopCategory(t *testing.T) {
	e := New(domain.LanguageEnglish)
	categories := []domain.Category{
		{ID: 1, Name: "Work"},
		{ID: 2, Name: "Studies"},
		{ID: 3, Name: "Unused"},
	}

	t.Run("highest rate wins", func(t *testing.T) {
		tasks := []domain.Task{
			task(1, "a", inCategory(1), completed),
			task(2, "b", inCategory(1)),
			task(3, "c", inCategory(2), completed),
		}
		p, ok := findPattern(e.RecognizePatterns(tasks, categories, nil, evalTime), domain.PatternTopCategory)
		require.True(t, ok)
		assert.Equal(t, `You are most productive in "Studies" with 100% completion.`, p.Description)
	})

	t.Run("tie keeps first category in input order", func(t *testing.T) {
		tasks := []domain.Task{
			task(1, "a", inCategory(2), completed),
			task(2, "b", inCategory(1), completed),
		}
		p, ok := findPattern(e.RecognizePatterns(tasks, categories, nil, evalTime), domain.PatternTopCategory)
		require.True(t, ok)
		assert.Contains(t, p.Description, `"Work"`)
	})

	t.Run("zero rate category still selected", func(t *testing.T) {
		tasks := []domain.Task{task(1, "a", inCategory(2))}
		p, ok := findPattern(e.RecognizePatterns(tasks, categories, nil, evalTime), domain.PatternTopCategory)
		require.True(t, ok)
		assert.Contains(t, p.Description, `"Studies" with 0%`)
	})

	t.Run("no category has tasks", func(t *testing.T) {
		tasks := []domain.Task{task(1, "a")}
		_, ok := findPattern(e.RecognizePatterns(tasks, categories, nil, evalTime), domain.PatternTopCategory)
		assert.False(t, ok)
	})
}

func TestRecognizePatterns_Priority(t *testing.T) {
	e := New(domain.LanguageEnglish)

	tests := []struct {
		name  string
		tasks []domain.Task
		want  string
	}{
		{
			name: "medium dominates",
			tasks: []domain.Task{
				task(1, "a", withPriority(domain.PriorityMedium)),
				task(2, "b", withPriority(domain.PriorityMedium)),
				task(3, "c", withPriority(domain.PriorityHigh)),
			},
			want: `You use the "Medium" priority the most (2 tasks).`,
		},
		{
			name: "tie resolves to high",
			tasks: []domain.Task{
				task(1, "a", withPriority(domain.PriorityLow)),
				task(2, "b", withPriority(domain.PriorityHigh)),
			},
			want: `You use the "High" priority the most (1 tasks).`,
		},
		{
			name: "tie between medium and low resolves to medium",
			tasks: []domain.Task{
				task(1, "a", withPriority(domain.PriorityLow)),
				task(2, "b", withPriority(domain.PriorityMedium)),
			},
			want: `You use the "Medium" priority the most (1 tasks).`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := findPattern(e.RecognizePatterns(tt.tasks, nil, nil, evalTime), domain.PatternPriorityUsage)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Description)
		})
	}
}

func TestRecognizePatterns_PriorityLabelPortuguese(t *testing.T) {
	e := New(domain.LanguagePortuguese)
	tasks := []domain.Task{task(1, "a", withPriority(domain.PriorityHigh))}

	p, ok := findPattern(e.RecognizePatterns(tasks, nil, nil, evalTime), domain.PatternPriorityUsage)

	require.True(t, ok)
	assert.Equal(t, "Padrão de Prioridades", p.Title)
	assert.Equal(t, `Você usa mais a prioridade "Alta" (1 tarefas).`, p.Description)
}

func TestRecognizePatterns_RecentActivity(t *testing.T) {
	e := New(domain.LanguageEnglish)
	day := 24 * time.Hour

	t.Run("six days ago included, eight excluded", func(t *testing.T) {
		tasks := []domain.Task{
			task(1, "six", createdAgo(6*day)),
			task(2, "eight", createdAgo(8*day)),
		}
		p, ok := findPattern(e.RecognizePatterns(tasks, nil, nil, evalTime), domain.PatternRecentActivity)
		require.True(t, ok)
		assert.Equal(t, "You created 1 tasks in the last week.", p.Description)
		assert.Equal(t, "Keep up the pace of task creation.", p.Guidance)
	})

	t.Run("exactly seven days ago is included", func(t *testing.T) {
		tasks := []domain.Task{task(1, "edge", createdAgo(7*day))}
		_, ok := findPattern(e.RecognizePatterns(tasks, nil, nil, evalTime), domain.PatternRecentActivity)
		assert.True(t, ok)
	})

	t.Run("nothing recent", func(t *testing.T) {
		tasks := []domain.Task{task(1, "old", createdAgo(30*day))}
		_, ok := findPattern(e.RecognizePatterns(tasks, nil, nil, evalTime), domain.PatternRecentActivity)
		assert.False(t, ok)
	})

	t.Run("more than ten warns of overload", func(t *testing.T) {
		tasks := make([]domain.Task, 0, 11)
		for i := 0; i < 11; i++ {
			tasks = append(tasks, task(i+1, "t", createdAgo(time.Hour)))
		}
		p, ok := findPattern(e.RecognizePatterns(tasks, nil, nil, evalTime), domain.PatternRecentActivity)
		require.True(t, ok)
		assert.Equal(t, "You are very active! Be careful not to overload yourself.", p.Guidance)
	})

	t.Run("exactly ten keeps pace guidance", func(t *testing.T) {
		tasks := make([]domain.Task, 0, 10)
		for i := 0; i < 10; i++ {
			tasks = append(tasks, task(i+1, "t", createdAgo(time.Hour)))
		}
		p, ok := findPattern(e.RecognizePatterns(tasks, nil, nil, evalTime), domain.PatternRecentActivity)
		require.True(t, ok)
		assert.Equal(t, "Keep up the pace of task creation.", p.Guidance)
	})
}

func TestRecognizePatterns_Order(t *testing.T) {
	e := New(domain.LanguageEnglish)
	tasks := []domain.Task{task(1, "a", inCategory(1), createdAgo(time.Hour))}
	categories := []domain.Category{{ID: 1, Name: "Work"}}

	patterns := e.RecognizePatterns(tasks, categories, nil, evalTime)

	require.Len(t, patterns, 3)
	assert.Equal(t, domain.PatternTopCategory, patterns[0].Kind)
	assert.Equal(t, domain.PatternPriorityUsage, patterns[1].Kind)
	assert.Equal(t, domain.PatternRecentActivity, patterns[2].Kind)
}
