// Package tui implements the interactive insights dashboard.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/insight"
	"github.com/runoshun/taskpulse/internal/usecase"
)

// Options configures the dashboard.
type Options struct {
	Language         string        // Report language; empty uses the configured default
	Interval         time.Duration // Auto-refresh interval; zero uses the configured default
	IncludeDismissed bool
}

// Model is the main bubbletea model for the dashboard.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	build     *usecase.BuildReport
	dismiss   *usecase.DismissSuggestion
	engine    *insight.Engine
	report    *domain.Report
	err       error

	// Components
	keys    KeyMap
	styles  Styles
	help    help.Model
	spinner spinner.Model

	lastUpdated time.Time
	notice      string
	language    string
	interval    time.Duration

	// Numeric state (smaller types last)
	generation       uint64 // Incremented per load; only the latest load's result is applied
	tab              Tab
	cursor           int
	hidden           int
	width            int
	height           int
	loading          bool
	includeDismissed bool
}

// New creates a new dashboard Model with the given container.
func New(c *app.Container, opts Options) *Model {
	lang := opts.Language
	if lang == "" {
		lang = c.AppConfig.Report.Language
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = c.AppConfig.RefreshInterval()
	}
	interval = min(interval, domain.DeadlineCheckInterval)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = DefaultStyles().Muted

	return &Model{
		container:        c,
		build:            c.BuildReportUseCase(),
		dismiss:          c.DismissSuggestionUseCase(),
		engine:           insight.New(lang),
		keys:             DefaultKeyMap(),
		styles:           DefaultStyles(),
		help:             help.New(),
		spinner:          sp,
		language:         lang,
		interval:         interval,
		includeDismissed: opts.IncludeDismissed,
		loading:          true,
	}
}

// Run starts the dashboard program and blocks until it exits.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadReport(),
		m.scheduleTick(),
	)
}

// loadReport returns a command that builds a fresh report.
// Each call starts a new generation and supersedes loads still in flight.
func (m *Model) loadReport() tea.Cmd {
	m.generation++
	gen := m.generation
	build := m.build
	in := usecase.BuildReportInput{
		Language:         m.language,
		IncludeDismissed: m.includeDismissed,
	}
	clock := m.container.Clock
	return func() tea.Msg {
		out, err := build.Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err, Gen: gen}
		}
		return MsgReportLoaded{Report: out.Report, Hidden: out.Hidden, At: clock.Now(), Gen: gen}
	}
}

// dismissSelected returns a command that dismisses the selected suggestion.
func (m *Model) dismissSelected() tea.Cmd {
	s := m.SelectedSuggestion()
	if s == nil {
		return nil
	}
	id := s.ID
	dismiss := m.dismiss
	return func() tea.Msg {
		if _, err := dismiss.Execute(context.Background(), usecase.DismissSuggestionInput{ID: id}); err != nil {
			return MsgError{Err: fmt.Errorf("dismiss %s: %w", id, err)}
		}
		return MsgDismissed{ID: id}
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return MsgTick{At: t}
	})
}

// SelectedSuggestion returns the suggestion under the cursor, or nil if none.
func (m *Model) SelectedSuggestion() *domain.Suggestion {
	if m.report == nil || m.cursor < 0 || m.cursor >= len(m.report.Suggestions) {
		return nil
	}
	return &m.report.Suggestions[m.cursor]
}

// Tab returns the active tab.
func (m *Model) Tab() Tab {
	return m.tab
}

// Report returns the report currently displayed.
func (m *Model) Report() *domain.Report {
	return m.report
}
