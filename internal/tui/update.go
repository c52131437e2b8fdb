package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgTick:
		cmds := []tea.Cmd{m.scheduleTick()}
		if !m.loading {
			cmds = append(cmds, m.startLoading())
		}
		return m, tea.Batch(cmds...)

	case MsgReportLoaded:
		if msg.Gen != m.generation {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.report = msg.Report
		m.hidden = msg.Hidden
		m.lastUpdated = msg.At
		m.clampCursor()
		return m, nil

	case MsgDismissed:
		m.notice = "dismissed " + msg.ID
		return m, m.startLoading()

	case MsgError:
		if msg.Gen != 0 && msg.Gen != m.generation {
			return m, nil
		}
		if msg.Gen != 0 {
			m.loading = false
		}
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = m.tab.Next()
		m.notice = ""

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = m.tab.Prev()
		m.notice = ""

	case key.Matches(msg, m.keys.Up):
		if m.tab == TabSuggestions && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.tab == TabSuggestions && m.report != nil && m.cursor < len(m.report.Suggestions)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Dismiss):
		if m.tab == TabSuggestions {
			return m, m.dismissSelected()
		}

	case key.Matches(msg, m.keys.Refresh):
		if !m.loading {
			return m, m.startLoading()
		}

	case key.Matches(msg, m.keys.ToggleAll):
		m.includeDismissed = !m.includeDismissed
		return m, m.startLoading()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) startLoading() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.loadReport())
}

func (m *Model) clampCursor() {
	n := 0
	if m.report != nil {
		n = len(m.report.Suggestions)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
