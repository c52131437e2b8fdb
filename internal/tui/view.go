package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/insight"
)

// maxBarWidth caps the weekly trend bars.
const maxBarWidth = 30

// View renders the dashboard.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n")

	switch {
	case m.report == nil && m.err == nil:
		b.WriteString("\n" + m.spinner.View() + " " + m.styles.Muted.Render("loading report..."))
	case m.report != nil:
		b.WriteString(m.viewBody())
	}

	b.WriteString(m.viewFooter())
	return m.styles.App.Render(b.String())
}

func (m *Model) viewHeader() string {
	header := m.styles.Header.Render("taskpulse · " + m.engine.T("Insights"))
	status := ""
	switch {
	case m.loading && m.report != nil:
		status = m.spinner.View()
	case !m.lastUpdated.IsZero():
		status = m.styles.Updated.Render(m.engine.FormatDate(m.lastUpdated) + " " + m.lastUpdated.Format("15:04:05"))
	}
	if status == "" {
		return header
	}
	return header + "  " + status
}

func (m *Model) viewTabs() string {
	tabs := make([]string, 0, len(Tabs()))
	for _, t := range Tabs() {
		label := m.engine.T(t.String())
		if m.report != nil {
			if n := m.tabCount(t); n >= 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// tabCount returns the number of items shown on t, or -1 when not applicable.
func (m *Model) tabCount(t Tab) int {
	switch t {
	case TabSuggestions:
		return len(m.report.Suggestions)
	case TabPatterns:
		return len(m.report.Patterns)
	case TabOptimizations:
		return len(m.report.Optimizations)
	default:
		return -1
	}
}

func (m *Model) viewBody() string {
	switch m.tab {
	case TabSuggestions:
		return m.viewSuggestions()
	case TabPatterns:
		return m.viewPatterns()
	case TabOptimizations:
		return m.viewOptimizations()
	default:
		return m.viewInsights()
	}
}

func (m *Model) viewInsights() string {
	var b strings.Builder
	r := m.report

	b.WriteString(m.styles.Section.Render(m.engine.T("Productivity")) + "\n")
	for _, in := range r.Productivity {
		b.WriteString(m.styles.SeverityStyle(in.Severity).Render(in.Title) + "\n")
		b.WriteString(m.styles.Description.Render(in.Description) + "\n")
		b.WriteString(m.styles.Muted.Render("→ "+in.Action) + "\n")
	}

	b.WriteString(m.styles.Section.Render(m.engine.T("Deadlines")) + "\n")
	b.WriteString(m.viewAlerts(r.Alerts))

	b.WriteString(m.styles.Section.Render(m.engine.T("SUMMARY")) + "\n")
	b.WriteString(m.statLine(m.engine.T("Total tasks"), r.Stats.Total))
	b.WriteString(m.statLine(m.engine.T("Completed tasks"), r.Stats.Completed))
	b.WriteString(m.statLine(m.engine.T("Pending tasks"), r.Stats.Pending))
	b.WriteString(m.statLine(m.engine.T("Overdue tasks"), r.Stats.Overdue))
	b.WriteString(m.styles.Label.Render(m.engine.T("Completion rate")) + " " +
		m.styles.Value.Render(fmt.Sprintf("%d%%", insight.DisplayRate(r.Stats.CompletionRate))) + "\n")

	b.WriteString(m.styles.Section.Render(m.engine.T("BY PRIORITY")) + "\n")
	for _, p := range domain.Priorities() {
		b.WriteString(m.statLine(m.engine.PriorityLabel(p), r.Breakdown.ByPriority.Get(p)))
	}

	b.WriteString(m.styles.Section.Render(m.engine.T("Weekly trend")) + "\n")
	b.WriteString(m.viewTrend(r.Breakdown.Weekly))
	return b.String()
}

func (m *Model) viewAlerts(alerts []domain.Alert) string {
	if len(alerts) == 0 {
		return m.styles.Muted.Render(m.engine.T("No upcoming deadlines.")) + "\n"
	}
	var b strings.Builder
	for _, a := range alerts {
		b.WriteString(m.styles.SeverityStyle(a.Severity).Render(a.Title) + " " +
			m.styles.Description.Render(a.Message) + " " +
			m.styles.Muted.Render(m.engine.FormatDateTime(a.DueDate)) + "\n")
	}
	return b.String()
}

func (m *Model) statLine(label string, n int) string {
	return m.styles.Label.Render(label) + " " + m.styles.Value.Render(fmt.Sprintf("%d", n)) + "\n"
}

func (m *Model) viewTrend(weeks []domain.WeekBucket) string {
	peak := 1
	for _, w := range weeks {
		peak = max(peak, w.Created, w.Completed)
	}

	var b strings.Builder
	for _, w := range weeks {
		created := strings.Repeat("█", w.Created*maxBarWidth/peak)
		completed := strings.Repeat("█", w.Completed*maxBarWidth/peak)
		fmt.Fprintf(&b, "%-7s %s %s %d\n", w.Label,
			m.styles.Muted.Render(m.engine.T("Created")),
			m.styles.BarCreated.Render(created), w.Created)
		fmt.Fprintf(&b, "%-7s %s %s %d\n", "",
			m.styles.Muted.Render(m.engine.T("Completed")),
			m.styles.BarCompleted.Render(completed), w.Completed)
	}
	return b.String()
}

func (m *Model) viewSuggestions() string {
	var b strings.Builder
	r := m.report
	if len(r.Suggestions) == 0 {
		b.WriteString("\n" + m.styles.Muted.Render(m.engine.T("No suggestions right now.")) + "\n")
	}
	for i, s := range r.Suggestions {
		cursor := "  "
		title := m.styles.SuggestionStyle(s.Kind).Render(s.Title)
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
			title = m.styles.Selected.Render(s.Title)
		}
		b.WriteString("\n" + cursor + title + m.styles.Muted.Render(" ["+s.ID+"]") + "\n")
		b.WriteString("  " + m.styles.Description.Render(s.Description) + "\n")
		b.WriteString("  " + m.styles.Label.Render(m.engine.T("Action")) + " " + m.styles.Value.Render(s.Action) + "\n")
	}
	if m.hidden > 0 {
		b.WriteString("\n" + m.styles.Muted.Render(m.engine.T("%d suggestion(s) hidden.", m.hidden)) + "\n")
	}
	return b.String()
}

func (m *Model) viewPatterns() string {
	var b strings.Builder
	if len(m.report.Patterns) == 0 {
		b.WriteString("\n" + m.styles.Muted.Render(m.engine.T("No patterns detected yet.")) + "\n")
	}
	for _, p := range m.report.Patterns {
		b.WriteString("\n" + m.styles.Title.Render(p.Title) + "\n")
		b.WriteString(m.styles.Description.Render(p.Description) + "\n")
		b.WriteString(m.styles.Muted.Render("→ "+p.Guidance) + "\n")
	}
	return b.String()
}

func (m *Model) viewOptimizations() string {
	var b strings.Builder
	if len(m.report.Optimizations) == 0 {
		b.WriteString("\n" + m.styles.Muted.Render(m.engine.T("No optimizations found.")) + "\n")
	}
	for _, o := range m.report.Optimizations {
		b.WriteString("\n" + m.styles.Title.Render(o.Title) + "\n")
		b.WriteString(m.styles.Description.Render(o.Description) + "\n")
		b.WriteString(m.styles.Label.Render(m.engine.T("Impact")) + " " + m.styles.Value.Render(o.Impact) + "\n")
		b.WriteString(m.styles.Label.Render(m.engine.T("Effort")) + " " + m.styles.Value.Render(o.EffortLabel) + "\n")
	}
	return b.String()
}

func (m *Model) viewFooter() string {
	var lines []string
	if m.err != nil {
		lines = append(lines, m.styles.ErrorMsg.Render("error: "+m.err.Error()))
	}
	if m.notice != "" {
		lines = append(lines, m.styles.Muted.Render(m.notice))
	}
	lines = append(lines, m.help.View(m.keys))
	return m.styles.Footer.Render(strings.Join(lines, "\n"))
}
