package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Colors defines the color palette.
var Colors = struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Highlight  lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray
	Text:       lipgloss.Color("#DFE6E9"), // Light gray
	Highlight:  lipgloss.Color("#FFEAA7"), // Pale yellow
}

// Styles contains all the lipgloss styles used by the dashboard and text reports.
type Styles struct {
	App lipgloss.Style

	// Header
	Header    lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Updated   lipgloss.Style

	// Sections
	Section     lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style

	// Severity
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Selection
	Cursor   lipgloss.Style
	Selected lipgloss.Style

	// Trend bars
	BarCreated   lipgloss.Style
	BarCompleted lipgloss.Style

	Footer   lipgloss.Style
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Tab: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Highlight).
			Background(Colors.Primary).
			Padding(0, 1),

		Updated: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary).
			MarginTop(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text),

		Description: lipgloss.NewStyle().
			Foreground(Colors.Text),

		Label: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(20),

		Value: lipgloss.NewStyle().
			Foreground(Colors.Text),

		Muted: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Success),

		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Error),

		Cursor: lipgloss.NewStyle().
			Foreground(Colors.Highlight).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(Colors.Highlight),

		BarCreated: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		BarCompleted: lipgloss.NewStyle().
			Foreground(Colors.Success),

		Footer: lipgloss.NewStyle().
			MarginTop(1),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),
	}
}

// SeverityStyle returns the style for a productivity insight severity.
func (s Styles) SeverityStyle(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeveritySuccess:
		return s.Success
	case domain.SeverityWarning:
		return s.Warning
	case domain.SeverityError:
		return s.Error
	default:
		return s.Title
	}
}

// SuggestionStyle returns the style for a suggestion kind.
func (s Styles) SuggestionStyle(kind domain.SuggestionKind) lipgloss.Style {
	switch kind {
	case domain.SuggestionUrgent:
		return s.Error
	case domain.SuggestionOptimization:
		return s.Warning
	default:
		return s.Title
	}
}
