package tui

// Tab identifies a dashboard panel.
type Tab int

const (
	TabInsights Tab = iota
	TabSuggestions
	TabPatterns
	TabOptimizations
	tabCount
)

// String returns the catalog key of the tab title.
func (t Tab) String() string {
	switch t {
	case TabInsights:
		return "Insights"
	case TabSuggestions:
		return "Suggestions"
	case TabPatterns:
		return "Patterns"
	case TabOptimizations:
		return "Optimizations"
	default:
		return "unknown"
	}
}

// Next returns the following tab, wrapping around.
func (t Tab) Next() Tab {
	return (t + 1) % tabCount
}

// Prev returns the previous tab, wrapping around.
func (t Tab) Prev() Tab {
	return (t + tabCount - 1) % tabCount
}

// Tabs returns all tabs in display order.
func Tabs() []Tab {
	return []Tab{TabInsights, TabSuggestions, TabPatterns, TabOptimizations}
}
