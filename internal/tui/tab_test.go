package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTab_NextPrev(t *testing.T) {
	assert.Equal(t, TabSuggestions, TabInsights.Next())
	assert.Equal(t, TabInsights, TabOptimizations.Next())
	assert.Equal(t, TabOptimizations, TabInsights.Prev())
	assert.Equal(t, TabPatterns, TabOptimizations.Prev())
}

func TestTab_String(t *testing.T) {
	for _, tab := range Tabs() {
		assert.NotEqual(t, "unknown", tab.String())
	}
	assert.Equal(t, "unknown", Tab(42).String())
}
