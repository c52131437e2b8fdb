// Package insight derives productivity insights, usage patterns, suggestions
// and optimization opportunities from a task snapshot.
//
// The engine is pure: it performs no I/O, holds no mutable state and never
// reads the wall clock. Evaluation time is always passed in by the caller.
package insight

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Engine renders report sections in one language.
type Engine struct {
	printer *message.Printer
	lang    language.Tag
}

// New creates an Engine for the given language ("pt-BR", "en").
// Unknown languages fall back to Brazilian Portuguese.
func New(lang string) *Engine {
	tag := ParseLanguage(lang)
	return &Engine{
		lang:    tag,
		printer: message.NewPrinter(tag),
	}
}

// Language returns the BCP 47 tag of the report language.
func (e *Engine) Language() string {
	return e.lang.String()
}

// T formats a catalog message in the engine language.
func (e *Engine) T(key string, args ...any) string {
	return e.printer.Sprintf(key, args...)
}

// PriorityLabel returns the localized priority label.
func (e *Engine) PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return e.T(msgPriorityHigh)
	case domain.PriorityMedium:
		return e.T(msgPriorityMedium)
	case domain.PriorityLow:
		return e.T(msgPriorityLow)
	}
	return string(p)
}

// EffortLabel returns the localized effort label.
func (e *Engine) EffortLabel(effort domain.Effort) string {
	switch effort {
	case domain.EffortLow:
		return e.T(msgEffortLow)
	case domain.EffortMedium:
		return e.T(msgEffortMedium)
	case domain.EffortHigh:
		return e.T(msgEffortHigh)
	}
	return string(effort)
}

// FormatDate formats t as a calendar date in the engine language.
func (e *Engine) FormatDate(t time.Time) string {
	return t.Format(e.T(msgDateLayout))
}

// FormatDateTime formats t as a calendar date and clock time in the engine language.
func (e *Engine) FormatDateTime(t time.Time) string {
	return e.FormatDate(t) + " " + t.Format("15:04")
}

// percent returns part/total as a 0-100 percentage, or 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DisplayRate rounds a percentage to the nearest integer for display.
func DisplayRate(rate float64) int {
	return int(math.Round(rate))
}
