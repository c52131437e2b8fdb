package tui

import (
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Msg is the sealed interface for all dashboard messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgReportLoaded is sent when a report build finishes.
type MsgReportLoaded struct {
	At     time.Time
	Report *domain.Report
	Hidden int
	Gen    uint64 // Load generation that produced the report
}

func (MsgReportLoaded) sealed() {}

// MsgDismissed is sent after a suggestion was dismissed.
type MsgDismissed struct {
	ID string
}

func (MsgDismissed) sealed() {}

// MsgTick triggers a periodic refresh.
type MsgTick struct {
	At time.Time
}

func (MsgTick) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
	Gen uint64 // Load generation; zero for errors outside report loading
}

func (MsgError) sealed() {}
