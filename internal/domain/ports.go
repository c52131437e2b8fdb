package domain

import (
	"context"
	"time"
)

// SnapshotProvider supplies a fully materialized snapshot.
type SnapshotProvider interface {
	// Snapshot fetches tasks, categories and lists.
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Dismissal records that a suggestion was hidden by the user.
type Dismissal struct {
	DismissedAt time.Time `json:"dismissed_at"`
	ID          string    `json:"id"`
}

// DismissalStore persists dismissed suggestion ids.
type DismissalStore interface {
	// List returns all dismissals.
	List() ([]Dismissal, error)

	// Dismiss records a dismissal. Dismissing twice keeps the first timestamp.
	Dismiss(id string, at time.Time) error

	// Restore removes a dismissal. Returns false if id was not dismissed.
	Restore(id string) (bool, error)

	// RestoreAll removes every dismissal and returns how many were removed.
	RestoreAll() (int, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults, global, project, environment).
	Load() (*Config, error)

	// LoadGlobal returns defaults merged with the global configuration only.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// InitGlobalConfig writes the config template to the global config path.
	InitGlobalConfig(cfg *Config, force bool) (string, error)

	// InitProjectConfig writes the config template to the project config path.
	InitProjectConfig(cfg *Config, force bool) (string, error)
}

// ReportObserver is notified of every report built, before dismissals are applied.
type ReportObserver interface {
	ObserveReport(report *Report)
}

// Logger writes categorized log entries.
type Logger interface {
	Info(category, msg string)
	Debug(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Info(string, string)  {}
func (NopLogger) Debug(string, string) {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
