// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockSnapshotProvider is a test double for domain.SnapshotProvider.
// It is safe for concurrent use.
// Fields are ordered to minimize memory padding.
type MockSnapshotProvider struct {
	Snap  *domain.Snapshot
	Err   error
	calls int
	mu    sync.Mutex
}

// Ensure MockSnapshotProvider implements domain.SnapshotProvider interface.
var _ domain.SnapshotProvider = (*MockSnapshotProvider)(nil)

// NewMockSnapshotProvider creates a provider returning a copy of snap.
func NewMockSnapshotProvider(snap *domain.Snapshot) *MockSnapshotProvider {
	return &MockSnapshotProvider{Snap: snap}
}

// Snapshot returns the configured snapshot or error.
func (m *MockSnapshotProvider) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Snap == nil {
		return &domain.Snapshot{}, nil
	}
	snap := *m.Snap
	return &snap, nil
}

// SetErr changes the error returned by later calls.
func (m *MockSnapshotProvider) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// Calls returns how many times Snapshot was called.
func (m *MockSnapshotProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockDismissalStore is a test double for domain.DismissalStore.
// Fields are ordered to minimize memory padding.
type MockDismissalStore struct {
	Items      map[string]time.Time
	ListErr    error
	DismissErr error
	RestoreErr error
	mu         sync.Mutex
}

// Ensure MockDismissalStore implements domain.DismissalStore interface.
var _ domain.DismissalStore = (*MockDismissalStore)(nil)

// NewMockDismissalStore creates a new MockDismissalStore with the given ids dismissed.
func NewMockDismissalStore(ids ...string) *MockDismissalStore {
	m := &MockDismissalStore{Items: make(map[string]time.Time)}
	for _, id := range ids {
		m.Items[id] = time.Time{}
	}
	return m
}

// List returns the dismissals sorted by id.
func (m *MockDismissalStore) List() ([]domain.Dismissal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]domain.Dismissal, 0, len(m.Items))
	for id, at := range m.Items {
		out = append(out, domain.Dismissal{ID: id, DismissedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Dismiss records a dismissal, keeping the first timestamp.
func (m *MockDismissalStore) Dismiss(id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DismissErr != nil {
		return m.DismissErr
	}
	if _, ok := m.Items[id]; !ok {
		m.Items[id] = at
	}
	return nil
}

// Restore removes a dismissal.
func (m *MockDismissalStore) Restore(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RestoreErr != nil {
		return false, m.RestoreErr
	}
	if _, ok := m.Items[id]; !ok {
		return false, nil
	}
	delete(m.Items, id)
	return true, nil
}

// RestoreAll removes every dismissal.
func (m *MockDismissalStore) RestoreAll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RestoreErr != nil {
		return 0, m.RestoreErr
	}
	n := len(m.Items)
	m.Items = make(map[string]time.Time)
	return n, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	ProjectConfigInfo domain.ConfigInfo
	GlobalConfigInfo  domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
	LastForce         bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ProjectConfigInfo: domain.ConfigInfo{
			Path:   "/work/project/.taskpulse.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/taskpulse/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitProjectConfig records the call and returns configured error.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config, force bool) (string, error) {
	m.InitProjectCalled = true
	m.LastForce = force
	return m.ProjectConfigInfo.Path, m.InitProjectErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config, force bool) (string, error) {
	m.InitGlobalCalled = true
	m.LastForce = force
	return m.GlobalConfigInfo.Path, m.InitGlobalErr
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config, or defaults.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal behaves like Load.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// LogEntry is a single entry captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger records log entries. It is safe for concurrent use.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.add("INFO", category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(category, msg string) { m.add("WARN", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// Count returns how many entries were recorded at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockReportObserver records observed reports.
type MockReportObserver struct {
	Reports []*domain.Report
	mu      sync.Mutex
}

// ObserveReport records the report.
func (m *MockReportObserver) ObserveReport(report *domain.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, report)
}
