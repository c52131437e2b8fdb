// Package jsonstore provides a JSON file-based implementation of DismissalStore.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Dismissed map[string]time.Time `json:"dismissed"`
	Meta      meta                 `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Version int `json:"version"`
}

const storeVersion = 1

// Store implements domain.DismissalStore using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// List returns dismissed suggestions sorted by ID.
func (s *Store) List() ([]domain.Dismissal, error) {
	var items []domain.Dismissal
	err := s.withLock(func(data *storeData) error {
		items = make([]domain.Dismissal, 0, len(data.Dismissed))
		for id, at := range data.Dismissed {
			items = append(items, domain.Dismissal{ID: id, DismissedAt: at})
		}
		return nil
	})

	slices.SortFunc(items, func(a, b domain.Dismissal) int {
		return strings.Compare(a.ID, b.ID)
	})

	return items, err
}

// Dismiss records id as dismissed. Dismissing twice keeps the first timestamp.
func (s *Store) Dismiss(id string, at time.Time) error {
	return s.withLockWrite(func(data *storeData) error {
		if _, ok := data.Dismissed[id]; ok {
			return nil
		}
		data.Dismissed[id] = at.UTC()
		return nil
	})
}

// Restore removes id from the dismissed set. It reports whether id was dismissed.
func (s *Store) Restore(id string) (bool, error) {
	var found bool
	err := s.withLockWrite(func(data *storeData) error {
		_, found = data.Dismissed[id]
		delete(data.Dismissed, id)
		return nil
	})
	return found, err
}

// RestoreAll clears every dismissal and returns how many were removed.
func (s *Store) RestoreAll() (int, error) {
	var n int
	err := s.withLockWrite(func(data *storeData) error {
		n = len(data.Dismissed)
		clear(data.Dismissed)
		return nil
	})
	return n, err
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	data := storeData{Meta: meta{Version: storeVersion}}

	content, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read store file: %w", err)
		}
		content = nil
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreCorrupted, s.path, err)
		}
	}

	if data.Dismissed == nil {
		data.Dismissed = make(map[string]time.Time)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements DismissalStore.
var _ domain.DismissalStore = (*Store)(nil)
