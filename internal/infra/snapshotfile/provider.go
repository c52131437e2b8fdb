// Package snapshotfile reads task snapshots from JSON or YAML files.
package snapshotfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Ensure Provider implements domain.SnapshotProvider.
var _ domain.SnapshotProvider = (*Provider)(nil)

// Provider implements domain.SnapshotProvider by re-reading a file on every call.
type Provider struct {
	clock domain.Clock
	path  string
}

// New creates a Provider for path. The extension selects the format.
func New(path string, clock domain.Clock) (*Provider, error) {
	if path == "" {
		return nil, domain.ErrMissingSnapshotFile
	}
	if _, err := formatOf(path); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Provider{path: path, clock: clock}, nil
}

// Path returns the snapshot file path.
func (p *Provider) Path() string {
	return p.path
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
}

// Snapshot reads and decodes the file.
func (p *Provider) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	snap, err := Decode(p.path, data)
	if err != nil {
		return nil, err
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = p.clock.Now()
	}
	return snap, nil
}

// Decode parses data in the format implied by name's extension.
func Decode(name string, data []byte) (*domain.Snapshot, error) {
	f, err := formatOf(name)
	if err != nil {
		return nil, err
	}

	var snap domain.Snapshot
	switch f {
	case formatJSON:
		err = json.Unmarshal(data, &snap)
	case formatYAML:
		err = yaml.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidSnapshot, filepath.Base(name), err)
	}

	if snap.Tasks == nil {
		snap.Tasks = []domain.Task{}
	}
	if snap.Categories == nil {
		snap.Categories = []domain.Category{}
	}
	if snap.Lists == nil {
		snap.Lists = []domain.TaskList{}
	}
	return &snap, nil
}
