package app

import (
	"context"
	"sync"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Ensure lazySource implements domain.SnapshotProvider.
var _ domain.SnapshotProvider = (*lazySource)(nil)

// lazySource builds the configured snapshot provider on first use.
// A broken [source] or [api] section only fails commands that fetch snapshots.
type lazySource struct {
	build    func() (domain.SnapshotProvider, error)
	provider domain.SnapshotProvider
	err      error
	once     sync.Once
}

func newLazySource(build func() (domain.SnapshotProvider, error)) *lazySource {
	return &lazySource{build: build}
}

// Snapshot builds the provider once and delegates to it.
func (s *lazySource) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	s.once.Do(func() {
		s.provider, s.err = s.build()
	})
	if s.err != nil {
		return nil, s.err
	}
	return s.provider.Snapshot(ctx)
}
