package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

// WatchReportInput contains the parameters for watching reports.
type WatchReportInput struct {
	OnReport         func(*BuildReportOutput, error) // Called after every rebuild; receives fetch errors too
	Language         string
	Interval         time.Duration // Poll interval (default: 5 minutes, at most 30 minutes)
	IncludeDismissed bool
}

// WatchReportOutput contains the result of a watch session.
type WatchReportOutput struct {
	Builds int // Number of rebuild attempts, failed ones included
}

// WatchReport rebuilds the report at a fixed interval until the context ends.
type WatchReport struct {
	build  *BuildReport
	logger domain.Logger
}

// NewWatchReport creates a new WatchReport use case.
func NewWatchReport(build *BuildReport, logger domain.Logger) *WatchReport {
	return &WatchReport{
		build:  build,
		logger: logger,
	}
}

// Execute builds once immediately, then once per tick.
// A failed build is handed to the callback and does not stop the loop.
// Context cancellation is a normal exit.
func (uc *WatchReport) Execute(ctx context.Context, in WatchReportInput) (*WatchReportOutput, error) {
	if in.OnReport == nil {
		return nil, errors.New("watch: OnReport callback is required")
	}
	if in.Interval <= 0 {
		in.Interval = domain.DefaultRefreshInterval
	}
	// Deadline alerts must be rechecked at least this often
	in.Interval = min(in.Interval, domain.DeadlineCheckInterval)

	out := &WatchReportOutput{}
	uc.rebuild(ctx, in, out)

	ticker := time.NewTicker(in.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return out, nil
			}
			return out, ctx.Err()
		case <-ticker.C:
			uc.rebuild(ctx, in, out)
		}
	}
}

func (uc *WatchReport) rebuild(ctx context.Context, in WatchReportInput, out *WatchReportOutput) {
	out.Builds++
	res, err := uc.build.Execute(ctx, BuildReportInput{
		Language:         in.Language,
		IncludeDismissed: in.IncludeDismissed,
	})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		uc.logger.Warn("watch", fmt.Sprintf("rebuild %d failed: %v", out.Builds, err))
	}
	in.OnReport(res, err)
}
