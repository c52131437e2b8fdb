// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/insight"
)

// BuildReportInput contains the parameters for building a report.
type BuildReportInput struct {
	Language         string // Report language; empty uses the configured default
	IncludeDismissed bool   // Keep suggestions the user dismissed
}

// BuildReportOutput contains the built report.
type BuildReportOutput struct {
	Report *domain.Report
	Hidden int // Number of dismissed suggestions removed from the report
}

// BuildReport fetches a snapshot and runs the insight engine over it.
// Fields are ordered to minimize memory padding.
type BuildReport struct {
	provider   domain.SnapshotProvider
	dismissals domain.DismissalStore
	clock      domain.Clock
	logger     domain.Logger
	observer   domain.ReportObserver
	language   string
}

// NewBuildReport creates a new BuildReport use case.
// observer may be nil.
func NewBuildReport(
	provider domain.SnapshotProvider,
	dismissals domain.DismissalStore,
	clock domain.Clock,
	logger domain.Logger,
	observer domain.ReportObserver,
	language string,
) *BuildReport {
	return &BuildReport{
		provider:   provider,
		dismissals: dismissals,
		clock:      clock,
		logger:     logger,
		observer:   observer,
		language:   language,
	}
}

// Execute builds the report for the current snapshot.
func (uc *BuildReport) Execute(ctx context.Context, in BuildReportInput) (*BuildReportOutput, error) {
	snapshot, err := uc.provider.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("report", fmt.Sprintf("fetch snapshot: %v", err))
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		uc.logger.Error("report", err.Error())
		return nil, err
	}

	lang := in.Language
	if lang == "" {
		lang = uc.language
	}

	now := uc.clock.Now()
	report := insight.New(lang).BuildReport(snapshot, now)
	if uc.observer != nil {
		uc.observer.ObserveReport(report)
	}

	hidden := 0
	if !in.IncludeDismissed {
		hidden, err = uc.hideDismissed(report)
		if err != nil {
			return nil, err
		}
	}

	uc.logger.Info("report", fmt.Sprintf("built report: %d tasks, %d categories, %d lists, %d suggestions, %d hidden",
		len(snapshot.Tasks), len(snapshot.Categories), len(snapshot.Lists), len(report.Suggestions), hidden))

	return &BuildReportOutput{
		Report: report,
		Hidden: hidden,
	}, nil
}

// hideDismissed removes dismissed suggestions from the report in place.
func (uc *BuildReport) hideDismissed(report *domain.Report) (int, error) {
	dismissals, err := uc.dismissals.List()
	if err != nil {
		return 0, fmt.Errorf("list dismissals: %w", err)
	}
	if len(dismissals) == 0 {
		return 0, nil
	}

	dismissed := make(map[string]struct{}, len(dismissals))
	for _, d := range dismissals {
		dismissed[d.ID] = struct{}{}
	}

	visible := make([]domain.Suggestion, 0, len(report.Suggestions))
	for _, s := range report.Suggestions {
		if _, ok := dismissed[s.ID]; ok {
			continue
		}
		visible = append(visible, s)
	}
	hidden := len(report.Suggestions) - len(visible)
	report.Suggestions = visible
	return hidden, nil
}
