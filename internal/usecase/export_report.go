package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/insight"
)

// ExportReportInput contains the parameters for exporting a report.
type ExportReportInput struct {
	Writer   io.Writer // Destination of the CSV document
	Language string    // Label language; empty uses the configured default
}

// ExportReportOutput contains the result of an export.
type ExportReportOutput struct {
	Report   *domain.Report
	FileName string // Suggested file name for the export
}

// ExportReport writes the productivity summary as a two-column CSV document.
type ExportReport struct {
	build  *BuildReport
	logger domain.Logger
}

// NewExportReport creates a new ExportReport use case.
func NewExportReport(build *BuildReport, logger domain.Logger) *ExportReport {
	return &ExportReport{
		build:  build,
		logger: logger,
	}
}

// Execute builds the report and writes the summary rows.
func (uc *ExportReport) Execute(ctx context.Context, in ExportReportInput) (*ExportReportOutput, error) {
	out, err := uc.build.Execute(ctx, BuildReportInput{
		Language:         in.Language,
		IncludeDismissed: true,
	})
	if err != nil {
		return nil, err
	}

	report := out.Report
	e := insight.New(report.Language)
	rows := SummaryRows(e, report)

	w := csv.NewWriter(in.Writer)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	uc.logger.Info("export", fmt.Sprintf("exported summary with %d rows", len(rows)))

	return &ExportReportOutput{
		Report:   report,
		FileName: ExportFileName(report),
	}, nil
}

// SummaryRows returns the label/value rows of the productivity summary.
func SummaryRows(e *insight.Engine, report *domain.Report) [][]string {
	stats := report.Stats
	counts := report.Breakdown.ByPriority
	itoa := strconv.Itoa

	return [][]string{
		{e.T("Productivity Report"), ""},
		{e.T("Generated on"), e.FormatDate(report.GeneratedAt)},
		{"", ""},
		{e.T("SUMMARY"), ""},
		{e.T("Total tasks"), itoa(stats.Total)},
		{e.T("Completed tasks"), itoa(stats.Completed)},
		{e.T("Pending tasks"), itoa(stats.Pending)},
		{e.T("Overdue tasks"), itoa(stats.Overdue)},
		{e.T("Completion rate"), e.T("%d%%", insight.DisplayRate(stats.CompletionRate))},
		{"", ""},
		{e.T("BY PRIORITY"), ""},
		{e.T("High priority"), itoa(counts.High)},
		{e.T("Medium priority"), itoa(counts.Medium)},
		{e.T("Low priority"), itoa(counts.Low)},
	}
}

// ExportFileName returns the default export file name for report.
func ExportFileName(report *domain.Report) string {
	prefix := "productivity_report"
	if report.Language == domain.LanguagePortuguese {
		prefix = "relatorio_produtividade"
	}
	return fmt.Sprintf("%s_%s.csv", prefix, report.GeneratedAt.Format("2006-01-02"))
}
