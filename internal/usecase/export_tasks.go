package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/insight"
)

// ExportTasksInput contains the parameters for exporting the task list.
type ExportTasksInput struct {
	Writer   io.Writer // Destination of the CSV document
	Language string    // Header and status language; empty uses the configured default
}

// ExportTasksOutput contains the result of a task export.
type ExportTasksOutput struct {
	FileName string // Suggested file name for the export
	Tasks    int    // Number of task rows written
}

// ExportTasks writes one CSV row per task of the current snapshot.
// Fields are ordered to minimize memory padding.
type ExportTasks struct {
	provider domain.SnapshotProvider
	clock    domain.Clock
	logger   domain.Logger
	language string
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(provider domain.SnapshotProvider, clock domain.Clock, logger domain.Logger, language string) *ExportTasks {
	return &ExportTasks{
		provider: provider,
		clock:    clock,
		logger:   logger,
		language: language,
	}
}

// Execute fetches the snapshot and writes the task rows in snapshot order.
func (uc *ExportTasks) Execute(ctx context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	snapshot, err := uc.provider.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("export", fmt.Sprintf("fetch snapshot: %v", err))
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		uc.logger.Error("export", err.Error())
		return nil, err
	}

	lang := in.Language
	if lang == "" {
		lang = uc.language
	}
	e := insight.New(lang)

	w := csv.NewWriter(in.Writer)
	if err := w.WriteAll(TaskRows(e, snapshot.Tasks)); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	uc.logger.Info("export", fmt.Sprintf("exported %d tasks", len(snapshot.Tasks)))

	return &ExportTasksOutput{
		FileName: TasksFileName(e.Language(), uc.clock.Now()),
		Tasks:    len(snapshot.Tasks),
	}, nil
}

// TaskRows returns the header row followed by one row per task:
// title, description, priority, status and creation date.
func TaskRows(e *insight.Engine, tasks []domain.Task) [][]string {
	rows := make([][]string, 0, len(tasks)+1)
	rows = append(rows, []string{e.T("Title"), e.T("Description"), e.T("Priority"), e.T("Status"), e.T("Created on")})
	for i := range tasks {
		t := &tasks[i]
		status := e.T("Pending")
		if t.Completed {
			status = e.T("Done")
		}
		rows = append(rows, []string{t.Title, t.Description, string(t.Priority), status, e.FormatDate(t.CreatedAt)})
	}
	return rows
}

// TasksFileName returns the default task export file name for lang at now.
func TasksFileName(lang string, now time.Time) string {
	prefix := "tasks"
	if lang == domain.LanguagePortuguese {
		prefix = "tarefas"
	}
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}
