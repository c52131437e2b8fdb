package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Output   string
		Dir      string
		Language string
		Tasks    bool
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the productivity summary as CSV",
		Long: `Export the productivity summary (totals, completion rate and tasks per
priority) as a two-column CSV document.

With --tasks, the task list is exported instead: one row per task with its
title, description, priority, status and creation date.

By default the CSV is written to stdout. Use --output to choose a file, or
--dir to write it under its default name (e.g. productivity_report_2025-06-15.csv
or tasks_2025-06-15.csv).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Output != "" && opts.Dir != "" {
				return errors.New("--output and --dir cannot be used together")
			}

			var buf bytes.Buffer
			var fileName string
			if opts.Tasks {
				out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{
					Writer:   &buf,
					Language: opts.Language,
				})
				if err != nil {
					return err
				}
				fileName = out.FileName
			} else {
				out, err := c.ExportReportUseCase().Execute(cmd.Context(), usecase.ExportReportInput{
					Writer:   &buf,
					Language: opts.Language,
				})
				if err != nil {
					return err
				}
				fileName = out.FileName
			}

			path := opts.Output
			if opts.Dir != "" {
				path = filepath.Join(opts.Dir, fileName)
			}
			if path == "" || path == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}

			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // exported report is meant to be shared
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported report to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "O", "", "Write the CSV to this file (\"-\" for stdout)")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", "", "Write the CSV under its default name in this directory")
	cmd.Flags().StringVarP(&opts.Language, "lang", "l", "", "Label language (pt-BR or en)")
	cmd.Flags().BoolVarP(&opts.Tasks, "tasks", "t", false, "Export one row per task instead of the summary")

	return cmd
}
