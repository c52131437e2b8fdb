// Package cli provides the command-line interface for taskpulse.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/tui"
)

// Command group IDs.
const (
	groupReport      = "report"
	groupSuggestions = "suggestions"
	groupSetup       = "setup"
)

// launchTUIFunc is a function variable for launching the dashboard, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for taskpulse.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var snapshotFile string

	root := &cobra.Command{
		Use:   "taskpulse",
		Short: "Productivity insights for your task list",
		Long: `taskpulse reads a snapshot of your tasks, categories and lists and turns it
into productivity insights, behaviour patterns, actionable suggestions
and cleanup opportunities.

Run without arguments to open the interactive dashboard.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if c == nil || snapshotFile == "" {
				return nil
			}
			return c.UseSnapshotFile(snapshotFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c, tui.Options{})
		},
	}

	root.PersistentFlags().StringVarP(&snapshotFile, "file", "f", "", "Read the snapshot from a JSON or YAML file instead of the API")

	root.AddGroup(
		&cobra.Group{ID: groupReport, Title: "Report Commands:"},
		&cobra.Group{ID: groupSuggestions, Title: "Suggestion Management:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Report commands
	reportCmd := newReportCommand(c)
	reportCmd.GroupID = groupReport

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupReport

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupReport

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupReport

	// Suggestion management commands
	suggestionsCmd := newSuggestionsCommand(c)
	suggestionsCmd.GroupID = groupSuggestions

	dismissCmd := newDismissCommand(c)
	dismissCmd.GroupID = groupSuggestions

	restoreCmd := newRestoreCommand(c)
	restoreCmd.GroupID = groupSuggestions

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		reportCmd,
		exportCmd,
		watchCmd,
		serveCmd,
		suggestionsCmd,
		dismissCmd,
		restoreCmd,
		configCmd,
	)

	return root
}

// launchTUI runs the dashboard until the user quits.
func launchTUI(ctx context.Context, c *app.Container, opts tui.Options) error {
	return tui.Run(ctx, tui.New(c, opts))
}
