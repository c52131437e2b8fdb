package cli

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/server"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve insights over HTTP",
		Long: `Start an HTTP server exposing the insight report.

Endpoints:
  GET    /api/insights                          Full report (?lang=, ?include_dismissed=true)
  GET    /api/insights/suggestions              Suggestions only
  GET    /api/insights/dismissals               Dismissed suggestion ids
  GET    /api/insights/alerts                   Due-soon and overdue task alerts
  POST   /api/insights/suggestions/{id}/dismiss Dismiss a suggestion
  DELETE /api/insights/suggestions/{id}/dismiss Restore a suggestion
  GET    /api/reports/export.csv                CSV summary
  GET    /api/reports/tasks.csv                 CSV task list
  GET    /metrics                               Prometheus metrics
  GET    /ping                                  Liveness probe

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}
			c.MirrorEvents()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewHTTPServer(server.Config{Addr: addr}, server.Deps{
				BuildReport:    c.BuildReportUseCase(),
				Dismiss:        c.DismissSuggestionUseCase(),
				Restore:        c.RestoreSuggestionsUseCase(),
				ListDismissals: c.ListDismissalsUseCase(),
				Export:         c.ExportReportUseCase(),
				ExportTasks:    c.ExportTasksUseCase(),
				Metrics:        c.Metrics,
				Logger:         c.Logger,
			})

			err := server.Run(ctx, srv, func(bound string) {
				c.Logger.Info("server listening", slog.String("addr", bound))
			})
			if err == nil {
				c.Logger.Info("server stopped")
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")

	return cmd
}
