package cli

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/insight"
	"github.com/runoshun/taskpulse/internal/tui"
	"github.com/runoshun/taskpulse/internal/usecase"
)

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Language string
		Interval time.Duration
		All      bool
		Plain    bool
	}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the report periodically",
		Long: `Rebuild the report on an interval.

Opens the interactive dashboard by default. With --plain, a one-line summary
is printed after every refresh instead, which suits logs and pipes. New
deadline alerts (tasks due within 24 hours, overdue tasks once a day) are
printed under the summary line.
The interval defaults to report.refresh_interval from the configuration and
is capped at 30 minutes so deadlines are rechecked regularly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interval := opts.Interval
			if interval <= 0 {
				interval = c.AppConfig.RefreshInterval()
			}

			if !opts.Plain {
				return launchTUIFunc(cmd.Context(), c, tui.Options{
					Language:         opts.Language,
					Interval:         interval,
					IncludeDismissed: opts.All,
				})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			alerts := newAlertLog()
			_, err := c.WatchReportUseCase().Execute(ctx, usecase.WatchReportInput{
				Language:         opts.Language,
				Interval:         interval,
				IncludeDismissed: opts.All,
				OnReport: func(out *usecase.BuildReportOutput, err error) {
					if err != nil {
						_, _ = fmt.Fprintf(errOut, "refresh failed: %v\n", err)
						return
					}
					writeWatchLine(w, out, alerts)
				},
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Language, "lang", "l", "", "Report language (pt-BR or en)")
	cmd.Flags().DurationVarP(&opts.Interval, "interval", "i", 0, "Refresh interval (e.g. 30s, 5m)")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include dismissed suggestions")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Print a summary line per refresh instead of the dashboard")

	return cmd
}

// writeWatchLine prints the one-line summary of a refreshed report,
// followed by deadline alerts not printed before.
func writeWatchLine(w io.Writer, out *usecase.BuildReportOutput, alerts *alertLog) {
	r := out.Report
	e := insight.New(r.Language)
	dueSoon := 0
	for _, a := range r.Alerts {
		if a.Kind == domain.AlertDueSoon {
			dueSoon++
		}
	}
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "[%s] %s=%d %s=%d %s=%d %s=%d %s=%d%% %s=%d\n",
		r.GeneratedAt.Format(time.DateTime),
		e.T("Total tasks"), r.Stats.Total,
		e.T("Pending tasks"), r.Stats.Pending,
		e.T("Overdue tasks"), r.Stats.Overdue,
		e.T("Due soon"), dueSoon,
		e.T("Completion rate"), insight.DisplayRate(r.Stats.CompletionRate),
		e.T("Suggestions"), len(r.Suggestions),
	)
	for _, a := range alerts.fresh(r.Alerts, r.GeneratedAt) {
		_, _ = fmt.Fprintf(&b, "  ! %s: %s (%s)\n", a.Title, a.Message, e.FormatDateTime(a.DueDate))
	}
	_, _ = io.WriteString(w, b.String())
}

// alertLog remembers printed deadline alerts across refreshes.
// Due-soon alerts are printed once; overdue alerts once per calendar day.
type alertLog struct {
	seen map[string]string
}

func newAlertLog() *alertLog {
	return &alertLog{seen: make(map[string]string)}
}

// fresh returns the alerts that were not printed yet and records them.
func (l *alertLog) fresh(alerts []domain.Alert, now time.Time) []domain.Alert {
	day := now.Format(time.DateOnly)
	var out []domain.Alert
	for _, a := range alerts {
		stamp := ""
		if a.Kind == domain.AlertOverdue {
			stamp = day
		}
		if prev, ok := l.seen[a.ID]; ok && prev == stamp {
			continue
		}
		l.seen[a.ID] = stamp
		out = append(out, a)
	}
	return out
}
