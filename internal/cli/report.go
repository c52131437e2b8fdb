package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/insight"
	"github.com/runoshun/taskpulse/internal/tui"
	"github.com/runoshun/taskpulse/internal/usecase"
)

// Output formats of the report command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// reportDocument is the machine-readable form of a report.
type reportDocument struct {
	domain.Report `yaml:",inline"`
	Hidden        int `json:"hidden" yaml:"hidden"`
}

// newReportCommand creates the report command.
func newReportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format   string
		Language string
		All      bool
	}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the insight report",
		Long: `Fetch the current snapshot and print the full insight report:
productivity insights, summary statistics, patterns, suggestions and
optimization opportunities.

Dismissed suggestions are hidden unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.Format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("%w: %q (use text, json or yaml)", domain.ErrUnsupportedFormat, opts.Format)
			}

			out, err := c.BuildReportUseCase().Execute(cmd.Context(), usecase.BuildReportInput{
				Language:         opts.Language,
				IncludeDismissed: opts.All,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			doc := reportDocument{Report: *out.Report, Hidden: out.Hidden}
			switch opts.Format {
			case formatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			case formatYAML:
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			default:
				return writeReportText(w, out.Report, out.Hidden)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "o", formatText, "Output format: text, json or yaml")
	cmd.Flags().StringVarP(&opts.Language, "lang", "l", "", "Report language (pt-BR or en)")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include dismissed suggestions")

	return cmd
}

// writeReportText renders report for the terminal.
func writeReportText(w io.Writer, report *domain.Report, hidden int) error {
	e := insight.New(report.Language)
	st := tui.DefaultStyles()

	var b strings.Builder
	b.WriteString(st.Header.Render(e.T("Productivity Report")) + "\n")
	b.WriteString(st.Muted.Render(e.T("Generated on")+": "+e.FormatDate(report.GeneratedAt)) + "\n")

	b.WriteString("\n" + st.Section.Render(e.T("Productivity")) + "\n")
	for _, in := range report.Productivity {
		b.WriteString(st.SeverityStyle(in.Severity).Render(in.Title) + "\n")
		b.WriteString("  " + in.Description + "\n")
		b.WriteString("  → " + in.Action + "\n")
	}

	b.WriteString("\n" + st.Section.Render(e.T("SUMMARY")) + "\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	b.Reset()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	stats := report.Stats
	_, _ = fmt.Fprintf(tw, "  %s\t%d\n", e.T("Total tasks"), stats.Total)
	_, _ = fmt.Fprintf(tw, "  %s\t%d\n", e.T("Completed tasks"), stats.Completed)
	_, _ = fmt.Fprintf(tw, "  %s\t%d\n", e.T("Pending tasks"), stats.Pending)
	_, _ = fmt.Fprintf(tw, "  %s\t%d\n", e.T("Overdue tasks"), stats.Overdue)
	_, _ = fmt.Fprintf(tw, "  %s\t%d%%\n", e.T("Completion rate"), insight.DisplayRate(stats.CompletionRate))
	if err := tw.Flush(); err != nil {
		return err
	}

	b.WriteString("\n" + st.Section.Render(e.T("BY PRIORITY")) + "\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	b.Reset()

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range domain.Priorities() {
		_, _ = fmt.Fprintf(tw, "  %s\t%d\n", e.PriorityLabel(p), report.Breakdown.ByPriority.Get(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Alerts) > 0 {
		b.WriteString("\n" + st.Section.Render(e.T("Deadlines")) + "\n")
		for _, a := range report.Alerts {
			b.WriteString(st.SeverityStyle(a.Severity).Render(a.Title) + " " + st.Muted.Render("["+a.ID+"]") + "\n")
			b.WriteString("  " + a.Message + " " + st.Muted.Render("("+e.FormatDateTime(a.DueDate)+")") + "\n")
		}
	}

	if len(report.Patterns) > 0 {
		b.WriteString("\n" + st.Section.Render(e.T("Patterns")) + "\n")
		for _, p := range report.Patterns {
			b.WriteString(st.Title.Render(p.Title) + "\n")
			b.WriteString("  " + p.Description + "\n")
			b.WriteString("  → " + p.Guidance + "\n")
		}
	}

	b.WriteString("\n" + st.Section.Render(e.T("Suggestions")) + "\n")
	if len(report.Suggestions) == 0 {
		b.WriteString(st.Muted.Render(e.T("No suggestions right now.")) + "\n")
	}
	for _, s := range report.Suggestions {
		b.WriteString(st.SuggestionStyle(s.Kind).Render(s.Title) + " " + st.Muted.Render("["+s.ID+"]") + "\n")
		b.WriteString("  " + s.Description + "\n")
		b.WriteString("  " + e.T("Action") + ": " + s.Action + "\n")
	}
	if hidden > 0 {
		b.WriteString(st.Muted.Render(e.T("%d suggestion(s) hidden.", hidden)) + "\n")
	}

	if len(report.Optimizations) > 0 {
		b.WriteString("\n" + st.Section.Render(e.T("Optimizations")) + "\n")
		for _, o := range report.Optimizations {
			b.WriteString(st.Title.Render(o.Title) + "\n")
			b.WriteString("  " + o.Description + "\n")
			b.WriteString("  " + e.T("Impact") + ": " + o.Impact + "\n")
			b.WriteString("  " + e.T("Effort") + ": " + o.EffortLabel + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
