package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/usecase"
)

// newSuggestionsCommand creates the suggestions command.
func newSuggestionsCommand(c *app.Container) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:     "suggestions",
		Aliases: []string{"sg"},
		Short:   "List current suggestions",
		Long: `List the suggestions of the current report, including dismissed ones.

The ID column is what dismiss and restore accept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.BuildReportUseCase().Execute(cmd.Context(), usecase.BuildReportInput{
				Language:         language,
				IncludeDismissed: true,
			})
			if err != nil {
				return err
			}
			list, err := c.ListDismissalsUseCase().Execute(cmd.Context(), usecase.ListDismissalsInput{})
			if err != nil {
				return err
			}

			dismissed := make(map[string]time.Time, len(list.Dismissals))
			for _, d := range list.Dismissals {
				dismissed[d.ID] = d.DismissedAt
			}

			if len(out.Report.Suggestions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No suggestions.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tKIND\tCOUNT\tSTATUS\tTITLE")
			for _, s := range out.Report.Suggestions {
				status := "active"
				if at, ok := dismissed[s.ID]; ok {
					status = "dismissed " + at.Local().Format(time.DateOnly)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", s.ID, s.Kind, s.Count, status, s.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&language, "lang", "l", "", "Title language (pt-BR or en)")

	return cmd
}

// newDismissCommand creates the dismiss command.
func newDismissCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>...",
		Short: "Hide suggestions from future reports",
		Long: `Dismiss one or more suggestions by id (see "taskpulse suggestions").

Dismissed suggestions stay hidden until restored, even if they apply again.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.DismissSuggestionUseCase()
			for _, id := range args {
				out, err := uc.Execute(cmd.Context(), usecase.DismissSuggestionInput{ID: id})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %s\n", out.ID)
			}
			return nil
		},
	}
}

// newRestoreCommand creates the restore command.
func newRestoreCommand(c *app.Container) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "restore [id]...",
		Short: "Show dismissed suggestions again",
		Long: `Restore dismissed suggestions by id, or every dismissed suggestion with --all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(args) > 0:
				return errors.New("cannot combine --all with suggestion ids")
			case !all && len(args) == 0:
				return errors.New("specify suggestion ids or --all")
			}

			uc := c.RestoreSuggestionsUseCase()
			if all {
				out, err := uc.Execute(cmd.Context(), usecase.RestoreSuggestionsInput{All: true})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %d suggestion(s)\n", out.Restored)
				return nil
			}

			for _, id := range args {
				if _, err := uc.Execute(cmd.Context(), usecase.RestoreSuggestionsInput{ID: id}); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Restore every dismissed suggestion")

	return cmd
}
