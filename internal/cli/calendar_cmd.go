package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pgorski/taskcal/internal/cli/formatter"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Browse the planned week interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := domain.Today(time.Local)
			if date != "" {
				d, err := domain.ParseDate(date)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
				start = d
			}

			// Fall back to a static agenda when stdout isn't a terminal.
			if app.IsInteractive == nil || !app.IsInteractive() {
				week := weekStart(start)
				agenda, err := app.Agenda.Range(cmd.Context(), week, week.AddDays(6))
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgenda(agenda, domain.Today(time.Local)))
				return nil
			}

			m := newCalendarModel(app, start)
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "week to open (YYYY-MM-DD, default this week)")
	return cmd
}

// weekStart returns the Monday on or before d.
func weekStart(d domain.Date) domain.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}
