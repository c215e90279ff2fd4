package cli

import (
	"fmt"
	"time"

	"github.com/pgorski/taskcal/internal/cli/formatter"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/spf13/cobra"
)

func newAgendaCmd(app *App) *cobra.Command {
	var (
		date string
		days int
	)
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show the planned work for a day or range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := domain.Today(time.Local)
			from := today
			if date != "" {
				d, err := domain.ParseDate(date)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
				from = d
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			to := from.AddDays(days - 1)

			agenda, err := app.Agenda.Range(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgenda(agenda, today))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "first day to show (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&days, "days", "n", 1, "number of days to show")
	return cmd
}
