package cli

import (
	"fmt"
	"time"

	"github.com/pgorski/taskcal/internal/cli/formatter"
	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runFlags are the options shared by schedule and reschedule.
type runFlags struct {
	start    string
	timezone string
}

func (f *runFlags) register(fs *pflag.FlagSet, startUsage string) {
	fs.StringVar(&f.start, "from", "", startUsage)
	fs.StringVar(&f.timezone, "timezone", "", "IANA timezone for resolving today (default: local)")
}

func (f *runFlags) startDate() (*domain.Date, error) {
	if f.start == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(f.start)
	if err != nil {
		return nil, fmt.Errorf("parsing --from: %w", err)
	}
	return &d, nil
}

func newScheduleCmd(app *App) *cobra.Command {
	var (
		flags     runFlags
		noSpacing bool
	)
	cmd := &cobra.Command{
		Use:   "schedule <project>",
		Short: "Place a project's pending subtasks on the calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			start, err := flags.startDate()
			if err != nil {
				return err
			}
			resp, err := app.Schedule.ScheduleProject(cmd.Context(), contract.ScheduleRequest{
				ProjectID: p.ID,
				StartDate: start,
				Timezone:  flags.timezone,
				NoSpacing: noSpacing,
			})
			if err != nil {
				return err
			}
			today := domain.Today(time.Local)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScheduleResponse(resp, today))
			return nil
		},
	}
	flags.register(cmd.Flags(), "first day to schedule onto (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&noSpacing, "no-spacing", false, "pack work earliest-first instead of spreading it toward the deadline")
	return cmd
}

func newRescheduleCmd(app *App) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Recompute all allocations from a cutoff date",
		Long: `Reschedule drops every allocation on or after the cutoff (default
today) across all projects and replans the remaining work against
current availability. History before the cutoff is preserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := flags.startDate()
			if err != nil {
				return err
			}
			resp, err := app.Schedule.RescheduleFrom(cmd.Context(), contract.RescheduleRequest{
				From:     from,
				Timezone: flags.timezone,
			})
			if err != nil {
				return err
			}
			today := domain.Today(time.Local)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScheduleResponse(resp, today))
			return nil
		},
	}
	flags.register(cmd.Flags(), "cutoff date (YYYY-MM-DD, default today)")
	return cmd
}
