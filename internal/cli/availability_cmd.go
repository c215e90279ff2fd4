package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pgorski/taskcal/internal/cli/formatter"
	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newAvailabilityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "availability",
		Aliases: []string{"avail"},
		Short:   "Manage weekly availability and date overrides",
	}
	cmd.AddCommand(
		newAvailabilityShowCmd(app),
		newAvailabilitySetCmd(app),
		newAvailabilityEditCmd(app),
		newAvailabilityOverrideCmd(app),
		newAvailabilityClearCmd(app),
	)
	return cmd
}

func newAvailabilityShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the weekly calendar and overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := app.Availability.Rules(cmd.Context())
			if err != nil {
				return err
			}
			overrides, err := app.Availability.Overrides(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAvailability(rules, overrides))
			return nil
		},
	}
}

func newAvailabilitySetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <day=hours>...",
		Short: "Replace the weekly calendar",
		Long: `Set replaces all weekly rules at once. Days not listed become
unavailable. Example:

  taskcal availability set mon=8 tue=8 wed=4 thu=8 fri=6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := make([]domain.AvailabilityRule, 0, len(args))
			for _, arg := range args {
				rule, err := parseRuleArg(arg)
				if err != nil {
					return err
				}
				rules = append(rules, rule)
			}
			resp, err := app.Availability.SetRules(cmd.Context(), rules)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Weekly availability updated.")
			printRescheduleSummary(cmd, resp)
			return nil
		},
	}
}

func newAvailabilityEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the weekly calendar interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("edit needs a terminal; use 'availability set' instead")
			}

			rules, err := app.Availability.Rules(cmd.Context())
			if err != nil {
				return err
			}
			current := make(map[time.Weekday]int, len(rules))
			for _, r := range rules {
				current[r.Weekday] = r.Hours
			}

			// One input per weekday, prefilled from the stored rules.
			values := make([]string, 7)
			fields := make([]huh.Field, 0, 7)
			for wd := time.Sunday; wd <= time.Saturday; wd++ {
				if h, ok := current[wd]; ok {
					values[wd] = strconv.Itoa(h)
				}
				fields = append(fields, hoursInput(
					fmt.Sprintf("%s (hours, blank = unavailable)", wd), &values[wd]))
			}

			form := huh.NewForm(huh.NewGroup(fields...)).
				WithTheme(taskcalHuhTheme()).
				WithShowHelp(false)
			if err := form.Run(); err != nil {
				return err
			}

			var next []domain.AvailabilityRule
			for wd := time.Sunday; wd <= time.Saturday; wd++ {
				if values[wd] == "" {
					continue
				}
				hours, err := strconv.Atoi(values[wd])
				if err != nil {
					return fmt.Errorf("parsing hours for %s: %w", wd, err)
				}
				next = append(next, domain.AvailabilityRule{Weekday: wd, Hours: hours})
			}

			resp, err := app.Availability.SetRules(cmd.Context(), next)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Weekly availability updated.")
			printRescheduleSummary(cmd, resp)
			return nil
		},
	}
}

func newAvailabilityOverrideCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "override <date> <hours>",
		Short: "Pin one date's capacity (0 = day off)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := domain.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			hours, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parsing hours: %w", err)
			}
			resp, err := app.Availability.SetOverride(cmd.Context(), date, hours)
			if err != nil {
				return err
			}
			if hours == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s marked as a day off.\n", date)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s pinned to %dh.\n", date, hours)
			}
			printRescheduleSummary(cmd, resp)
			return nil
		},
	}
}

func newAvailabilityClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <date>",
		Short: "Remove a date override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := domain.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			resp, err := app.Availability.ClearOverride(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Override for %s removed.\n", date)
			printRescheduleSummary(cmd, resp)
			return nil
		},
	}
}

var weekdayAliases = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func parseRuleArg(arg string) (domain.AvailabilityRule, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return domain.AvailabilityRule{}, fmt.Errorf("expected day=hours, got %q", arg)
	}
	wd, ok := weekdayAliases[strings.ToLower(parts[0])]
	if !ok {
		return domain.AvailabilityRule{}, fmt.Errorf("unknown weekday %q", parts[0])
	}
	hours, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.AvailabilityRule{}, fmt.Errorf("parsing hours in %q: %w", arg, err)
	}
	return domain.AvailabilityRule{Weekday: wd, Hours: hours}, nil
}

// printRescheduleSummary reports the follow-up reschedule an availability
// change triggered, but only when it moved or flagged something.
func printRescheduleSummary(cmd *cobra.Command, resp *contract.ScheduleResponse) {
	if resp == nil {
		return
	}
	moved := 0
	for _, d := range resp.Decisions {
		if len(d.Scheduled) > 0 {
			moved++
		}
	}
	if moved > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %d subtask(s) from %s.\n", moved, resp.StartDate)
	}
	if len(resp.DeadlineIssues) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleRed.Render(
			fmt.Sprintf("%d subtask(s) no longer fit before their deadline.", len(resp.DeadlineIssues))))
	}
}
