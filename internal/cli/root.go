package cli

import (
	"github.com/pgorski/taskcal/internal/service"
	"github.com/spf13/cobra"
)

// App carries the wired services the commands run against.
type App struct {
	Projects     service.ProjectService
	Subtasks     service.SubtaskService
	Schedule     service.ScheduleService
	Availability service.AvailabilityService
	Agenda       service.AgendaService
	Import       service.ImportService

	// IsInteractive reports whether stdout is a terminal; non-interactive
	// invocations skip wizards and TUI views.
	IsInteractive func() bool
}

// NewRootCmd builds the taskcal command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskcal",
		Short: "Plan project work onto your calendar",
		Long: `taskcal breaks projects into subtasks and places them on your
calendar around your weekly availability, spreading work toward each
deadline and flagging anything that no longer fits.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newAvailabilityCmd(app),
		newScheduleCmd(app),
		newRescheduleCmd(app),
		newAgendaCmd(app),
		newCalendarCmd(app),
	)

	return root
}
