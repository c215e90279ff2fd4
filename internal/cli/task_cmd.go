package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pgorski/taskcal/internal/cli/formatter"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage subtasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskEditCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		duration int
		deadline string
		priority int
		order    int
	)
	cmd := &cobra.Command{
		Use:   "add <project> <description>",
		Short: "Add a subtask to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			st := &domain.Subtask{
				ProjectID:   p.ID,
				Description: args[1],
				Priority:    priority,
				DurationMin: duration,
			}
			if deadline != "" {
				d, err := domain.ParseDate(deadline)
				if err != nil {
					return fmt.Errorf("parsing --deadline: %w", err)
				}
				st.Deadline = &d
			}
			if cmd.Flags().Changed("order") {
				st.Order = &order
			}
			if err := app.Subtasks.Create(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s\n",
				formatter.StyleBold.Render(st.Description),
				formatter.FormatMinutes(st.DurationMin),
				p.Title)
			return nil
		},
	}
	cmd.Flags().IntVarP(&duration, "duration", "m", 60, "estimated duration in minutes")
	cmd.Flags().StringVar(&deadline, "deadline", "", "subtask deadline (YYYY-MM-DD, defaults to project deadline)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority 1-3 (defaults to project priority)")
	cmd.Flags().IntVar(&order, "order", 0, "manual ordering position within the project")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list <project>",
		Aliases: []string{"ls"},
		Short:   "List a project's subtasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			subtasks, err := app.Subtasks.ListByProject(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			today := domain.Today(time.Local)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubtaskList(subtasks, today))
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var (
		description string
		duration    int
		deadline    string
		priority    int
		order       int
	)
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveSubtask(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				st.Description = description
			}
			if cmd.Flags().Changed("duration") {
				st.DurationMin = duration
			}
			if cmd.Flags().Changed("priority") {
				st.Priority = priority
			}
			if cmd.Flags().Changed("order") {
				st.Order = &order
			}
			if cmd.Flags().Changed("deadline") {
				if deadline == "" {
					st.Deadline = nil
				} else {
					d, err := domain.ParseDate(deadline)
					if err != nil {
						return fmt.Errorf("parsing --deadline: %w", err)
					}
					st.Deadline = &d
				}
			}
			if err := app.Subtasks.Update(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.StyleBold.Render(st.Description))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().IntVarP(&duration, "duration", "m", 0, "new duration in minutes")
	cmd.Flags().StringVar(&deadline, "deadline", "", "new deadline (YYYY-MM-DD, empty clears)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "new priority 1-3")
	cmd.Flags().IntVar(&order, "order", 0, "new ordering position")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a subtask done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveSubtask(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Subtasks.MarkDone(cmd.Context(), st.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", formatter.StyleGreen.Render(st.Description))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a subtask",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveSubtask(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Subtasks.Delete(cmd.Context(), st.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", st.Description)
			return nil
		},
	}
}

// resolveSubtask finds a subtask by ID prefix across all projects.
func resolveSubtask(ctx context.Context, app *App, ref string) (*domain.Subtask, error) {
	st, err := app.Subtasks.GetByID(ctx, ref)
	if err == nil {
		return st, nil
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Subtask
	for _, p := range projects {
		subtasks, err := app.Subtasks.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, st := range subtasks {
			if strings.HasPrefix(st.ID, ref) {
				matches = append(matches, st)
			}
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no subtask matches %q", ref)
	default:
		return nil, fmt.Errorf("%q is ambiguous: matches %d subtasks", ref, len(matches))
	}
}
