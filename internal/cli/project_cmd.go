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

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectEditCmd(app),
		newProjectRemoveCmd(app),
		newProjectImportCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		description string
		category    string
		deadline    string
		priority    int
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Title:       args[0],
				Description: description,
				Category:    category,
				Priority:    priority,
			}
			if deadline != "" {
				d, err := domain.ParseDate(deadline)
				if err != nil {
					return fmt.Errorf("parsing --deadline: %w", err)
				}
				p.Deadline = &d
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n",
				formatter.StyleBold.Render(p.Title), formatter.ShortID(p.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "longer description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "free-form category tag")
	cmd.Flags().StringVar(&deadline, "deadline", "", "project deadline (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&priority, "priority", "p", domain.PriorityMedium, "priority 1 (high) to 3 (low)")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			today := domain.Today(time.Local)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects, today))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project and its subtasks",
		Args:  cobra.ExactArgs(1),
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
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, subtasks, today))
			return nil
		},
	}
}

func newProjectEditCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		category    string
		deadline    string
		priority    int
	)
	cmd := &cobra.Command{
		Use:   "edit <project>",
		Short: "Edit a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				p.Title = title
			}
			if cmd.Flags().Changed("description") {
				p.Description = description
			}
			if cmd.Flags().Changed("category") {
				p.Category = category
			}
			if cmd.Flags().Changed("priority") {
				p.Priority = priority
			}
			if cmd.Flags().Changed("deadline") {
				if deadline == "" {
					p.Deadline = nil
				} else {
					d, err := domain.ParseDate(deadline)
					if err != nil {
						return fmt.Errorf("parsing --deadline: %w", err)
					}
					p.Deadline = &d
				}
			}
			if err := app.Projects.Update(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", formatter.StyleBold.Render(p.Title))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&deadline, "deadline", "", "new deadline (YYYY-MM-DD, empty clears)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "new priority 1-3")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <project>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a project and its subtasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", formatter.StyleBold.Render(p.Title))
			return nil
		},
	}
}

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Create a project with subtasks from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s with %d subtask(s). Run 'taskcal schedule %s' to place them.\n",
				formatter.StyleBold.Render(result.Project.Title),
				len(result.Subtasks),
				formatter.ShortID(result.Project.ID))
			return nil
		},
	}
}

// resolveProject finds a project by ID prefix or exact title.
func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Project
	for _, p := range projects {
		if p.ID == ref || p.Title == ref {
			return p, nil
		}
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no project matches %q", ref)
	default:
		return nil, fmt.Errorf("%q is ambiguous: matches %d projects", ref, len(matches))
	}
}
