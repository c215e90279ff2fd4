package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pgorski/taskcal/internal/cli"
	"github.com/pgorski/taskcal/internal/db"
	"github.com/pgorski/taskcal/internal/repository"
	"github.com/pgorski/taskcal/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.taskcal/taskcal.db
	dbPath := os.Getenv("TASKCAL_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".taskcal", "taskcal.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	subtaskRepo := repository.NewSQLiteSubtaskRepo(database)
	availabilityRepo := repository.NewSQLiteAvailabilityRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	scheduleSvc := service.NewScheduleService(projectRepo, subtaskRepo, availabilityRepo, uow)

	app := &cli.App{
		Projects:     service.NewProjectService(projectRepo),
		Subtasks:     service.NewSubtaskService(subtaskRepo, projectRepo),
		Schedule:     scheduleSvc,
		Availability: service.NewAvailabilityService(availabilityRepo, scheduleSvc),
		Agenda:       service.NewAgendaService(projectRepo, subtaskRepo),
		Import:       service.NewImportService(uow),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
