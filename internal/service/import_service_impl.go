package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pgorski/taskcal/internal/db"
	"github.com/pgorski/taskcal/internal/importer"
	"github.com/pgorski/taskcal/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

// ImportProject loads, validates and persists a project file. The project
// and all its subtasks are written in one transaction.
func (s *importService) ImportProject(ctx context.Context, path string) (*importer.ConvertResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.New("invalid import file:\n  " + strings.Join(msgs, "\n  "))
	}

	result, err := importer.Convert(schema)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		subtasks := repository.NewSQLiteSubtaskRepo(tx)

		if err := projects.Create(ctx, result.Project); err != nil {
			return fmt.Errorf("persisting project: %w", err)
		}
		for _, st := range result.Subtasks {
			if err := subtasks.Create(ctx, st); err != nil {
				return fmt.Errorf("persisting subtask %q: %w", st.Description, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
