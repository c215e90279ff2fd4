package importer

import (
	"fmt"
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/google/uuid"
)

// ConvertResult holds the domain entities produced from an import schema.
type ConvertResult struct {
	Project  *domain.Project
	Subtasks []*domain.Subtask
}

// Convert builds domain entities from a validated import schema. IDs are
// generated here; callers persist the result atomically.
func Convert(schema *ImportSchema) (*ConvertResult, error) {
	now := time.Now().UTC()

	project := &domain.Project{
		ID:          uuid.New().String(),
		Title:       schema.Project.Title,
		Description: schema.Project.Description,
		Category:    schema.Project.Category,
		Priority:    domain.ValueOr(domain.PriorityMedium, schema.Project.Priority),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	deadline, err := parseOptionalDate(schema.Project.Deadline, "project.deadline")
	if err != nil {
		return nil, err
	}
	project.Deadline = deadline

	subtasks := make([]*domain.Subtask, 0, len(schema.Subtasks))
	for i, si := range schema.Subtasks {
		st := &domain.Subtask{
			ID:           uuid.New().String(),
			ProjectID:    project.ID,
			Description:  si.Description,
			Priority:     domain.ValueOr(project.Priority, si.Priority),
			Order:        si.Order,
			DurationMin:  si.DurationMin,
			RemainingMin: si.DurationMin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		stDeadline, err := parseOptionalDate(si.Deadline, fmt.Sprintf("subtasks[%d].deadline", i))
		if err != nil {
			return nil, err
		}
		st.Deadline = stDeadline
		subtasks = append(subtasks, st)
	}

	return &ConvertResult{Project: project, Subtasks: subtasks}, nil
}

func parseOptionalDate(value *string, field string) (*domain.Date, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(*value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &d, nil
}
