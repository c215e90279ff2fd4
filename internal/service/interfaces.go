package service

import (
	"context"

	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/pgorski/taskcal/internal/importer"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type SubtaskService interface {
	Create(ctx context.Context, s *domain.Subtask) error
	GetByID(ctx context.Context, id string) (*domain.Subtask, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Subtask, error)
	Update(ctx context.Context, s *domain.Subtask) error
	MarkDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService runs the allocation engine and persists its decisions.
// Runs for the same database are serialized internally; the engine itself
// never touches storage.
type ScheduleService interface {
	ScheduleProject(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error)
	RescheduleFrom(ctx context.Context, req contract.RescheduleRequest) (*contract.ScheduleResponse, error)
}

// AvailabilityService manages the weekly calendar and date overrides.
// Mutations trigger a reschedule so allocations never outlive the capacity
// they were placed against.
type AvailabilityService interface {
	Rules(ctx context.Context) ([]domain.AvailabilityRule, error)
	SetRules(ctx context.Context, rules []domain.AvailabilityRule) (*contract.ScheduleResponse, error)
	Overrides(ctx context.Context) ([]domain.AvailabilityOverride, error)
	SetOverride(ctx context.Context, date domain.Date, hours int) (*contract.ScheduleResponse, error)
	ClearOverride(ctx context.Context, date domain.Date) (*contract.ScheduleResponse, error)
}

// ImportService creates a project and its subtasks from a JSON file in one
// transaction.
type ImportService interface {
	ImportProject(ctx context.Context, path string) (*importer.ConvertResult, error)
}

type AgendaService interface {
	Day(ctx context.Context, date domain.Date) (*contract.DayAgenda, error)
	Range(ctx context.Context, from, to domain.Date) ([]contract.DayAgenda, error)
}
