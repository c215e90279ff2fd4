package repository

import (
	"context"
	"errors"

	"github.com/pgorski/taskcal/internal/domain"
)

// ErrNotFound is the sentinel wrapped by repositories when a lookup matches
// no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type SubtaskRepo interface {
	Create(ctx context.Context, s *domain.Subtask) error
	GetByID(ctx context.Context, id string) (*domain.Subtask, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Subtask, error)
	// ListAll returns every subtask across projects, ordered by project then
	// creation time. The scheduler's ledger seeding and rescheduling read
	// the full set.
	ListAll(ctx context.Context) ([]*domain.Subtask, error)
	Update(ctx context.Context, s *domain.Subtask) error
	Delete(ctx context.Context, id string) error
}

type AvailabilityRepo interface {
	ListRules(ctx context.Context) ([]domain.AvailabilityRule, error)
	// ReplaceRules atomically swaps the whole weekly calendar.
	ReplaceRules(ctx context.Context, rules []domain.AvailabilityRule) error
	ListOverrides(ctx context.Context) ([]domain.AvailabilityOverride, error)
	SetOverride(ctx context.Context, o domain.AvailabilityOverride) error
	DeleteOverride(ctx context.Context, date domain.Date) error
}
