package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/pgorski/taskcal/internal/repository"
	"github.com/pgorski/taskcal/internal/scheduler"
)

type subtaskService struct {
	subtasks repository.SubtaskRepo
	projects repository.ProjectRepo
}

func NewSubtaskService(subtasks repository.SubtaskRepo, projects repository.ProjectRepo) SubtaskService {
	return &subtaskService{subtasks: subtasks, projects: projects}
}

func (s *subtaskService) Create(ctx context.Context, st *domain.Subtask) error {
	if st.Description == "" {
		return fmt.Errorf("subtask description is required")
	}
	if st.DurationMin <= 0 {
		return fmt.Errorf("subtask duration must be positive, got %d", st.DurationMin)
	}

	project, err := s.projects.GetByID(ctx, st.ProjectID)
	if err != nil {
		return fmt.Errorf("loading project for subtask: %w", err)
	}
	if st.Priority == 0 {
		st.Priority = project.Priority
	}
	if err := domain.ValidatePriority(st.Priority); err != nil {
		return err
	}

	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	// New subtasks start unscheduled: all work remaining, no allocations.
	st.RemainingMin = st.DurationMin
	st.ScheduledDates = nil
	st.Date = nil

	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	return s.subtasks.Create(ctx, st)
}

func (s *subtaskService) GetByID(ctx context.Context, id string) (*domain.Subtask, error) {
	return s.subtasks.GetByID(ctx, id)
}

func (s *subtaskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Subtask, error) {
	return s.subtasks.ListByProject(ctx, projectID)
}

func (s *subtaskService) Update(ctx context.Context, st *domain.Subtask) error {
	if err := domain.ValidatePriority(st.Priority); err != nil {
		return err
	}
	// A duration edit re-derives the remaining work against what is
	// already placed; shrinking below the placed total floors at zero.
	remaining := st.DurationMin - st.ScheduledMin()
	if remaining < 0 {
		remaining = 0
	}
	st.RemainingMin = remaining
	st.UpdatedAt = time.Now().UTC()
	return s.subtasks.Update(ctx, st)
}

func (s *subtaskService) MarkDone(ctx context.Context, id string) error {
	st, err := s.subtasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	st.Done = true
	// Finishing releases the days still reserved for this subtask: entries
	// from today on are dropped so later runs can reuse that capacity.
	// Past entries stay as history on the agenda.
	kept, _ := scheduler.SplitAtCutoff(st.ScheduledDates, domain.Today(time.Local))
	st.ScheduledDates = kept
	st.ApplyAllocations(nil)
	st.UpdatedAt = time.Now().UTC()
	return s.subtasks.Update(ctx, st)
}

func (s *subtaskService) Delete(ctx context.Context, id string) error {
	return s.subtasks.Delete(ctx, id)
}
