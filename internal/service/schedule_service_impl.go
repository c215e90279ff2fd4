package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/db"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/pgorski/taskcal/internal/repository"
	"github.com/pgorski/taskcal/internal/scheduler"
)

type scheduleService struct {
	projects     repository.ProjectRepo
	subtasks     repository.SubtaskRepo
	availability repository.AvailabilityRepo
	uow          db.UnitOfWork

	// Daily capacity is shared by every run, so runs must not interleave.
	// The mutex is held for a whole run; the engine itself is single-pass.
	mu sync.Mutex
}

func NewScheduleService(
	projects repository.ProjectRepo,
	subtasks repository.SubtaskRepo,
	availability repository.AvailabilityRepo,
	uow db.UnitOfWork,
) ScheduleService {
	return &scheduleService{
		projects:     projects,
		subtasks:     subtasks,
		availability: availability,
		uow:          uow,
	}
}

func (s *scheduleService) ScheduleProject(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := resolveTimezone(req.Timezone)
	if err != nil {
		return nil, err
	}
	start := domain.ValueOr(domain.Today(loc), req.StartDate)

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.ScheduleError{
				Code:    contract.ScheduleErrProjectNotFound,
				Message: "project " + req.ProjectID + " not found",
			}
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	all, err := s.subtasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading subtasks: %w", err)
	}

	var projectTasks []*domain.Subtask
	seed := make(map[domain.Date]int)
	for _, st := range all {
		if st.ProjectID == project.ID {
			if !st.Done {
				projectTasks = append(projectTasks, st)
			}
			continue
		}
		// Other projects' commitments on/after start still consume capacity.
		for _, a := range st.ScheduledDates {
			if !a.Date.Before(start) {
				seed[a.Date] += a.Minutes
			}
		}
	}

	pending := 0
	for _, st := range projectTasks {
		if st.RemainingMin > 0 {
			pending++
		}
	}
	if pending == 0 {
		return nil, &contract.ScheduleError{
			Code:    contract.ScheduleErrNothingPending,
			Message: "all subtasks of " + project.Title + " are already scheduled",
		}
	}

	rules, overrides, err := s.loadAvailability(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]scheduler.Item, len(projectTasks))
	for i, st := range projectTasks {
		items[i] = engineItem(st, project)
	}

	result := scheduler.Schedule(scheduler.Input{
		Items:       items,
		Rules:       rules,
		Overrides:   overrides,
		StartDate:   start,
		UseSpacing:  !req.NoSpacing,
		UsedMinutes: seed,
	})

	byID := make(map[string]*domain.Subtask, len(projectTasks))
	for _, st := range projectTasks {
		byID[st.ID] = st
	}
	if err := s.persistDecisions(ctx, result.Decisions, byID, nil); err != nil {
		return nil, err
	}

	return s.buildResponse(start, result, byID), nil
}

func (s *scheduleService) RescheduleFrom(ctx context.Context, req contract.RescheduleRequest) (*contract.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, err := resolveTimezone(req.Timezone)
	if err != nil {
		return nil, err
	}
	cutoff := domain.ValueOr(domain.Today(loc), req.From)

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	projectsByID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ID] = p
	}

	all, err := s.subtasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading subtasks: %w", err)
	}

	var open []*domain.Subtask
	var items []scheduler.Item
	for _, st := range all {
		if st.Done {
			continue
		}
		open = append(open, st)
		items = append(items, engineItem(st, projectsByID[st.ProjectID]))
	}

	// Cut history at the cutoff: entries before it survive untouched,
	// everything on/after it goes back into the pool.
	items = scheduler.ResetFrom(items, cutoff)

	rules, overrides, err := s.loadAvailability(ctx)
	if err != nil {
		return nil, err
	}

	result := scheduler.Schedule(scheduler.Input{
		Items:     items,
		Rules:     rules,
		Overrides: overrides,
		StartDate: cutoff,
		// Reschedules fill earliest-first; spacing is for fresh batches.
		UseSpacing: false,
	})

	// Rewind persisted state to the kept entries before applying decisions.
	kept := make(map[string][]domain.Allocation, len(items))
	for _, it := range items {
		kept[it.ID] = it.Scheduled
	}
	byID := make(map[string]*domain.Subtask, len(open))
	for _, st := range open {
		byID[st.ID] = st
		st.ScheduledDates = kept[st.ID]
	}
	if err := s.persistDecisions(ctx, result.Decisions, byID, open); err != nil {
		return nil, err
	}

	return s.buildResponse(cutoff, result, byID), nil
}

// persistDecisions applies run output to the stored subtasks in one
// transaction. When extra is non-nil, every subtask in it is rewritten even
// without a decision (a reschedule may only have trimmed its entries).
func (s *scheduleService) persistDecisions(
	ctx context.Context,
	decisions []scheduler.Decision,
	byID map[string]*domain.Subtask,
	extra []*domain.Subtask,
) error {
	now := time.Now().UTC()
	placed := make(map[string][]domain.Allocation, len(decisions))
	for _, d := range decisions {
		placed[d.ItemID] = d.Scheduled
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSubtasks := repository.NewSQLiteSubtaskRepo(tx)

		update := func(st *domain.Subtask) error {
			st.ApplyAllocations(placed[st.ID])
			st.UpdatedAt = now
			if err := txSubtasks.Update(ctx, st); err != nil {
				return fmt.Errorf("persisting subtask %s: %w", st.ID, err)
			}
			return nil
		}

		if extra != nil {
			for _, st := range extra {
				if err := update(st); err != nil {
					return err
				}
			}
			return nil
		}
		for _, d := range decisions {
			st, ok := byID[d.ItemID]
			if !ok {
				continue
			}
			if err := update(st); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *scheduleService) loadAvailability(ctx context.Context) ([]domain.AvailabilityRule, []domain.AvailabilityOverride, error) {
	rules, err := s.availability.ListRules(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading availability rules: %w", err)
	}
	overrides, err := s.availability.ListOverrides(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading availability overrides: %w", err)
	}
	return rules, overrides, nil
}

func (s *scheduleService) buildResponse(start domain.Date, result scheduler.Result, byID map[string]*domain.Subtask) *contract.ScheduleResponse {
	resp := &contract.ScheduleResponse{
		GeneratedAt:    time.Now().UTC(),
		StartDate:      start,
		SplitItems:     result.SplitItems,
		DeadlineIssues: result.DeadlineIssues,
	}
	for _, d := range result.Decisions {
		desc := ""
		if st, ok := byID[d.ItemID]; ok {
			desc = st.Description
		}
		resp.Decisions = append(resp.Decisions, contract.SubtaskDecision{
			SubtaskID:    d.ItemID,
			Description:  desc,
			Scheduled:    d.Scheduled,
			RemainingMin: d.RemainingMin,
		})
	}
	return resp
}

// engineItem maps a stored subtask to the engine's view, resolving deadline
// and priority inheritance from the project.
func engineItem(st *domain.Subtask, p *domain.Project) scheduler.Item {
	priority := st.Priority
	if priority == 0 && p != nil {
		priority = p.Priority
	}
	return scheduler.Item{
		ID:           st.ID,
		TotalMin:     st.DurationMin,
		RemainingMin: st.RemainingMin,
		Priority:     priority,
		Order:        st.Order,
		Deadline:     st.EffectiveDeadline(p),
		Scheduled:    st.ScheduledDates,
	}
}

func resolveTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &contract.ScheduleError{
			Code:    contract.ScheduleErrBadTimezone,
			Message: "unknown timezone " + name,
		}
	}
	return loc, nil
}
