package testutil

import (
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/google/uuid"
)

// ProjectOption mutates a test project during construction.
type ProjectOption func(*domain.Project)

// NewTestProject builds a valid project with sensible defaults.
func NewTestProject(opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Title:     "Test Project",
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithProjectTitle(title string) ProjectOption {
	return func(p *domain.Project) { p.Title = title }
}

func WithProjectPriority(priority int) ProjectOption {
	return func(p *domain.Project) { p.Priority = priority }
}

func WithProjectDeadline(d domain.Date) ProjectOption {
	return func(p *domain.Project) { p.Deadline = &d }
}

func WithProjectCategory(category string) ProjectOption {
	return func(p *domain.Project) { p.Category = category }
}

// SubtaskOption mutates a test subtask during construction.
type SubtaskOption func(*domain.Subtask)

// NewTestSubtask builds a valid unscheduled subtask for the given project.
func NewTestSubtask(projectID string, opts ...SubtaskOption) *domain.Subtask {
	now := time.Now().UTC()
	st := &domain.Subtask{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		Description:  "Test Subtask",
		Priority:     domain.PriorityMedium,
		DurationMin:  60,
		RemainingMin: 60,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

func WithDescription(desc string) SubtaskOption {
	return func(st *domain.Subtask) { st.Description = desc }
}

func WithDuration(minutes int) SubtaskOption {
	return func(st *domain.Subtask) {
		st.DurationMin = minutes
		st.RemainingMin = minutes
	}
}

func WithPriority(priority int) SubtaskOption {
	return func(st *domain.Subtask) { st.Priority = priority }
}

func WithOrder(order int) SubtaskOption {
	return func(st *domain.Subtask) { st.Order = &order }
}

func WithDeadline(d domain.Date) SubtaskOption {
	return func(st *domain.Subtask) { st.Deadline = &d }
}

func WithDone() SubtaskOption {
	return func(st *domain.Subtask) { st.Done = true }
}

// WithAllocations records existing placements and recomputes remaining work.
func WithAllocations(allocs ...domain.Allocation) SubtaskOption {
	return func(st *domain.Subtask) {
		st.ScheduledDates = allocs
		remaining := st.DurationMin - st.ScheduledMin()
		if remaining < 0 {
			remaining = 0
		}
		st.RemainingMin = remaining
		if len(allocs) > 0 {
			last := allocs[len(allocs)-1].Date
			st.Date = &last
		}
	}
}

// D is shorthand for building a date in tests.
func D(year int, month time.Month, day int) domain.Date {
	return domain.Date{Year: year, Month: month, Day: day}
}
