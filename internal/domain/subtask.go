package domain

import "time"

// Allocation is one scheduled slice of a subtask: Minutes of work committed
// to a single calendar date.
type Allocation struct {
	Date    Date `json:"date"`
	Minutes int  `json:"duration"`
}

// Subtask is a schedulable unit of work inside a project. DurationMin is
// fixed at creation; RemainingMin shrinks as the scheduler places work.
// Invariant: sum(ScheduledDates.Minutes) + RemainingMin == DurationMin.
type Subtask struct {
	ID          string
	ProjectID   string
	Description string
	Done        bool

	// Scheduling inputs
	Priority int  // 1 = highest
	Order    *int // explicit manual ordering, nil = unordered
	Deadline *Date

	// Scheduling state
	DurationMin    int
	RemainingMin   int
	ScheduledDates []Allocation
	Date           *Date // mirrors the last allocation date

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduledMin returns the total minutes already placed on the calendar.
func (s *Subtask) ScheduledMin() int {
	total := 0
	for _, a := range s.ScheduledDates {
		total += a.Minutes
	}
	return total
}

// EffectiveDeadline returns the subtask's own deadline, or the project's
// deadline when the subtask has none.
func (s *Subtask) EffectiveDeadline(p *Project) *Date {
	if s.Deadline != nil {
		return s.Deadline
	}
	if p != nil {
		return p.Deadline
	}
	return nil
}

// ApplyAllocations appends newly placed entries, recomputes RemainingMin and
// refreshes the last-allocation mirror.
func (s *Subtask) ApplyAllocations(placed []Allocation) {
	s.ScheduledDates = append(s.ScheduledDates, placed...)
	s.RemainingMin = s.DurationMin - s.ScheduledMin()
	if len(s.ScheduledDates) > 0 {
		last := s.ScheduledDates[len(s.ScheduledDates)-1].Date
		s.Date = &last
	} else {
		s.Date = nil
	}
}
