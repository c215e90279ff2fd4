package domain

import (
	"fmt"
	"time"
)

// Priority levels for projects and subtasks. 1 beats 2 beats 3.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Project groups subtasks and supplies the default deadline and priority
// inherited by subtasks that don't set their own.
type Project struct {
	ID          string
	Title       string
	Description string
	Category    string
	Deadline    *Date
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidatePriority checks that p is one of the three supported levels.
func ValidatePriority(p int) error {
	if p < PriorityHigh || p > PriorityLow {
		return fmt.Errorf("priority %d out of range (1=high, 2=medium, 3=low)", p)
	}
	return nil
}
