package contract

import (
	"time"

	"github.com/pgorski/taskcal/internal/domain"
)

// ScheduleRequest asks for one project's pending subtasks to be placed on
// the calendar. Zero values pick the defaults: start today in Timezone,
// spacing on.
type ScheduleRequest struct {
	ProjectID string
	StartDate *domain.Date
	// Timezone is the IANA identifier used to resolve "today" and weekday
	// boundaries. Empty means the process-local zone.
	Timezone string
	// NoSpacing places everything earliest-first instead of spreading the
	// batch across the window.
	NoSpacing bool
}

// RescheduleRequest recomputes all allocations on/after From across every
// project, preserving history before it. Nil From means today.
type RescheduleRequest struct {
	From     *domain.Date
	Timezone string
}

// SubtaskDecision is the persisted outcome for one subtask: the entries
// placed in this run and the minutes still unplaced afterwards.
type SubtaskDecision struct {
	SubtaskID    string
	Description  string
	Scheduled    []domain.Allocation
	RemainingMin int
}

// ScheduleResponse reports a completed run.
type ScheduleResponse struct {
	GeneratedAt    time.Time
	StartDate      domain.Date
	Decisions      []SubtaskDecision
	SplitItems     []string // placed across more than one day
	DeadlineIssues []string // could not be fully placed within their window
}

type ScheduleErrorCode string

const (
	ScheduleErrProjectNotFound ScheduleErrorCode = "PROJECT_NOT_FOUND"
	ScheduleErrNothingPending  ScheduleErrorCode = "NOTHING_PENDING"
	ScheduleErrBadTimezone     ScheduleErrorCode = "BAD_TIMEZONE"
)

type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}
