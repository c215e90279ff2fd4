package contract

import "github.com/pgorski/taskcal/internal/domain"

// AgendaEntry is one subtask's share of a single day.
type AgendaEntry struct {
	SubtaskID    string
	ProjectID    string
	ProjectTitle string
	Description  string
	Minutes      int
	Done         bool
	Deadline     *domain.Date
}

// DayAgenda is everything allocated to one date.
type DayAgenda struct {
	Date     domain.Date
	TotalMin int
	Entries  []AgendaEntry
}
