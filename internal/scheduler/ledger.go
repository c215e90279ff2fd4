package scheduler

import "github.com/pgorski/taskcal/internal/domain"

// Ledger tracks minutes already committed per date within one scheduling
// run. It is a value owned by that run: Schedule copies the caller's seed
// and never shares the map, which keeps runs re-runnable and race-free.
type Ledger map[domain.Date]int

// NewLedger returns a Ledger pre-filled with a copy of seed (which may be nil).
func NewLedger(seed map[domain.Date]int) Ledger {
	l := make(Ledger, len(seed))
	for d, min := range seed {
		l[d] = min
	}
	return l
}

// SeedAllocations adds every existing allocation on or after start, so a run
// never double-books capacity already promised to other work.
func (l Ledger) SeedAllocations(items []Item, start domain.Date) {
	for _, it := range items {
		for _, a := range it.Scheduled {
			if !a.Date.Before(start) {
				l[a.Date] += a.Minutes
			}
		}
	}
}

// Used returns the minutes already committed on d.
func (l Ledger) Used(d domain.Date) int {
	return l[d]
}

// Commit records min additional minutes on d.
func (l Ledger) Commit(d domain.Date, min int) {
	l[d] += min
}
