package scheduler

import "github.com/pgorski/taskcal/internal/domain"

const (
	// horizonDays bounds how many calendar days a window scan may visit.
	horizonDays = 60
	// maxWindowDays bounds how many candidate days a window may collect.
	maxWindowDays = 30
	// deadlineBufferDays is the safety margin kept before a deadline when
	// capacity allows.
	deadlineBufferDays = 7
)

// CandidateDay is one searchable day with its net (gross minus ledger)
// capacity in minutes. Windows only contain days with positive net capacity.
type CandidateDay struct {
	Date   domain.Date
	NetMin int
}

// planWindow produces the ordered candidate days for one item. It first
// tries the preferred window ending deadlineBufferDays before the deadline;
// only when that window cannot hold the remaining work does it expand to the
// full window ending at the deadline itself. Without a deadline the scan is
// bounded by the horizon alone.
func planWindow(start domain.Date, deadline *domain.Date, remainingMin int, avail *Resolver, ledger Ledger) []CandidateDay {
	if deadline == nil {
		return collectDays(start, nil, avail, ledger)
	}

	preferredEnd := deadline.AddDays(-deadlineBufferDays)
	preferred := collectDays(start, &preferredEnd, avail, ledger)
	if windowNetMin(preferred) >= remainingMin {
		return preferred
	}
	return collectDays(start, deadline, avail, ledger)
}

// collectDays walks forward from start gathering days with positive net
// capacity. The scan stops after horizonDays visited days, maxWindowDays
// collected days, or before any day past end (inclusive) when set. An end
// before start yields no days at all.
func collectDays(start domain.Date, end *domain.Date, avail *Resolver, ledger Ledger) []CandidateDay {
	var days []CandidateDay
	d := start
	for i := 0; i < horizonDays && len(days) < maxWindowDays; i++ {
		if end != nil && d.After(*end) {
			break
		}
		if net := avail.AvailableMinutes(d) - ledger.Used(d); net > 0 {
			days = append(days, CandidateDay{Date: d, NetMin: net})
		}
		d = d.AddDays(1)
	}
	return days
}

// windowNetMin sums the net capacity of a window.
func windowNetMin(days []CandidateDay) int {
	total := 0
	for _, day := range days {
		total += day.NetMin
	}
	return total
}
