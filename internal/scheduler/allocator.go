package scheduler

import "github.com/pgorski/taskcal/internal/domain"

// placeItem places remainingMin minutes onto the candidate days, preferring
// a single day near targetIdx, and commits every placed minute to the ledger
// before returning. remainingMin must already be clamped to the window's
// total net capacity.
//
// Single-day pass: search outward from targetIdx, forward first, then
// backward, alternating, for the first day whose net capacity alone holds
// the whole amount. This avoids fragmenting a subtask when any one day fits.
// Fallback: walk the window chronologically assigning min(net, remaining)
// per day until the amount is exhausted.
func placeItem(days []CandidateDay, remainingMin, targetIdx int, ledger Ledger) []domain.Allocation {
	if remainingMin <= 0 || len(days) == 0 {
		return nil
	}

	for offset := 0; offset < len(days); offset++ {
		if idx := targetIdx + offset; idx < len(days) {
			if day := days[idx]; day.NetMin >= remainingMin {
				ledger.Commit(day.Date, remainingMin)
				return []domain.Allocation{{Date: day.Date, Minutes: remainingMin}}
			}
		}
		if offset > 0 {
			if idx := targetIdx - offset; idx >= 0 {
				if day := days[idx]; day.NetMin >= remainingMin {
					ledger.Commit(day.Date, remainingMin)
					return []domain.Allocation{{Date: day.Date, Minutes: remainingMin}}
				}
			}
		}
	}

	var placed []domain.Allocation
	left := remainingMin
	for _, day := range days {
		if left <= 0 {
			break
		}
		amount := day.NetMin
		if amount > left {
			amount = left
		}
		if amount > 0 {
			placed = append(placed, domain.Allocation{Date: day.Date, Minutes: amount})
			ledger.Commit(day.Date, amount)
			left -= amount
		}
	}
	return placed
}
