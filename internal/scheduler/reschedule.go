package scheduler

import "github.com/pgorski/taskcal/internal/domain"

// SplitAtCutoff partitions allocations into those before cutoff (kept) and
// those on or after it (dropped). Order within each part is preserved.
func SplitAtCutoff(allocs []domain.Allocation, cutoff domain.Date) (kept, dropped []domain.Allocation) {
	for _, a := range allocs {
		if a.Date.Before(cutoff) {
			kept = append(kept, a)
		} else {
			dropped = append(dropped, a)
		}
	}
	return kept, dropped
}

// ResetFrom returns a copy of items with every allocation on or after cutoff
// discarded and RemainingMin recomputed from the surviving entries. History
// before the cutoff is untouched; running Schedule with StartDate = cutoff
// on the result completes the cutover.
func ResetFrom(items []Item, cutoff domain.Date) []Item {
	reset := make([]Item, len(items))
	for i, it := range items {
		kept, _ := SplitAtCutoff(it.Scheduled, cutoff)
		keptMin := 0
		for _, a := range kept {
			keptMin += a.Minutes
		}
		it.Scheduled = kept
		it.RemainingMin = it.TotalMin - keptMin
		reset[i] = it
	}
	return reset
}
