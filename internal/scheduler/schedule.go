package scheduler

import (
	"math"

	"github.com/pgorski/taskcal/internal/domain"
)

// Item is one schedulable subtask as the engine sees it. Deadline and
// Priority are the effective values: the caller resolves project
// inheritance before building an Item.
type Item struct {
	ID           string
	TotalMin     int
	RemainingMin int
	Priority     int
	Order        *int
	Deadline     *domain.Date
	Scheduled    []domain.Allocation // allocations from earlier runs
}

// Input carries everything one scheduling run depends on. Schedule is a
// pure function of this value; identical inputs yield identical results.
type Input struct {
	Items     []Item
	Rules     []domain.AvailabilityRule
	Overrides []domain.AvailabilityOverride
	StartDate domain.Date
	// UseSpacing spreads the batch across the window instead of
	// front-loading it; off for plain reschedules.
	UseSpacing bool
	// UsedMinutes seeds the ledger with commitments outside Items.
	// Schedule copies it and never mutates the caller's map.
	UsedMinutes map[domain.Date]int
}

// Decision is the placement outcome for one item. Scheduled holds only the
// entries placed by this run; the caller appends them to the item's history.
type Decision struct {
	ItemID       string
	Scheduled    []domain.Allocation
	RemainingMin int
}

// Result is the outcome of a whole run. SplitItems lists items placed
// across more than one day; DeadlineIssues lists items whose window could
// not hold all their remaining work.
type Result struct {
	Decisions      []Decision
	SplitItems     []string
	DeadlineIssues []string
}

// Schedule places every pending item in Input onto concrete calendar dates.
// Items are processed in canonical order against a shared ledger, so no
// date ever exceeds its capacity across the batch. Items with nothing
// remaining are skipped. The run performs no I/O and no external side
// effects; discard its Result and rerun freely.
func Schedule(in Input) Result {
	avail := NewResolver(in.Rules, in.Overrides)
	ledger := NewLedger(in.UsedMinutes)
	ledger.SeedAllocations(in.Items, in.StartDate)

	batch := make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		if it.RemainingMin > 0 {
			batch = append(batch, it)
		}
	}
	OrderItems(batch)

	var res Result
	k := len(batch)
	for i, it := range batch {
		days := planWindow(in.StartDate, it.Deadline, it.RemainingMin, avail, ledger)
		if len(days) == 0 {
			res.DeadlineIssues = append(res.DeadlineIssues, it.ID)
			res.Decisions = append(res.Decisions, Decision{ItemID: it.ID, RemainingMin: it.RemainingMin})
			continue
		}

		// Partial placement beats failing outright when the window is tight.
		toPlace := it.RemainingMin
		if total := windowNetMin(days); total < toPlace {
			toPlace = total
		}

		placed := placeItem(days, toPlace, spacingTarget(in.UseSpacing, i, k, len(days)), ledger)

		placedMin := 0
		for _, a := range placed {
			placedMin += a.Minutes
		}
		remaining := it.RemainingMin - placedMin
		if remaining > 0 {
			res.DeadlineIssues = append(res.DeadlineIssues, it.ID)
		}
		if len(placed) > 1 {
			res.SplitItems = append(res.SplitItems, it.ID)
		}
		res.Decisions = append(res.Decisions, Decision{
			ItemID:       it.ID,
			Scheduled:    placed,
			RemainingMin: remaining,
		})
	}
	return res
}

// spacingTarget picks the start index for the single-day search. In spacing
// mode the i-th of k items aims at round(i*(n-1)/(k-1)), spreading the batch
// over the window; otherwise everything aims at the earliest day.
func spacingTarget(useSpacing bool, i, k, numDays int) int {
	if !useSpacing || k <= 1 {
		return 0
	}
	target := int(math.Round(float64(i) * float64(numDays-1) / float64(k-1)))
	if target > numDays-1 {
		target = numDays - 1
	}
	return target
}
