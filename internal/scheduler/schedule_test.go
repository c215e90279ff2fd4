package scheduler

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decisionByID(t *testing.T, res Result, id string) Decision {
	t.Helper()
	for _, d := range res.Decisions {
		if d.ItemID == id {
			return d
		}
	}
	t.Fatalf("no decision for item %s", id)
	return Decision{}
}

func TestScheduleSplitsAcrossDaysWhenNoDayFits(t *testing.T) {
	// 120 minutes against 60-minute weekdays starting Monday lands as
	// {Mon,60} and {Tue,60}.
	res := Schedule(Input{
		Items: []Item{{ID: "a", TotalMin: 120, RemainingMin: 120, Priority: 2}},
		Rules: weekdayRules(1),

		StartDate: monday,
	})

	d := decisionByID(t, res, "a")
	require.Len(t, d.Scheduled, 2)
	assert.Equal(t, domain.Allocation{Date: monday, Minutes: 60}, d.Scheduled[0])
	assert.Equal(t, domain.Allocation{Date: tuesday, Minutes: 60}, d.Scheduled[1])
	assert.Equal(t, 0, d.RemainingMin)
	assert.Equal(t, []string{"a"}, res.SplitItems)
	assert.Empty(t, res.DeadlineIssues)
}

func TestScheduleNeverPlacesOnZeroOverrideDay(t *testing.T) {
	// Wednesday is overridden to 0 hours despite the 8h weekday rule.
	overrides := []domain.AvailabilityOverride{
		{Date: wednesday, Value: domain.ExplicitHours(0)},
	}
	items := make([]Item, 6)
	for i := range items {
		items[i] = Item{ID: fmt.Sprintf("t%d", i), TotalMin: 480, RemainingMin: 480, Priority: 2}
	}

	res := Schedule(Input{
		Items:     items,
		Rules:     weekdayRules(8),
		Overrides: overrides,
		StartDate: monday,
	})

	for _, d := range res.Decisions {
		for _, a := range d.Scheduled {
			assert.NotEqual(t, wednesday, a.Date, "item %s placed on a day off", d.ItemID)
		}
	}
}

func TestScheduleSpacingSpreadsBatchAcrossWindow(t *testing.T) {
	// 3 items over 10 ample days land near days 0, 4-5 and 9. The
	// preferred window ends 7 days before the deadline, leaving exactly
	// 10 candidate days.
	deadline := monday.AddDays(16)
	var items []Item
	for _, id := range []string{"a", "b", "c"} {
		items = append(items, Item{
			ID: id, TotalMin: 60, RemainingMin: 60, Priority: 2,
			Deadline: datePtr(deadline),
		})
	}

	res := Schedule(Input{
		Items:      items,
		Rules:      nil, // default 8h every day
		StartDate:  monday,
		UseSpacing: true,
	})

	require.Empty(t, res.DeadlineIssues)
	offsets := make(map[string]int)
	for _, d := range res.Decisions {
		require.Len(t, d.Scheduled, 1)
		offsets[d.ItemID] = monday.DaysUntil(d.Scheduled[0].Date)
	}
	assert.Equal(t, 0, offsets["a"])
	assert.InDelta(t, 4.5, float64(offsets["b"]), 1.0)
	assert.Equal(t, 9, offsets["c"])
}

func TestScheduleNoSpacingFrontLoads(t *testing.T) {
	var items []Item
	for _, id := range []string{"a", "b", "c"} {
		items = append(items, Item{ID: id, TotalMin: 60, RemainingMin: 60, Priority: 2})
	}

	res := Schedule(Input{
		Items:      items,
		StartDate:  monday,
		UseSpacing: false,
	})

	for _, d := range res.Decisions {
		require.Len(t, d.Scheduled, 1)
		assert.Equal(t, monday, d.Scheduled[0].Date)
	}
}

func TestScheduleSkipsItemsWithNothingRemaining(t *testing.T) {
	res := Schedule(Input{
		Items: []Item{
			{ID: "done", TotalMin: 60, RemainingMin: 0, Priority: 2},
			{ID: "open", TotalMin: 60, RemainingMin: 60, Priority: 2},
		},
		StartDate: monday,
	})

	require.Len(t, res.Decisions, 1)
	assert.Equal(t, "open", res.Decisions[0].ItemID)
}

func TestSchedulePastDeadlineYieldsIssueWithEmptyDecision(t *testing.T) {
	gone := monday.AddDays(-3)
	res := Schedule(Input{
		Items: []Item{{
			ID: "late", TotalMin: 60, RemainingMin: 60, Priority: 2,
			Deadline: datePtr(gone),
		}},
		StartDate: monday,
	})

	assert.Equal(t, []string{"late"}, res.DeadlineIssues)
	d := decisionByID(t, res, "late")
	assert.Empty(t, d.Scheduled)
	assert.Equal(t, 60, d.RemainingMin)
}

func TestScheduleTightWindowPlacesPartially(t *testing.T) {
	// Window holds 120 of 300 minutes: place what fits, flag the rest.
	deadline := monday.AddDays(1)
	res := Schedule(Input{
		Items: []Item{{
			ID: "big", TotalMin: 300, RemainingMin: 300, Priority: 2,
			Deadline: datePtr(deadline),
		}},
		Rules:     weekdayRules(1),
		StartDate: monday,
	})

	d := decisionByID(t, res, "big")
	placedMin := 0
	for _, a := range d.Scheduled {
		placedMin += a.Minutes
	}
	assert.Equal(t, 120, placedMin)
	assert.Equal(t, 180, d.RemainingMin)
	assert.Equal(t, []string{"big"}, res.DeadlineIssues)
}

func TestScheduleSeedMinutesConsumeCapacity(t *testing.T) {
	// Monday is fully booked by outside commitments.
	res := Schedule(Input{
		Items:       []Item{{ID: "a", TotalMin: 60, RemainingMin: 60, Priority: 2}},
		StartDate:   monday,
		UsedMinutes: map[domain.Date]int{monday: 480},
	})

	d := decisionByID(t, res, "a")
	require.Len(t, d.Scheduled, 1)
	assert.Equal(t, tuesday, d.Scheduled[0].Date)
}

func TestScheduleExistingAllocationsConsumeCapacity(t *testing.T) {
	// Item b's prior allocation on Monday leaves no room for a.
	res := Schedule(Input{
		Items: []Item{
			{ID: "a", TotalMin: 480, RemainingMin: 480, Priority: 2},
			{ID: "b", TotalMin: 480, RemainingMin: 0, Priority: 2,
				Scheduled: []domain.Allocation{{Date: monday, Minutes: 480}}},
		},
		StartDate: monday,
	})

	d := decisionByID(t, res, "a")
	require.Len(t, d.Scheduled, 1)
	assert.Equal(t, tuesday, d.Scheduled[0].Date)
}

func TestScheduleDoesNotMutateCallerSeed(t *testing.T) {
	seed := map[domain.Date]int{monday: 60}
	Schedule(Input{
		Items:       []Item{{ID: "a", TotalMin: 480, RemainingMin: 480, Priority: 2}},
		StartDate:   monday,
		UsedMinutes: seed,
	})

	assert.Equal(t, map[domain.Date]int{monday: 60}, seed)
}

func TestScheduleHonorsDeadlineBuffer(t *testing.T) {
	// Ample room: everything lands at least 7 days before the deadline.
	deadline := monday.AddDays(20)
	res := Schedule(Input{
		Items: []Item{{
			ID: "a", TotalMin: 120, RemainingMin: 120, Priority: 2,
			Deadline: datePtr(deadline),
		}},
		StartDate: monday,
	})

	bufferEnd := deadline.AddDays(-deadlineBufferDays)
	d := decisionByID(t, res, "a")
	require.NotEmpty(t, d.Scheduled)
	for _, a := range d.Scheduled {
		assert.False(t, a.Date.After(bufferEnd))
	}
}

// Property tests: random batches must conserve minutes, respect daily
// capacity, and reproduce exactly on identical input.

func randomInput(rng *rand.Rand) Input {
	numItems := 1 + rng.Intn(8)
	items := make([]Item, numItems)
	for i := range items {
		total := 30 * (1 + rng.Intn(16)) // 30m .. 8h
		it := Item{
			ID:           fmt.Sprintf("item-%02d", i),
			TotalMin:     total,
			RemainingMin: total,
			Priority:     1 + rng.Intn(3),
		}
		if rng.Intn(3) == 0 {
			it.Order = intPtr(rng.Intn(5))
		}
		if rng.Intn(2) == 0 {
			d := monday.AddDays(3 + rng.Intn(25))
			it.Deadline = &d
		}
		items[i] = it
	}

	var rules []domain.AvailabilityRule
	if rng.Intn(4) != 0 {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if rng.Intn(3) != 0 {
				rules = append(rules, domain.AvailabilityRule{Weekday: wd, Hours: 1 + rng.Intn(8)})
			}
		}
	}

	var overrides []domain.AvailabilityOverride
	for i := 0; i < rng.Intn(4); i++ {
		overrides = append(overrides, domain.AvailabilityOverride{
			Date:  monday.AddDays(rng.Intn(20)),
			Value: domain.ExplicitHours(rng.Intn(5)),
		})
	}

	return Input{
		Items:      items,
		Rules:      rules,
		Overrides:  overrides,
		StartDate:  monday,
		UseSpacing: rng.Intn(2) == 0,
	}
}

func TestSchedulePropertyConservationAndCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		in := randomInput(rng)
		res := Schedule(in)

		avail := NewResolver(in.Rules, in.Overrides)
		booked := make(map[domain.Date]int)

		remaining := make(map[string]int)
		for _, it := range in.Items {
			remaining[it.ID] = it.RemainingMin
		}

		for _, d := range res.Decisions {
			placedMin := 0
			for _, a := range d.Scheduled {
				assert.Greater(t, a.Minutes, 0, "run %d: zero-minute entry", run)
				assert.False(t, a.Date.Before(in.StartDate), "run %d: placed before start", run)
				booked[a.Date] += a.Minutes
				placedMin += a.Minutes
			}
			// Conservation: placed plus reported remaining equals input.
			assert.Equal(t, remaining[d.ItemID], placedMin+d.RemainingMin,
				"run %d item %s: minutes not conserved", run, d.ItemID)
		}

		for date, min := range booked {
			assert.LessOrEqual(t, min, avail.AvailableMinutes(date),
				"run %d: %s overbooked", run, date)
		}
	}
}

func TestSchedulePropertyDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		in := randomInput(rng)
		first := Schedule(in)
		second := Schedule(in)
		assert.Equal(t, first, second, "run %d: results differ across reruns", run)
	}
}

func TestSpacingTarget(t *testing.T) {
	tests := []struct {
		name       string
		useSpacing bool
		i, k, n    int
		want       int
	}{
		{"disabled", false, 2, 3, 10, 0},
		{"single item", true, 0, 1, 10, 0},
		{"first of three", true, 0, 3, 10, 0},
		{"middle of three", true, 1, 3, 10, 5},
		{"last of three", true, 2, 3, 10, 9},
		{"more items than days", true, 7, 8, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spacingTarget(tt.useSpacing, tt.i, tt.k, tt.n))
		})
	}
}
