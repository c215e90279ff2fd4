package scheduler

import (
	"testing"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateRun(start domain.Date, nets ...int) []CandidateDay {
	days := make([]CandidateDay, len(nets))
	for i, n := range nets {
		days[i] = CandidateDay{Date: start.AddDays(i), NetMin: n}
	}
	return days
}

func TestPlaceItemSingleDayAtTarget(t *testing.T) {
	days := candidateRun(monday, 480, 480, 480)
	ledger := NewLedger(nil)

	placed := placeItem(days, 120, 1, ledger)

	require.Len(t, placed, 1)
	assert.Equal(t, monday.AddDays(1), placed[0].Date)
	assert.Equal(t, 120, placed[0].Minutes)
	assert.Equal(t, 120, ledger.Used(monday.AddDays(1)))
}

func TestPlaceItemSearchesForwardBeforeBackward(t *testing.T) {
	// Target day too small; day after fits, as does the day before.
	// Forward wins.
	days := candidateRun(monday, 480, 60, 480)
	ledger := NewLedger(nil)

	placed := placeItem(days, 120, 1, ledger)

	require.Len(t, placed, 1)
	assert.Equal(t, monday.AddDays(2), placed[0].Date)
}

func TestPlaceItemFallsBackToEarlierDay(t *testing.T) {
	// Only the day before the target can hold the whole amount.
	days := candidateRun(monday, 480, 60, 60)
	ledger := NewLedger(nil)

	placed := placeItem(days, 120, 1, ledger)

	require.Len(t, placed, 1)
	assert.Equal(t, monday, placed[0].Date)
}

func TestPlaceItemSplitsChronologicallyWhenNoDayFits(t *testing.T) {
	days := candidateRun(monday, 60, 60, 60)
	ledger := NewLedger(nil)

	placed := placeItem(days, 150, 0, ledger)

	require.Len(t, placed, 3)
	assert.Equal(t, domain.Allocation{Date: monday, Minutes: 60}, placed[0])
	assert.Equal(t, domain.Allocation{Date: monday.AddDays(1), Minutes: 60}, placed[1])
	assert.Equal(t, domain.Allocation{Date: monday.AddDays(2), Minutes: 30}, placed[2])
}

func TestPlaceItemSplitIgnoresTargetIndex(t *testing.T) {
	// The fallback walks chronologically even when the target was late.
	days := candidateRun(monday, 60, 60, 60)
	ledger := NewLedger(nil)

	placed := placeItem(days, 120, 2, ledger)

	require.Len(t, placed, 2)
	assert.Equal(t, monday, placed[0].Date)
	assert.Equal(t, monday.AddDays(1), placed[1].Date)
}

func TestPlaceItemCommitsEveryAllocationToLedger(t *testing.T) {
	days := candidateRun(monday, 60, 60, 60)
	ledger := NewLedger(nil)

	placed := placeItem(days, 150, 0, ledger)

	total := 0
	for _, a := range placed {
		assert.Equal(t, a.Minutes, ledger.Used(a.Date))
		total += a.Minutes
	}
	assert.Equal(t, 150, total)
}

func TestPlaceItemZeroRemainingPlacesNothing(t *testing.T) {
	days := candidateRun(monday, 480)
	assert.Nil(t, placeItem(days, 0, 0, NewLedger(nil)))
}

func TestPlaceItemEmptyWindowPlacesNothing(t *testing.T) {
	assert.Nil(t, placeItem(nil, 60, 0, NewLedger(nil)))
}

func TestLedgerSeedAllocationsSkipsHistory(t *testing.T) {
	items := []Item{{
		ID: "a",
		Scheduled: []domain.Allocation{
			{Date: monday.AddDays(-7), Minutes: 60}, // history
			{Date: monday, Minutes: 90},
			{Date: monday.AddDays(1), Minutes: 30},
		},
	}}
	ledger := NewLedger(nil)
	ledger.SeedAllocations(items, monday)

	assert.Equal(t, 0, ledger.Used(monday.AddDays(-7)))
	assert.Equal(t, 90, ledger.Used(monday))
	assert.Equal(t, 30, ledger.Used(monday.AddDays(1)))
}

func TestNewLedgerCopiesSeed(t *testing.T) {
	seed := map[domain.Date]int{monday: 100}
	ledger := NewLedger(seed)
	ledger.Commit(monday, 50)

	assert.Equal(t, 100, seed[monday], "caller's seed must stay untouched")
	assert.Equal(t, 150, ledger.Used(monday))
}
