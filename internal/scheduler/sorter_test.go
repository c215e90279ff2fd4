package scheduler

import (
	"testing"
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func datePtr(d domain.Date) *domain.Date { return &d }

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestOrderItemsExplicitOrderFirst(t *testing.T) {
	items := []Item{
		{ID: "c", Priority: 1},
		{ID: "b", Priority: 3, Order: intPtr(2)},
		{ID: "a", Priority: 3, Order: intPtr(1)},
	}
	OrderItems(items)

	// Ordered items lead regardless of priority; unordered trail.
	assert.Equal(t, []string{"a", "b", "c"}, ids(items))
}

func TestOrderItemsPriorityBreaksTies(t *testing.T) {
	items := []Item{
		{ID: "low", Priority: domain.PriorityLow},
		{ID: "high", Priority: domain.PriorityHigh},
		{ID: "med", Priority: domain.PriorityMedium},
	}
	OrderItems(items)

	assert.Equal(t, []string{"high", "med", "low"}, ids(items))
}

func TestOrderItemsDeadlineBreaksPriorityTies(t *testing.T) {
	early := domain.NewDate(2026, time.April, 1)
	late := domain.NewDate(2026, time.April, 20)
	items := []Item{
		{ID: "none", Priority: 2},
		{ID: "late", Priority: 2, Deadline: datePtr(late)},
		{ID: "early", Priority: 2, Deadline: datePtr(early)},
	}
	OrderItems(items)

	assert.Equal(t, []string{"early", "late", "none"}, ids(items))
}

func TestOrderItemsIDIsFinalTiebreak(t *testing.T) {
	items := []Item{
		{ID: "b", Priority: 2},
		{ID: "a", Priority: 2},
		{ID: "c", Priority: 2},
	}
	OrderItems(items)

	assert.Equal(t, []string{"a", "b", "c"}, ids(items))
}

func TestOrderItemsIsDeterministic(t *testing.T) {
	build := func() []Item {
		return []Item{
			{ID: "x", Priority: 2, Order: intPtr(5)},
			{ID: "y", Priority: 1},
			{ID: "z", Priority: 1, Deadline: datePtr(domain.NewDate(2026, time.May, 1))},
			{ID: "w", Priority: 2, Order: intPtr(5)},
		}
	}
	a := build()
	b := build()
	OrderItems(a)
	OrderItems(b)

	assert.Equal(t, ids(a), ids(b))
}
