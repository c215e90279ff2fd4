package scheduler

import "sort"

// OrderItems sorts a batch into the deterministic canonical rules:
// 1. Explicit order: ascending, items with an order before items without
// 2. Priority: ascending (1 beats 2 beats 3)
// 3. Effective deadline: earliest first (nil last)
// 4. Item ID: lexical ascending
// The same order decides both scheduling priority and, in spacing mode,
// each item's target position within the available-day window.
func OrderItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		// 1. Explicit order (defined before undefined)
		if (a.Order == nil) != (b.Order == nil) {
			return a.Order != nil
		}
		if a.Order != nil && b.Order != nil && *a.Order != *b.Order {
			return *a.Order < *b.Order
		}

		// 2. Priority
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}

		// 3. Effective deadline (earliest first, nil last)
		if (a.Deadline == nil) != (b.Deadline == nil) {
			return a.Deadline != nil
		}
		if a.Deadline != nil && b.Deadline != nil && *a.Deadline != *b.Deadline {
			return a.Deadline.Before(*b.Deadline)
		}

		// 4. Item ID (lexical)
		return a.ID < b.ID
	})
}
