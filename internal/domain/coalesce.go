package domain

// ValueOr dereferences the first non-nil pointer, falling back when all are
// nil. Optional fields (priority, dates, order) are pointers throughout the
// domain; this collapses the nil checks at the call site.
func ValueOr[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
