package domain

import "time"

// AvailabilityRule is the weekly recurring capacity for one weekday.
// At most one rule exists per weekday.
type AvailabilityRule struct {
	Weekday time.Weekday
	Hours   int
}

// OverrideValue is the capacity recorded for a single date. It is a tagged
// variant rather than a nullable number: an explicit 0 means a day off,
// while NoOverride means the weekly rule applies after all.
type OverrideValue struct {
	explicit bool
	hours    int
}

// NoOverride returns the sentinel that clears an override back to the
// weekly rule.
func NoOverride() OverrideValue {
	return OverrideValue{}
}

// ExplicitHours returns an override fixing capacity for a date, 0 included.
func ExplicitHours(h int) OverrideValue {
	return OverrideValue{explicit: true, hours: h}
}

// Explicit returns the hours and true when the override carries an explicit
// value, or 0 and false for the no-override sentinel.
func (v OverrideValue) Explicit() (int, bool) {
	return v.hours, v.explicit
}

// AvailabilityOverride pins the capacity of one exact calendar date,
// taking precedence over the weekly rule.
type AvailabilityOverride struct {
	Date  Date
	Value OverrideValue
}
