package scheduler

import (
	"time"

	"github.com/pgorski/taskcal/internal/domain"
)

// defaultDailyHours is the capacity assumed for every day when the user has
// configured no weekly rules at all. A user with any rules gets 0 capacity
// on weekdays without a rule.
const defaultDailyHours = 8

// Resolver answers per-date capacity questions from the weekly rules and
// date overrides. Lookup order: exact-date override first, weekly rule
// second, global default last.
type Resolver struct {
	rules     map[time.Weekday]int
	overrides map[domain.Date]domain.OverrideValue
	hasRules  bool
}

// NewResolver builds a Resolver from raw rule and override lists. Duplicate
// weekdays keep the last rule; malformed (negative) hours resolve to 0.
func NewResolver(rules []domain.AvailabilityRule, overrides []domain.AvailabilityOverride) *Resolver {
	r := &Resolver{
		rules:     make(map[time.Weekday]int, len(rules)),
		overrides: make(map[domain.Date]domain.OverrideValue, len(overrides)),
		hasRules:  len(rules) > 0,
	}
	for _, rule := range rules {
		r.rules[rule.Weekday] = rule.Hours
	}
	for _, o := range overrides {
		r.overrides[o.Date] = o.Value
	}
	return r
}

// AvailableMinutes returns the gross capacity of a date in minutes.
// An explicit override of 0 hours is a valid day off. An override carrying
// the no-override sentinel falls through to the weekly rule.
func (r *Resolver) AvailableMinutes(d domain.Date) int {
	if v, ok := r.overrides[d]; ok {
		if hours, explicit := v.Explicit(); explicit {
			return clampMin(hours) * 60
		}
	}
	if !r.hasRules {
		return defaultDailyHours * 60
	}
	hours, ok := r.rules[d.Weekday()]
	if !ok {
		return 0
	}
	return clampMin(hours) * 60
}

func clampMin(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
