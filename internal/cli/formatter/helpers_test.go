package formatter

import (
	"testing"
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		min  int
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
		{480, "8h"},
		{485, "8h5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.min), "minutes=%d", tt.min)
	}
}

func TestRelativeDate(t *testing.T) {
	today := domain.NewDate(2026, time.March, 2)
	tests := []struct {
		date domain.Date
		want string
	}{
		{today, "today"},
		{today.AddDays(1), "tomorrow"},
		{today.AddDays(-1), "yesterday"},
		{today.AddDays(3), "in 3 days"},
		{today.AddDays(-4), "4 days ago"},
		{today.AddDays(30), "2026-04-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeDate(tt.date, today))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactlyten", Truncate("exactlyten", 10))
	assert.Equal(t, "long str…", Truncate("long string here", 9))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", ShortID("12345678-abcd-efgh"))
	assert.Equal(t, "short", ShortID("short"))
}

func TestFormatWeekdayDate(t *testing.T) {
	assert.Equal(t, "Mon 2026-03-02", FormatWeekdayDate(domain.NewDate(2026, time.March, 2)))
}
