package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatMinutes renders a duration in minutes as "2h30m", "45m" or "3h".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// RelativeDate renders a date relative to today: "today", "tomorrow",
// "in 3 days", "2 days ago", falling back to the ISO form further out.
func RelativeDate(d domain.Date, today domain.Date) string {
	diff := today.DaysUntil(d)
	switch {
	case diff == 0:
		return "today"
	case diff == 1:
		return "tomorrow"
	case diff == -1:
		return "yesterday"
	case diff > 1 && diff <= 7:
		return fmt.Sprintf("in %d days", diff)
	case diff < -1 && diff >= -7:
		return fmt.Sprintf("%d days ago", -diff)
	default:
		return d.String()
	}
}

// FormatDeadline renders an optional deadline colored by urgency.
func FormatDeadline(d *domain.Date, today domain.Date) string {
	if d == nil {
		return StyleDim.Render("—")
	}
	label := RelativeDate(*d, today)
	diff := today.DaysUntil(*d)
	switch {
	case diff < 0:
		return StyleRed.Render(label)
	case diff <= 3:
		return StyleYellow.Render(label)
	default:
		return StyleFg.Render(label)
	}
}

// FormatWeekdayDate renders a date as "Mon 2006-01-02".
func FormatWeekdayDate(d domain.Date) string {
	return fmt.Sprintf("%s %s", d.Weekday().String()[:3], d)
}

// RenderBox wraps content in a rounded border with a title line.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)
	var b strings.Builder
	if title != "" {
		b.WriteString(StyleHeader.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(content)
	return box.Render(b.String())
}

// ShortID returns the first 8 characters of a UUID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatTimestamp renders a stored UTC time in the local zone.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
