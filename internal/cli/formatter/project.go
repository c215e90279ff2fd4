package formatter

import (
	"fmt"
	"strings"

	"github.com/pgorski/taskcal/internal/domain"
)

// FormatProjectList renders projects as a table.
func FormatProjectList(projects []*domain.Project, today domain.Date) string {
	if len(projects) == 0 {
		return StyleDim.Render("No projects yet. Create one with: taskcal project add")
	}
	headers := []string{"ID", "TITLE", "CATEGORY", "PRI", "DEADLINE"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			StyleDim.Render(ShortID(p.ID)),
			p.Title,
			p.Category,
			PriorityLabel(p.Priority),
			FormatDeadline(p.Deadline, today),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectDetail renders one project with its subtasks.
func FormatProjectDetail(p *domain.Project, subtasks []*domain.Subtask, today domain.Date) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(p.Title))
	b.WriteString("  " + PriorityLabel(p.Priority))
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(StyleFg.Render(p.Description) + "\n")
	}
	if p.Category != "" {
		b.WriteString(StyleDim.Render("category: "+p.Category) + "\n")
	}
	b.WriteString(StyleDim.Render("deadline: ") + FormatDeadline(p.Deadline, today) + "\n")

	if len(subtasks) == 0 {
		b.WriteString("\n" + StyleDim.Render("No subtasks.") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(FormatSubtaskList(subtasks, today))
	return b.String()
}

// FormatSubtaskList renders subtasks as a table.
func FormatSubtaskList(subtasks []*domain.Subtask, today domain.Date) string {
	if len(subtasks) == 0 {
		return StyleDim.Render("No subtasks.")
	}
	headers := []string{"ID", "", "DESCRIPTION", "PRI", "DUR", "LEFT", "DEADLINE", "NEXT"}
	rows := make([][]string, 0, len(subtasks))
	for _, st := range subtasks {
		mark := ""
		if st.Done {
			mark = StyleGreen.Render("✓")
		}
		next := StyleDim.Render("—")
		if d := nextAllocation(st, today); d != nil {
			next = StyleBlue.Render(RelativeDate(*d, today))
		}
		rows = append(rows, []string{
			StyleDim.Render(ShortID(st.ID)),
			mark,
			Truncate(st.Description, 40),
			PriorityLabel(st.Priority),
			FormatMinutes(st.DurationMin),
			formatRemaining(st),
			FormatDeadline(st.Deadline, today),
			next,
		})
	}
	return RenderTable(headers, rows)
}

func formatRemaining(st *domain.Subtask) string {
	if st.Done || st.RemainingMin == 0 {
		return StyleGreen.Render("0m")
	}
	if len(st.ScheduledDates) == 0 {
		return StyleYellow.Render(FormatMinutes(st.RemainingMin))
	}
	return StyleFg.Render(FormatMinutes(st.RemainingMin))
}

func nextAllocation(st *domain.Subtask, today domain.Date) *domain.Date {
	var next *domain.Date
	for i := range st.ScheduledDates {
		d := st.ScheduledDates[i].Date
		if d.Before(today) {
			continue
		}
		if next == nil || d.Before(*next) {
			next = &d
		}
	}
	return next
}

// FormatAvailability renders the weekly rules and any date overrides.
func FormatAvailability(rules []domain.AvailabilityRule, overrides []domain.AvailabilityOverride) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Weekly availability"))
	b.WriteString("\n")

	if len(rules) == 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("No rules configured: every day defaults to %dh.", 8)))
		b.WriteString("\n")
	} else {
		byDay := make(map[int]int, len(rules))
		for _, r := range rules {
			byDay[int(r.Weekday)] = r.Hours
		}
		for wd := 0; wd < 7; wd++ {
			name := weekdayName(wd)
			hours, ok := byDay[wd]
			switch {
			case !ok:
				b.WriteString(fmt.Sprintf("  %s  %s\n", name, StyleDim.Render("unavailable")))
			case hours == 0:
				b.WriteString(fmt.Sprintf("  %s  %s\n", name, StyleDim.Render("0h")))
			default:
				b.WriteString(fmt.Sprintf("  %s  %s\n", name, StyleGreen.Render(fmt.Sprintf("%dh", hours))))
			}
		}
	}

	if len(overrides) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Overrides"))
		b.WriteString("\n")
		for _, o := range overrides {
			hours, ok := o.Value.Explicit()
			if !ok {
				continue
			}
			label := fmt.Sprintf("%dh", hours)
			if hours == 0 {
				label = "day off"
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", StyleBlue.Render(o.Date.String()), StyleYellow.Render(label)))
		}
	}

	return b.String()
}

func weekdayName(wd int) string {
	names := [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if wd < 0 || wd > 6 {
		return "???"
	}
	return names[wd]
}
