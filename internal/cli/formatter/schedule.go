package formatter

import (
	"fmt"
	"strings"

	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/domain"
)

// FormatScheduleResponse renders a scheduling run: per-subtask placements,
// then split and deadline warnings.
func FormatScheduleResponse(resp *contract.ScheduleResponse, today domain.Date) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Schedule"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  from %s", resp.StartDate)))
	b.WriteString("\n\n")

	if len(resp.Decisions) == 0 {
		b.WriteString(StyleDim.Render("Nothing to place.\n"))
		return b.String()
	}

	split := make(map[string]bool, len(resp.SplitItems))
	for _, id := range resp.SplitItems {
		split[id] = true
	}
	unplaced := make(map[string]bool, len(resp.DeadlineIssues))
	for _, id := range resp.DeadlineIssues {
		unplaced[id] = true
	}

	for _, d := range resp.Decisions {
		b.WriteString(StyleBold.Render(d.Description))
		if split[d.SubtaskID] {
			b.WriteString(" " + StyleYellow.Render("[split]"))
		}
		if unplaced[d.SubtaskID] {
			b.WriteString(" " + StyleRed.Render("[deadline at risk]"))
		}
		b.WriteString("\n")

		if len(d.Scheduled) == 0 {
			b.WriteString("  " + StyleRed.Render("no slot found") + "\n")
		}
		for _, a := range d.Scheduled {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
				StyleBlue.Render(FormatWeekdayDate(a.Date)),
				FormatMinutes(a.Minutes),
				StyleDim.Render(RelativeDate(a.Date, today))))
		}
		if d.RemainingMin > 0 {
			b.WriteString("  " + StyleRed.Render(fmt.Sprintf("%s left unplaced", FormatMinutes(d.RemainingMin))) + "\n")
		}
	}

	if len(resp.DeadlineIssues) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d subtask(s) could not be fully placed before their deadline.", len(resp.DeadlineIssues))))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatAgenda renders one or more day agendas.
func FormatAgenda(days []contract.DayAgenda, today domain.Date) string {
	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		header := fmt.Sprintf("%s  %s", FormatWeekdayDate(day.Date), FormatMinutes(day.TotalMin))
		if day.Date == today {
			header += "  " + StyleGreen.Render("(today)")
		}
		b.WriteString(StyleHeader.Render(header))
		b.WriteString("\n")

		if len(day.Entries) == 0 {
			b.WriteString(StyleDim.Render("  free\n"))
			continue
		}
		for _, e := range day.Entries {
			mark := " "
			if e.Done {
				mark = StyleGreen.Render("✓")
			}
			b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
				mark,
				FormatMinutes(e.Minutes),
				StyleBlue.Render(Truncate(e.ProjectTitle, 24)),
				e.Description))
		}
	}
	return b.String()
}
