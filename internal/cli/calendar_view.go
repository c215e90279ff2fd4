package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pgorski/taskcal/internal/cli/formatter"
	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// calendarKeyMap defines the week-browser key bindings.
type calendarKeyMap struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Quit     key.Binding
}

func defaultCalendarKeyMap() calendarKeyMap {
	return calendarKeyMap{
		PrevDay:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		PrevWeek: key.NewBinding(key.WithKeys("up", "k", "p"), key.WithHelp("↑/p", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("down", "j", "n"), key.WithHelp("↓/n", "next week")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// calendarModel is the bubbletea model for the week browser. It loads one
// week of agenda data at a time and highlights a selected day.
type calendarModel struct {
	app      *App
	keys     calendarKeyMap
	selected domain.Date
	week     []contract.DayAgenda
	width    int
	err      error
}

func newCalendarModel(app *App, selected domain.Date) calendarModel {
	return calendarModel{
		app:      app,
		keys:     defaultCalendarKeyMap(),
		selected: selected,
	}
}

type weekLoadedMsg struct {
	days []contract.DayAgenda
	err  error
}

func (m calendarModel) loadWeek() tea.Cmd {
	start := weekStart(m.selected)
	return func() tea.Msg {
		days, err := m.app.Agenda.Range(context.Background(), start, start.AddDays(6))
		return weekLoadedMsg{days: days, err: err}
	}
}

func (m calendarModel) Init() tea.Cmd {
	return m.loadWeek()
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case weekLoadedMsg:
		m.week = msg.days
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		prevWeekStart := weekStart(m.selected)
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevDay):
			m.selected = m.selected.AddDays(-1)
		case key.Matches(msg, m.keys.NextDay):
			m.selected = m.selected.AddDays(1)
		case key.Matches(msg, m.keys.PrevWeek):
			m.selected = m.selected.AddDays(-7)
		case key.Matches(msg, m.keys.NextWeek):
			m.selected = m.selected.AddDays(7)
		case key.Matches(msg, m.keys.Today):
			m.selected = domain.Today(time.Local)
		default:
			return m, nil
		}
		if weekStart(m.selected) != prevWeekStart {
			return m, m.loadWeek()
		}
		return m, nil
	}

	return m, nil
}

func (m calendarModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
	}
	if len(m.week) == 0 {
		return formatter.StyleDim.Render("loading…") + "\n"
	}

	today := domain.Today(time.Local)
	start := weekStart(m.selected)
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render(
		fmt.Sprintf("Week of %s", start)))
	b.WriteString("\n\n")

	// Day strip: seven cells, selected day boxed.
	cells := make([]string, 0, 7)
	for _, day := range m.week {
		label := fmt.Sprintf("%s %2d\n%s",
			day.Date.Weekday().String()[:3],
			day.Date.Day,
			formatter.FormatMinutes(day.TotalMin))
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(formatter.ColorFg)
		switch {
		case day.Date == m.selected:
			style = style.
				Border(lipgloss.RoundedBorder()).
				BorderForeground(formatter.ColorHeader).
				Foreground(formatter.ColorHeader)
		case day.Date == today:
			style = style.Foreground(formatter.ColorGreen)
		case day.TotalMin == 0:
			style = style.Foreground(formatter.ColorDim)
		}
		cells = append(cells, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, cells...))
	b.WriteString("\n\n")

	// Detail pane for the selected day.
	for _, day := range m.week {
		if day.Date != m.selected {
			continue
		}
		b.WriteString(formatter.StyleBold.Render(day.Date.String()))
		b.WriteString("  " + formatter.FormatMinutes(day.TotalMin))
		b.WriteString("\n")
		if len(day.Entries) == 0 {
			b.WriteString(formatter.StyleDim.Render("  free") + "\n")
		}
		for _, e := range day.Entries {
			mark := " "
			if e.Done {
				mark = formatter.StyleGreen.Render("✓")
			}
			b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
				mark,
				formatter.FormatMinutes(e.Minutes),
				formatter.StyleBlue.Render(e.ProjectTitle),
				e.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatter.StyleDim.Render("←/→ day · ↑/↓ week · t today · q quit"))
	b.WriteString("\n")
	return b.String()
}
