package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/pgorski/taskcal/internal/repository"
)

type agendaService struct {
	projects repository.ProjectRepo
	subtasks repository.SubtaskRepo
}

func NewAgendaService(projects repository.ProjectRepo, subtasks repository.SubtaskRepo) AgendaService {
	return &agendaService{projects: projects, subtasks: subtasks}
}

// Day derives the agenda for one date from the stored allocation records.
func (s *agendaService) Day(ctx context.Context, date domain.Date) (*contract.DayAgenda, error) {
	days, err := s.Range(ctx, date, date)
	if err != nil {
		return nil, err
	}
	return &days[0], nil
}

// Range returns one DayAgenda per date in [from, to], empty days included,
// built from every subtask allocation falling inside the range.
func (s *agendaService) Range(ctx context.Context, from, to domain.Date) ([]contract.DayAgenda, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("agenda range end %s before start %s", to, from)
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	titles := make(map[string]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	all, err := s.subtasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading subtasks: %w", err)
	}

	byDate := make(map[domain.Date][]contract.AgendaEntry)
	for _, st := range all {
		for _, a := range st.ScheduledDates {
			if a.Date.Before(from) || a.Date.After(to) {
				continue
			}
			byDate[a.Date] = append(byDate[a.Date], contract.AgendaEntry{
				SubtaskID:    st.ID,
				ProjectID:    st.ProjectID,
				ProjectTitle: titles[st.ProjectID],
				Description:  st.Description,
				Minutes:      a.Minutes,
				Done:         st.Done,
				Deadline:     st.Deadline,
			})
		}
	}

	var days []contract.DayAgenda
	for d := from; !d.After(to); d = d.AddDays(1) {
		entries := byDate[d]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].ProjectTitle != entries[j].ProjectTitle {
				return entries[i].ProjectTitle < entries[j].ProjectTitle
			}
			if entries[i].Description != entries[j].Description {
				return entries[i].Description < entries[j].Description
			}
			return entries[i].SubtaskID < entries[j].SubtaskID
		})
		total := 0
		for _, e := range entries {
			total += e.Minutes
		}
		days = append(days, contract.DayAgenda{Date: d, TotalMin: total, Entries: entries})
	}
	return days, nil
}
