package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/pgorski/taskcal/internal/repository"
	"github.com/pgorski/taskcal/internal/service"
	"github.com/pgorski/taskcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgendaFixture(t *testing.T) (context.Context, *repository.SQLiteProjectRepo, *repository.SQLiteSubtaskRepo, service.AgendaService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	subtasks := repository.NewSQLiteSubtaskRepo(database)
	return context.Background(), projects, subtasks, service.NewAgendaService(projects, subtasks)
}

func TestAgendaDayCollectsAllocations(t *testing.T) {
	ctx, projects, subtasks, svc := newAgendaFixture(t)
	day := testutil.D(2026, time.March, 2)

	p := testutil.NewTestProject(testutil.WithProjectTitle("Thesis"))
	require.NoError(t, projects.Create(ctx, p))
	st := testutil.NewTestSubtask(p.ID,
		testutil.WithDescription("write intro"),
		testutil.WithDuration(120),
		testutil.WithAllocations(
			domain.Allocation{Date: day, Minutes: 90},
			domain.Allocation{Date: day.AddDays(1), Minutes: 30},
		))
	require.NoError(t, subtasks.Create(ctx, st))

	agenda, err := svc.Day(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, day, agenda.Date)
	assert.Equal(t, 90, agenda.TotalMin)
	require.Len(t, agenda.Entries, 1)
	assert.Equal(t, "write intro", agenda.Entries[0].Description)
	assert.Equal(t, "Thesis", agenda.Entries[0].ProjectTitle)
	assert.Equal(t, 90, agenda.Entries[0].Minutes)
}

func TestAgendaRangeIncludesEmptyDays(t *testing.T) {
	ctx, projects, subtasks, svc := newAgendaFixture(t)
	from := testutil.D(2026, time.March, 2)

	p := testutil.NewTestProject()
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, subtasks.Create(ctx, testutil.NewTestSubtask(p.ID,
		testutil.WithDuration(60),
		testutil.WithAllocations(domain.Allocation{Date: from.AddDays(2), Minutes: 60}))))

	days, err := svc.Range(ctx, from, from.AddDays(3))
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Empty(t, days[0].Entries)
	assert.Empty(t, days[1].Entries)
	assert.Len(t, days[2].Entries, 1)
	assert.Empty(t, days[3].Entries)
}

func TestAgendaRangeRejectsInvertedRange(t *testing.T) {
	ctx, _, _, svc := newAgendaFixture(t)
	from := testutil.D(2026, time.March, 2)

	_, err := svc.Range(ctx, from, from.AddDays(-1))
	assert.Error(t, err)
}

func TestAgendaEntriesSortedDeterministically(t *testing.T) {
	ctx, projects, subtasks, svc := newAgendaFixture(t)
	day := testutil.D(2026, time.March, 2)

	alpha := testutil.NewTestProject(testutil.WithProjectTitle("Alpha"))
	beta := testutil.NewTestProject(testutil.WithProjectTitle("Beta"))
	require.NoError(t, projects.Create(ctx, alpha))
	require.NoError(t, projects.Create(ctx, beta))

	mk := func(projectID, desc string) {
		require.NoError(t, subtasks.Create(ctx, testutil.NewTestSubtask(projectID,
			testutil.WithDescription(desc),
			testutil.WithDuration(30),
			testutil.WithAllocations(domain.Allocation{Date: day, Minutes: 30}))))
	}
	mk(beta.ID, "z-task")
	mk(alpha.ID, "b-task")
	mk(alpha.ID, "a-task")

	agenda, err := svc.Day(ctx, day)
	require.NoError(t, err)
	require.Len(t, agenda.Entries, 3)
	assert.Equal(t, "a-task", agenda.Entries[0].Description)
	assert.Equal(t, "b-task", agenda.Entries[1].Description)
	assert.Equal(t, "z-task", agenda.Entries[2].Description)
	assert.Equal(t, 90, agenda.TotalMin)
}
