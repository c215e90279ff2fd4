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

type availabilityFixture struct {
	ctx      context.Context
	repo     *repository.SQLiteAvailabilityRepo
	subtasks *repository.SQLiteSubtaskRepo
	projects *repository.SQLiteProjectRepo
	svc      service.AvailabilityService
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	subtasks := repository.NewSQLiteSubtaskRepo(database)
	repo := repository.NewSQLiteAvailabilityRepo(database)
	scheduling := service.NewScheduleService(projects, subtasks, repo, testutil.NewTestUoW(database))
	return &availabilityFixture{
		ctx:      context.Background(),
		repo:     repo,
		subtasks: subtasks,
		projects: projects,
		svc:      service.NewAvailabilityService(repo, scheduling),
	}
}

func TestSetRulesPersistsAndValidates(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.svc.SetRules(f.ctx, []domain.AvailabilityRule{{Weekday: time.Monday, Hours: 25}})
	assert.Error(t, err, "25 hours in a day is rejected")

	_, err = f.svc.SetRules(f.ctx, []domain.AvailabilityRule{{Weekday: 9, Hours: 8}})
	assert.Error(t, err, "weekday out of range is rejected")

	_, err = f.svc.SetRules(f.ctx, []domain.AvailabilityRule{
		{Weekday: time.Monday, Hours: 8},
		{Weekday: time.Wednesday, Hours: 0},
	})
	require.NoError(t, err)

	rules, err := f.svc.Rules(f.ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestSetRulesTriggersReschedule(t *testing.T) {
	f := newAvailabilityFixture(t)
	p := testutil.NewTestProject()
	require.NoError(t, f.projects.Create(f.ctx, p))

	// Booked tomorrow under the old (default) calendar.
	tomorrow := domain.Today(time.Local).AddDays(1)
	st := testutil.NewTestSubtask(p.ID, testutil.WithDuration(60),
		testutil.WithAllocations(domain.Allocation{Date: tomorrow, Minutes: 60}))
	require.NoError(t, f.subtasks.Create(f.ctx, st))

	// New calendar keeps every day open, so the work stays placed, but the
	// reschedule rewrites allocations from today under the new rules.
	var rules []domain.AvailabilityRule
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		rules = append(rules, domain.AvailabilityRule{Weekday: wd, Hours: 8})
	}
	resp, err := f.svc.SetRules(f.ctx, rules)
	require.NoError(t, err)
	require.NotNil(t, resp)

	stored, err := f.subtasks.GetByID(f.ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.DurationMin, stored.ScheduledMin()+stored.RemainingMin)
	assert.Equal(t, 0, stored.RemainingMin, "60 minutes still fit the new calendar")
}

func TestSetOverrideEvictsWorkFromDayOff(t *testing.T) {
	f := newAvailabilityFixture(t)
	p := testutil.NewTestProject()
	require.NoError(t, f.projects.Create(f.ctx, p))

	dayOff := domain.Today(time.Local).AddDays(3)
	st := testutil.NewTestSubtask(p.ID, testutil.WithDuration(60),
		testutil.WithAllocations(domain.Allocation{Date: dayOff, Minutes: 60}))
	require.NoError(t, f.subtasks.Create(f.ctx, st))

	_, err := f.svc.SetOverride(f.ctx, dayOff, 0)
	require.NoError(t, err)

	stored, err := f.subtasks.GetByID(f.ctx, st.ID)
	require.NoError(t, err)
	for _, a := range stored.ScheduledDates {
		assert.NotEqual(t, dayOff, a.Date, "work must leave the day off")
	}
	assert.Equal(t, 0, stored.RemainingMin)
}

func TestSetOverrideRejectsBadHours(t *testing.T) {
	f := newAvailabilityFixture(t)
	date := domain.Today(time.Local).AddDays(1)

	_, err := f.svc.SetOverride(f.ctx, date, -1)
	assert.Error(t, err)
	_, err = f.svc.SetOverride(f.ctx, date, 25)
	assert.Error(t, err)
}

func TestClearOverrideRemovesIt(t *testing.T) {
	f := newAvailabilityFixture(t)
	date := domain.Today(time.Local).AddDays(2)

	_, err := f.svc.SetOverride(f.ctx, date, 2)
	require.NoError(t, err)
	_, err = f.svc.ClearOverride(f.ctx, date)
	require.NoError(t, err)

	overrides, err := f.svc.Overrides(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}
