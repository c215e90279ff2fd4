package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pgorski/taskcal/internal/domain"
	"github.com/pgorski/taskcal/internal/repository"
	"github.com/pgorski/taskcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	deadline := testutil.D(2026, time.June, 1)
	p := testutil.NewTestProject(
		testutil.WithProjectTitle("Thesis"),
		testutil.WithProjectCategory("studies"),
		testutil.WithProjectPriority(domain.PriorityHigh),
		testutil.WithProjectDeadline(deadline),
	)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thesis", got.Title)
	assert.Equal(t, "studies", got.Category)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, deadline, *got.Deadline)
}

func TestProjectGetMissingReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectListOrdersByCreation(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	first := testutil.NewTestProject(testutil.WithProjectTitle("first"))
	second := testutil.NewTestProject(testutil.WithProjectTitle("second"))
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
}

func TestProjectUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject(testutil.WithProjectDeadline(testutil.D(2026, time.June, 1)))
	require.NoError(t, repo.Create(ctx, p))

	p.Title = "Renamed"
	p.Deadline = nil
	p.Priority = domain.PriorityLow
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Nil(t, got.Deadline)
	assert.Equal(t, domain.PriorityLow, got.Priority)
}

func TestProjectDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject()
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
