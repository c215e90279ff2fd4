package testutil

import (
	"database/sql"
	"testing"

	"github.com/pgorski/taskcal/internal/db"
)

// NewTestDB opens a fresh in-memory SQLite database with the full schema
// applied and closes it when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps the test database in a real UnitOfWork so service tests
// exercise actual transaction boundaries.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
