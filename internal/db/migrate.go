package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		deadline    TEXT,
		priority    INTEGER NOT NULL DEFAULT 2
		            CHECK(priority BETWEEN 1 AND 3),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subtasks (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		description     TEXT NOT NULL,
		done            INTEGER NOT NULL DEFAULT 0,
		priority        INTEGER NOT NULL DEFAULT 2
		                CHECK(priority BETWEEN 1 AND 3),
		sort_order      INTEGER,
		deadline        TEXT,
		duration_min    INTEGER NOT NULL DEFAULT 0,
		remaining_min   INTEGER NOT NULL DEFAULT 0,
		scheduled_dates TEXT NOT NULL DEFAULT '[]',
		date            TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subtasks_project ON subtasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subtasks_date ON subtasks(date)`,

	`CREATE TABLE IF NOT EXISTS availability_rules (
		day_of_week INTEGER PRIMARY KEY CHECK(day_of_week BETWEEN 0 AND 6),
		hours       INTEGER NOT NULL CHECK(hours >= 0)
	)`,

	// hours NULL is the "no override" sentinel: the row exists but the
	// weekly rule applies for that date.
	`CREATE TABLE IF NOT EXISTS availability_overrides (
		date  TEXT PRIMARY KEY,
		hours INTEGER
	)`,
}
