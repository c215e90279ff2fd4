package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgorski/taskcal/internal/db"
	"github.com/pgorski/taskcal/internal/domain"
)

const subtaskColumns = `id, project_id, description, done, priority, sort_order,
		deadline, duration_min, remaining_min, scheduled_dates, date, created_at, updated_at`

// SQLiteSubtaskRepo implements SubtaskRepo using a SQLite database.
// The allocation list is stored as a JSON array in the scheduled_dates
// column; the date column mirrors the last entry for quick daily lookups.
type SQLiteSubtaskRepo struct {
	db db.DBTX
}

// NewSQLiteSubtaskRepo creates a new SQLiteSubtaskRepo.
func NewSQLiteSubtaskRepo(dbtx db.DBTX) *SQLiteSubtaskRepo {
	return &SQLiteSubtaskRepo{db: dbtx}
}

func (r *SQLiteSubtaskRepo) Create(ctx context.Context, s *domain.Subtask) error {
	scheduled, err := marshalAllocations(s.ScheduledDates)
	if err != nil {
		return err
	}
	query := `INSERT INTO subtasks (` + subtaskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.Description,
		boolToInt(s.Done),
		s.Priority,
		nullableIntToValue(s.Order),
		nullableDateToString(s.Deadline),
		s.DurationMin,
		s.RemainingMin,
		scheduled,
		nullableDateToString(s.Date),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subtask: %w", err)
	}
	return nil
}

func (r *SQLiteSubtaskRepo) GetByID(ctx context.Context, id string) (*domain.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSubtask(row)
}

func (r *SQLiteSubtaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks by project: %w", err)
	}
	defer rows.Close()
	return r.scanSubtasks(rows)
}

func (r *SQLiteSubtaskRepo) ListAll(ctx context.Context) ([]*domain.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks ORDER BY project_id, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()
	return r.scanSubtasks(rows)
}

func (r *SQLiteSubtaskRepo) Update(ctx context.Context, s *domain.Subtask) error {
	scheduled, err := marshalAllocations(s.ScheduledDates)
	if err != nil {
		return err
	}
	query := `UPDATE subtasks SET project_id = ?, description = ?, done = ?, priority = ?,
		sort_order = ?, deadline = ?, duration_min = ?, remaining_min = ?,
		scheduled_dates = ?, date = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		s.ProjectID,
		s.Description,
		boolToInt(s.Done),
		s.Priority,
		nullableIntToValue(s.Order),
		nullableDateToString(s.Deadline),
		s.DurationMin,
		s.RemainingMin,
		scheduled,
		nullableDateToString(s.Date),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subtask: %w", err)
	}
	return nil
}

func (r *SQLiteSubtaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting subtask: %w", err)
	}
	return nil
}

func (r *SQLiteSubtaskRepo) scanSubtask(row *sql.Row) (*domain.Subtask, error) {
	var s domain.Subtask
	var doneInt int
	var orderVal sql.NullInt64
	var deadlineStr, dateStr sql.NullString
	var scheduledJSON string
	var createdAtStr, updatedAtStr string

	err := row.Scan(&s.ID, &s.ProjectID, &s.Description, &doneInt, &s.Priority,
		&orderVal, &deadlineStr, &s.DurationMin, &s.RemainingMin,
		&scheduledJSON, &dateStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subtask: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subtask: %w", err)
	}
	return r.populateSubtask(&s, doneInt, orderVal, deadlineStr, dateStr, scheduledJSON, createdAtStr, updatedAtStr)
}

func (r *SQLiteSubtaskRepo) scanSubtasks(rows *sql.Rows) ([]*domain.Subtask, error) {
	var subtasks []*domain.Subtask
	for rows.Next() {
		var s domain.Subtask
		var doneInt int
		var orderVal sql.NullInt64
		var deadlineStr, dateStr sql.NullString
		var scheduledJSON string
		var createdAtStr, updatedAtStr string

		err := rows.Scan(&s.ID, &s.ProjectID, &s.Description, &doneInt, &s.Priority,
			&orderVal, &deadlineStr, &s.DurationMin, &s.RemainingMin,
			&scheduledJSON, &dateStr, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning subtask row: %w", err)
		}
		st, err := r.populateSubtask(&s, doneInt, orderVal, deadlineStr, dateStr, scheduledJSON, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subtasks: %w", err)
	}
	return subtasks, nil
}

func (r *SQLiteSubtaskRepo) populateSubtask(
	s *domain.Subtask,
	doneInt int,
	orderVal sql.NullInt64,
	deadlineStr, dateStr sql.NullString,
	scheduledJSON string,
	createdAtStr, updatedAtStr string,
) (*domain.Subtask, error) {
	s.Done = intToBool(doneInt)
	s.Order = nullableIntFromSQL(orderVal)
	s.Deadline = parseNullableDate(deadlineStr)
	s.Date = parseNullableDate(dateStr)

	if scheduledJSON != "" {
		if err := json.Unmarshal([]byte(scheduledJSON), &s.ScheduledDates); err != nil {
			return nil, fmt.Errorf("decoding scheduled_dates: %w", err)
		}
	}

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return s, nil
}

func marshalAllocations(allocs []domain.Allocation) (string, error) {
	if len(allocs) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(allocs)
	if err != nil {
		return "", fmt.Errorf("encoding scheduled_dates: %w", err)
	}
	return string(b), nil
}
