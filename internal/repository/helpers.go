package repository

import (
	"database/sql"

	"github.com/pgorski/taskcal/internal/domain"
)

// parseNullableDate parses a sql.NullString into a *domain.Date.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableDate(s sql.NullString) *domain.Date {
	if !s.Valid || s.String == "" {
		return nil
	}
	d, err := domain.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &d
}

// nullableDateToString converts a *domain.Date to a value suitable for
// SQLite storage. Returns nil (SQL NULL) if the pointer is nil.
func nullableDateToString(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableIntFromSQL converts a sql.NullInt64 to a *int.
func nullableIntFromSQL(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
