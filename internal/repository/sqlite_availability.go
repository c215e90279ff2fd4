package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pgorski/taskcal/internal/db"
	"github.com/pgorski/taskcal/internal/domain"
)

// SQLiteAvailabilityRepo implements AvailabilityRepo using a SQLite database.
// Weekly rules are keyed by weekday; overrides by date, with NULL hours as
// the "no override" sentinel.
type SQLiteAvailabilityRepo struct {
	db db.DBTX
}

// NewSQLiteAvailabilityRepo creates a new SQLiteAvailabilityRepo.
func NewSQLiteAvailabilityRepo(dbtx db.DBTX) *SQLiteAvailabilityRepo {
	return &SQLiteAvailabilityRepo{db: dbtx}
}

func (r *SQLiteAvailabilityRepo) ListRules(ctx context.Context) ([]domain.AvailabilityRule, error) {
	query := `SELECT day_of_week, hours FROM availability_rules ORDER BY day_of_week`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing availability rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.AvailabilityRule
	for rows.Next() {
		var dayOfWeek, hours int
		if err := rows.Scan(&dayOfWeek, &hours); err != nil {
			return nil, fmt.Errorf("scanning availability rule: %w", err)
		}
		rules = append(rules, domain.AvailabilityRule{
			Weekday: time.Weekday(dayOfWeek),
			Hours:   hours,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability rules: %w", err)
	}
	return rules, nil
}

func (r *SQLiteAvailabilityRepo) ReplaceRules(ctx context.Context, rules []domain.AvailabilityRule) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM availability_rules`); err != nil {
		return fmt.Errorf("clearing availability rules: %w", err)
	}
	for _, rule := range rules {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO availability_rules (day_of_week, hours) VALUES (?, ?)
			ON CONFLICT(day_of_week) DO UPDATE SET hours = excluded.hours`,
			int(rule.Weekday), rule.Hours)
		if err != nil {
			return fmt.Errorf("inserting availability rule for weekday %d: %w", rule.Weekday, err)
		}
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) ListOverrides(ctx context.Context) ([]domain.AvailabilityOverride, error) {
	query := `SELECT date, hours FROM availability_overrides ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing availability overrides: %w", err)
	}
	defer rows.Close()

	var overrides []domain.AvailabilityOverride
	for rows.Next() {
		var dateStr string
		var hours sql.NullInt64
		if err := rows.Scan(&dateStr, &hours); err != nil {
			return nil, fmt.Errorf("scanning availability override: %w", err)
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing override date: %w", err)
		}
		value := domain.NoOverride()
		if hours.Valid {
			value = domain.ExplicitHours(int(hours.Int64))
		}
		overrides = append(overrides, domain.AvailabilityOverride{Date: date, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability overrides: %w", err)
	}
	return overrides, nil
}

func (r *SQLiteAvailabilityRepo) SetOverride(ctx context.Context, o domain.AvailabilityOverride) error {
	var hours interface{}
	if h, explicit := o.Value.Explicit(); explicit {
		hours = h
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO availability_overrides (date, hours) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET hours = excluded.hours`,
		o.Date.String(), hours)
	if err != nil {
		return fmt.Errorf("setting availability override for %s: %w", o.Date, err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) DeleteOverride(ctx context.Context, date domain.Date) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM availability_overrides WHERE date = ?`, date.String())
	if err != nil {
		return fmt.Errorf("deleting availability override for %s: %w", date, err)
	}
	return nil
}
