package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgorski/taskcal/internal/db"
)

// FailOnNthExecUoW behaves like the real UnitOfWork except that the Nth
// write inside the transaction returns Err. Rollback tests use it to prove
// that earlier writes in the same run do not survive a later failure.
//
// Writes are counted from 1; reads pass through uncounted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, &faultyTx{DBTX: tx, failOn: u.FailOn, err: u.Err}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// faultyTx wraps the transaction and intercepts ExecContext. Transactions
// are used from a single goroutine, so a plain counter is enough.
type faultyTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
