package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/rosterdesk/internal/db"
)

// FailOnNthExecUoW fails the Nth ExecContext inside a transaction, counting
// from 1. Reads are not counted. Service tests use it to check that a use
// case writing a session, a log entry and a schedule rolls back as a whole.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

// failOnNthExec counts writes made through one transaction.
type failOnNthExec struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
