package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/gantt/internal/db"
)

// FailingUoW runs batches through a real SQLiteUnitOfWork but fails the
// FailOn-th write whose statement contains Match, counting from 1. An empty
// Match counts every write. Reads and ReadSnapshot pass through untouched.
type FailingUoW struct {
	DB     *sql.DB
	Match  string
	FailOn int32
	Err    error
}

var _ db.UnitOfWork = (*FailingUoW)(nil)

func (u *FailingUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, match: u.Match, failOn: u.FailOn, err: u.Err})
	})
}

func (u *FailingUoW) ReadSnapshot(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).ReadSnapshot(ctx, fn)
}

type failingExec struct {
	db.DBTX
	count  atomic.Int32
	match  string
	failOn int32
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.match) && f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
