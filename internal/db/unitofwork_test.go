package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath, db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertActivity(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO activities (id, name, created_at, updated_at)
		VALUES (?, ?, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`, id, id)
	return err
}

func exists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM activities WHERE id = ?`, id).Scan(&n))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertActivity(ctx, tx, "a"); err != nil {
			return err
		}
		return insertActivity(ctx, tx, "b")
	})
	require.NoError(t, err)

	assert.True(t, exists(t, database, "a"))
	assert.True(t, exists(t, database, "b"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertActivity(ctx, tx, "a"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, exists(t, database, "a"), "batch is all or nothing")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertActivity(ctx, tx, "a")
			panic("boom")
		})
	})
	assert.False(t, exists(t, database, "a"))
}

func TestReadSnapshot_NeverCommits(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.ReadSnapshot(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertActivity(ctx, tx, "a")
	})
	require.NoError(t, err)
	assert.False(t, exists(t, database, "a"))
}

func TestReadSnapshot_IgnoresConcurrentWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	require.NoError(t, insertActivity(context.Background(), database, "a"))

	count := func(ctx context.Context, q db.DBTX) int {
		var n int
		require.NoError(t, q.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n))
		return n
	}

	var before, after int
	err := uow.ReadSnapshot(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		before = count(ctx, tx)
		// Lands on another pooled connection while the snapshot is open.
		if err := insertActivity(ctx, database, "b"); err != nil {
			return err
		}
		after = count(ctx, tx)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, before)
	assert.Equal(t, 1, after, "snapshot keeps its first view")
	assert.Equal(t, 2, count(context.Background(), database))
}

func TestReadSnapshot_PropagatesError(t *testing.T) {
	_, uow := openUoW(t)
	want := errors.New("load failed")

	err := uow.ReadSnapshot(context.Background(), func(context.Context, db.DBTX) error {
		return want
	})
	assert.ErrorIs(t, err, want)
}
