package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
)

// NewTestDB returns a migrated in-memory board closed at test cleanup. It
// holds a single connection, so it cannot show cross-connection behaviour.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return open(t, db.MemoryPath)
}

// NewFileTestDB returns a migrated board file in a temp dir. Use it when a
// test needs more than one connection, such as a write landing while a
// read snapshot is open.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return open(t, filepath.Join(t.TempDir(), "board.db"))
}

func open(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path, db.Options{BusyTimeout: 1000})
	if err != nil {
		t.Fatalf("opening test board %s: %v", path, err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
