package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DefaultBusyTimeout is how long, in milliseconds, a connection waits on a
// board file locked by another gantt process.
const DefaultBusyTimeout = 5000

// Options tune how the board file is opened.
type Options struct {
	// BusyTimeout in milliseconds. Zero means DefaultBusyTimeout.
	BusyTimeout int
}

// OpenDB opens the board database at path, creating its directory, and
// applies the schema. The board and one-shot CLI commands can have the same
// file open at once, so the pragmas travel in the DSN and reach every pooled
// connection. Deleting an activity relies on foreign keys for its cascade.
func OpenDB(path string, opts Options) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", dsn(path, opts))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to :memory: is its own database.
	if path == MemoryPath {
		database.SetMaxOpenConns(1)
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

func dsn(path string, opts Options) string {
	timeout := opts.BusyTimeout
	if timeout <= 0 {
		timeout = DefaultBusyTimeout
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", timeout))
	if path != MemoryPath {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return path + "?" + q.Encode()
}
