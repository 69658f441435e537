package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		id          TEXT PRIMARY KEY,
		parent_id   TEXT REFERENCES activities(id) ON DELETE CASCADE,
		name        TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		collapsed   INTEGER NOT NULL DEFAULT 0,
		sort_order  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_parent ON activities(parent_id)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		id               TEXT PRIMARY KEY,
		from_activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		to_activity_id   TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		type             TEXT NOT NULL DEFAULT 'FS' CHECK(type IN ('FS','SS','FF')),
		created_at       TEXT NOT NULL,
		CHECK(from_activity_id <> to_activity_id),
		UNIQUE(from_activity_id, to_activity_id, type)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_from ON dependencies(from_activity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_to ON dependencies(to_activity_id)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id          TEXT PRIMARY KEY,
		activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		name        TEXT NOT NULL DEFAULT '',
		date        TEXT,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_activity ON milestones(activity_id)`,

	// Bar colour was added after the first release.
	`ALTER TABLE activities ADD COLUMN color TEXT NOT NULL DEFAULT ''`,
}
