package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs every schema statement. Statements are idempotent, so the
// whole list is replayed on each open.
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
	`CREATE TABLE IF NOT EXISTS staff (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL
		           CHECK(role IN ('Lead','Technician','Trainer','Float')),
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		crisis     INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS client_staff_links (
		client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		staff_id  TEXT NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		kind      TEXT NOT NULL CHECK(kind IN ('excluded','trained','focus')),
		PRIMARY KEY (client_id, staff_id, kind)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_client_staff_links_staff ON client_staff_links(staff_id)`,

	// Official schedules are stored in the compact snapshot format.
	`CREATE TABLE IF NOT EXISTS official_schedules (
		date       TEXT PRIMARY KEY,
		snapshot   TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS editor_sessions (
		date       TEXT PRIMARY KEY,
		mode       TEXT NOT NULL CHECK(mode IN ('draft','what_if')),
		state      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS change_log (
		id                TEXT PRIMARY KEY,
		date              TEXT NOT NULL,
		edit_type         TEXT NOT NULL
		                  CHECK(edit_type IN ('change_staff','split','train','cancel','tag')),
		description       TEXT NOT NULL,
		entities          TEXT NOT NULL DEFAULT '[]',
		window_start      INTEGER,
		window_end        INTEGER,
		triggered_advisor INTEGER NOT NULL DEFAULT 0,
		has_warnings      INTEGER NOT NULL DEFAULT 0,
		warning_type      TEXT CHECK(warning_type IS NULL OR warning_type IN ('hard','soft')),
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_log_date ON change_log(date)`,

	// The change log is an audit trail: rows are never rewritten or removed.
	`CREATE TRIGGER IF NOT EXISTS change_log_no_update BEFORE UPDATE ON change_log
	BEGIN
		SELECT RAISE(ABORT, 'change_log is append-only');
	END`,
	`CREATE TRIGGER IF NOT EXISTS change_log_no_delete BEFORE DELETE ON change_log
	BEGIN
		SELECT RAISE(ABORT, 'change_log is append-only');
	END`,

	// Where the official schedule came from: an import or a finalized draft.
	`ALTER TABLE official_schedules ADD COLUMN source TEXT NOT NULL DEFAULT 'import'`,
}
