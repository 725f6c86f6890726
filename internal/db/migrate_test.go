package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"staff", "clients", "client_staff_links", "official_schedules", "editor_sessions", "change_log"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexesAndTriggers(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_client_staff_links_staff", "idx_change_log_date"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
	for _, trg := range []string{"change_log_no_update", "change_log_no_delete"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='trigger' AND name=?`, trg).Scan(&name)
		require.NoError(t, err, "trigger %s should exist", trg)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_OfficialSchedulesSourceColumn(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(official_schedules)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		if name == "source" {
			found = true
		}
	}
	assert.True(t, found, "official_schedules should have a source column")
}

func TestMigrate_ChangeLogIsAppendOnly(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO change_log (id, date, edit_type, description, created_at)
		VALUES ('l1', '2026-03-02', 'tag', 'Tagged Ana', '2026-03-02T09:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE change_log SET description = 'x' WHERE id = 'l1'`)
	assert.ErrorContains(t, err, "append-only")

	_, err = db.Exec(`DELETE FROM change_log WHERE id = 'l1'`)
	assert.ErrorContains(t, err, "append-only")
}

func TestMigrate_CheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO staff (id, name, role, created_at, updated_at)
		VALUES ('s1', 'Ana', 'Manager', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown role should be rejected")

	_, err = db.Exec(`INSERT INTO staff (id, name, role, created_at, updated_at)
		VALUES ('s1', 'Ana', 'Float', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO client_staff_links (client_id, staff_id, kind) VALUES ('missing', 's1', 'trained')`)
	assert.Error(t, err, "links need an existing client")

	_, err = db.Exec(`INSERT INTO editor_sessions (date, mode, state, created_at, updated_at)
		VALUES ('2026-03-02', 'live', '{}', '', '')`)
	assert.Error(t, err, "unknown mode should be rejected")
}
