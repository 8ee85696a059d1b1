package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{
		"captain", "cruise", "cruise_info", "customer", "id_counters",
		"repairs", "reservation", "schedule", "ship",
	}, tables)

	var counters []string
	require.NoError(t, db.Select(&counters, `SELECT entity FROM id_counters ORDER BY entity`))
	assert.Equal(t, []string{"customer", "reservation"}, counters)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE id_counters SET last_value = 41 WHERE entity = 'reservation'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	var last int64
	require.NoError(t, db.Get(&last, `SELECT last_value FROM id_counters WHERE entity = 'reservation'`))
	assert.Equal(t, int64(41), last, "再オープンでカウンタが巻き戻らないこと")
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	var on int
	require.NoError(t, db.Get(&on, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, on)
}
