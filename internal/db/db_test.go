package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	db, err := OpenAndMigrate(path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "games", "game_progress", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	// second run is a no-op
	require.NoError(t, Migrate(db))
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO games (id, user_id, seed, size, words, started_at) VALUES ('g1','ghost','1',12,8,'now')`)
	assert.Error(t, err)
}

func TestMigrateFSSelfManagedAndOrder(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('second');`)},
		"m/001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"m/003_c.sql": {Data: []byte("BEGIN TRANSACTION;\nINSERT INTO t(v) VALUES ('third');\nCOMMIT;")},
		"m/README":    {Data: []byte("ignored")},
	}
	require.NoError(t, migrateFS(db, fsys, "m"))

	rows, err := db.Query(`SELECT v FROM t ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		got = append(got, v)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"second", "third"}, got)
}
