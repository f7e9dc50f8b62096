package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func openSQLite(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "test.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &DB{sqlDB}
}

func writeMigration(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestRunMigrations_AppliesInOrderOnce(t *testing.T) {
	db := openSQLite(t)
	dir := t.TempDir()

	writeMigration(t, dir, "002_add_row.sql", `INSERT INTO widgets (name) VALUES ('first');`)
	writeMigration(t, dir, "001_create.sql", `
		CREATE TABLE widgets (name VARCHAR(20) NOT NULL);
		CREATE INDEX idx_widgets_name ON widgets (name);`)
	writeMigration(t, dir, "notes.txt", `ignored`)

	require.NoError(t, db.RunMigrations(dir))
	require.NoError(t, db.RunMigrations(dir))

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM widgets`).Scan(&rows))
	assert.Equal(t, 1, rows, "a recorded migration is not applied twice")

	var versions int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 2, versions)
}

func TestRunMigrations_FailureRollsBack(t *testing.T) {
	db := openSQLite(t)
	dir := t.TempDir()

	writeMigration(t, dir, "001_broken.sql", `CREATE TABLE ok_table (id INTEGER); NOT VALID SQL;`)

	err := db.RunMigrations(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_broken.sql")

	var versions int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Zero(t, versions)
}

func TestRunMigrations_CatalogSchema(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, db.RunMigrations(filepath.Join("..", "..", "..", "migrations")))

	for _, table := range []string{"generations", "stars", "bodies"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&n))
		assert.Equal(t, 1, n, table)
	}
}

func TestPingContext_NilDB(t *testing.T) {
	var db *DB
	assert.Error(t, db.PingContext(t.Context()))
}
