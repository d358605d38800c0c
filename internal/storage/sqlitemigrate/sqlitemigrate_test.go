package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"
)

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// a single connection keeps every statement on the same in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestApply_RecordsMigration(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"0001_players.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE players(id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE players;")},
	}

	require.NoError(t, Apply(context.Background(), db, migrations, "", zaptest.NewLogger(t)))

	assert.Equal(t, int64(1), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, int64(1), count(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='players'"))
}

func TestApply_SkipsApplied(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"0001_players.sql": &fstest.MapFile{Data: []byte("CREATE TABLE players(id INTEGER PRIMARY KEY);")},
	}
	logger := zaptest.NewLogger(t)

	require.NoError(t, Apply(context.Background(), db, migrations, "", logger))
	// a recorded file is not re-run even if its contents change
	migrations["0001_players.sql"].Data = []byte("ALTER TABLE players ADD COLUMN name TEXT;")
	require.NoError(t, Apply(context.Background(), db, migrations, "", logger))

	assert.Equal(t, int64(1), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, int64(1), count(t, db, "SELECT COUNT(*) FROM pragma_table_info('players')"))
}

func TestApply_OrdersByName(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"0002_index.sql":   &fstest.MapFile{Data: []byte("CREATE INDEX idx_players_name ON players(name);")},
		"0001_players.sql": &fstest.MapFile{Data: []byte("CREATE TABLE players(id INTEGER PRIMARY KEY, name TEXT);")},
		"README.md":        &fstest.MapFile{Data: []byte("not a migration")},
	}

	require.NoError(t, Apply(context.Background(), db, migrations, ".", zaptest.NewLogger(t)))
	assert.Equal(t, int64(2), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApply_FailedMigrationNotRecorded(t *testing.T) {
	db := openInMemoryDB(t)
	bad := fstest.MapFS{
		"0001_bad.sql": &fstest.MapFile{Data: []byte("CREAT TABLE things(id INT);")},
	}

	assert.Error(t, Apply(context.Background(), db, bad, "", zaptest.NewLogger(t)))
	assert.Equal(t, int64(0), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApply_Root(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"sql/0001_rows.sql": &fstest.MapFile{Data: []byte("CREATE TABLE rows_table(id INTEGER PRIMARY KEY);")},
	}

	require.NoError(t, Apply(context.Background(), db, migrations, "sql", zaptest.NewLogger(t)))

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM schema_migrations").Scan(&name))
	assert.Equal(t, "sql/0001_rows.sql", name)
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nA;\n", UpSection("-- +migrate Up\nA;\n-- +migrate Down\nB;"))
	assert.Equal(t, "\nA;", UpSection("-- +migrate Up\nA;"))
	assert.Equal(t, "A;", UpSection("A;"))
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, IsAlreadyExists(errors.New("table players already exists")))
	assert.True(t, IsAlreadyExists(errors.New("duplicate column name: rank")))
	assert.False(t, IsAlreadyExists(errors.New("syntax error")))
}
