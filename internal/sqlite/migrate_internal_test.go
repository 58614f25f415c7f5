package sqlite

import (
	"context"
	"github.com/intinc/platformexplorer/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := connect(":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestDatabase_migrateTo(t *testing.T) {
	t.Parallel()

	const (
		table        = "CREATE TABLE entries (id INTEGER PRIMARY KEY, title TEXT)"
		tableNoTitle = "CREATE TABLE entries (id INTEGER PRIMARY KEY)"
		failTrigger  = "CREATE TRIGGER entries_fail AFTER INSERT ON entries BEGIN SELECT RAISE (FAIL, 'fail'); END;"
	)

	tests := []struct {
		name        string
		schemas     []string
		testQueries []string
		wantErr     bool
	}{
		{
			name:        "empty schema",
			schemas:     []string{""},
			testQueries: []string{"SELECT * FROM sqlite_schema"},
		},
		{
			name:        "create table",
			schemas:     []string{table},
			testQueries: []string{"INSERT INTO entries (title) VALUES ('a')", "SELECT * FROM entries"},
		},
		{
			name:        "drop table",
			schemas:     []string{table, ""},
			testQueries: []string{"INSERT INTO entries (title) VALUES ('a')"},
			wantErr:     true,
		},
		{
			name:        "add column",
			schemas:     []string{tableNoTitle, table},
			testQueries: []string{"INSERT INTO entries (title) VALUES ('a')"},
		},
		{
			name:        "remove column",
			schemas:     []string{tableNoTitle, table, tableNoTitle},
			testQueries: []string{"INSERT INTO entries (title) VALUES ('a')"},
			wantErr:     true,
		},
		{
			name:        "create index",
			schemas:     []string{table + "; CREATE INDEX entries_title ON entries (title)"},
			testQueries: []string{"DROP INDEX entries_title"},
		},
		{
			name:        "drop index",
			schemas:     []string{table + "; CREATE INDEX entries_title ON entries (title)", table},
			testQueries: []string{"DROP INDEX entries_title"},
			wantErr:     true,
		},
		{
			name: "index survives table rebuild",
			schemas: []string{
				tableNoTitle + "; CREATE INDEX entries_id ON entries (id)",
				table + "; CREATE INDEX entries_id ON entries (id)",
			},
			testQueries: []string{"DROP INDEX entries_id"},
		},
		{
			name:        "create trigger",
			schemas:     []string{table + "; " + failTrigger},
			testQueries: []string{"INSERT INTO entries (title) VALUES ('a')"},
			wantErr:     true,
		},
		{
			name:        "delete trigger",
			schemas:     []string{table + "; " + failTrigger, table},
			testQueries: []string{"INSERT INTO entries (title) VALUES ('a')"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			db := newTestDatabase(t)
			for _, schema := range tt.schemas {
				require.NoError(t, db.migrateTo(ctx, schema))
			}
			for _, query := range tt.testQueries {
				_, err := db.ReadWrite.ExecContext(ctx, query)
				if tt.wantErr {
					require.Error(t, err)
				} else {
					require.NoError(t, err)
				}
			}
		})
	}
}

func TestDatabase_migrateToKeepsData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDatabase(t)

	require.NoError(t, db.migrateTo(ctx, "CREATE TABLE entries (id INTEGER PRIMARY KEY, title TEXT)"))
	_, err := db.ReadWrite.ExecContext(ctx, "INSERT INTO entries (id, title) VALUES (1, 'kept')")
	require.NoError(t, err)

	require.NoError(t, db.migrateTo(ctx,
		"CREATE TABLE entries (id INTEGER PRIMARY KEY, title TEXT, body TEXT NOT NULL DEFAULT '')"))

	var title, body string
	require.NoError(t, db.ReadOnly.QueryRowxContext(ctx, "SELECT title, body FROM entries WHERE id = 1").
		Scan(&title, &body))
	require.Equal(t, "kept", title)
	require.Empty(t, body)
}

func TestNewDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	var tables []string
	require.NoError(t, db.ReadOnly.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_schema WHERE type = 'table' ORDER BY name"))
	require.Equal(t, []string{"credentials", "sessions", "users"}, tables)

	// Migrating an up to date database is a no-op.
	require.NoError(t, db.migrateTo(ctx, schemaDefinition))

	_, err = db.ReadOnly.ExecContext(ctx, "INSERT INTO users (id, display_name) VALUES (x'01', 'nope')")
	require.Error(t, err, "read-only pool must reject writes")
}

func TestNewDataSourceNames(t *testing.T) {
	t.Parallel()

	dsn, err := newDataSourceNames("./data.sqlite")
	require.NoError(t, err)
	require.Contains(t, dsn.readWrite, "file:./data.sqlite?mode=rwc&_txlock=immediate&_journal_mode=wal")
	require.Contains(t, dsn.readOnly, "file:./data.sqlite?mode=ro&_txlock=deferred&_query_only=true")

	a, err := newDataSourceNames(":memory:")
	require.NoError(t, err)
	b, err := newDataSourceNames(":memory:")
	require.NoError(t, err)
	require.Contains(t, a.readWrite, "mode=memory&cache=shared")
	require.NotEqual(t, a.readWrite, b.readWrite)
}

func TestRandomDBName(t *testing.T) {
	a, err := randomDBName()
	require.NoError(t, err)
	b, err := randomDBName()
	require.NoError(t, err)
	require.Len(t, a, dbNameLength)
	require.NotEqual(t, a, b)
	require.Regexp(t, `^[a-zA-Z]+$`, a)
}
