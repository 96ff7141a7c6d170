package schema

import (
	"context"
	"testing"

	"github.com/syssam/sqlkit/dialect"
	"github.com/syssam/sqlkit/dialect/sql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) (*sql.Driver, *SQLite) {
	t.Helper()
	drv, err := sql.Open(dialect.SQLite, "file:sqlkit?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })
	return drv, NewSQLite(drv)
}

func TestSQLite_Reflection(t *testing.T) {
	drv, lite := openSQLite(t)
	ctx := context.Background()
	for _, stmt := range []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL, name TEXT)",
		"CREATE TABLE pets (id INTEGER PRIMARY KEY, owner_id INTEGER REFERENCES users (id) ON DELETE CASCADE)",
		"CREATE UNIQUE INDEX users_email_idx ON users (email)",
		"CREATE INDEX pets_owner_id_idx ON pets (owner_id)",
	} {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}

	name, err := lite.Database(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", name)

	names, err := lite.TableNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pets", "users"}, names)

	exists, err := lite.TableExists(ctx, "users")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = lite.TableExists(ctx, "cars")
	require.NoError(t, err)
	assert.False(t, exists)

	cols, err := lite.Columns(ctx, "users")
	require.NoError(t, err)
	require.Len(t, cols["users"], 3)
	assert.Equal(t, ColumnMetadata{Name: "email", TypeName: "TEXT", Nullable: false}, cols["users"][1])
	assert.Equal(t, ColumnMetadata{Name: "name", TypeName: "TEXT", Nullable: true}, cols["users"][2])

	fks, err := lite.ForeignKeys(ctx, "pets")
	require.NoError(t, err)
	got := fks[TableColumn{Table: "pets", Column: "owner_id"}]
	require.Len(t, got, 1)
	assert.Equal(t, "users", got[0].RefTable)
	assert.Equal(t, "id", got[0].RefColumn)
	assert.Equal(t, Cascade, got[0].OnDelete)
	assert.Equal(t, NoAction, got[0].OnUpdate)

	idxs, err := lite.Indexes(ctx, "users")
	require.NoError(t, err)
	require.Len(t, idxs["users"], 1)
	assert.Equal(t, &Index{Table: "users", Name: "users_email_idx", Unique: true, Columns: []string{"email"}}, idxs["users"][0])

	idxs, err = lite.Indexes(ctx, "pets")
	require.NoError(t, err)
	require.Len(t, idxs["pets"], 1)
	assert.False(t, idxs["pets"][0].Unique)
}

func TestSQLite_IndexDDLRoundTrip(t *testing.T) {
	drv, lite := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, drv.Exec(ctx, "CREATE TABLE groups (id INTEGER PRIMARY KEY, name TEXT)", []any{}, nil))

	idx := &Index{Table: "groups", Unique: true, Columns: []string{"name"}}
	require.NoError(t, drv.Exec(ctx, lite.CreateIndex(idx), []any{}, nil))

	idxs, err := lite.Indexes(ctx, "groups")
	require.NoError(t, err)
	require.Len(t, idxs["groups"], 1)
	assert.Equal(t, "groups_name_idx", idxs["groups"][0].Name)
	assert.True(t, idxs["groups"][0].Unique)

	require.NoError(t, drv.Exec(ctx, lite.DropIndex("groups", "groups_name_idx"), []any{}, nil))
	lite.ResetCaches()
	idxs, err = lite.Indexes(ctx, "groups")
	require.NoError(t, err)
	assert.Empty(t, idxs["groups"])
}
