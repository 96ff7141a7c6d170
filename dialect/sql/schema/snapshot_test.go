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

func TestSnapshot_RoundTrip(t *testing.T) {
	drv, err := sql.Open(dialect.SQLite, "file:snap?mode=memory&cache=shared")
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)
	defer drv.Close()
	ctx := context.Background()
	for _, stmt := range []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL)",
		"CREATE TABLE pets (id INTEGER PRIMARY KEY, owner_id INTEGER REFERENCES users (id))",
		"CREATE UNIQUE INDEX users_email_idx ON users (email)",
	} {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}

	lite := NewSQLite(drv)
	snap, err := TakeSnapshot(ctx, lite)
	require.NoError(t, err)
	assert.Equal(t, "main", snap.Database)
	assert.Equal(t, dialect.SQLite, snap.Dialect)
	assert.Equal(t, []string{"pets", "users"}, snap.Tables)

	data, err := snap.Encode()
	require.NoError(t, err)
	got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Tables, got.Tables)
	assert.Equal(t, snap.Columns, got.Columns)
	assert.Equal(t, snap.Indexes, got.Indexes)
	assert.Equal(t, snap.FKs, got.FKs)
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	_, err := DecodeSnapshot([]byte{0xc1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode snapshot")
}
