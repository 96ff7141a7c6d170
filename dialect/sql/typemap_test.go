package sql

import (
	"testing"

	"github.com/syssam/sqlkit/dialect"
	"github.com/syssam/sqlkit/schema/coltype"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMapper_RenderType(t *testing.T) {
	m := NewTypeMapper(dialect.MySQL)
	for _, typ := range coltype.Types() {
		ct := coltype.ColumnType{Type: typ, Size: 16}
		s := m.RenderType(ct)
		assert.NotEmpty(t, s, "type %v must render", typ)
		// Pure function of its input.
		assert.Equal(t, s, m.RenderType(ct))
	}
	assert.Equal(t, "INT", m.RenderType(coltype.ShortInt()))
	assert.Equal(t, "BIGINT", m.RenderType(coltype.LongInt()))
	assert.Equal(t, "VARBINARY(255)", m.RenderType(coltype.Binary(255)))
	assert.Equal(t, "BINARY(16)", m.RenderType(coltype.UUID()))
	assert.Equal(t, "DOUBLE PRECISION", m.RenderType(coltype.Double()))
}

func TestTypeMapper_Override(t *testing.T) {
	m := NewTypeMapper(dialect.Postgres,
		WithTypeOverride(coltype.TypeUUID, func(coltype.ColumnType) string {
			return "uuid"
		}),
	)
	// Only the overridden kind changes.
	assert.Equal(t, "uuid", m.RenderType(coltype.UUID()))
	assert.Equal(t, "BIGINT", m.RenderType(coltype.LongInt()))
}

func TestTypeMapper_UnmappedPanics(t *testing.T) {
	m := NewTypeMapper(dialect.MySQL)
	assert.Panics(t, func() {
		m.RenderType(coltype.ColumnType{Type: coltype.Type(42)})
	})
}

func TestTypeMapper_UUIDStorageValue(t *testing.T) {
	m := NewTypeMapper(dialect.MySQL)
	ids := []uuid.UUID{
		{}, // all zero
		uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff"),
		uuid.MustParse("00010203-0405-0607-0809-0a0b0c0d0e0f"),
	}
	for i := 0; i < 5; i++ {
		ids = append(ids, uuid.New())
	}
	for _, id := range ids {
		buf := m.UUIDStorageValue(id)
		require.Len(t, buf, 16)
		// High 64 bits first, then low 64 bits.
		assert.Equal(t, id[:8], buf[:8])
		assert.Equal(t, id[8:], buf[8:])
		got, err := m.UUIDFromStorage(buf)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestTypeMapper_BooleanLiteral(t *testing.T) {
	m := NewTypeMapper(dialect.Postgres)
	assert.Equal(t, "true", m.BooleanLiteral(true))
	assert.Equal(t, "false", m.BooleanLiteral(false))

	n := NewTypeMapper(dialect.MySQL, WithNumericBooleans())
	assert.Equal(t, "1", n.BooleanLiteral(true))
	assert.Equal(t, "0", n.BooleanLiteral(false))
}

func TestTypeMapper_RenderDefault(t *testing.T) {
	m := NewTypeMapper(dialect.MySQL)
	// Bare literals render directly.
	assert.Equal(t, "42", m.RenderDefault(Literal(42)))
	assert.Equal(t, "'a'", m.RenderDefault(Literal("a")))
	// Everything else is parenthesized to disambiguate from the
	// surrounding DDL syntax.
	assert.Equal(t, "(CURRENT_TIMESTAMP)", m.RenderDefault(Raw("CURRENT_TIMESTAMP")))
	assert.Equal(t, "(LOWER(name))", m.RenderDefault(Func("LOWER", Ident("name"))))
}
