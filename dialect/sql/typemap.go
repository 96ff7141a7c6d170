package sql

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/syssam/sqlkit/schema/coltype"

	"github.com/google/uuid"
)

// A TypeMapper maps logical column kinds to dialect SQL type strings
// and converts values to their storage representation. Mappers are
// configured at dialect construction and stateless afterwards.
type TypeMapper struct {
	dialect     string
	overrides   map[coltype.Type]func(coltype.ColumnType) string
	numericBool bool
}

// TypeMapperOption configures a TypeMapper.
type TypeMapperOption func(*TypeMapper)

// WithTypeOverride replaces the rendering of a single column kind
// without affecting the defaults of the remaining kinds.
func WithTypeOverride(t coltype.Type, render func(coltype.ColumnType) string) TypeMapperOption {
	return func(m *TypeMapper) {
		m.overrides[t] = render
	}
}

// WithNumericBooleans renders boolean literals as 1/0 instead of the
// standard true/false spelling.
func WithNumericBooleans() TypeMapperOption {
	return func(m *TypeMapper) {
		m.numericBool = true
	}
}

// NewTypeMapper returns a mapper for the given dialect name.
func NewTypeMapper(dialect string, opts ...TypeMapperOption) *TypeMapper {
	m := &TypeMapper{
		dialect:   dialect,
		overrides: make(map[coltype.Type]func(coltype.ColumnType) string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RenderType returns the SQL type string for the given column kind.
// An unmapped kind indicates a bug in the calling layer and panics.
func (m *TypeMapper) RenderType(ct coltype.ColumnType) string {
	if f, ok := m.overrides[ct.Type]; ok {
		return f(ct)
	}
	switch ct.Type {
	case coltype.TypeShortInt:
		return "INT"
	case coltype.TypeLongInt:
		return "BIGINT"
	case coltype.TypeFloat:
		return "FLOAT"
	case coltype.TypeDouble:
		return "DOUBLE PRECISION"
	case coltype.TypeUUID:
		return "BINARY(16)"
	case coltype.TypeDateTime:
		return "DATETIME"
	case coltype.TypeBlob:
		return "BLOB"
	case coltype.TypeBinary:
		return fmt.Sprintf("VARBINARY(%d)", ct.Size)
	case coltype.TypeBool:
		return "BOOLEAN"
	case coltype.TypeText:
		return "TEXT"
	default:
		panic(fmt.Sprintf("sqlkit: unmapped column type %v", ct.Type))
	}
}

// UUIDStorageValue converts a unique identifier to its 16-byte storage
// representation: the 64 high bits followed by the 64 low bits, both
// big-endian. This exact layout is a wire-compatibility contract with
// existing stored data.
func (m *TypeMapper) UUIDStorageValue(u uuid.UUID) []byte {
	hi := binary.BigEndian.Uint64(u[0:8])
	lo := binary.BigEndian.Uint64(u[8:16])
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], hi)
	binary.BigEndian.PutUint64(buf[8:16], lo)
	return buf
}

// UUIDFromStorage reconstructs a unique identifier from its 16-byte
// storage representation.
func (m *TypeMapper) UUIDFromStorage(b []byte) (uuid.UUID, error) {
	return uuid.FromBytes(b)
}

// BooleanLiteral returns the SQL literal for the given boolean value.
func (m *TypeMapper) BooleanLiteral(v bool) string {
	if m.numericBool {
		if v {
			return "1"
		}
		return "0"
	}
	return strconv.FormatBool(v)
}

// RenderDefault renders a column default value expression. Bare
// literals render directly; any other expression is parenthesized,
// since several vendors require non-literal default expressions to be
// wrapped to disambiguate them from the surrounding DDL syntax.
func (m *TypeMapper) RenderDefault(e Expr) string {
	s := render(m.dialect, e)
	if IsLiteral(e) {
		return s
	}
	return "(" + s + ")"
}
