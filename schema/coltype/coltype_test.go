package coltype_test

import (
	"testing"

	"github.com/syssam/sqlkit/schema/coltype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	for _, tt := range []struct {
		typ  coltype.Type
		name string
	}{
		{coltype.TypeShortInt, "short_int"},
		{coltype.TypeLongInt, "long_int"},
		{coltype.TypeFloat, "float"},
		{coltype.TypeDouble, "double"},
		{coltype.TypeUUID, "uuid"},
		{coltype.TypeDateTime, "datetime"},
		{coltype.TypeBlob, "blob"},
		{coltype.TypeBinary, "binary"},
		{coltype.TypeBool, "bool"},
		{coltype.TypeText, "text"},
	} {
		assert.Equal(t, tt.name, tt.typ.String())
		assert.True(t, tt.typ.Valid())
	}
	assert.False(t, coltype.TypeInvalid.Valid())
	assert.False(t, coltype.Type(100).Valid())
	assert.Equal(t, "invalid(100)", coltype.Type(100).String())
}

func TestTypes(t *testing.T) {
	ts := coltype.Types()
	require.Len(t, ts, 10)
	for _, typ := range ts {
		assert.True(t, typ.Valid())
	}
}

func TestColumnType(t *testing.T) {
	assert.Equal(t, "binary(16)", coltype.Binary(16).String())
	assert.Equal(t, 16, coltype.Binary(16).Size)
	assert.Equal(t, "uuid", coltype.UUID().String())
	assert.True(t, coltype.Blob().Stream, "blobs are streamed")
	assert.False(t, coltype.Binary(255).Stream)
}
