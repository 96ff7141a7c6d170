package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorContext(t *testing.T) {
	ctx := context.Background()
	_, err := FromContext(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	v, ok := VendorFromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, v)

	lite := NewSQLite(nil)
	ctx = NewContext(ctx, lite)
	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, Vendor(lite), got)

	got, ok = VendorFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, Vendor(lite), got)
}

func TestVendorContext_Nested(t *testing.T) {
	// The innermost binding wins, mirroring nested units of work.
	outer := NewContext(context.Background(), NewMySQL(nil))
	inner := NewContext(outer, NewPostgres(nil))

	v, err := FromContext(inner)
	require.NoError(t, err)
	assert.Equal(t, "postgres", v.Name())

	v, err = FromContext(outer)
	require.NoError(t, err)
	assert.Equal(t, "mysql", v.Name())
}
