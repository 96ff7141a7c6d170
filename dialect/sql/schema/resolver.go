package schema

import (
	"context"
	"errors"
)

// ErrNoSession is returned when a vendor is resolved outside an active
// unit of work. It indicates a programming error in the calling layer,
// not a recoverable runtime condition.
var ErrNoSession = errors.New("sqlkit/schema: no active unit of work")

// vendorKey is the context key the active vendor binding is stored
// under.
type vendorKey struct{}

// NewContext binds the given vendor to the unit of work carried by
// ctx. All schema operations of the unit of work resolve the vendor
// through the returned context.
func NewContext(ctx context.Context, v Vendor) context.Context {
	return context.WithValue(ctx, vendorKey{}, v)
}

// FromContext returns the vendor bound to the presently active unit of
// work, or ErrNoSession when none is bound.
func FromContext(ctx context.Context) (Vendor, error) {
	v, ok := ctx.Value(vendorKey{}).(Vendor)
	if !ok {
		return nil, ErrNoSession
	}
	return v, nil
}

// VendorFromContext is the non-failing variant of FromContext,
// intended for code paths that run both inside and outside an active
// unit of work, such as identifier case-normalization helpers.
func VendorFromContext(ctx context.Context) (Vendor, bool) {
	v, ok := ctx.Value(vendorKey{}).(Vendor)
	return v, ok
}
