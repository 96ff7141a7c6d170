package sql

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when a caller requests dialect-neutral
// behavior that has no generic SQL equivalent.
var ErrUnsupported = errors.New("sqlkit: operation not supported by dialect")

// UnsupportedError reports a SQL feature the current dialect cannot
// express. The message names the missing feature and directs the
// caller toward a vendor-specific override.
type UnsupportedError struct {
	Dialect string // dialect name, empty for the generic builder.
	Feature string // the missing SQL feature.
	Hint    string // optional guidance, e.g. the vendor syntax to use.
}

// Error returns the error string.
func (e *UnsupportedError) Error() string {
	d := e.Dialect
	if d == "" {
		d = "generic"
	}
	msg := fmt.Sprintf("sqlkit: %s is not supported by the %s dialect; provide a vendor-specific override", e.Feature, d)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Is reports whether the target error matches ErrUnsupported.
// This allows errors.Is(err, sql.ErrUnsupported) to return true.
func (e *UnsupportedError) Is(err error) bool {
	return err == ErrUnsupported
}

// IsUnsupported returns true if the error reports an unsupported
// dialect feature.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

func unsupported(dialect, feature string) *UnsupportedError {
	return &UnsupportedError{Dialect: dialect, Feature: feature}
}
