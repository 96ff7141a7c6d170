// Package coltype defines the vendor-neutral description of a column's
// storage kind, prior to any dialect-specific SQL type rendering.
package coltype

import "fmt"

// A Type is a tag describing the storage kind of a column.
type Type uint8

// Column storage kinds.
const (
	TypeInvalid Type = iota
	TypeShortInt
	TypeLongInt
	TypeFloat
	TypeDouble
	TypeUUID
	TypeDateTime
	TypeBlob
	TypeBinary
	TypeBool
	TypeText
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:  "invalid",
	TypeShortInt: "short_int",
	TypeLongInt:  "long_int",
	TypeFloat:    "float",
	TypeDouble:   "double",
	TypeUUID:     "uuid",
	TypeDateTime: "datetime",
	TypeBlob:     "blob",
	TypeBinary:   "binary",
	TypeBool:     "bool",
	TypeText:     "text",
}

// String returns the string representation of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid(%d)", t)
}

// Valid reports if the given type is a valid column type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Types returns all valid column types. Used mainly by tests and by
// dialects that build complete rendering tables up front.
func Types() []Type {
	ts := make([]Type, 0, int(endTypes)-1)
	for t := TypeShortInt; t < endTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}

// A ColumnType describes the storage kind of one column. It is an
// immutable value; one instance describes one column.
type ColumnType struct {
	Type Type
	// Size holds the byte length for TypeBinary columns and is
	// ignored for all other kinds.
	Size int
	// Stream marks large-object columns that should be read through
	// a streaming API rather than materialized in memory.
	Stream bool
}

// ShortInt returns a 32-bit integer column type.
func ShortInt() ColumnType { return ColumnType{Type: TypeShortInt} }

// LongInt returns a 64-bit integer column type.
func LongInt() ColumnType { return ColumnType{Type: TypeLongInt} }

// Float returns a single-precision floating point column type.
func Float() ColumnType { return ColumnType{Type: TypeFloat} }

// Double returns a double-precision floating point column type.
func Double() ColumnType { return ColumnType{Type: TypeDouble} }

// UUID returns a 128-bit unique-identifier column type.
func UUID() ColumnType { return ColumnType{Type: TypeUUID} }

// DateTime returns a timestamp column type.
func DateTime() ColumnType { return ColumnType{Type: TypeDateTime} }

// Blob returns a large-object column type read through streaming.
func Blob() ColumnType { return ColumnType{Type: TypeBlob, Stream: true} }

// Binary returns a variable-length binary column type with the given
// maximum byte length.
func Binary(size int) ColumnType { return ColumnType{Type: TypeBinary, Size: size} }

// Bool returns a boolean column type.
func Bool() ColumnType { return ColumnType{Type: TypeBool} }

// Text returns an unbounded character column type.
func Text() ColumnType { return ColumnType{Type: TypeText} }

// String returns the string representation of the column type.
func (c ColumnType) String() string {
	if c.Type == TypeBinary {
		return fmt.Sprintf("%s(%d)", c.Type, c.Size)
	}
	return c.Type.String()
}
