// Package schema contains the vendor contracts of sqlkit: schema
// reflection over a live connection, metadata caching, DDL generation
// for indexes and columns, and the concrete MySQL, Postgres and SQLite
// vendors.
package schema

import (
	"github.com/syssam/sqlkit/dialect/sql"
	"github.com/syssam/sqlkit/dialect/sql/ident"
	"github.com/syssam/sqlkit/schema/coltype"
)

// ReferenceOption for constraint actions.
type ReferenceOption string

// Reference options (actions) specified by ON UPDATE and ON DELETE
// subclauses of the FOREIGN KEY clause.
const (
	NoAction   ReferenceOption = "NO ACTION"
	Restrict   ReferenceOption = "RESTRICT"
	Cascade    ReferenceOption = "CASCADE"
	SetNull    ReferenceOption = "SET NULL"
	SetDefault ReferenceOption = "SET DEFAULT"
)

// A Column is the logical description of one table column, used as the
// target of DDL generation.
type Column struct {
	Name     string
	Type     coltype.ColumnType
	Nullable bool
	Unique   bool
	// Default holds the column default expression, if any. Whether a
	// non-literal expression is acceptable is a vendor capability.
	Default sql.Expr
}

// ColumnMetadata is a snapshot of one column as reported by the live
// database catalog. It is always a fresh-or-cached read and never
// persisted by the library itself.
type ColumnMetadata struct {
	Name     string `msgpack:"name" yaml:"name"`
	TypeName string `msgpack:"type" yaml:"type"` // vendor type as reported by the catalog.
	Nullable bool   `msgpack:"nullable" yaml:"nullable"`
}

// An Index references one or more table columns, optionally enforcing
// uniqueness. It is both a target of DDL generation and a reflection
// result used for comparison.
type Index struct {
	Table   string   `msgpack:"table" yaml:"table"`
	Name    string   `msgpack:"name" yaml:"name"`
	Unique  bool     `msgpack:"unique" yaml:"unique"`
	Columns []string `msgpack:"columns" yaml:"columns"`
}

// IdentName returns the index name, generating one from the owning
// table and column list when unnamed.
func (i *Index) IdentName() string {
	if i.Name != "" {
		return i.Name
	}
	return ident.IndexName(i.Table, i.Columns...)
}

// A ForeignKey relates a (table, column) pair to a referenced
// table/column with its update and delete reference actions.
type ForeignKey struct {
	Symbol    string          `msgpack:"symbol" yaml:"symbol"`
	Table     string          `msgpack:"table" yaml:"table"`
	Column    string          `msgpack:"column" yaml:"column"`
	RefTable  string          `msgpack:"ref_table" yaml:"ref_table"`
	RefColumn string          `msgpack:"ref_column" yaml:"ref_column"`
	OnUpdate  ReferenceOption `msgpack:"on_update" yaml:"on_update"`
	OnDelete  ReferenceOption `msgpack:"on_delete" yaml:"on_delete"`
}

// A TableColumn keys per-column reflection results.
type TableColumn struct {
	Table  string
	Column string
}

// A Table groups a logical table definition: columns, primary key,
// indexes and foreign keys. It is the unit of schema comparison.
type Table struct {
	Name        string
	Columns     []*Column
	PrimaryKey  []string
	Indexes     []*Index
	ForeignKeys []*ForeignKey
}

// Column returns the column with the given name, if present.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
