// Package sql provides the dialect-aware SQL rendering layer of
// sqlkit: a rendering context with literal/placeholder modes, logical
// expression nodes, the TypeMapper for column kind and value
// conversion, and the StatementBuilder that renders INSERT, UPDATE,
// DELETE, REPLACE, pagination and scalar functions with per-vendor
// override points.
//
// It also contains the database/sql adapter (Driver, Tx, Conn, Rows)
// implementing the dialect.Driver collaborator.
package sql
