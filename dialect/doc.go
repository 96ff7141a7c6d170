// Package dialect provides the database vendor abstraction for sqlkit.
//
// It defines the dialect name constants and the connection collaborator
// interfaces (Driver, Tx, ExecQuerier) consumed by the SQL generation
// and schema reflection layers.
//
// # Supported Dialects
//
// Each supported vendor is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Sub-packages
//
//   - dialect/sql: SQL statement builders and the database/sql driver adapter
//   - dialect/sql/ident: identifier case folding and quoting
//   - dialect/sql/schema: vendor contracts, schema reflection and DDL generation
package dialect
