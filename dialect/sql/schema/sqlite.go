package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/sqlkit/dialect"
	"github.com/syssam/sqlkit/dialect/sql"
	"github.com/syssam/sqlkit/dialect/sql/ident"
	"github.com/syssam/sqlkit/schema/coltype"
)

// SQLite is the sqlite vendor.
type SQLite struct {
	*base
}

// NewSQLite returns the sqlite vendor bound to the given connection.
func NewSQLite(conn dialect.ExecQuerier) *SQLite {
	b := newBase(dialect.SQLite, conn)
	b.features = Features{
		IfNotExists:            true,
		QuotedIdentifiers:      true,
		DefaultReferenceOption: NoAction,
	}
	b.idents = ident.NewManager(
		ident.WithQuote('`'),
		ident.WithKeywords("order", "group", "index", "table"),
	)
	b.types = sql.NewTypeMapper(dialect.SQLite,
		sql.WithNumericBooleans(),
		sql.WithTypeOverride(coltype.TypeLongInt, func(coltype.ColumnType) string {
			return "INTEGER"
		}),
		sql.WithTypeOverride(coltype.TypeBinary, func(coltype.ColumnType) string {
			return "BLOB"
		}),
		sql.WithTypeOverride(coltype.TypeUUID, func(coltype.ColumnType) string {
			return "BLOB"
		}),
	)
	b.stmt = sql.NewStatementBuilder(dialect.SQLite,
		sql.WithInsertIgnore("INSERT OR IGNORE INTO", ""),
		sql.WithReplace(),
		sql.WithRandom(func(b *sql.Builder, seed ...int64) {
			// sqlite random() takes no seed.
			b.WriteString("RANDOM()")
		}),
		sql.WithGroupConcat(func(b *sql.Builder, gc sql.GroupConcat) error {
			if len(gc.OrderBy) > 0 {
				return &sql.UnsupportedError{
					Dialect: dialect.SQLite,
					Feature: "GROUP_CONCAT with ORDER BY",
				}
			}
			b.WriteString("GROUP_CONCAT(")
			if gc.Distinct {
				b.WriteString("DISTINCT ")
			}
			gc.Expr.Render(b)
			if gc.Separator != "" {
				b.WriteString(", '").WriteString(gc.Separator).WriteString("'")
			}
			b.WriteByte(')')
			return nil
		}),
	)
	b.queryDatabase = func(ctx context.Context) (string, error) {
		// The main database of a sqlite connection is always named
		// "main".
		return "main", nil
	}
	b.queryTables = func(ctx context.Context) ([]string, error) {
		var names []string
		err := b.queryRows(ctx,
			"SELECT `name` FROM `sqlite_master` WHERE `type` = 'table' AND `name` NOT LIKE 'sqlite_%' ORDER BY `name`",
			[]any{}, func(rows *sql.Rows) error {
				var name string
				if err := rows.Scan(&name); err != nil {
					return err
				}
				names = append(names, name)
				return nil
			})
		return names, err
	}
	b.queryColumns = func(ctx context.Context, table string) ([]ColumnMetadata, error) {
		var cols []ColumnMetadata
		// PRAGMA statements accept no bound parameters.
		err := b.queryRows(ctx,
			fmt.Sprintf("PRAGMA table_info('%s')", strings.ReplaceAll(table, "'", "''")),
			[]any{}, func(rows *sql.Rows) error {
				var (
					cid, notnull, pk int
					name, typ        string
					dflt             sql.NullString
				)
				if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
					return err
				}
				cols = append(cols, ColumnMetadata{
					Name:     name,
					TypeName: typ,
					Nullable: notnull == 0,
				})
				return nil
			})
		return cols, err
	}
	b.queryFKs = func(ctx context.Context, table string) ([]ForeignKey, error) {
		var fks []ForeignKey
		err := b.queryRows(ctx,
			fmt.Sprintf("PRAGMA foreign_key_list('%s')", strings.ReplaceAll(table, "'", "''")),
			[]any{}, func(rows *sql.Rows) error {
				var (
					id, seq                                 int
					refTable, from, to, onUpd, onDel, match string
				)
				if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpd, &onDel, &match); err != nil {
					return err
				}
				fks = append(fks, ForeignKey{
					Symbol:    fmt.Sprintf("%s_%s", table, from),
					Table:     table,
					Column:    from,
					RefTable:  refTable,
					RefColumn: to,
					OnUpdate:  ReferenceOption(onUpd),
					OnDelete:  ReferenceOption(onDel),
				})
				return nil
			})
		return fks, err
	}
	b.queryIndexes = func(ctx context.Context, table string) ([]*Index, error) {
		var idxs []*Index
		err := b.queryRows(ctx,
			fmt.Sprintf("PRAGMA index_list('%s')", strings.ReplaceAll(table, "'", "''")),
			[]any{}, func(rows *sql.Rows) error {
				var (
					seq, unique, partial int
					name, origin         string
				)
				if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
					return err
				}
				// Skip implicit primary-key indexes.
				if origin == "pk" {
					return nil
				}
				idxs = append(idxs, &Index{Table: table, Name: name, Unique: unique == 1})
				return nil
			})
		if err != nil {
			return nil, err
		}
		for _, idx := range idxs {
			err := b.queryRows(ctx,
				fmt.Sprintf("PRAGMA index_info('%s')", strings.ReplaceAll(idx.Name, "'", "''")),
				[]any{}, func(rows *sql.Rows) error {
					var (
						seqno, cid int
						name       string
					)
					if err := rows.Scan(&seqno, &cid, &name); err != nil {
						return err
					}
					idx.Columns = append(idx.Columns, name)
					return nil
				})
			if err != nil {
				return nil, err
			}
		}
		return idxs, nil
	}
	// sqlite has no ADD CONSTRAINT; unique indexes are created
	// directly.
	b.createIndex = func(idx *Index) string {
		q := b.idents.QuoteIfNecessary
		cols := make([]string, len(idx.Columns))
		for i, c := range idx.Columns {
			cols[i] = q(c)
		}
		stmt := "CREATE INDEX "
		if idx.Unique {
			stmt = "CREATE UNIQUE INDEX "
		}
		return stmt + q(idx.IdentName()) + " ON " + q(idx.Table) + " (" + strings.Join(cols, ", ") + ")"
	}
	b.dropIndex = func(table, name string) string {
		return "DROP INDEX " + b.idents.QuoteIfNecessary(name)
	}
	b.modifyColumn = func(table string, c *Column) (string, error) {
		return "", &sql.UnsupportedError{
			Dialect: dialect.SQLite,
			Feature: "MODIFY COLUMN",
			Hint:    "recreate the table with the desired definition",
		}
	}
	return &SQLite{base: b}
}

var _ Vendor = (*SQLite)(nil)
