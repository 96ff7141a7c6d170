package schema

import (
	"context"
	"errors"

	"github.com/syssam/sqlkit/dialect"
	"github.com/syssam/sqlkit/dialect/sql"
	"github.com/syssam/sqlkit/dialect/sql/ident"
	"github.com/syssam/sqlkit/schema/coltype"

	"github.com/lib/pq"
)

// Postgres is the postgres vendor.
type Postgres struct {
	*base
}

// NewPostgres returns the postgres vendor bound to the given
// connection.
func NewPostgres(conn dialect.ExecQuerier) *Postgres {
	b := newBase(dialect.Postgres, conn)
	b.features = Features{
		IfNotExists:            true,
		MultipleGeneratedKeys:  true,
		SequenceAutoIncrement:  true,
		QuotedIdentifiers:      true,
		SelectForUpdate:        true,
		DefaultReferenceOption: NoAction,
	}
	b.idents = ident.NewManager(
		ident.WithStoreCase(ident.CaseLower),
		ident.WithMaxLength(63),
		ident.WithKeywords("user", "order", "group", "desc", "select"),
	)
	b.types = sql.NewTypeMapper(dialect.Postgres,
		sql.WithTypeOverride(coltype.TypeFloat, func(coltype.ColumnType) string {
			return "REAL"
		}),
		sql.WithTypeOverride(coltype.TypeUUID, func(coltype.ColumnType) string {
			return "uuid"
		}),
		sql.WithTypeOverride(coltype.TypeDateTime, func(coltype.ColumnType) string {
			return "TIMESTAMP"
		}),
		sql.WithTypeOverride(coltype.TypeBlob, func(coltype.ColumnType) string {
			return "bytea"
		}),
		sql.WithTypeOverride(coltype.TypeBinary, func(coltype.ColumnType) string {
			return "bytea"
		}),
	)
	b.stmt = sql.NewStatementBuilder(dialect.Postgres,
		sql.WithInsertIgnore("", "ON CONFLICT DO NOTHING"),
		sql.WithoutUpdateLimit(),
		sql.WithRandom(func(b *sql.Builder, seed ...int64) {
			// Postgres seeds the generator through SETSEED, not as a
			// function argument.
			b.WriteString("RANDOM()")
		}),
		sql.WithRegexpMatch(func(b *sql.Builder, e, pattern sql.Expr, caseSensitive bool) {
			e.Render(b)
			if caseSensitive {
				b.WriteString(" ~ ")
			} else {
				b.WriteString(" ~* ")
			}
			pattern.Render(b)
		}),
		sql.WithGroupConcat(func(b *sql.Builder, gc sql.GroupConcat) error {
			if gc.Separator == "" {
				return &sql.UnsupportedError{
					Dialect: dialect.Postgres,
					Feature: "GROUP_CONCAT without a separator",
					Hint:    "STRING_AGG requires an explicit delimiter",
				}
			}
			b.WriteString("STRING_AGG(")
			if gc.Distinct {
				b.WriteString("DISTINCT ")
			}
			gc.Expr.Render(b)
			b.WriteString(", '").WriteString(gc.Separator).WriteString("'")
			if len(gc.OrderBy) > 0 {
				b.WriteString(" ORDER BY ")
				b.Join(gc.OrderBy...)
			}
			b.WriteByte(')')
			return nil
		}),
	)
	b.computedDefaults = true
	b.queryDatabase = func(ctx context.Context) (string, error) {
		return queryValue[string](ctx, b, "SELECT CURRENT_CATALOG")
	}
	b.queryTables = func(ctx context.Context) ([]string, error) {
		var names []string
		err := b.queryRows(ctx,
			"SELECT table_name FROM information_schema.tables WHERE table_schema = CURRENT_SCHEMA() AND table_type = 'BASE TABLE' ORDER BY table_name",
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
		err := b.queryRows(ctx,
			"SELECT column_name, data_type, is_nullable FROM information_schema.columns WHERE table_schema = CURRENT_SCHEMA() AND table_name = $1 ORDER BY ordinal_position",
			[]any{table}, func(rows *sql.Rows) error {
				var (
					c        ColumnMetadata
					nullable string
				)
				if err := rows.Scan(&c.Name, &c.TypeName, &nullable); err != nil {
					return err
				}
				c.Nullable = nullable == "YES"
				cols = append(cols, c)
				return nil
			})
		return cols, err
	}
	b.queryFKs = func(ctx context.Context, table string) ([]ForeignKey, error) {
		var fks []ForeignKey
		err := b.queryRows(ctx,
			"SELECT tc.constraint_name, kcu.column_name, ccu.table_name, ccu.column_name, rc.update_rule, rc.delete_rule "+
				"FROM information_schema.table_constraints AS tc "+
				"JOIN information_schema.key_column_usage AS kcu ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema "+
				"JOIN information_schema.constraint_column_usage AS ccu ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema "+
				"JOIN information_schema.referential_constraints AS rc ON rc.constraint_name = tc.constraint_name AND rc.constraint_schema = tc.table_schema "+
				"WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = CURRENT_SCHEMA() AND tc.table_name = $1",
			[]any{table}, func(rows *sql.Rows) error {
				fk := ForeignKey{Table: table}
				var onUpdate, onDelete string
				if err := rows.Scan(&fk.Symbol, &fk.Column, &fk.RefTable, &fk.RefColumn, &onUpdate, &onDelete); err != nil {
					return err
				}
				fk.OnUpdate, fk.OnDelete = ReferenceOption(onUpdate), ReferenceOption(onDelete)
				fks = append(fks, fk)
				return nil
			})
		return fks, err
	}
	b.queryIndexes = func(ctx context.Context, table string) ([]*Index, error) {
		var (
			idxs   []*Index
			byName = make(map[string]*Index)
		)
		err := b.queryRows(ctx,
			"SELECT i.relname, a.attname, idx.indisunique "+
				"FROM pg_class t "+
				"JOIN pg_index idx ON t.oid = idx.indrelid "+
				"JOIN pg_class i ON i.oid = idx.indexrelid "+
				"JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(idx.indkey) "+
				"WHERE t.relname = $1 AND NOT idx.indisprimary ORDER BY i.relname",
			[]any{table}, func(rows *sql.Rows) error {
				var (
					name, column string
					unique       bool
				)
				if err := rows.Scan(&name, &column, &unique); err != nil {
					return err
				}
				idx, ok := byName[name]
				if !ok {
					idx = &Index{Table: table, Name: name, Unique: unique}
					byName[name] = idx
					idxs = append(idxs, idx)
				}
				idx.Columns = append(idx.Columns, column)
				return nil
			})
		return idxs, err
	}
	b.modifyColumn = func(table string, c *Column) (string, error) {
		q := b.idents.QuoteIfNecessary
		ddl := "ALTER TABLE " + q(table) + " ALTER COLUMN " + q(c.Name) + " TYPE " + b.types.RenderType(c.Type)
		if c.Nullable {
			ddl += ", ALTER COLUMN " + q(c.Name) + " DROP NOT NULL"
		} else {
			ddl += ", ALTER COLUMN " + q(c.Name) + " SET NOT NULL"
		}
		if c.Default != nil {
			ddl += ", ALTER COLUMN " + q(c.Name) + " SET DEFAULT " + b.types.RenderDefault(c.Default)
		}
		return ddl, nil
	}
	return &Postgres{base: b}
}

// IsUniqueViolation reports whether the postgres driver error is a
// unique constraint violation.
func (*Postgres) IsUniqueViolation(err error) bool {
	var pe *pq.Error
	if !errors.As(err, &pe) {
		return false
	}
	// 23505 unique_violation.
	return pe.Code == "23505"
}

var _ Vendor = (*Postgres)(nil)
