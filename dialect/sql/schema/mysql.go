package schema

import (
	"context"
	"errors"
	"strconv"

	"github.com/syssam/sqlkit/dialect"
	"github.com/syssam/sqlkit/dialect/sql"
	"github.com/syssam/sqlkit/dialect/sql/ident"
	"github.com/syssam/sqlkit/schema/coltype"

	"github.com/go-sql-driver/mysql"
)

// MySQL is the mysql vendor.
type MySQL struct {
	*base
}

// NewMySQL returns the mysql vendor bound to the given connection.
func NewMySQL(conn dialect.ExecQuerier) *MySQL {
	b := newBase(dialect.MySQL, conn)
	b.features = Features{
		IfNotExists:            true,
		MultipleGeneratedKeys:  true,
		QuotedIdentifiers:      true,
		SelectForUpdate:        true,
		DefaultReferenceOption: Restrict,
	}
	b.idents = ident.NewManager(
		ident.WithQuote('`'),
		ident.WithMaxLength(64),
		ident.WithKeywords("key", "order", "group", "desc", "index"),
	)
	b.types = sql.NewTypeMapper(dialect.MySQL,
		sql.WithNumericBooleans(),
		sql.WithTypeOverride(coltype.TypeDouble, func(coltype.ColumnType) string {
			return "DOUBLE"
		}),
	)
	b.stmt = sql.NewStatementBuilder(dialect.MySQL,
		sql.WithInsertIgnore("INSERT IGNORE INTO", ""),
		sql.WithDeleteIgnore("DELETE IGNORE FROM"),
		// MySQL has no DEFAULT VALUES clause; an empty row insert is
		// spelled with empty column and value lists.
		sql.WithDefaultValuesClause("() VALUES ()"),
		sql.WithReplace(),
		sql.WithRandom(func(b *sql.Builder, seed ...int64) {
			b.WriteString("RAND(")
			if len(seed) > 0 {
				b.WriteString(strconv.FormatInt(seed[0], 10))
			}
			b.WriteByte(')')
		}),
		sql.WithMatch(func(b *sql.Builder, e sql.Expr, pattern string, mode sql.MatchMode) {
			b.WriteString("MATCH(")
			e.Render(b)
			b.WriteString(") AGAINST (")
			b.Arg(pattern)
			if mode != "" {
				b.Pad().WriteString(string(mode))
			}
			b.WriteByte(')')
		}),
		sql.WithRegexpMatch(func(b *sql.Builder, e, pattern sql.Expr, caseSensitive bool) {
			e.Render(b)
			if caseSensitive {
				b.WriteString(" REGEXP BINARY ")
			} else {
				b.WriteString(" REGEXP ")
			}
			pattern.Render(b)
		}),
		sql.WithGroupConcat(func(b *sql.Builder, gc sql.GroupConcat) error {
			b.WriteString("GROUP_CONCAT(")
			if gc.Distinct {
				b.WriteString("DISTINCT ")
			}
			gc.Expr.Render(b)
			if len(gc.OrderBy) > 0 {
				b.WriteString(" ORDER BY ")
				b.Join(gc.OrderBy...)
			}
			if gc.Separator != "" {
				b.WriteString(" SEPARATOR '").WriteString(gc.Separator).WriteString("'")
			}
			b.WriteByte(')')
			return nil
		}),
	)
	b.queryDatabase = func(ctx context.Context) (string, error) {
		return queryValue[string](ctx, b, "SELECT DATABASE()")
	}
	b.queryTables = func(ctx context.Context) ([]string, error) {
		var names []string
		err := b.queryRows(ctx,
			"SELECT `TABLE_NAME` FROM `INFORMATION_SCHEMA`.`TABLES` WHERE `TABLE_SCHEMA` = (SELECT DATABASE()) ORDER BY `TABLE_NAME`",
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
			"SELECT `COLUMN_NAME`, `COLUMN_TYPE`, `IS_NULLABLE` FROM `INFORMATION_SCHEMA`.`COLUMNS` WHERE `TABLE_SCHEMA` = (SELECT DATABASE()) AND `TABLE_NAME` = ? ORDER BY `ORDINAL_POSITION`",
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
			"SELECT `k`.`CONSTRAINT_NAME`, `k`.`COLUMN_NAME`, `k`.`REFERENCED_TABLE_NAME`, `k`.`REFERENCED_COLUMN_NAME`, `r`.`UPDATE_RULE`, `r`.`DELETE_RULE` "+
				"FROM `INFORMATION_SCHEMA`.`KEY_COLUMN_USAGE` AS `k` "+
				"JOIN `INFORMATION_SCHEMA`.`REFERENTIAL_CONSTRAINTS` AS `r` ON `k`.`CONSTRAINT_NAME` = `r`.`CONSTRAINT_NAME` AND `k`.`TABLE_SCHEMA` = `r`.`CONSTRAINT_SCHEMA` "+
				"WHERE `k`.`TABLE_SCHEMA` = (SELECT DATABASE()) AND `k`.`TABLE_NAME` = ? AND `k`.`REFERENCED_TABLE_NAME` IS NOT NULL",
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
			"SELECT `INDEX_NAME`, `COLUMN_NAME`, `NON_UNIQUE` FROM `INFORMATION_SCHEMA`.`STATISTICS` WHERE `TABLE_SCHEMA` = (SELECT DATABASE()) AND `TABLE_NAME` = ? ORDER BY `INDEX_NAME`, `SEQ_IN_INDEX`",
			[]any{table}, func(rows *sql.Rows) error {
				var (
					name, column string
					nonUnique    bool
				)
				if err := rows.Scan(&name, &column, &nonUnique); err != nil {
					return err
				}
				idx, ok := byName[name]
				if !ok {
					idx = &Index{Table: table, Name: name, Unique: !nonUnique}
					byName[name] = idx
					idxs = append(idxs, idx)
				}
				idx.Columns = append(idx.Columns, column)
				return nil
			})
		return idxs, err
	}
	b.dropIndex = func(table, name string) string {
		q := b.idents.QuoteIfNecessary
		return "ALTER TABLE " + q(table) + " DROP INDEX " + q(name)
	}
	return &MySQL{base: b}
}

// IsUniqueViolation reports whether the mysql driver error is a
// duplicate-key violation. Callers use it after writes issued without
// the ignore-duplicates modifier.
func (*MySQL) IsUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	// 1062 ER_DUP_ENTRY, 1586 ER_DUP_ENTRY_WITH_KEY_NAME.
	return me.Number == 1062 || me.Number == 1586
}

var _ Vendor = (*MySQL)(nil)
