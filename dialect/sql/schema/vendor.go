package schema

import (
	"context"
	"strings"

	"github.com/syssam/sqlkit/dialect"
	"github.com/syssam/sqlkit/dialect/sql"
	"github.com/syssam/sqlkit/dialect/sql/ident"
)

// Features is the read-only capability set of one vendor. It is fixed
// at vendor construction; the select-for-update capability may instead
// be probed once against the live connection.
type Features struct {
	// IfNotExists reports support for CREATE ... IF NOT EXISTS.
	IfNotExists bool
	// MultipleGeneratedKeys reports support for returning more than
	// one generated key per statement.
	MultipleGeneratedKeys bool
	// GeneratedKeysIdentifiersOnly restricts generated-key requests
	// to plain column identifiers.
	GeneratedKeysIdentifiersOnly bool
	// SequenceAutoIncrement reports that auto-increment columns are
	// backed by a sequence object.
	SequenceAutoIncrement bool
	// QuotedIdentifiers reports that identifiers containing symbol
	// characters must be quoted.
	QuotedIdentifiers bool
	// SelectForUpdate is the static SELECT ... FOR UPDATE capability,
	// used when no live probe is configured.
	SelectForUpdate bool
	// DefaultReferenceOption is the action applied when a foreign key
	// names none.
	DefaultReferenceOption ReferenceOption
}

// Vendor is the capability surface every concrete dialect satisfies:
// identity, schema reflection entry points, DDL generation and
// capability flags. A vendor instance is typically shared across many
// units of work over the lifetime of a database binding.
type Vendor interface {
	// Name returns the dialect name.
	Name() string
	// Database returns the current catalog name of the bound
	// connection.
	Database(ctx context.Context) (string, error)
	// TableNames returns all table names of the current catalog,
	// served from the metadata cache after first population.
	TableNames(ctx context.Context) ([]string, error)
	// Columns maps each requested table to its column metadata.
	Columns(ctx context.Context, tables ...string) (map[string][]ColumnMetadata, error)
	// ForeignKeys maps each (table, column) pair to its foreign key
	// constraints.
	ForeignKeys(ctx context.Context, tables ...string) (map[TableColumn][]ForeignKey, error)
	// Indexes maps each requested table to its existing indexes.
	Indexes(ctx context.Context, tables ...string) (map[string][]*Index, error)
	// TableExists reports table-name membership in TableNames,
	// case-normalized per vendor.
	TableExists(ctx context.Context, name string) (bool, error)
	// CreateIndex renders the DDL creating the given index.
	CreateIndex(idx *Index) string
	// DropIndex renders the DDL dropping the named index.
	DropIndex(table, name string) string
	// ModifyColumn renders the DDL altering an existing column.
	ModifyColumn(table string, c *Column) (string, error)
	// Features returns the vendor capability flags.
	Features() Features
	// SupportsSelectForUpdate reports the SELECT ... FOR UPDATE
	// capability, probing the live connection at most once per vendor
	// instance.
	SupportsSelectForUpdate(ctx context.Context) (bool, error)
	// ResetCaches invalidates all cached reflection data.
	ResetCaches()
	// AllowedAsColumnDefault reports whether the expression may serve
	// as a column default.
	AllowedAsColumnDefault(e sql.Expr) bool
	// Builder returns the vendor statement builder.
	Builder() *sql.StatementBuilder
	// Types returns the vendor type mapper.
	Types() *sql.TypeMapper
	// Ident returns the vendor identifier manager.
	Ident() *ident.Manager
}

// base carries the generic vendor behavior. Concrete vendors supply
// only the function overrides for the subset they customize, keeping
// the default-behavior table in one place instead of an inheritance
// chain.
type base struct {
	name     string
	conn     dialect.ExecQuerier
	features Features
	stmt     *sql.StatementBuilder
	types    *sql.TypeMapper
	idents   *ident.Manager
	cache    *MetadataCache
	sfu      memo[bool]

	// Reflection queries. Nil entries default to "no data".
	queryDatabase func(ctx context.Context) (string, error)
	queryTables   func(ctx context.Context) ([]string, error)
	queryColumns  func(ctx context.Context, table string) ([]ColumnMetadata, error)
	queryFKs      func(ctx context.Context, table string) ([]ForeignKey, error)
	queryIndexes  func(ctx context.Context, table string) ([]*Index, error)
	probeSFU      func(ctx context.Context) (bool, error)

	// DDL overrides.
	createIndex  func(idx *Index) string
	dropIndex    func(table, name string) string
	modifyColumn func(table string, c *Column) (string, error)

	// computedDefaults allows non-literal column default expressions.
	computedDefaults bool
}

func newBase(name string, conn dialect.ExecQuerier) *base {
	return &base{
		name:  name,
		conn:  conn,
		cache: NewMetadataCache(),
	}
}

// Name returns the dialect name.
func (b *base) Name() string { return b.name }

// Database returns the current catalog name.
func (b *base) Database(ctx context.Context) (string, error) {
	if b.queryDatabase == nil {
		return "", nil
	}
	return b.queryDatabase(ctx)
}

// TableNames returns all table names, cached after first population.
func (b *base) TableNames(ctx context.Context) ([]string, error) {
	return b.cache.TableNames(func() ([]string, error) {
		if b.queryTables == nil {
			return nil, nil
		}
		return b.queryTables(ctx)
	})
}

// Columns maps each requested table to its column metadata.
func (b *base) Columns(ctx context.Context, tables ...string) (map[string][]ColumnMetadata, error) {
	out := make(map[string][]ColumnMetadata, len(tables))
	for _, t := range tables {
		cols, err := b.cache.Columns(t, func() ([]ColumnMetadata, error) {
			if b.queryColumns == nil {
				return nil, nil
			}
			return b.queryColumns(ctx, t)
		})
		if err != nil {
			return nil, err
		}
		out[t] = cols
	}
	return out, nil
}

// ForeignKeys maps each (table, column) pair to its constraints.
func (b *base) ForeignKeys(ctx context.Context, tables ...string) (map[TableColumn][]ForeignKey, error) {
	out := make(map[TableColumn][]ForeignKey)
	for _, t := range tables {
		fks, err := b.cache.ForeignKeys(t, func() ([]ForeignKey, error) {
			if b.queryFKs == nil {
				return nil, nil
			}
			return b.queryFKs(ctx, t)
		})
		if err != nil {
			return nil, err
		}
		for _, fk := range fks {
			k := TableColumn{Table: fk.Table, Column: fk.Column}
			out[k] = append(out[k], fk)
		}
	}
	return out, nil
}

// Indexes maps each requested table to its existing indexes.
func (b *base) Indexes(ctx context.Context, tables ...string) (map[string][]*Index, error) {
	out := make(map[string][]*Index, len(tables))
	for _, t := range tables {
		idxs, err := b.cache.Indexes(t, func() ([]*Index, error) {
			if b.queryIndexes == nil {
				return nil, nil
			}
			return b.queryIndexes(ctx, t)
		})
		if err != nil {
			return nil, err
		}
		out[t] = idxs
	}
	return out, nil
}

// TableExists reports membership of the case-normalized name in
// TableNames.
func (b *base) TableExists(ctx context.Context, name string) (bool, error) {
	names, err := b.TableNames(ctx)
	if err != nil {
		return false, err
	}
	want := b.idents.ProperCase(name)
	for _, n := range names {
		if n == want || strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}

// CreateIndex renders index DDL: unique indexes as a table constraint,
// non-unique as a plain CREATE INDEX.
func (b *base) CreateIndex(idx *Index) string {
	if b.createIndex != nil {
		return b.createIndex(idx)
	}
	q := b.idents.QuoteIfNecessary
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = q(c)
	}
	if idx.Unique {
		return "ALTER TABLE " + q(idx.Table) + " ADD CONSTRAINT " + q(idx.IdentName()) + " UNIQUE (" + strings.Join(cols, ", ") + ")"
	}
	return "CREATE INDEX " + q(idx.IdentName()) + " ON " + q(idx.Table) + " (" + strings.Join(cols, ", ") + ")"
}

// DropIndex renders index drop DDL.
func (b *base) DropIndex(table, name string) string {
	if b.dropIndex != nil {
		return b.dropIndex(table, name)
	}
	q := b.idents.QuoteIfNecessary
	return "ALTER TABLE " + q(table) + " DROP CONSTRAINT " + q(name)
}

// ModifyColumn renders column modification DDL.
func (b *base) ModifyColumn(table string, c *Column) (string, error) {
	if b.modifyColumn != nil {
		return b.modifyColumn(table, c)
	}
	q := b.idents.QuoteIfNecessary
	return "ALTER TABLE " + q(table) + " MODIFY COLUMN " + b.columnDDL(c), nil
}

// columnDDL renders the column definition used by DDL statements.
func (b *base) columnDDL(c *Column) string {
	ddl := b.idents.QuoteIfNecessary(c.Name) + " " + b.types.RenderType(c.Type)
	if !c.Nullable {
		ddl += " NOT NULL"
	}
	if c.Default != nil {
		ddl += " DEFAULT " + b.types.RenderDefault(c.Default)
	}
	return ddl
}

// Features returns the vendor capability flags.
func (b *base) Features() Features { return b.features }

// SupportsSelectForUpdate reports the probed-and-memoized capability.
// The memo is never invalidated: the capability reflects a static
// database property unlikely to change within a process lifetime.
func (b *base) SupportsSelectForUpdate(ctx context.Context) (bool, error) {
	return b.sfu.Get(func() (bool, error) {
		if b.probeSFU == nil {
			return b.features.SelectForUpdate, nil
		}
		return b.probeSFU(ctx)
	})
}

// ResetCaches invalidates all cached reflection data of this vendor.
func (b *base) ResetCaches() {
	b.cache.Reset()
}

// AllowedAsColumnDefault applies the default policy: only literal
// expressions may serve as column defaults. Vendors supporting
// computed defaults relax it.
func (b *base) AllowedAsColumnDefault(e sql.Expr) bool {
	if b.computedDefaults {
		return true
	}
	return sql.IsLiteral(e)
}

// Builder returns the vendor statement builder.
func (b *base) Builder() *sql.StatementBuilder { return b.stmt }

// Types returns the vendor type mapper.
func (b *base) Types() *sql.TypeMapper { return b.types }

// Ident returns the vendor identifier manager.
func (b *base) Ident() *ident.Manager { return b.idents }

// queryRows runs query through the bound connection and applies scan
// to every returned row.
func (b *base) queryRows(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows := &sql.Rows{}
	if err := b.conn.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// queryValue runs a single-value query through the bound connection.
func queryValue[T any](ctx context.Context, b *base, query string) (T, error) {
	var v T
	err := b.queryRows(ctx, query, []any{}, func(rows *sql.Rows) error {
		return rows.Scan(&v)
	})
	return v, err
}
