package schema

import (
	"context"
	"testing"

	"github.com/syssam/sqlkit/dialect"
	"github.com/syssam/sqlkit/dialect/sql"
	"github.com/syssam/sqlkit/schema/coltype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIndex(t *testing.T) {
	my := NewMySQL(nil)
	unique := &Index{Table: "T", Name: "idx_a", Unique: true, Columns: []string{"a"}}
	assert.Equal(t, "ALTER TABLE T ADD CONSTRAINT idx_a UNIQUE (a)", my.CreateIndex(unique))

	plain := &Index{Table: "T", Name: "idx_a", Columns: []string{"a"}}
	assert.Equal(t, "CREATE INDEX idx_a ON T (a)", my.CreateIndex(plain))

	multi := &Index{Table: "users", Name: "idx_name_age", Columns: []string{"name", "age"}}
	assert.Equal(t, "CREATE INDEX idx_name_age ON users (name, age)", my.CreateIndex(multi))

	// Unnamed indexes get a generated name.
	unnamed := &Index{Table: "users", Columns: []string{"email"}}
	assert.Equal(t, "CREATE INDEX users_email_idx ON users (email)", my.CreateIndex(unnamed))

	// sqlite cannot add table constraints; unique indexes are created
	// directly.
	lite := NewSQLite(nil)
	assert.Equal(t, "CREATE UNIQUE INDEX idx_a ON T (a)", lite.CreateIndex(unique))
	assert.Equal(t, "CREATE INDEX idx_a ON T (a)", lite.CreateIndex(plain))
}

func TestDropIndex(t *testing.T) {
	assert.Equal(t, "ALTER TABLE T DROP INDEX idx_a", NewMySQL(nil).DropIndex("T", "idx_a"))
	assert.Equal(t, "ALTER TABLE T DROP CONSTRAINT idx_a", NewPostgres(nil).DropIndex("T", "idx_a"))
	assert.Equal(t, "DROP INDEX idx_a", NewSQLite(nil).DropIndex("T", "idx_a"))
}

func TestModifyColumn(t *testing.T) {
	c := &Column{Name: "age", Type: coltype.ShortInt()}
	ddl, err := NewMySQL(nil).ModifyColumn("users", c)
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE users MODIFY COLUMN age INT NOT NULL", ddl)

	c = &Column{Name: "name", Type: coltype.Text(), Nullable: true, Default: sql.Literal("x")}
	ddl, err = NewMySQL(nil).ModifyColumn("users", c)
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE users MODIFY COLUMN name TEXT DEFAULT 'x'", ddl)

	ddl, err = NewPostgres(nil).ModifyColumn("users", &Column{Name: "age", Type: coltype.ShortInt()})
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE users ALTER COLUMN age TYPE INT, ALTER COLUMN age SET NOT NULL", ddl)

	_, err = NewSQLite(nil).ModifyColumn("users", c)
	assert.True(t, sql.IsUnsupported(err))
}

func TestFeatures(t *testing.T) {
	my, pg, lite := NewMySQL(nil), NewPostgres(nil), NewSQLite(nil)
	assert.Equal(t, dialect.MySQL, my.Name())
	assert.Equal(t, dialect.Postgres, pg.Name())
	assert.Equal(t, dialect.SQLite, lite.Name())

	assert.Equal(t, Restrict, my.Features().DefaultReferenceOption)
	assert.Equal(t, NoAction, pg.Features().DefaultReferenceOption)
	assert.True(t, pg.Features().SequenceAutoIncrement)
	assert.True(t, my.Features().IfNotExists)

	ctx := context.Background()
	for _, tt := range []struct {
		v    Vendor
		want bool
	}{{my, true}, {pg, true}, {lite, false}} {
		got, err := tt.v.SupportsSelectForUpdate(ctx)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestAllowedAsColumnDefault(t *testing.T) {
	my := NewMySQL(nil)
	assert.True(t, my.AllowedAsColumnDefault(sql.Literal(1)))
	assert.False(t, my.AllowedAsColumnDefault(sql.Func("NOW")))

	// Postgres allows computed defaults.
	pg := NewPostgres(nil)
	assert.True(t, pg.AllowedAsColumnDefault(sql.Func("NOW")))
}

func TestVendorBuilders(t *testing.T) {
	my := NewMySQL(nil)
	s, b := my.Builder(), my.Builder().Builder()
	require.NoError(t, s.Insert(b, true, "users", []string{"name"}, []sql.Expr{sql.Literal("x")}))
	assert.Equal(t, "INSERT IGNORE INTO users (name) VALUES (?)", b.String())

	b = s.Builder()
	require.NoError(t, s.Insert(b, false, "users", nil, nil))
	assert.Equal(t, "INSERT INTO users () VALUES ()", b.String())

	b = s.Builder()
	require.NoError(t, s.GroupConcatExpr(b, sql.GroupConcat{
		Expr:      sql.Ident("name"),
		Distinct:  true,
		OrderBy:   []sql.Expr{sql.Ident("name")},
		Separator: ", ",
	}))
	assert.Equal(t, "GROUP_CONCAT(DISTINCT name ORDER BY name SEPARATOR ', ')", b.String())

	b = s.Builder()
	s.Match(b, sql.Ident("bio"), "golang", sql.MatchBoolean)
	assert.Equal(t, "MATCH(bio) AGAINST (? IN BOOLEAN MODE)", b.String())

	b = s.Builder()
	s.Random(b, 7)
	assert.Equal(t, "RAND(7)", b.String())

	pg := NewPostgres(nil)
	s = pg.Builder()
	b = s.Builder()
	require.NoError(t, s.GroupConcatExpr(b, sql.GroupConcat{Expr: sql.Ident("name"), Separator: "-"}))
	assert.Equal(t, "STRING_AGG(name, '-')", b.String())

	err := s.GroupConcatExpr(s.Builder(), sql.GroupConcat{Expr: sql.Ident("name")})
	assert.True(t, sql.IsUnsupported(err), "STRING_AGG requires a separator")

	b = s.Builder()
	s.RegexpMatch(b, sql.Ident("name"), sql.Raw("'^a'"), false)
	assert.Equal(t, "name ~* '^a'", b.String())

	// Vendor type mappers keep their single-kind overrides.
	assert.Equal(t, "uuid", pg.Types().RenderType(coltype.UUID()))
	assert.Equal(t, "BIGINT", pg.Types().RenderType(coltype.LongInt()))
	assert.Equal(t, "DOUBLE", NewMySQL(nil).Types().RenderType(coltype.Double()))
	assert.Equal(t, "INTEGER", NewSQLite(nil).Types().RenderType(coltype.LongInt()))
}
