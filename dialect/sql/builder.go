package sql

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/syssam/sqlkit/dialect"
)

// Builder is the rendering context used to assemble SQL text. It tracks
// whether value expressions are inlined as literals or registered as
// bound placeholders, and collects the bound arguments.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
	inline  bool
}

// NewBuilder returns a builder bound to the given dialect name.
func NewBuilder(dialect string) *Builder {
	return &Builder{dialect: dialect}
}

// Dialect returns the dialect name the builder renders for.
func (b *Builder) Dialect() string { return b.dialect }

// SetInline sets whether value expressions are rendered as inline SQL
// literals instead of bound placeholders.
func (b *Builder) SetInline(inline bool) *Builder {
	b.inline = inline
	return b
}

// WriteString appends the given string to the statement.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends the given byte to the statement.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Comma appends a comma and a space to the statement.
func (b *Builder) Comma() *Builder {
	return b.WriteString(", ")
}

// Pad appends a single space to the statement.
func (b *Builder) Pad() *Builder {
	return b.WriteByte(' ')
}

// Wrap wraps the output of f with parentheses.
func (b *Builder) Wrap(f func(*Builder)) *Builder {
	b.WriteByte('(')
	f(b)
	b.WriteByte(')')
	return b
}

// Arg registers the given value as a statement argument and writes its
// placeholder, or the inline literal when inline mode is set.
func (b *Builder) Arg(v any) *Builder {
	if b.inline {
		return b.WriteString(literalText(v))
	}
	b.args = append(b.args, v)
	if b.dialect == dialect.Postgres {
		return b.WriteString("$" + strconv.Itoa(len(b.args)))
	}
	return b.WriteByte('?')
}

// Join renders the given expressions separated by commas.
func (b *Builder) Join(exprs ...Expr) *Builder {
	for i, e := range exprs {
		if i > 0 {
			b.Comma()
		}
		e.Render(b)
	}
	return b
}

// String returns the accumulated SQL text.
func (b *Builder) String() string { return b.sb.String() }

// Args returns the registered statement arguments.
func (b *Builder) Args() []any { return b.args }

// An Expr is a value-producing SQL fragment. Expressions render to SQL
// text through a Builder and never mutate the schema.
type Expr interface {
	Render(*Builder)
}

type raw string

// Raw returns an expression that renders the given SQL text verbatim.
func Raw(s string) Expr { return raw(s) }

// Render implements the Expr interface.
func (r raw) Render(b *Builder) { b.WriteString(string(r)) }

type ident string

// Ident returns a column or table reference expression.
func Ident(name string) Expr { return ident(name) }

// Render implements the Expr interface.
func (i ident) Render(b *Builder) { b.WriteString(string(i)) }

type literal struct{ v any }

// Literal returns a literal value expression. Depending on the builder
// mode it renders as an inline SQL literal or a bound placeholder.
func Literal(v any) Expr { return literal{v} }

// Render implements the Expr interface.
func (l literal) Render(b *Builder) { b.Arg(l.v) }

// IsLiteral reports whether the expression is a bare literal value.
func IsLiteral(e Expr) bool {
	_, ok := e.(literal)
	return ok
}

type funcExpr struct {
	name string
	args []Expr
}

// Func returns a scalar function call expression.
func Func(name string, args ...Expr) Expr {
	return funcExpr{name: name, args: args}
}

// Render implements the Expr interface.
func (f funcExpr) Render(b *Builder) {
	b.WriteString(f.name)
	b.Wrap(func(b *Builder) {
		b.Join(f.args...)
	})
}

// literalText renders a Go value as an inline SQL literal.
func literalText(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case []byte:
		return fmt.Sprintf("X'%x'", v)
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05") + "'"
	case fmt.Stringer:
		return "'" + strings.ReplaceAll(v.String(), "'", "''") + "'"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// render evaluates an expression on a throwaway builder of the same
// dialect in inline mode. Used where a SQL snippet is needed as text,
// e.g. default value expressions in DDL.
func render(dialect string, e Expr) string {
	b := NewBuilder(dialect).SetInline(true)
	e.Render(b)
	return b.String()
}
