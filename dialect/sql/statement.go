package sql

import (
	"strconv"
)

// MatchMode is a vendor pattern-matching mode consumed by Match
// overrides, e.g. MySQL full-text search modes.
type MatchMode string

// Vendor match modes.
const (
	MatchBoolean         MatchMode = "IN BOOLEAN MODE"
	MatchNaturalLanguage MatchMode = "IN NATURAL LANGUAGE MODE"
	MatchQueryExpansion  MatchMode = "WITH QUERY EXPANSION"
)

// An Assign is a single column/value pair of an UPDATE, REPLACE or
// INSERT statement.
type Assign struct {
	Column string
	Value  Expr
}

// GroupConcat describes a grouped string concatenation.
type GroupConcat struct {
	Expr      Expr
	Distinct  bool
	OrderBy   []Expr
	Separator string
}

// A StatementBuilder renders logical statements to dialect SQL text.
// The zero-configured builder produces the generic least-common
// denominator spelling of every operation; vendors override only the
// subset whose syntax diverges.
type StatementBuilder struct {
	dialect string

	// INSERT/DELETE ignore-duplicates syntax. Empty means the vendor
	// has no generic spelling and the request fails.
	insertIgnorePrefix string
	insertIgnoreSuffix string
	deleteIgnorePrefix string

	defaultValues   string // clause substituted for an empty column list.
	supportsReplace bool
	updateLimit     bool

	random      func(b *Builder, seed ...int64)
	match       func(b *Builder, e Expr, pattern string, mode MatchMode)
	regexpMatch func(b *Builder, e, pattern Expr, caseSensitive bool)
	groupConcat func(b *Builder, gc GroupConcat) error
	paginate    func(b *Builder, size, offset int, alreadyOrdered bool)
}

// StatementOption configures a StatementBuilder.
type StatementOption func(*StatementBuilder)

// WithInsertIgnore sets the vendor ignore-duplicates insert syntax.
// The prefix replaces "INSERT INTO"; the suffix, if any, is appended to
// the rendered statement.
func WithInsertIgnore(prefix, suffix string) StatementOption {
	return func(s *StatementBuilder) {
		s.insertIgnorePrefix, s.insertIgnoreSuffix = prefix, suffix
	}
}

// WithDeleteIgnore sets the vendor ignore-duplicates delete prefix,
// replacing "DELETE FROM".
func WithDeleteIgnore(prefix string) StatementOption {
	return func(s *StatementBuilder) {
		s.deleteIgnorePrefix = prefix
	}
}

// WithDefaultValuesClause sets the clause substituted for an empty
// column list on insert.
func WithDefaultValuesClause(clause string) StatementOption {
	return func(s *StatementBuilder) {
		s.defaultValues = clause
	}
}

// WithReplace marks the vendor as supporting upsert-by-replace.
func WithReplace() StatementOption {
	return func(s *StatementBuilder) {
		s.supportsReplace = true
	}
}

// WithoutUpdateLimit marks the vendor as rejecting LIMIT on UPDATE and
// DELETE statements.
func WithoutUpdateLimit() StatementOption {
	return func(s *StatementBuilder) {
		s.updateLimit = false
	}
}

// WithRandom overrides the random function rendering.
func WithRandom(f func(b *Builder, seed ...int64)) StatementOption {
	return func(s *StatementBuilder) { s.random = f }
}

// WithMatch overrides the pattern match rendering.
func WithMatch(f func(b *Builder, e Expr, pattern string, mode MatchMode)) StatementOption {
	return func(s *StatementBuilder) { s.match = f }
}

// WithRegexpMatch overrides the regular expression match rendering.
func WithRegexpMatch(f func(b *Builder, e, pattern Expr, caseSensitive bool)) StatementOption {
	return func(s *StatementBuilder) { s.regexpMatch = f }
}

// WithGroupConcat overrides the grouped concatenation rendering.
func WithGroupConcat(f func(b *Builder, gc GroupConcat) error) StatementOption {
	return func(s *StatementBuilder) { s.groupConcat = f }
}

// WithPaginate overrides the pagination clause rendering.
func WithPaginate(f func(b *Builder, size, offset int, alreadyOrdered bool)) StatementOption {
	return func(s *StatementBuilder) { s.paginate = f }
}

// NewStatementBuilder returns a statement builder for the given
// dialect name.
func NewStatementBuilder(dialect string, opts ...StatementOption) *StatementBuilder {
	s := &StatementBuilder{
		dialect:       dialect,
		defaultValues: "DEFAULT VALUES",
		updateLimit:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dialect returns the dialect name the builder renders for.
func (s *StatementBuilder) Dialect() string { return s.dialect }

// Builder returns a fresh rendering context bound to the builder's
// dialect.
func (s *StatementBuilder) Builder() *Builder { return NewBuilder(s.dialect) }

// Insert renders an INSERT statement. An empty column list substitutes
// the dialect default-values clause. Requesting ignore-duplicates on a
// vendor without a generic spelling fails; the flag is never dropped
// silently.
func (s *StatementBuilder) Insert(b *Builder, ignore bool, table string, columns []string, values []Expr) error {
	prefix := "INSERT INTO"
	if ignore {
		if s.insertIgnorePrefix == "" && s.insertIgnoreSuffix == "" {
			return unsupported(s.dialect, "insert ignore")
		}
		if s.insertIgnorePrefix != "" {
			prefix = s.insertIgnorePrefix
		}
	}
	b.WriteString(prefix).Pad().WriteString(table)
	if len(columns) == 0 {
		b.Pad().WriteString(s.defaultValues)
	} else {
		b.WriteString(" (")
		for i, c := range columns {
			if i > 0 {
				b.Comma()
			}
			b.WriteString(c)
		}
		b.WriteString(") VALUES (")
		b.Join(values...)
		b.WriteByte(')')
	}
	if ignore && s.insertIgnoreSuffix != "" {
		b.Pad().WriteString(s.insertIgnoreSuffix)
	}
	return nil
}

// Update renders an UPDATE statement. Each value is registered through
// the rendering context to support parameter binding.
func (s *StatementBuilder) Update(b *Builder, table string, assigns []Assign, where Expr, limit int) error {
	if limit > 0 && !s.updateLimit {
		return unsupported(s.dialect, "LIMIT in UPDATE")
	}
	b.WriteString("UPDATE ").WriteString(table).WriteString(" SET ")
	for i, a := range assigns {
		if i > 0 {
			b.Comma()
		}
		b.WriteString(a.Column).WriteString(" = ")
		a.Value.Render(b)
	}
	if where != nil {
		b.WriteString(" WHERE ")
		where.Render(b)
	}
	if limit > 0 {
		b.WriteString(" LIMIT ").WriteString(strconv.Itoa(limit))
	}
	return nil
}

// Delete renders a DELETE statement with the same ignore-duplicates
// failure policy as Insert.
func (s *StatementBuilder) Delete(b *Builder, ignore bool, table string, where Expr, limit int) error {
	prefix := "DELETE FROM"
	if ignore {
		if s.deleteIgnorePrefix == "" {
			return unsupported(s.dialect, "delete ignore")
		}
		prefix = s.deleteIgnorePrefix
	}
	if limit > 0 && !s.updateLimit {
		return unsupported(s.dialect, "LIMIT in DELETE")
	}
	b.WriteString(prefix).Pad().WriteString(table)
	if where != nil {
		b.WriteString(" WHERE ")
		where.Render(b)
	}
	if limit > 0 {
		b.WriteString(" LIMIT ").WriteString(strconv.Itoa(limit))
	}
	return nil
}

// Replace renders an upsert-by-replace statement. Only vendors with a
// REPLACE syntax support it.
func (s *StatementBuilder) Replace(b *Builder, table string, assigns []Assign) error {
	if !s.supportsReplace {
		return unsupported(s.dialect, "REPLACE")
	}
	b.WriteString("REPLACE INTO ").WriteString(table).WriteString(" (")
	for i, a := range assigns {
		if i > 0 {
			b.Comma()
		}
		b.WriteString(a.Column)
	}
	b.WriteString(") VALUES (")
	for i, a := range assigns {
		if i > 0 {
			b.Comma()
		}
		a.Value.Render(b)
	}
	b.WriteByte(')')
	return nil
}

// Paginate renders the pagination clause. The alreadyOrdered hint is
// consumed only by vendors whose offset paging requires an ORDER BY.
func (s *StatementBuilder) Paginate(b *Builder, size, offset int, alreadyOrdered bool) {
	if s.paginate != nil {
		s.paginate(b, size, offset, alreadyOrdered)
		return
	}
	b.WriteString("LIMIT ").WriteString(strconv.Itoa(size))
	if offset > 0 {
		b.WriteString(" OFFSET ").WriteString(strconv.Itoa(offset))
	}
}

// Substring renders a substring extraction.
func (s *StatementBuilder) Substring(b *Builder, e, start, length Expr) {
	Func("SUBSTRING", e, start, length).Render(b)
}

// Cast renders a type cast to the given SQL type.
func (s *StatementBuilder) Cast(b *Builder, e Expr, typ string) {
	b.WriteString("CAST(")
	e.Render(b)
	b.WriteString(" AS ").WriteString(typ).WriteByte(')')
}

// Random renders a random number expression with an optional seed.
func (s *StatementBuilder) Random(b *Builder, seed ...int64) {
	if s.random != nil {
		s.random(b, seed...)
		return
	}
	b.WriteString("RANDOM(")
	if len(seed) > 0 {
		b.WriteString(strconv.FormatInt(seed[0], 10))
	}
	b.WriteByte(')')
}

// Match renders a vendor pattern match. Without a vendor override it
// degrades to a plain LIKE comparison, which is a weaker semantic: the
// mode argument is not honored by the fallback.
func (s *StatementBuilder) Match(b *Builder, e Expr, pattern string, mode MatchMode) {
	if s.match != nil {
		s.match(b, e, pattern, mode)
		return
	}
	e.Render(b)
	b.WriteString(" LIKE ")
	b.Arg(pattern)
}

// RegexpMatch renders a regular expression match.
func (s *StatementBuilder) RegexpMatch(b *Builder, e, pattern Expr, caseSensitive bool) {
	if s.regexpMatch != nil {
		s.regexpMatch(b, e, pattern, caseSensitive)
		return
	}
	b.WriteString("REGEXP_LIKE(")
	e.Render(b)
	b.Comma()
	pattern.Render(b)
	b.Comma()
	if caseSensitive {
		b.WriteString("'c'")
	} else {
		b.WriteString("'i'")
	}
	b.WriteByte(')')
}

// Concat renders string concatenation. With an empty separator the
// plain CONCAT spelling is used, otherwise CONCAT_WS with the separator
// as its first argument.
func (s *StatementBuilder) Concat(b *Builder, separator string, exprs ...Expr) {
	if separator == "" {
		b.WriteString("CONCAT(")
	} else {
		b.WriteString("CONCAT_WS('").WriteString(separator).WriteString("',")
	}
	b.Join(exprs...)
	b.WriteByte(')')
}

// GroupConcatExpr renders a grouped string concatenation. There is no
// ANSI spelling; vendors without an override reject the request.
func (s *StatementBuilder) GroupConcatExpr(b *Builder, gc GroupConcat) error {
	if s.groupConcat == nil {
		return unsupported(s.dialect, "GROUP_CONCAT")
	}
	return s.groupConcat(b, gc)
}
