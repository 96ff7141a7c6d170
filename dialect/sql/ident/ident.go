// Package ident implements identifier case folding, quoting and
// generated-name construction for the supported SQL vendors.
package ident

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case is the case an unquoted identifier folds to when stored by the
// database catalog.
type Case uint8

// Identifier storage cases.
const (
	// CasePreserve keeps identifiers exactly as written.
	CasePreserve Case = iota
	// CaseLower folds unquoted identifiers to lower case (Postgres).
	CaseLower
	// CaseUpper folds unquoted identifiers to upper case.
	CaseUpper
)

var (
	lower = cases.Lower(language.Und)
	upper = cases.Upper(language.Und)
)

// A Manager applies the case-folding and quoting rules of one vendor.
type Manager struct {
	quote     byte // quoting character, e.g. '`' or '"'.
	storeCase Case // catalog storage case for unquoted identifiers.
	maxLen    int  // maximum identifier length, 0 for unbounded.
	keywords  map[string]struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithQuote sets the identifier quoting character.
func WithQuote(c byte) Option {
	return func(m *Manager) { m.quote = c }
}

// WithStoreCase sets the catalog storage case.
func WithStoreCase(c Case) Option {
	return func(m *Manager) { m.storeCase = c }
}

// WithMaxLength bounds generated identifier length.
func WithMaxLength(n int) Option {
	return func(m *Manager) { m.maxLen = n }
}

// WithKeywords adds reserved words that always require quoting.
func WithKeywords(words ...string) Option {
	return func(m *Manager) {
		for _, w := range words {
			m.keywords[lower.String(w)] = struct{}{}
		}
	}
}

// NewManager returns a manager with double-quote quoting, preserved
// case and no length bound unless configured otherwise.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		quote:    '"',
		keywords: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProperCase folds the identifier to the vendor catalog storage case.
func (m *Manager) ProperCase(name string) string {
	switch m.storeCase {
	case CaseLower:
		return lower.String(name)
	case CaseUpper:
		return upper.String(name)
	default:
		return name
	}
}

// NeedsQuoting reports whether the identifier requires quoting: it is
// a reserved word, contains symbol characters, or does not match the
// vendor storage case.
func (m *Manager) NeedsQuoting(name string) bool {
	if name == "" {
		return true
	}
	if _, ok := m.keywords[lower.String(name)]; ok {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return m.storeCase != CasePreserve && name != m.ProperCase(name)
}

// Quote wraps the identifier in the vendor quoting character, doubling
// embedded quotes.
func (m *Manager) Quote(name string) string {
	q := string(m.quote)
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// QuoteIfNecessary quotes the identifier only when its spelling
// requires it. Plain identifiers in the vendor storage case pass
// through untouched, which keeps generated DDL readable.
func (m *Manager) QuoteIfNecessary(name string) string {
	if m.NeedsQuoting(name) {
		return m.Quote(name)
	}
	return name
}

// CutIfNecessaryAndQuote truncates the identifier to the vendor length
// bound and then applies QuoteIfNecessary.
func (m *Manager) CutIfNecessaryAndQuote(name string) string {
	if m.maxLen > 0 && len(name) > m.maxLen {
		name = name[:m.maxLen]
	}
	return m.QuoteIfNecessary(name)
}

// IndexName builds a generated index name from the owning table and
// its column list, underscored: table_col1_col2_idx.
func IndexName(table string, columns ...string) string {
	parts := make([]string, 0, len(columns)+2)
	parts = append(parts, inflect.Underscore(table))
	for _, c := range columns {
		parts = append(parts, inflect.Underscore(c))
	}
	parts = append(parts, "idx")
	return strings.Join(parts, "_")
}

// ForeignKeyName builds a generated foreign key constraint name:
// fk_table_column.
func ForeignKeyName(table, column string) string {
	return "fk_" + inflect.Underscore(table) + "_" + inflect.Underscore(column)
}
