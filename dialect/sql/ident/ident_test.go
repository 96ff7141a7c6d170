package ident_test

import (
	"testing"

	"github.com/syssam/sqlkit/dialect/sql/ident"

	"github.com/stretchr/testify/assert"
)

func TestManager_ProperCase(t *testing.T) {
	preserve := ident.NewManager()
	assert.Equal(t, "Users", preserve.ProperCase("Users"))

	lower := ident.NewManager(ident.WithStoreCase(ident.CaseLower))
	assert.Equal(t, "users", lower.ProperCase("Users"))

	upper := ident.NewManager(ident.WithStoreCase(ident.CaseUpper))
	assert.Equal(t, "USERS", upper.ProperCase("Users"))
}

func TestManager_QuoteIfNecessary(t *testing.T) {
	m := ident.NewManager(ident.WithKeywords("order"))
	// Plain identifiers pass through untouched.
	assert.Equal(t, "users", m.QuoteIfNecessary("users"))
	assert.Equal(t, "user_id2", m.QuoteIfNecessary("user_id2"))
	// Reserved words, symbol characters and leading digits quote.
	assert.Equal(t, `"order"`, m.QuoteIfNecessary("order"))
	assert.Equal(t, `"ORDER"`, m.QuoteIfNecessary("ORDER"))
	assert.Equal(t, `"user name"`, m.QuoteIfNecessary("user name"))
	assert.Equal(t, `"2fa"`, m.QuoteIfNecessary("2fa"))

	// Wrong-case identifiers quote on case-folding vendors.
	pg := ident.NewManager(ident.WithStoreCase(ident.CaseLower))
	assert.Equal(t, "users", pg.QuoteIfNecessary("users"))
	assert.Equal(t, `"Users"`, pg.QuoteIfNecessary("Users"))

	my := ident.NewManager(ident.WithQuote('`'))
	assert.Equal(t, "`user name`", my.QuoteIfNecessary("user name"))
}

func TestManager_CutIfNecessaryAndQuote(t *testing.T) {
	m := ident.NewManager(ident.WithMaxLength(8))
	assert.Equal(t, "short", m.CutIfNecessaryAndQuote("short"))
	assert.Equal(t, "averylon", m.CutIfNecessaryAndQuote("averylongidentifier"))
}

func TestGeneratedNames(t *testing.T) {
	assert.Equal(t, "users_email_idx", ident.IndexName("users", "email"))
	assert.Equal(t, "user_groups_user_id_group_id_idx", ident.IndexName("UserGroups", "UserID", "GroupID"))
	assert.Equal(t, "fk_users_group_id", ident.ForeignKeyName("users", "group_id"))
}
