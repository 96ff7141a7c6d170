package sql

import (
	"context"
	"testing"

	"github.com/syssam/sqlkit/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_Dialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dialect.MySQL, OpenDB(dialect.MySQL, db).Dialect())
	// Instrumented driver names resolve to their base dialect.
	assert.Equal(t, dialect.Postgres, OpenDB("postgres+debug", db).Dialect())
	assert.Equal(t, "unknown", OpenDB("unknown", db).Dialect())
}

func TestDriver_Query(t *testing.T) {
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mk.ExpectQuery("SELECT name FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a8m").AddRow("nati"))

	drv := OpenDB(dialect.MySQL, db)
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT name FROM users", []any{}, rows))
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"a8m", "nati"}, names)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestDriver_QueryArgsValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.MySQL, db)
	err = drv.Query(context.Background(), "SELECT 1", "not-a-slice", &Rows{})
	assert.ErrorContains(t, err, "expect []any for args")
	err = drv.Query(context.Background(), "SELECT 1", []any{}, "not-rows")
	assert.ErrorContains(t, err, "expect *sql.Rows")
}

func TestDriver_Exec(t *testing.T) {
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mk.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 3))

	drv := OpenDB(dialect.MySQL, db)
	var res Result
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM users", []any{}, &res))
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 3, affected)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestDriver_Tx(t *testing.T) {
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mk.ExpectBegin()
	mk.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mk.ExpectCommit()

	drv := OpenDB(dialect.MySQL, db)
	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO users", []any{}, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mk.ExpectationsWereMet())
}
