package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestApplyExecutesAllMigrations(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	for range migrations {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	db := sqlx.NewDb(mockDB, "sqlmock")
	require.NoError(t, Apply(db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStopsOnFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
		WillReturnError(assertErr{})

	db := sqlx.NewDb(mockDB, "sqlmock")
	err = Apply(db)
	require.Error(t, err)
	require.ErrorContains(t, err, "migration 0")
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
