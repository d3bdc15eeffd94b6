package db

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCacheEntry_Found(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM cache_entries WHERE key =")).
		WithArgs("eval:abc123").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"overall_score":70}`)))

	value, err := database.GetCacheEntry(context.Background(), "eval:abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_score":70}`, string(value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCacheEntry_Absent(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM cache_entries WHERE key =")).
		WithArgs("eval:missing").
		WillReturnError(pgx.ErrNoRows)

	value, err := database.GetCacheEntry(context.Background(), "eval:missing")
	assert.NoError(t, err)
	assert.Nil(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCacheEntry(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_entries")).
		WithArgs("qgen:def456", []byte(`{"questions":[]}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := database.UpsertCacheEntry(context.Background(), "qgen:def456", []byte(`{"questions":[]}`))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	database, mock := newMockDB(t)

	for range schemaStatements {
		mock.ExpectExec("CREATE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}

	err := database.EnsureSchema(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
