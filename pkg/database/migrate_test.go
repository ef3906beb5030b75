package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createReviews = "CREATE TABLE reviews (id BIGSERIAL PRIMARY KEY)"

func migrationFS() fstest.MapFS {
	return fstest.MapFS{
		"000002_index.up.sql":     {Data: []byte("CREATE INDEX idx ON reviews (product_id)")},
		"000001_reviews.up.sql":   {Data: []byte(createReviews)},
		"000001_reviews.down.sql": {Data: []byte("DROP TABLE reviews")},
		"README.md":               {Data: []byte("not a migration")},
	}
}

func TestMigrationFiles_SortedUpOnly(t *testing.T) {
	names, err := migrationFiles(migrationFS())
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_reviews.up.sql", "000002_index.up.sql"}, names)
}

func TestRunMigrations_AppliesPendingAndSkipsApplied(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(createMigrationsTableSQL)).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery(regexp.QuoteMeta(migrationAppliedSQL)).
		WithArgs("000001_reviews.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(createReviews)).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta(recordMigrationSQL)).
		WithArgs("000001_reviews.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(migrationAppliedSQL)).
		WithArgs("000002_index.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err = RunMigrations(context.Background(), mock, migrationFS(), nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SQLErrorRollsBackWithoutRetry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	fsys := fstest.MapFS{"000001_reviews.up.sql": {Data: []byte(createReviews)}}

	mock.ExpectExec(regexp.QuoteMeta(createMigrationsTableSQL)).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta(migrationAppliedSQL)).
		WithArgs("000001_reviews.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(createReviews)).
		WillReturnError(errors.New("syntax error at or near \"reviews\""))
	mock.ExpectRollback()

	err = RunMigrations(context.Background(), mock, fsys, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute migration 000001_reviews.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_TrackingTableFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(createMigrationsTableSQL)).
		WillReturnError(errors.New("permission denied for schema public"))

	err = RunMigrations(context.Background(), mock, migrationFS(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create schema_migrations table")
	assert.NoError(t, mock.ExpectationsWereMet())
}
