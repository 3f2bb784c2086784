package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abcip/internal/logger"
)

func TestEnsureMigrated_AppliesPendingSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logger.New(&buf, time.UTC)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

	// everything but the first step was applied by a previous run
	applied := sqlmock.NewRows([]string{"name"})
	for _, s := range steps[1:] {
		applied.AddRow(s.Name)
	}
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(applied)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE EXTENSION").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(steps[0].Name).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = EnsureMigrated(context.Background(), db, log, "localhost")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"event":"db_migration_success"`)
	assert.Contains(t, buf.String(), `"migration_step":"create_extension_uuid_ossp"`)
}

func TestEnsureMigrated_SkipsWhenUpToDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logger.New(&buf, time.UTC)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	applied := sqlmock.NewRows([]string{"name"})
	for _, s := range steps {
		applied.AddRow(s.Name)
	}
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(applied)

	err = EnsureMigrated(context.Background(), db, log, "localhost")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"event":"db_migration_skip"`)
}

func TestEnsureMigrated_StepFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE EXTENSION").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = EnsureMigrated(context.Background(), db, logger.Discard(), "localhost")
	assert.ErrorContains(t, err, "migration step create_extension_uuid_ossp failed: permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSteps_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range steps {
		assert.False(t, seen[s.Name], "duplicate step %s", s.Name)
		seen[s.Name] = true
	}
}
