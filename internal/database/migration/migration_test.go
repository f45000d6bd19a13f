package migration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dognft/internal/config"
	"dognft/internal/logger"
)

func quietLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })
	return &buf
}

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when sentinel table exists", func(t *testing.T) {
		buf := quietLogs(t)
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT to_regclass\('public.nfts'\) IS NOT NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = EnsureMigrated(ctx, db, config.DriverPostgres, time.UTC, "db")

		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "db_migration_skip")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs every postgres step in order", func(t *testing.T) {
		buf := quietLogs(t)
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT to_regclass`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS nfts`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_nfts_name`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_nfts_wallet_address`).WillReturnResult(sqlmock.NewResult(0, 0))

		err = EnsureMigrated(ctx, db, config.DriverPostgres, time.UTC, "db")

		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "db_migration_success")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sqlite sentinel", func(t *testing.T) {
		quietLogs(t)
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM sqlite_master`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.NoError(t, EnsureMigrated(ctx, db, config.DriverSQLite, time.UTC, ""))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step failure stops migration", func(t *testing.T) {
		buf := quietLogs(t)
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT to_regclass`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS nfts`).WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, config.DriverPostgres, time.UTC, "db")

		assert.ErrorContains(t, err, "migration step create_table_nfts failed")
		assert.Contains(t, buf.String(), `"level":"error"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel failure", func(t *testing.T) {
		quietLogs(t)
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT to_regclass`).WillReturnError(errors.New("conn refused"))

		err = EnsureMigrated(ctx, db, config.DriverPostgres, time.UTC, "db")

		assert.ErrorContains(t, err, "failed to check sentinel table")
	})

	t.Run("unknown driver", func(t *testing.T) {
		err := EnsureMigrated(ctx, nil, "mysql", time.UTC, "")
		assert.Error(t, err)
	})
}
