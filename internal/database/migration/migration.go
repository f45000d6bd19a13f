package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dognft/internal/config"
	"dognft/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

type dialect struct {
	sentinel string
	steps    []migrationStep
}

var dialects = map[string]dialect{
	config.DriverPostgres: {
		sentinel: "SELECT to_regclass('public.nfts') IS NOT NULL",
		steps: []migrationStep{
			{
				Name: "create_table_nfts",
				SQL: `CREATE TABLE IF NOT EXISTS nfts (
  id               TEXT        PRIMARY KEY,
  name             TEXT        NOT NULL,
  description      TEXT,
  dog_key          TEXT        NOT NULL,
  wallet_address   TEXT        NOT NULL,
  attributes       JSONB,
  status           TEXT        NOT NULL DEFAULT 'generating' CHECK (status IN ('generating', 'ready')),
  progress         INTEGER     NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
  image_url        TEXT,
  contract_address TEXT,
  token_id         TEXT,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  minted_at        TIMESTAMPTZ,
  CONSTRAINT uq_nfts_dog_key UNIQUE (dog_key)
);`,
			},
			{
				Name: "create_index_nfts_name",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_nfts_name ON nfts (name);`,
			},
			{
				Name: "create_index_nfts_wallet_address",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_nfts_wallet_address ON nfts (wallet_address, created_at);`,
			},
		},
	},
	config.DriverSQLite: {
		sentinel: "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'nfts')",
		steps: []migrationStep{
			{
				Name: "create_table_nfts",
				SQL: `CREATE TABLE IF NOT EXISTS nfts (
  id               TEXT     PRIMARY KEY,
  name             TEXT     NOT NULL,
  description      TEXT,
  dog_key          TEXT     NOT NULL,
  wallet_address   TEXT     NOT NULL,
  attributes       TEXT,
  status           TEXT     NOT NULL DEFAULT 'generating' CHECK (status IN ('generating', 'ready')),
  progress         INTEGER  NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
  image_url        TEXT,
  contract_address TEXT,
  token_id         TEXT,
  created_at       DATETIME NOT NULL,
  minted_at        DATETIME,
  CONSTRAINT uq_nfts_dog_key UNIQUE (dog_key)
);`,
			},
			{
				Name: "create_index_nfts_name",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_nfts_name ON nfts (name);`,
			},
			{
				Name: "create_index_nfts_wallet_address",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_nfts_wallet_address ON nfts (wallet_address);`,
			},
		},
	},
}

// EnsureMigrated checks if the 'nfts' table exists and runs migrations if it doesn't.
// driver selects the SQL dialect (config.DriverPostgres or config.DriverSQLite).
func EnsureMigrated(ctx context.Context, db *sql.DB, driver string, loc *time.Location, dbHost string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	start := time.Now()

	logger.JSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_driver": driver,
		"db_host":   dbHost,
	})

	var exists bool
	err := db.QueryRowContext(ctx, d.sentinel).Scan(&exists)
	if err != nil {
		logger.JSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.JSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logger.JSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range d.steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.JSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.JSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logger.JSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
