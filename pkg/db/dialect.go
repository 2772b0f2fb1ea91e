// pkg/db/dialect.go
package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// dataSourceName builds the driver specific connection string.
func dataSourceName(cfg Config) (string, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode), nil
	case DriverSQLite:
		if cfg.Path == "" {
			return "", fmt.Errorf("sqlite3 driver requires a database path")
		}
		if cfg.Path == ":memory:" {
			return cfg.Path, nil
		}
		return cfg.Path + "?_busy_timeout=5000", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

var schemas = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS "transaction" (
			id SERIAL PRIMARY KEY,
			date DATE NOT NULL,
			transaction_details VARCHAR(255) NOT NULL,
			amount NUMERIC(10, 2) NOT NULL,
			remarks TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transaction_date_id ON "transaction" (date DESC, id DESC)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS "transaction" (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATE NOT NULL,
			transaction_details VARCHAR(255) NOT NULL,
			amount NUMERIC(10, 2) NOT NULL,
			remarks TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transaction_date_id ON "transaction" (date DESC, id DESC)`,
	},
}

// EnsureSchema creates the transaction table and its ordering index when missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for database driver %q", db.DriverName())
	}

	tx, err := BeginTx(ctx, db)
	if err != nil {
		return fmt.Errorf("schema: failed to begin transaction: %w", err)
	}
	defer RollbackTx(tx)

	exec := tx.(*sqlx.Tx)
	for _, stmt := range statements {
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: failed to execute statement: %w", err)
		}
	}

	if err := CommitTx(tx); err != nil {
		return fmt.Errorf("schema: failed to commit: %w", err)
	}
	return nil
}
