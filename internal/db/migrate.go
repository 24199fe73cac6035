// Package db schema migration management.
package db

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/chiwenlan/tablepos/internal/errors"
)

// migration is one schema step. Migrations are compiled in: the store
// belongs to a desktop host process and ships with its binary.
type migration struct {
	Version     int
	Description string
	SQL         string
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS offline_orders (
  id              TEXT PRIMARY KEY,
  idempotency_key TEXT UNIQUE NOT NULL,
  local_id        TEXT NOT NULL,
  server_id       TEXT,
  order_data      TEXT NOT NULL,
  status          TEXT DEFAULT 'pending',
  error_message   TEXT,
  retry_count     INTEGER DEFAULT 0,
  created_at      TIMESTAMP,
  updated_at      TIMESTAMP,
  synced_at       TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_offline_orders_status
  ON offline_orders(status);
CREATE INDEX IF NOT EXISTS idx_offline_orders_idempotency_key
  ON offline_orders(idempotency_key);

CREATE TABLE IF NOT EXISTS print_queue (
  id            TEXT PRIMARY KEY,
  order_id      TEXT,
  job_type      TEXT NOT NULL,
  print_data    TEXT NOT NULL,
  status        TEXT DEFAULT 'pending',
  error_message TEXT,
  retry_count   INTEGER DEFAULT 0,
  printer_name  TEXT,
  created_at    TIMESTAMP,
  printed_at    TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_print_queue_status
  ON print_queue(status);
CREATE INDEX IF NOT EXISTS idx_print_queue_order_id
  ON print_queue(order_id);
`

// migrations, ascending by version.
var migrations = []migration{
	{Version: 1, Description: "order and print queues", SQL: schemaV1},
}

// Migrator applies schema migrations exactly once, in order. A failed
// step aborts: the process must not run against a partially-migrated
// schema.
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new Migrator over the store.
func NewMigrator(database *DB) *Migrator {
	return &Migrator{db: database.DB}
}

// Initialize creates the schema_version table if it doesn't exist.
func (m *Migrator) Initialize() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version    INTEGER PRIMARY KEY,
		applied_at TIMESTAMP
	);`
	_, err := m.db.Exec(query)
	return err
}

// CurrentVersion returns the highest applied schema version, 0 for a
// fresh store.
func (m *Migrator) CurrentVersion() (int, error) {
	var version int
	err := m.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	return version, err
}

// AppliedVersions returns every recorded version in ascending order.
func (m *Migrator) AppliedVersions() ([]int, error) {
	rows, err := m.db.Query("SELECT version FROM schema_version ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Up applies all pending migrations. Re-running against an already
// migrated store is a no-op.
func (m *Migrator) Up() error {
	if err := m.Initialize(); err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, "failed to initialize schema_version", err)
	}

	current, err := m.CurrentVersion()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, "failed to read schema version", err)
	}

	for _, mig := range migrations {
		if mig.Version <= current {
			continue
		}
		if err := m.apply(mig); err != nil {
			return apperrors.Wrap(apperrors.ErrMigration,
				fmt.Sprintf("failed to apply migration %d (%s)", mig.Version, mig.Description), err)
		}
	}

	return nil
}

// apply runs a single migration and records its version in the same
// transaction.
func (m *Migrator) apply(mig migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(mig.SQL); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_version (version, applied_at) VALUES (?, ?)",
		mig.Version, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
