package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigratorUp(t *testing.T) {
	database := openTestStore(t)
	m := NewMigrator(database)

	require.NoError(t, m.Up())

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, version)

	// The queues and their indexes exist.
	for _, object := range []string{
		"offline_orders", "print_queue",
		"idx_offline_orders_status", "idx_offline_orders_idempotency_key",
		"idx_print_queue_status", "idx_print_queue_order_id",
	} {
		var name string
		err := database.QueryRow(
			"SELECT name FROM sqlite_master WHERE name = ?", object,
		).Scan(&name)
		assert.NoError(t, err, "schema object %s should exist", object)
	}
}

func TestMigratorIdempotent(t *testing.T) {
	database := openTestStore(t)
	m := NewMigrator(database)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up())

	versions, err := m.AppliedVersions()
	require.NoError(t, err)
	require.Len(t, versions, len(migrations))
	for i, mig := range migrations {
		assert.Equal(t, mig.Version, versions[i])
	}

	// No duplicate version records.
	var rows int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&rows))
	assert.Equal(t, len(migrations), rows)
}

func TestMigratorFreshStoreVersionZero(t *testing.T) {
	database := openTestStore(t)
	m := NewMigrator(database)

	require.NoError(t, m.Initialize())
	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestMigratorRecordsAppliedAt(t *testing.T) {
	database := openTestStore(t)
	m := NewMigrator(database)
	require.NoError(t, m.Up())

	var appliedAt int64
	require.NoError(t, database.QueryRow(
		"SELECT applied_at FROM schema_version WHERE version = 1",
	).Scan(&appliedAt))
	assert.NotZero(t, appliedAt)
}
