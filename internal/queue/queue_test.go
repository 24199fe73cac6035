package queue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiwenlan/tablepos/internal/db"
)

// newTestStore opens an isolated, fully migrated store under a temp dir.
func newTestStore(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.NewMigrator(database).Up())
	return database
}

// pinClock fixes the queue clock for the duration of the test and
// returns a setter for moving it.
func pinClock(t *testing.T, unix int64) func(int64) {
	t.Helper()

	restore := now
	t.Cleanup(func() { now = restore })

	current := unix
	now = func() int64 { return current }
	return func(unix int64) { current = unix }
}
