// Package db provides the embedded store underneath the order and print
// queues: a single SQLite file opened with WAL and a bounded lock wait.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/chiwenlan/tablepos/internal/errors"
)

// FileName is the store's on-disk name inside the data directory.
const FileName = "tablepos.db"

// DefaultBusyTimeout bounds how long a writer waits on a locked store
// before failing with a busy error.
const DefaultBusyTimeout = 5 * time.Second

// Options configures how the store is opened.
type Options struct {
	// BusyTimeout overrides DefaultBusyTimeout when positive.
	BusyTimeout time.Duration
}

// DB wraps the sql.DB with queue-specific configuration.
type DB struct {
	*sql.DB
	path string
}

// Path returns the store's file path.
func (db *DB) Path() string {
	return db.path
}

// Open opens the SQLite store under dataDir, creating the directory if
// needed. The store is configured with:
// - WAL mode for crash resilience and concurrent reads
// - a bounded busy wait for lock contention
// - synchronous=NORMAL, the relaxed-but-durable commit mode for desktop
//   workloads (committed data survives an ungraceful exit once the WAL
//   checkpoint has occurred)
// - foreign key constraints enabled
func Open(dataDir string, opts Options) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, FileName)

	// modernc.org/sqlite is pure Go, no CGO
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; a single pooled connection also
	// keeps the pragmas below in force for every statement.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = DefaultBusyTimeout
	}

	var journalMode string
	if err := conn.QueryRow("PRAGMA journal_mode=WAL;").Scan(&journalMode); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if !strings.EqualFold(journalMode, "wal") {
		conn.Close()
		return nil, fmt.Errorf("journal_mode=%q, want wal", journalMode)
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d;", busy.Milliseconds()),
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &DB{DB: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Process-wide shared handle. Repositories receive the *DB explicitly at
// construction; Init/Handle/Shutdown exist so the host process opens the
// store exactly once and tests can still build independent instances
// through Open.
var (
	sharedMu sync.Mutex
	shared   *DB
)

// Init opens the process-wide store, running migrations to the current
// schema. Repeated calls return the already-open handle.
func Init(dataDir string, opts Options) (*DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		return shared, nil
	}

	database, err := Open(dataDir, opts)
	if err != nil {
		return nil, err
	}

	if err := NewMigrator(database).Up(); err != nil {
		database.Close()
		return nil, err
	}

	shared = database
	return shared, nil
}

// Handle returns the process-wide store handle. Calling it before Init
// is a startup-ordering bug, reported as NOT_INITIALIZED.
func Handle() (*DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil, apperrors.New(apperrors.ErrNotInitialized, "store not initialized, call db.Init first")
	}
	return shared, nil
}

// Shutdown closes the process-wide handle and clears it so a later Init
// reopens cleanly. Safe to call when nothing is open.
func Shutdown() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}
	err := shared.Close()
	shared = nil
	return err
}
