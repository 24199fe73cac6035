// Package queue provides the durable order and print queues the POS host
// drains once connectivity returns. Rows live in the embedded store; all
// operations are synchronous single round trips.
package queue

import (
	"database/sql"
	"time"
)

// Stats is the per-status snapshot exposed to operator dashboards.
// OldestPendingAt is the created_at of the oldest pending row, 0 when
// nothing is pending.
type Stats struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"by_status"`
	OldestPendingAt int64          `json:"oldest_pending_at,omitempty"`
}

// rowScanner abstracts over *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// now returns unix seconds. Indirection for tests that pin the clock.
var now = func() int64 {
	return time.Now().Unix()
}

// retentionCutoff converts a days-old retention window to a unix-seconds
// cutoff.
func retentionCutoff(daysOld int) int64 {
	return now() - int64(daysOld)*int64(24*time.Hour/time.Second)
}

// nullableString maps the empty string to SQL NULL on write.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
