package queue

import (
	"database/sql"

	"github.com/chiwenlan/tablepos/internal/db"
	apperrors "github.com/chiwenlan/tablepos/internal/errors"
	"github.com/chiwenlan/tablepos/internal/models"
)

// PrintQueue provides CRUD and state-transition operations over the
// print_queue table. Print dispatch enqueues and drains; unlike orders
// there is no idempotency de-duplication, since a reprint is a valid
// duplicate.
type PrintQueue struct {
	db *db.DB
}

// NewPrintQueue creates a PrintQueue over the store.
func NewPrintQueue(database *db.DB) *PrintQueue {
	return &PrintQueue{db: database}
}

const printJobColumns = `id, order_id, job_type, print_data, status,
	error_message, retry_count, printer_name, created_at, printed_at`

func scanPrintJob(row rowScanner) (*models.PrintJob, error) {
	var j models.PrintJob
	var orderID, errorMessage, printerName sql.NullString
	var printedAt sql.NullInt64
	err := row.Scan(
		&j.ID, &orderID, &j.JobType, &j.PrintData, &j.Status,
		&errorMessage, &j.RetryCount, &printerName, &j.CreatedAt, &printedAt,
	)
	if err != nil {
		return nil, err
	}
	j.OrderID = orderID.String
	j.ErrorMessage = errorMessage.String
	j.PrinterName = printerName.String
	j.PrintedAt = printedAt.Int64
	return &j, nil
}

// Enqueue persists a print job with status pending. Always inserts a new
// row; order_id and printer_name are optional.
func (q *PrintQueue) Enqueue(j *models.PrintJob) (*models.PrintJob, error) {
	if j == nil {
		return nil, apperrors.New(apperrors.ErrInvalid, "print job is required")
	}
	switch {
	case j.ID == "":
		return nil, apperrors.New(apperrors.ErrInvalid, "print job id is required")
	case j.JobType == "":
		return nil, apperrors.New(apperrors.ErrInvalid, "print job job_type is required")
	case j.PrintData == "":
		return nil, apperrors.New(apperrors.ErrInvalid, "print job print_data is required")
	}

	ts := now()
	stored := *j
	stored.Status = models.PrintStatusPending
	stored.ErrorMessage = ""
	stored.RetryCount = 0
	stored.CreatedAt = ts
	stored.PrintedAt = 0

	query := `
	INSERT INTO print_queue (id, order_id, job_type, print_data, status,
		error_message, retry_count, printer_name, created_at, printed_at)
	VALUES (?, ?, ?, ?, ?, NULL, 0, ?, ?, NULL)
	`
	if _, err := q.db.Exec(query, stored.ID, nullableString(stored.OrderID),
		stored.JobType, stored.PrintData, stored.Status,
		nullableString(stored.PrinterName), stored.CreatedAt); err != nil {
		return nil, apperrors.Classify("failed to enqueue print job", err)
	}

	return &stored, nil
}

// Get returns the print job with the given id, or nil when unknown.
func (q *PrintQueue) Get(id string) (*models.PrintJob, error) {
	row := q.db.QueryRow("SELECT "+printJobColumns+" FROM print_queue WHERE id = ?", id)
	j, err := scanPrintJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Classify("failed to get print job", err)
	}
	return j, nil
}

// List returns print jobs oldest-first, optionally filtered to a single
// status.
func (q *PrintQueue) List(status string) ([]*models.PrintJob, error) {
	query := "SELECT " + printJobColumns + " FROM print_queue"
	var args []interface{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at ASC, rowid ASC"

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.Classify("failed to list print jobs", err)
	}
	defer rows.Close()

	var jobs []*models.PrintJob
	for rows.Next() {
		j, err := scanPrintJob(rows)
		if err != nil {
			return nil, apperrors.Classify("failed to scan print job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Classify("failed to list print jobs", err)
	}
	return jobs, nil
}

// GetPending is the print dispatcher's primary read path: all pending
// jobs, oldest first.
func (q *PrintQueue) GetPending() ([]*models.PrintJob, error) {
	return q.List(models.PrintStatusPending)
}

// MarkPrinting transitions a job to printing. Unknown ids are a no-op.
func (q *PrintQueue) MarkPrinting(id string) error {
	_, err := q.db.Exec(
		"UPDATE print_queue SET status = ? WHERE id = ?",
		models.PrintStatusPrinting, id,
	)
	if err != nil {
		return apperrors.Classify("failed to mark print job printing", err)
	}
	return nil
}

// MarkPrinted transitions a job to printed and records the print time.
// Unknown ids are a no-op.
func (q *PrintQueue) MarkPrinted(id string) error {
	_, err := q.db.Exec(
		"UPDATE print_queue SET status = ?, printed_at = ? WHERE id = ?",
		models.PrintStatusPrinted, now(), id,
	)
	if err != nil {
		return apperrors.Classify("failed to mark print job printed", err)
	}
	return nil
}

// MarkFailed transitions a job to failed, recording the failure and
// incrementing retry_count. Unknown ids are a no-op.
func (q *PrintQueue) MarkFailed(id, errMsg string) error {
	_, err := q.db.Exec(
		`UPDATE print_queue SET status = ?, error_message = ?,
			retry_count = retry_count + 1 WHERE id = ?`,
		models.PrintStatusFailed, errMsg, id,
	)
	if err != nil {
		return apperrors.Classify("failed to mark print job failed", err)
	}
	return nil
}

// Retry resets a failed job to pending and clears error_message.
// retry_count is deliberately left alone so failure history survives the
// retry; only MarkFailed increments it. Unknown ids and jobs that are
// not failed are a no-op.
func (q *PrintQueue) Retry(id string) error {
	_, err := q.db.Exec(
		"UPDATE print_queue SET status = ?, error_message = NULL WHERE id = ? AND status = ?",
		models.PrintStatusPending, id, models.PrintStatusFailed,
	)
	if err != nil {
		return apperrors.Classify("failed to retry print job", err)
	}
	return nil
}

// GetStats returns per-status counts plus the age anchor of the oldest
// pending job.
func (q *PrintQueue) GetStats() (*Stats, error) {
	stats := &Stats{ByStatus: map[string]int{}}

	rows, err := q.db.Query("SELECT status, COUNT(*) FROM print_queue GROUP BY status")
	if err != nil {
		return nil, apperrors.Classify("failed to read print stats", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.Classify("failed to scan print stats", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Classify("failed to read print stats", err)
	}

	var oldest sql.NullInt64
	if err := q.db.QueryRow(
		"SELECT MIN(created_at) FROM print_queue WHERE status = ?",
		models.PrintStatusPending,
	).Scan(&oldest); err != nil {
		return nil, apperrors.Classify("failed to read oldest pending print job", err)
	}
	stats.OldestPendingAt = oldest.Int64

	return stats, nil
}

// Cleanup deletes printed jobs whose printed_at is older than daysOld
// days and returns how many rows were removed.
func (q *PrintQueue) Cleanup(daysOld int) (int64, error) {
	res, err := q.db.Exec(
		"DELETE FROM print_queue WHERE status = ? AND printed_at IS NOT NULL AND printed_at < ?",
		models.PrintStatusPrinted, retentionCutoff(daysOld),
	)
	if err != nil {
		return 0, apperrors.Classify("failed to clean up print jobs", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Classify("failed to count cleaned up print jobs", err)
	}
	return deleted, nil
}

// Delete removes a print job unconditionally. Returns whether a row
// existed.
func (q *PrintQueue) Delete(id string) (bool, error) {
	res, err := q.db.Exec("DELETE FROM print_queue WHERE id = ?", id)
	if err != nil {
		return false, apperrors.Classify("failed to delete print job", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.Classify("failed to delete print job", err)
	}
	return deleted > 0, nil
}
