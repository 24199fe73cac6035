package queue

import (
	"database/sql"

	"github.com/chiwenlan/tablepos/internal/db"
	apperrors "github.com/chiwenlan/tablepos/internal/errors"
	"github.com/chiwenlan/tablepos/internal/models"
)

// OrderQueue provides CRUD and state-transition operations over the
// offline_orders table. The order-entry UI enqueues; the external sync
// worker drains pending rows oldest-first and drives the transitions.
type OrderQueue struct {
	db *db.DB
}

// NewOrderQueue creates an OrderQueue over the store.
func NewOrderQueue(database *db.DB) *OrderQueue {
	return &OrderQueue{db: database}
}

const orderColumns = `id, idempotency_key, local_id, server_id, order_data,
	status, error_message, retry_count, created_at, updated_at, synced_at`

func scanOrder(row rowScanner) (*models.OfflineOrder, error) {
	var o models.OfflineOrder
	var serverID, errorMessage sql.NullString
	var syncedAt sql.NullInt64
	err := row.Scan(
		&o.ID, &o.IdempotencyKey, &o.LocalID, &serverID, &o.OrderData,
		&o.Status, &errorMessage, &o.RetryCount, &o.CreatedAt, &o.UpdatedAt, &syncedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ServerID = serverID.String
	o.ErrorMessage = errorMessage.String
	o.SyncedAt = syncedAt.Int64
	return &o, nil
}

// Enqueue persists an order with status pending. If a row with the same
// idempotency key already exists, that row's order_data and updated_at
// are updated instead of inserting a duplicate, so the calling UI may
// retry after a timeout without knowing whether the first attempt stuck.
//
// The returned row is the on-disk one and is authoritative: on an
// idempotency-key match its id may differ from o.ID.
func (q *OrderQueue) Enqueue(o *models.OfflineOrder) (*models.OfflineOrder, error) {
	if o == nil {
		return nil, apperrors.New(apperrors.ErrInvalid, "order is required")
	}
	switch {
	case o.ID == "":
		return nil, apperrors.New(apperrors.ErrInvalid, "order id is required")
	case o.IdempotencyKey == "":
		return nil, apperrors.New(apperrors.ErrInvalid, "order idempotency_key is required")
	case o.LocalID == "":
		return nil, apperrors.New(apperrors.ErrInvalid, "order local_id is required")
	case o.OrderData == "":
		return nil, apperrors.New(apperrors.ErrInvalid, "order order_data is required")
	}

	ts := now()

	tx, err := q.db.Begin()
	if err != nil {
		return nil, apperrors.Classify("failed to begin enqueue", err)
	}
	defer tx.Rollback()

	// Atomic upsert: the conflict check and the update are one
	// statement, so two racing enqueues with the same key cannot both
	// insert.
	upsert := `
	INSERT INTO offline_orders (id, idempotency_key, local_id, server_id, order_data,
		status, error_message, retry_count, created_at, updated_at, synced_at)
	VALUES (?, ?, ?, NULL, ?, ?, NULL, 0, ?, ?, NULL)
	ON CONFLICT(idempotency_key) DO UPDATE SET
		order_data = excluded.order_data,
		updated_at = excluded.updated_at
	`
	if _, err := tx.Exec(upsert, o.ID, o.IdempotencyKey, o.LocalID, o.OrderData,
		models.OrderStatusPending, ts, ts); err != nil {
		return nil, apperrors.Classify("failed to enqueue order", err)
	}

	row := tx.QueryRow(
		"SELECT "+orderColumns+" FROM offline_orders WHERE idempotency_key = ?",
		o.IdempotencyKey,
	)
	stored, err := scanOrder(row)
	if err != nil {
		return nil, apperrors.Classify("failed to read back enqueued order", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Classify("failed to commit enqueue", err)
	}
	return stored, nil
}

// Get returns the order with the given id, or nil when unknown.
func (q *OrderQueue) Get(id string) (*models.OfflineOrder, error) {
	row := q.db.QueryRow("SELECT "+orderColumns+" FROM offline_orders WHERE id = ?", id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Classify("failed to get order", err)
	}
	return o, nil
}

// List returns orders oldest-first, the FIFO contract the sync worker
// drains on. status filters to a single status when non-empty. The rowid
// tiebreak keeps insertion order for rows created in the same second.
func (q *OrderQueue) List(status string) ([]*models.OfflineOrder, error) {
	query := "SELECT " + orderColumns + " FROM offline_orders"
	var args []interface{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at ASC, rowid ASC"

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.Classify("failed to list orders", err)
	}
	defer rows.Close()

	var orders []*models.OfflineOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.Classify("failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Classify("failed to list orders", err)
	}
	return orders, nil
}

// MarkSyncing transitions an order to syncing. Unknown ids are a no-op;
// the caller owns reconciliation.
func (q *OrderQueue) MarkSyncing(id string) error {
	_, err := q.db.Exec(
		"UPDATE offline_orders SET status = ?, updated_at = ? WHERE id = ?",
		models.OrderStatusSyncing, now(), id,
	)
	if err != nil {
		return apperrors.Classify("failed to mark order syncing", err)
	}
	return nil
}

// MarkSynced transitions an order to synced, recording the id the remote
// backend assigned and the sync time. Unknown ids are a no-op.
func (q *OrderQueue) MarkSynced(id, serverID string) error {
	if serverID == "" {
		return apperrors.New(apperrors.ErrInvalid, "server id is required to mark an order synced")
	}
	ts := now()
	_, err := q.db.Exec(
		"UPDATE offline_orders SET status = ?, server_id = ?, synced_at = ?, updated_at = ? WHERE id = ?",
		models.OrderStatusSynced, serverID, ts, ts, id,
	)
	if err != nil {
		return apperrors.Classify("failed to mark order synced", err)
	}
	return nil
}

// MarkFailed transitions an order to failed, recording the failure and
// incrementing retry_count. Unknown ids are a no-op.
func (q *OrderQueue) MarkFailed(id, errMsg string) error {
	_, err := q.db.Exec(
		`UPDATE offline_orders SET status = ?, error_message = ?,
			retry_count = retry_count + 1, updated_at = ? WHERE id = ?`,
		models.OrderStatusFailed, errMsg, now(), id,
	)
	if err != nil {
		return apperrors.Classify("failed to mark order failed", err)
	}
	return nil
}

// GetStats returns per-status counts plus the age anchor of the oldest
// pending order.
func (q *OrderQueue) GetStats() (*Stats, error) {
	stats := &Stats{ByStatus: map[string]int{}}

	rows, err := q.db.Query("SELECT status, COUNT(*) FROM offline_orders GROUP BY status")
	if err != nil {
		return nil, apperrors.Classify("failed to read order stats", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.Classify("failed to scan order stats", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Classify("failed to read order stats", err)
	}

	var oldest sql.NullInt64
	if err := q.db.QueryRow(
		"SELECT MIN(created_at) FROM offline_orders WHERE status = ?",
		models.OrderStatusPending,
	).Scan(&oldest); err != nil {
		return nil, apperrors.Classify("failed to read oldest pending order", err)
	}
	stats.OldestPendingAt = oldest.Int64

	return stats, nil
}

// Cleanup deletes synced orders whose synced_at is older than daysOld
// days and returns how many rows were removed. Non-synced rows and
// synced rows newer than the cutoff are untouched.
func (q *OrderQueue) Cleanup(daysOld int) (int64, error) {
	res, err := q.db.Exec(
		"DELETE FROM offline_orders WHERE status = ? AND synced_at IS NOT NULL AND synced_at < ?",
		models.OrderStatusSynced, retentionCutoff(daysOld),
	)
	if err != nil {
		return 0, apperrors.Classify("failed to clean up orders", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Classify("failed to count cleaned up orders", err)
	}
	return deleted, nil
}

// Delete removes an order unconditionally. Returns whether a row
// existed.
func (q *OrderQueue) Delete(id string) (bool, error) {
	res, err := q.db.Exec("DELETE FROM offline_orders WHERE id = ?", id)
	if err != nil {
		return false, apperrors.Classify("failed to delete order", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.Classify("failed to delete order", err)
	}
	return deleted > 0, nil
}
