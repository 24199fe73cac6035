// Package models provides data model definitions for the durable queues.
package models

// Order status values. Lifecycle: pending -> syncing -> synced (terminal),
// or pending|syncing -> failed. Failed rows re-enter the cycle only
// through external retry orchestration.
const (
	OrderStatusPending = "pending"
	OrderStatusSyncing = "syncing"
	OrderStatusSynced  = "synced"
	OrderStatusFailed  = "failed"
)

// OfflineOrder is one order captured while detached from the remote
// backend, queued for later submission by the sync worker.
//
// OrderData is the full serialized order payload. The queue never parses
// it; its schema belongs to the order-entry collaborator.
type OfflineOrder struct {
	ID             string `db:"id" json:"id"`
	IdempotencyKey string `db:"idempotency_key" json:"idempotency_key"`
	LocalID        string `db:"local_id" json:"local_id"`
	ServerID       string `db:"server_id" json:"server_id,omitempty"`
	OrderData      string `db:"order_data" json:"order_data"`
	Status         string `db:"status" json:"status"`
	ErrorMessage   string `db:"error_message" json:"error_message,omitempty"`
	RetryCount     int    `db:"retry_count" json:"retry_count"`
	CreatedAt      int64  `db:"created_at" json:"created_at"`
	UpdatedAt      int64  `db:"updated_at" json:"updated_at"`
	SyncedAt       int64  `db:"synced_at" json:"synced_at,omitempty"`
}

// TableName returns the table name for OfflineOrder.
func (OfflineOrder) TableName() string {
	return "offline_orders"
}
