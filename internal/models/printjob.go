package models

// Print job status values. Lifecycle: pending -> printing -> printed
// (terminal), or pending|printing -> failed -> pending (via Retry).
const (
	PrintStatusPending  = "pending"
	PrintStatusPrinting = "printing"
	PrintStatusPrinted  = "printed"
	PrintStatusFailed   = "failed"
)

// PrintJob is one physical print request (kitchen ticket, customer
// receipt) queued for a local printer driver.
//
// OrderID is a soft back-reference: orders and print jobs have
// independent lifecycles, so orphaned references are tolerated. PrintData
// is opaque to the queue. There is deliberately no idempotency key here;
// a reprint is a legitimate duplicate.
type PrintJob struct {
	ID           string `db:"id" json:"id"`
	OrderID      string `db:"order_id" json:"order_id,omitempty"`
	JobType      string `db:"job_type" json:"job_type"`
	PrintData    string `db:"print_data" json:"print_data"`
	Status       string `db:"status" json:"status"`
	ErrorMessage string `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int    `db:"retry_count" json:"retry_count"`
	PrinterName  string `db:"printer_name" json:"printer_name,omitempty"`
	CreatedAt    int64  `db:"created_at" json:"created_at"`
	PrintedAt    int64  `db:"printed_at" json:"printed_at,omitempty"`
}

// TableName returns the table name for PrintJob.
func (PrintJob) TableName() string {
	return "print_queue"
}
