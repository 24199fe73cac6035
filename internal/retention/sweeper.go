// Package retention removes terminal-state queue rows past their
// retention window.
package retention

import (
	"errors"

	"github.com/chiwenlan/tablepos/internal/logging"
	"github.com/chiwenlan/tablepos/internal/queue"
)

// Default retention windows in days.
const (
	DefaultOrderRetentionDays = 7
	DefaultPrintRetentionDays = 3
)

// Sweeper deletes synced orders and printed jobs older than their
// windows. It owns no goroutines; each Sweep is a single-shot call made
// by whatever schedules it.
type Sweeper struct {
	orders *queue.OrderQueue
	prints *queue.PrintQueue

	orderRetentionDays int
	printRetentionDays int
}

// NewSweeper creates a Sweeper. Non-positive windows fall back to the
// defaults.
func NewSweeper(orders *queue.OrderQueue, prints *queue.PrintQueue, orderDays, printDays int) *Sweeper {
	if orderDays <= 0 {
		orderDays = DefaultOrderRetentionDays
	}
	if printDays <= 0 {
		printDays = DefaultPrintRetentionDays
	}
	return &Sweeper{
		orders:             orders,
		prints:             prints,
		orderRetentionDays: orderDays,
		printRetentionDays: printDays,
	}
}

// Sweep runs Cleanup on both queues and logs what was removed. Both
// queues are swept even if one fails; the errors are joined.
func (s *Sweeper) Sweep() error {
	log := logging.WithComponent("retention")

	ordersDeleted, orderErr := s.orders.Cleanup(s.orderRetentionDays)
	if orderErr != nil {
		log.WithError(orderErr).Error("order cleanup failed")
	}

	printsDeleted, printErr := s.prints.Cleanup(s.printRetentionDays)
	if printErr != nil {
		log.WithError(printErr).Error("print job cleanup failed")
	}

	if orderErr == nil && printErr == nil {
		log.WithField("orders_deleted", ordersDeleted).
			WithField("print_jobs_deleted", printsDeleted).
			Info("retention sweep complete")
	}

	return errors.Join(orderErr, printErr)
}
