// Package main runs the POS host's durability daemon: it owns the
// embedded store, the offline order and print queues, the retention
// sweep, and a read-only operator surface on localhost. Order entry,
// print dispatch and the network sync worker are separate collaborators
// that go through the queue repositories, never the store itself.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chiwenlan/tablepos/internal/db"
	"github.com/chiwenlan/tablepos/internal/logging"
	"github.com/chiwenlan/tablepos/internal/queue"
	"github.com/chiwenlan/tablepos/internal/retention"
)

func main() {
	cfg, err := newConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logging.Setup(cfg.LogLevel)
	log := logging.WithComponent("posd")

	database, err := db.Init(cfg.DataDir, db.Options{BusyTimeout: cfg.BusyTimeout})
	if err != nil {
		// A failed open or migration is fatal: the process must not run
		// against a partially-migrated schema.
		log.WithError(err).Fatal("failed to initialize store")
	}
	defer db.Shutdown()
	log.WithField("path", database.Path()).Info("store ready")

	orders := queue.NewOrderQueue(database)
	prints := queue.NewPrintQueue(database)

	sweeper := retention.NewSweeper(orders, prints, cfg.OrderRetentionDays, cfg.PrintRetentionDays)
	scheduler, err := retention.NewScheduler(sweeper, cfg.SweepSchedule)
	if err != nil {
		log.WithError(err).Fatal("failed to schedule retention sweep")
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: newRouter(orders, prints),
	}

	go func() {
		log.WithField("address", cfg.Address).Info("operator endpoints listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("operator server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("operator server shutdown")
	}
}
