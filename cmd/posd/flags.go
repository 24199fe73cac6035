package main

import (
	"flag"

	"github.com/chiwenlan/tablepos/internal/config"
)

// newConfig reads the environment, then lets command-line flags override
// it.
func newConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	dataDir := flag.String("d", cfg.DataDir, "Data directory for the embedded store")
	address := flag.String("a", cfg.Address, "{Host:port} for the operator endpoints")
	logLevel := flag.String("l", cfg.LogLevel, "Log level")
	busyTimeout := flag.Duration("b", cfg.BusyTimeout, "Store lock wait bound (e.g. 5s)")
	sweepSchedule := flag.String("s", cfg.SweepSchedule, "Retention sweep schedule (cron spec or @every interval)")

	flag.Parse()

	cfg.DataDir = *dataDir
	cfg.Address = *address
	cfg.LogLevel = *logLevel
	cfg.BusyTimeout = *busyTimeout
	cfg.SweepSchedule = *sweepSchedule

	return cfg, nil
}
