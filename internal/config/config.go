// Package config holds host-process configuration.
package config

import (
	"time"

	"github.com/caarlos0/env"
)

// Config is populated from the environment; cmd entry points may layer
// flag overrides on top.
type Config struct {
	DataDir  string `env:"TABLEPOS_DATA_DIR" envDefault:"./data"`
	Address  string `env:"TABLEPOS_ADDRESS" envDefault:"localhost:8091"`
	LogLevel string `env:"TABLEPOS_LOG_LEVEL" envDefault:"info"`

	BusyTimeout time.Duration `env:"TABLEPOS_BUSY_TIMEOUT" envDefault:"5s"`

	OrderRetentionDays int    `env:"TABLEPOS_ORDER_RETENTION_DAYS" envDefault:"7"`
	PrintRetentionDays int    `env:"TABLEPOS_PRINT_RETENTION_DAYS" envDefault:"3"`
	SweepSchedule      string `env:"TABLEPOS_SWEEP_SCHEDULE" envDefault:"@hourly"`
}

// New reads configuration from the environment.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
