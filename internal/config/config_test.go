package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "localhost:8091", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.BusyTimeout)
	assert.Equal(t, 7, cfg.OrderRetentionDays)
	assert.Equal(t, 3, cfg.PrintRetentionDays)
	assert.Equal(t, "@hourly", cfg.SweepSchedule)
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("TABLEPOS_DATA_DIR", "/var/lib/tablepos")
	t.Setenv("TABLEPOS_BUSY_TIMEOUT", "30s")
	t.Setenv("TABLEPOS_ORDER_RETENTION_DAYS", "14")
	t.Setenv("TABLEPOS_SWEEP_SCHEDULE", "@every 15m")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tablepos", cfg.DataDir)
	assert.Equal(t, 30*time.Second, cfg.BusyTimeout)
	assert.Equal(t, 14, cfg.OrderRetentionDays)
	assert.Equal(t, "@every 15m", cfg.SweepSchedule)
}
