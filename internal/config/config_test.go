package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "orders-outbox", cfg.OutboxTopic)
	assert.Empty(t, cfg.AdminToken)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REQUEST_TIMEOUT", "250ms")
	t.Setenv("ADMIN_TOKEN", "back-office")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "back-office", cfg.AdminToken)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVICE_NAME=shop-test\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SERVICE_NAME") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "shop-test", cfg.ServiceName)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "lots")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")
}
