package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Auth.Enabled())
	assert.Empty(t, cfg.Audit.KafkaBrokers)
	assert.Equal(t, 1000, cfg.Audit.RingSize)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SKILLSET_STORAGE", "Postgres")
	t.Setenv("SKILLSET_DATABASE_URL", "postgres://localhost/skillset")
	t.Setenv("SKILLSET_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SKILLSET_LOG_LEVEL", "debug")
	t.Setenv("SKILLSET_RATE_LIMIT_RPS", "2.5")
	t.Setenv("SKILLSET_JWT_SIGNING_KEY", "s3cret")
	t.Setenv("SKILLSET_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Audit.KafkaBrokers)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SKILLSET_STORAGE", "cassandra")
	t.Setenv("SKILLSET_REDIS_POOL_SIZE", "lots")
	t.Setenv("SKILLSET_LOG_FORMAT", "xml")

	_, err := FromEnv()
	require.Error(t, err)
	assert.ErrorContains(t, err, "SKILLSET_STORAGE must be memory, postgres or redis")
	assert.ErrorContains(t, err, "SKILLSET_REDIS_POOL_SIZE")
	assert.ErrorContains(t, err, "SKILLSET_LOG_FORMAT")
}

func TestFromEnvBackendRequiresURL(t *testing.T) {
	t.Setenv("SKILLSET_STORAGE", "redis")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "SKILLSET_REDIS_URL is required")
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SKILLSET_ADDR=:7070\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SKILLSET_ADDR") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
