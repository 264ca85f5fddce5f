package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.HoldTTL)
	assert.Equal(t, "0 * * * * *", cfg.HoldSweepSchedule)
	assert.Equal(t, "*/5 * * * * *", cfg.OutboxRelaySchedule)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, 10, cfg.OutboxMaxAttempts)
	assert.Empty(t, cfg.RedisAddr)
	assert.Nil(t, cfg.KafkaBrokers())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HOLD_TTL", "90s")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_HOST", "kafka-1:9092, kafka-2:9092")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 90*time.Second, cfg.HoldTTL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, 25, cfg.OutboxBatchSize)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\nDB_HOST=db.internal\n"), 0o600))
	t.Setenv("DB_HOST", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("DB_NAME") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.DBName)
	assert.Equal(t, "from-env", cfg.DBHost)
	assert.Contains(t, cfg.DSN(), "dbname=from_file")
}

func TestLoadConfig_MissingDotEnvIsIgnored(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("HOLD_TTL", "0s")

	_, err := LoadConfig("")

	assert.ErrorContains(t, err, "HOLD_TTL")
}
