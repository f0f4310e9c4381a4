package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "HISTORY_PATH", "HISTORY_TTL_DAYS", "MAX_BODY_BYTES", "BATCH_WORKERS", "SOURCE_RETRY_MAX"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "data/history.db", cfg.HistoryPath)
	assert.Equal(t, 90*24*time.Hour, cfg.HistoryTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 4, cfg.BatchWorkers)
	assert.Equal(t, 10*time.Second, cfg.SourceRetryMax)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HISTORY_TTL_DAYS", "7")
	t.Setenv("BATCH_WORKERS", "-2")
	t.Setenv("SOURCE_RETRY_MAX", "2s")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.HistoryTTL)
	assert.Equal(t, 4, cfg.BatchWorkers)
	assert.Equal(t, 2*time.Second, cfg.SourceRetryMax)
}
