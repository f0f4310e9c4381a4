package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service and CLI settings.
type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	HistoryPath    string
	HistoryTTL     time.Duration
	MaxBodyBytes   int64
	BatchWorkers   int
	SourceRetryMax time.Duration
}

const (
	defaultTTLDays  = 90
	defaultMaxBody  = 10 << 20
	defaultWorkers  = 4
	defaultRetryMax = 10 * time.Second
)

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load() // loads .env
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() Config {
	return Config{
		Port:           envOr("PORT", "8080"),
		Environment:    os.Getenv("ENVIRONMENT"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		HistoryPath:    envOr("HISTORY_PATH", "data/history.db"),
		HistoryTTL:     time.Duration(envInt("HISTORY_TTL_DAYS", defaultTTLDays)) * 24 * time.Hour,
		MaxBodyBytes:   int64(envInt("MAX_BODY_BYTES", defaultMaxBody)),
		BatchWorkers:   envInt("BATCH_WORKERS", defaultWorkers),
		SourceRetryMax: envDuration("SOURCE_RETRY_MAX", defaultRetryMax),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
