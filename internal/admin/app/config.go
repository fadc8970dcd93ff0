package app

import (
	"os"
	"time"

	"github.com/Shunadesu/simple-decor-sub001/internal/admin/domain"
	"github.com/Shunadesu/simple-decor-sub001/internal/admin/service"
	"github.com/Shunadesu/simple-decor-sub001/internal/admin/session"
	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
)

type Config struct {
	BaseURL        string        // Optional: CMS backend base URL (default: http://localhost:5000)
	RequestTimeout time.Duration // Optional: per-request HTTP timeout (default: 10s)

	StateFile  string // Optional: path to SQLite state database (default: ./decor-admin.db)
	SecretFile string // Optional: path to sealing secret file (default: ./decor-admin.key)

	InactivityWindow time.Duration // Optional: idle time before the session expires (default: 72h)
	RefreshFallback  time.Duration // Optional: refresh delay for opaque tokens (default: 23h)
	CacheTTL         time.Duration // Optional: freshness window for listing caches (default: 5m)
	CheckInterval    time.Duration // Optional: inactivity check cadence (default: 1m)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		BaseURL:        getEnvOrDefault("DECOR_API_BASE_URL", "http://localhost:5000"),
		RequestTimeout: getEnvDurationOrDefault("DECOR_REQUEST_TIMEOUT", decorapi.DefaultTimeout),

		StateFile:  getEnvOrDefault("DECOR_STATE_FILE", "decor-admin.db"),
		SecretFile: getEnvOrDefault("DECOR_SECRET_FILE", "decor-admin.key"),

		InactivityWindow: getEnvDurationOrDefault("DECOR_INACTIVITY_WINDOW", domain.DefaultInactivityWindow),
		RefreshFallback:  getEnvDurationOrDefault("DECOR_REFRESH_FALLBACK", session.DefaultRefreshFallback),
		CacheTTL:         getEnvDurationOrDefault("DECOR_CACHE_TTL", service.DefaultCacheTTL),
		CheckInterval:    getEnvDurationOrDefault("DECOR_CHECK_INTERVAL", session.DefaultCheckInterval),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
