// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   int

	// SQLite event store
	DatabasePath string

	// Admin JWT verification (must match the back-office token issuer)
	JWTSecret string
	JWTIssuer string

	// Read cache
	CacheTTL  time.Duration
	CacheSize int

	// Retention: events older than RetentionDays are purged on the cron
	// schedule. 0 disables purging (the store then grows unbounded).
	RetentionDays     int
	RetentionSchedule string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "dev"),
		Port:              getInt("PORT", 8080),
		DatabasePath:      getEnv("DATABASE_PATH", "data/clicktrack.db"),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:         getEnv("JWT_ISSUER", ""),
		CacheTTL:          getDuration("CACHE_TTL", 30*time.Second),
		CacheSize:         getInt("CACHE_SIZE", 256),
		RetentionDays:     getInt("RETENTION_DAYS", 365),
		RetentionSchedule: getEnv("RETENTION_SCHEDULE", "30 3 * * *"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
