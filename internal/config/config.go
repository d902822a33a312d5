package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the process-level configuration read from the environment.
// Display content and simulated delays live in the JSON app config instead.
type Config struct {
	// Environment
	Environment string
	Port        string
	LogLevel    string

	// AppConfigPath points at the JSON app config (delays, page header).
	AppConfigPath string

	// PacingFactor scales every simulated delay; 0 disables waiting.
	PacingFactor float64

	// Session state
	SessionStore  string // "memory" or "redis"
	RedisURL      string
	SessionTTL    time.Duration
	SessionSecret string

	// Observability
	SentryDSN string
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AppConfigPath: getEnv("APP_CONFIG_PATH", "config/app_config.json"),
		PacingFactor:  getFloat("PACING_FACTOR", 1.0),
		SessionStore:  getEnv("SESSION_STORE", "memory"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
		SessionSecret: getEnv("SESSION_SECRET", "tirewriter-demo-secret"),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return defaultValue
	}
	return f
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesRedis reports whether session state is kept in Redis.
func (c *Config) UsesRedis() bool {
	return c.SessionStore == "redis"
}
