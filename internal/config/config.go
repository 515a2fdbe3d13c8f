package config

import (
	"os"
	"strconv"
	"time"

	"tazkara/internal/external"
	"tazkara/internal/session"
)

// Config contains the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	Upstream external.Config
	Redis    session.RedisConfig
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Upstream: external.Config{
			BaseURL:     getEnv("UPSTREAM_BASE_URL", "https://blue-penguin-872241.hostingersite.com"),
			Timeout:     time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SEC", 30)) * time.Second,
			DocsTimeout: time.Duration(getEnvInt("UPSTREAM_DOCS_TIMEOUT_SEC", 5)) * time.Second,
			Fallback:    getEnv("FALLBACK_MODE", external.FallbackAuto),
		},

		Redis: session.RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		},
	}
}

// getEnv returns the environment variable value or the provided default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
