package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// ScoringConfigPath optionally points at a YAML file overriding the
	// built-in scoring defaults (time limits, weight tables, keyword lists).
	ScoringConfigPath string
	// SessionRatePerMinute caps how many sessions a single IP may create
	// per minute.
	SessionRatePerMinute int
	// RetentionEnabled turns on background pruning of finished sessions.
	RetentionEnabled  bool
	RetentionInterval time.Duration
	RetentionTTL      time.Duration
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "debug"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "pretty"),
		ScoringConfigPath:    getEnv("SCORING_CONFIG", ""),
		SessionRatePerMinute: getEnvInt("SESSION_RATE_PER_MINUTE", 30),
		RetentionEnabled:     getEnvBool("RETENTION_ENABLED", true),
		RetentionInterval:    time.Duration(getEnvInt("RETENTION_INTERVAL_MINUTES", 10)) * time.Minute,
		RetentionTTL:         time.Duration(getEnvInt("RETENTION_TTL_MINUTES", 720)) * time.Minute,
		AllowedOrigins:       parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
