// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the Postgres pool, the Redis reply cache, scheduling, LLM
// providers, and rate limits.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Database Configuration
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int
	QueryTimeout   time.Duration

	// Redis reply cache (optional; empty RedisAddr disables caching)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RoomCacheTTL  time.Duration

	// Scheduling
	Timezone    string // IANA zone the campus runs on
	FallbackDay string // day code used when a timetable query names no day

	// LLM Configuration (empty API keys disable the narrative features)
	GeminiAPIKey string
	GroqAPIKey   string
	GeminiModel  string // empty = genai package default
	GroqModel    string // empty = genai package default
	LLMTimeout   time.Duration

	// Rate Limits (token bucket per client IP)
	ClientRateBurst        float64
	ClientRateRefillPerSec float64

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)

	// Sentry error tracking (empty DSN disables it)
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Better Stack log shipping (empty token disables it)
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Server Configuration
		Port:            getEnv(EnvPort, "8000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, DefaultShutdownTimeout),

		// Database Configuration
		DBHost:         getEnv(EnvDBHost, "localhost"),
		DBPort:         getEnv(EnvDBPort, "5432"),
		DBName:         getEnv(EnvDBName, "campus"),
		DBUser:         getEnv(EnvDBUser, "postgres"),
		DBPassword:     getEnv(EnvDBPassword, ""),
		DBSSLMode:      getEnv(EnvDBSSLMode, "disable"),
		DBMaxOpenConns: getIntEnv(EnvDBMaxOpenConns, 20),
		DBMaxIdleConns: getIntEnv(EnvDBMaxIdleConns, 5),
		QueryTimeout:   getDurationEnv(EnvQueryTimeout, ChatQueryTimeout),

		// Redis Configuration
		RedisAddr:     getEnv(EnvRedisAddr, ""),
		RedisPassword: getEnv(EnvRedisPassword, ""),
		RedisDB:       getIntEnv(EnvRedisDB, 0),
		RoomCacheTTL:  getDurationEnv(EnvRoomCacheTTL, time.Minute),

		// Scheduling
		Timezone:    getEnv(EnvTimezone, "Asia/Kolkata"),
		FallbackDay: getEnv(EnvFallbackDay, "FRI"),

		// LLM Configuration
		GeminiAPIKey: getEnv(EnvGeminiAPIKey, ""),
		GroqAPIKey:   getEnv(EnvGroqAPIKey, ""),
		GeminiModel:  getEnv(EnvGeminiModel, ""),
		GroqModel:    getEnv(EnvGroqModel, ""),
		LLMTimeout:   getDurationEnv(EnvLLMTimeout, ChatLLMTimeout),

		// Rate Limits
		ClientRateBurst:        getFloatEnv(EnvClientRateBurst, 15.0),
		ClientRateRefillPerSec: getFloatEnv(EnvClientRateRefill, 0.5), // 1 per 2s

		// Metrics Authentication
		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		// Sentry
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		// Better Stack
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validFallbackDays are the six schedulable day codes.
var validFallbackDays = map[string]bool{
	"MON": true, "TUE": true, "WED": true, "THU": true, "FRI": true, "SAT": true,
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DBHost == "" {
		errs = append(errs, errors.New(EnvDBHost+" is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New(EnvDBName+" is required"))
	}
	if c.DBUser == "" {
		errs = append(errs, errors.New(EnvDBUser+" is required"))
	}
	if c.DBMaxOpenConns <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvDBMaxOpenConns, c.DBMaxOpenConns))
	}
	if c.DBMaxIdleConns < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvDBMaxIdleConns, c.DBMaxIdleConns))
	}
	if c.QueryTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvQueryTimeout, c.QueryTimeout))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvLLMTimeout, c.LLMTimeout))
	}
	if c.RoomCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvRoomCacheTTL, c.RoomCacheTTL))
	}
	if !validFallbackDays[c.FallbackDay] {
		errs = append(errs, fmt.Errorf("%s must be one of MON..SAT, got %q", EnvFallbackDay, c.FallbackDay))
	}
	if c.ClientRateBurst <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvClientRateBurst, c.ClientRateBurst))
	}
	if c.ClientRateRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvClientRateRefill, c.ClientRateRefillPerSec))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DSN returns the Postgres connection string for lib/pq.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

// HasRedis returns true if the Redis reply cache is configured.
func (c *Config) HasRedis() bool {
	return c.RedisAddr != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
