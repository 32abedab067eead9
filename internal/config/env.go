// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Server
	EnvPort            = "GUNI_PORT"
	EnvLogLevel        = "GUNI_LOG_LEVEL"
	EnvShutdownTimeout = "GUNI_SHUTDOWN_TIMEOUT"

	// Database
	EnvDBHost         = "GUNI_DB_HOST"
	EnvDBPort         = "GUNI_DB_PORT"
	EnvDBName         = "GUNI_DB_NAME"
	EnvDBUser         = "GUNI_DB_USER"
	EnvDBPassword     = "GUNI_DB_PASSWORD"
	EnvDBSSLMode      = "GUNI_DB_SSLMODE"
	EnvDBMaxOpenConns = "GUNI_DB_MAX_OPEN_CONNS"
	EnvDBMaxIdleConns = "GUNI_DB_MAX_IDLE_CONNS"
	EnvQueryTimeout   = "GUNI_QUERY_TIMEOUT"

	// Redis reply cache (optional; empty address disables it)
	EnvRedisAddr     = "GUNI_REDIS_ADDR"
	EnvRedisPassword = "GUNI_REDIS_PASSWORD"
	EnvRedisDB       = "GUNI_REDIS_DB"
	EnvRoomCacheTTL  = "GUNI_ROOM_CACHE_TTL"

	// Scheduling
	EnvTimezone    = "GUNI_TIMEZONE"
	EnvFallbackDay = "GUNI_FALLBACK_DAY"

	// LLM Feature
	EnvGeminiAPIKey = "GUNI_GEMINI_API_KEY"
	EnvGroqAPIKey   = "GUNI_GROQ_API_KEY"
	EnvGeminiModel  = "GUNI_GEMINI_MODEL"
	EnvGroqModel    = "GUNI_GROQ_MODEL"
	EnvLLMTimeout   = "GUNI_LLM_TIMEOUT"

	// Rate Limits
	EnvClientRateBurst  = "GUNI_CLIENT_RATE_BURST"
	EnvClientRateRefill = "GUNI_CLIENT_RATE_REFILL"

	// Metrics Auth Feature
	EnvMetricsUsername = "GUNI_METRICS_USERNAME"
	EnvMetricsPassword = "GUNI_METRICS_PASSWORD"

	// Sentry Feature
	EnvSentryEnabled     = "GUNI_SENTRY_ENABLED"
	EnvSentryDSN         = "GUNI_SENTRY_DSN"
	EnvSentryEnvironment = "GUNI_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "GUNI_SENTRY_RELEASE"
	EnvSentrySampleRate  = "GUNI_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "GUNI_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "GUNI_BETTERSTACK_ENDPOINT"
)
