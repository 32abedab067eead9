package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// Database metrics
	QueryDurationSeconds *prometheus.HistogramVec
	QueryErrorsTotal     *prometheus.CounterVec

	// LLM metrics
	LLMCallsTotal      *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// Singleflight metrics
	SingleflightDedupTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Chat metrics
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_chat_requests_total",
				Help: "Total number of chat requests by intent and status",
			},
			[]string{"intent", "status"}, // status: success, error, timeout, not_found
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guni_chat_duration_seconds",
				Help:    "Chat request duration in seconds by intent",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 20}, // Matches query and LLM timeouts
			},
			[]string{"intent"},
		),

		// Database metrics
		QueryDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guni_db_query_duration_seconds",
				Help:    "Database query duration in seconds by operation",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"operation"}, // operation: person_by_enrollment, batch_timetable, free_rooms, etc.
		),

		QueryErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_db_query_errors_total",
				Help: "Total number of failed database queries by operation",
			},
			[]string{"operation"},
		),

		// LLM metrics
		LLMCallsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_llm_calls_total",
				Help: "Total number of LLM calls by provider and status",
			},
			[]string{"provider", "status"}, // provider: gemini, groq
		),

		LLMDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guni_llm_duration_seconds",
				Help:    "LLM call duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30}, // Matches 20s LLM timeout + retry
			},
			[]string{"provider"},
		),

		// Cache metrics
		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_cache_hits_total",
				Help: "Total number of cache hits by cache name",
			},
			[]string{"cache"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_cache_misses_total",
				Help: "Total number of cache misses by cache name",
			},
			[]string{"cache"},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_http_errors_total",
				Help: "Total HTTP errors by type and handler",
			},
			[]string{"error_type", "handler"}, // error_type: timeout, rate_limit, bad_request, etc.
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: client, global
		),

		// Singleflight metrics
		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "guni_singleflight_dedup_total",
				Help: "Total number of deduplicated requests (requests that waited instead of executing)",
			},
			[]string{"operation"},
		),
	}

	return m
}

// RecordChatRequest records a chat request with status
func (m *Metrics) RecordChatRequest(intent, status string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(intent, status).Inc()
	m.ChatDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordQuery records a database query duration
func (m *Metrics) RecordQuery(operation string, duration float64) {
	m.QueryDurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordQueryError records a failed database query
func (m *Metrics) RecordQueryError(operation string) {
	m.QueryErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordLLMCall records an LLM call with status
func (m *Metrics) RecordLLMCall(provider, status string, duration float64) {
	m.LLMCallsTotal.WithLabelValues(provider, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(cache string) {
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(cache string) {
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, handler string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, handler).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// RecordSingleflightDedup records a deduplicated request
func (m *Metrics) RecordSingleflightDedup(operation string) {
	m.SingleflightDedupTotal.WithLabelValues(operation).Inc()
}
