// Package config provides centralized timeout constants for the application.
//
// The chat pipeline has two external round-trips per request at most: one
// database query and (for some intents) one LLM call. Both carry their own
// request-scoped timeout so a stuck collaborator turns into a user-facing
// apology instead of a hung request.
package config

import "time"

// Chat request timeouts
const (
	// ChatQueryTimeout bounds a single database query. Timetable joins are
	// the heaviest query shape; well under a second on a warm pool, so 10s
	// is already generous headroom for pool contention.
	ChatQueryTimeout = 10 * time.Second

	// ChatLLMTimeout bounds a narrative/general-answer LLM call, including
	// one retry with backoff inside the genai package.
	ChatLLMTimeout = 20 * time.Second

	// ChatHTTPRead is the HTTP server read timeout. Chat payloads are one
	// small JSON object.
	ChatHTTPRead = 10 * time.Second

	// ChatHTTPWrite must accommodate query + LLM + serialization.
	ChatHTTPWrite = 40 * time.Second

	// ChatHTTPIdle is the keep-alive idle timeout.
	ChatHTTPIdle = 120 * time.Second
)

// Database timeouts
const (
	// DatabaseConnMaxLifetime caps connection age so the pool rotates
	// through fresh connections (load balancer failover, credential
	// rotation).
	DatabaseConnMaxLifetime = time.Hour

	// SlowQueryThreshold is the duration above which a query is logged as
	// slow.
	SlowQueryThreshold = 100 * time.Millisecond
)

// Shutdown
const (
	// DefaultShutdownTimeout is how long graceful shutdown waits for
	// in-flight requests.
	DefaultShutdownTimeout = 30 * time.Second
)
