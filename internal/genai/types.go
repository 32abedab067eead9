// Package genai provides integration with LLM APIs (Gemini and Groq).
// It powers the narrative answers for general campus questions.
//
// Architecture:
// - Gemini: Uses google.golang.org/genai (official SDK)
// - Groq: Uses github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Fallback Strategy:
// 1. Retry: Same provider retried with exponential backoff
// 2. Provider Chain: Next provider in the configured list
package genai

import (
	"context"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers.
// Gemini is not included as it uses a different SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq: "https://api.groq.com/openai/v1/",
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Narrator produces free-text replies.
// Implementations include Gemini (native) and Groq (OpenAI-compatible).
type Narrator interface {
	// Answer generates a reply for a general question. The prompt carries
	// the university fact sheet; the model only fills in the phrasing.
	Answer(ctx context.Context, question string) (string, error)
	// Narrate rewrites a formatted lookup result as a conversational reply.
	// Callers must keep the deterministic card as the fallback.
	Narrate(ctx context.Context, card string) (string, error)
	// IsEnabled returns true if the narrator is properly initialized.
	IsEnabled() bool
	// Close releases any resources held by the narrator.
	Close() error
	// Provider returns the provider type for metrics.
	Provider() Provider
}

// RetryConfig defines retry behavior for LLM API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// Generation parameters shared by both providers. Low temperature keeps
// factual answers consistent across retries.
const (
	AnswerTemperature     = 0.2
	AnswerMaxOutputTokens = 350
	AnswerTopP            = 0.9
	AnswerTopK            = 40
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
)

// Retry configuration defaults
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the standard retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}
