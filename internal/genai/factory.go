// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the factory that assembles the narrator chain
// from application configuration.
package genai

import (
	"context"
	"fmt"

	"github.com/guni-dev/guni-chatbot-go/internal/config"
)

// NewNarrator builds the provider chain from config: Gemini first when
// its key is present, Groq as fallback. Returns (nil, nil) when no
// provider is configured; callers treat that as narration disabled.
func NewNarrator(ctx context.Context, cfg *config.Config) (*FallbackNarrator, error) {
	if !cfg.HasLLMProvider() {
		return nil, nil //nolint:nilnil // Intentional: feature disabled without API keys
	}

	var narrators []Narrator

	if cfg.GeminiAPIKey != "" {
		gemini, err := newGeminiNarrator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini narrator: %w", err)
		}
		narrators = append(narrators, gemini)
	}

	if cfg.GroqAPIKey != "" {
		groq, err := newGroqNarrator(ctx, cfg.GroqAPIKey, cfg.GroqModel)
		if err != nil {
			return nil, fmt.Errorf("groq narrator: %w", err)
		}
		narrators = append(narrators, groq)
	}

	chain := NewFallbackNarrator(narrators, DefaultRetryConfig())
	if !chain.IsEnabled() {
		return nil, nil //nolint:nilnil
	}
	return chain, nil
}
