// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the provider fallback chain for narration.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CallMetrics records LLM call outcomes.
type CallMetrics interface {
	RecordLLMCall(provider, status string, duration float64)
}

// FallbackNarrator tries each configured narrator in order, retrying
// transient failures within a provider before moving to the next one.
// It implements the Narrator interface.
type FallbackNarrator struct {
	narrators []Narrator
	retry     RetryConfig
	metrics   CallMetrics // optional
}

// NewFallbackNarrator builds a chain from the given narrators.
// Nil and disabled narrators are skipped.
func NewFallbackNarrator(narrators []Narrator, retry RetryConfig) *FallbackNarrator {
	active := make([]Narrator, 0, len(narrators))
	for _, n := range narrators {
		if n != nil && n.IsEnabled() {
			active = append(active, n)
		}
	}
	return &FallbackNarrator{
		narrators: active,
		retry:     retry,
	}
}

// SetMetrics attaches a metrics recorder. Safe to skip in tests.
func (f *FallbackNarrator) SetMetrics(m CallMetrics) {
	f.metrics = m
}

// Answer walks the provider chain until one produces an answer.
func (f *FallbackNarrator) Answer(ctx context.Context, question string) (string, error) {
	return f.generate(ctx, func(n Narrator) (string, error) {
		return n.Answer(ctx, question)
	})
}

// Narrate walks the provider chain until one rewrites the result card.
func (f *FallbackNarrator) Narrate(ctx context.Context, card string) (string, error) {
	return f.generate(ctx, func(n Narrator) (string, error) {
		return n.Narrate(ctx, card)
	})
}

func (f *FallbackNarrator) generate(ctx context.Context, call func(Narrator) (string, error)) (string, error) {
	if len(f.narrators) == 0 {
		return "", fmt.Errorf("no narration providers configured")
	}

	var errs []error
	for _, n := range f.narrators {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		var answer string
		start := time.Now()
		err := WithRetry(ctx, f.retry, func() error {
			var callErr error
			answer, callErr = call(n)
			return callErr
		})
		duration := time.Since(start).Seconds()

		if err == nil {
			if f.metrics != nil {
				f.metrics.RecordLLMCall(n.Provider().String(), "success", duration)
			}
			return answer, nil
		}

		if f.metrics != nil {
			f.metrics.RecordLLMCall(n.Provider().String(), "error", duration)
		}
		slog.WarnContext(ctx, "narration provider failed, trying next",
			"provider", n.Provider(),
			"error", err)
		errs = append(errs, fmt.Errorf("%s: %w", n.Provider(), err))
	}

	return "", fmt.Errorf("all narration providers failed: %w", errors.Join(errs...))
}

// IsEnabled returns true if at least one provider is active.
func (f *FallbackNarrator) IsEnabled() bool {
	return f != nil && len(f.narrators) > 0
}

// Provider returns the primary provider in the chain.
func (f *FallbackNarrator) Provider() Provider {
	if len(f.narrators) == 0 {
		return ""
	}
	return f.narrators[0].Provider()
}

// Close releases all chained narrators.
func (f *FallbackNarrator) Close() error {
	var errs []error
	for _, n := range f.narrators {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
