package ratelimit

import (
	"testing"
	"time"
)

func TestPerClientLimiter_Allow(t *testing.T) {
	limiter := NewPerClientLimiter(PerClientLimiterConfig{
		MaxTokens:     3,
		RefillRate:    1.0,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	// First 3 requests should be allowed
	for i := 0; i < 3; i++ {
		if !limiter.Allow("203.0.113.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 4th request should be denied
	if limiter.Allow("203.0.113.1") {
		t.Error("4th request should be denied")
	}

	// Different client should still be allowed
	if !limiter.Allow("203.0.113.2") {
		t.Error("Different client should be allowed")
	}
}

func TestPerClientLimiter_EmptyKey(t *testing.T) {
	limiter := NewPerClientLimiter(PerClientLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0.1,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	// Empty client key should always be allowed
	for i := 0; i < 10; i++ {
		if !limiter.Allow("") {
			t.Error("Empty client key should always be allowed")
		}
	}
}

func TestPerClientLimiter_OnDrop(t *testing.T) {
	dropCount := 0
	limiter := NewPerClientLimiter(PerClientLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0.001,
		CleanupPeriod: 1 * time.Minute,
	})
	limiter.OnDrop(func() {
		dropCount++
	})
	defer limiter.Stop()

	// First request allowed
	limiter.Allow("203.0.113.1")

	// Second request dropped
	limiter.Allow("203.0.113.1")

	if dropCount != 1 {
		t.Errorf("Expected 1 drop, got %d", dropCount)
	}
}

func TestPerClientLimiter_GetAvailable(t *testing.T) {
	limiter := NewPerClientLimiter(PerClientLimiterConfig{
		MaxTokens:     10,
		RefillRate:    1.0,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	// New client should have max tokens
	if got := limiter.GetAvailable("198.51.100.9"); got != 10 {
		t.Errorf("Expected 10 tokens for new client, got %f", got)
	}

	// After using some tokens
	limiter.Allow("198.51.100.9")
	limiter.Allow("198.51.100.9")

	if got := limiter.GetAvailable("198.51.100.9"); got >= 10 {
		t.Errorf("Expected less than 10 tokens after use, got %f", got)
	}
}

func TestPerClientLimiter_GetActiveCount(t *testing.T) {
	limiter := NewPerClientLimiter(PerClientLimiterConfig{
		MaxTokens:     10,
		RefillRate:    1.0,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	if limiter.GetActiveCount() != 0 {
		t.Error("Expected 0 active limiters initially")
	}

	limiter.Allow("203.0.113.1")
	limiter.Allow("203.0.113.2")
	limiter.Allow("203.0.113.3")

	if limiter.GetActiveCount() != 3 {
		t.Errorf("Expected 3 active limiters, got %d", limiter.GetActiveCount())
	}
}

func TestPerClientLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewPerClientLimiter(PerClientLimiterConfig{
		MaxTokens:     1,
		RefillRate:    1.0,
		CleanupPeriod: 1 * time.Minute,
	})

	limiter.Stop()
	limiter.Stop() // Must not panic
}
