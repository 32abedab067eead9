package ratelimit

import (
	"sync"
	"time"
)

// PerClientLimiterConfig configures a PerClientLimiter instance.
type PerClientLimiterConfig struct {
	MaxTokens     float64       // Maximum tokens per client (burst capacity)
	RefillRate    float64       // Tokens refilled per second
	CleanupPeriod time.Duration // How often to clean up inactive limiters
}

// PerClientLimiter tracks rate limits per client (keyed by client IP).
// It creates a separate token bucket for each client and automatically
// cleans up inactive buckets.
type PerClientLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	config   PerClientLimiterConfig
	onDrop   func()          // Optional callback when request is dropped
	onUpdate func(count int) // Optional callback when active count changes
	stopCh   chan struct{}
}

// NewPerClientLimiter creates a new per-client rate limiter.
//
// Example:
//
//	limiter := NewPerClientLimiter(PerClientLimiterConfig{
//	    MaxTokens:     15,
//	    RefillRate:    0.5, // 1 token per 2 seconds
//	    CleanupPeriod: 5 * time.Minute,
//	})
//	defer limiter.Stop()
//
//	if limiter.Allow("203.0.113.7") {
//	    // Process request
//	}
func NewPerClientLimiter(cfg PerClientLimiterConfig) *PerClientLimiter {
	pcl := &PerClientLimiter{
		limiters: make(map[string]*Limiter),
		config:   cfg,
		stopCh:   make(chan struct{}),
	}

	go pcl.cleanupLoop()

	return pcl
}

// OnDrop sets a callback function that is called when a request is dropped due to rate limiting.
func (pcl *PerClientLimiter) OnDrop(fn func()) {
	pcl.onDrop = fn
}

// OnUpdate sets a callback function that is called when the active limiter count changes.
func (pcl *PerClientLimiter) OnUpdate(fn func(count int)) {
	pcl.onUpdate = fn
}

// Allow checks if a request for the given client is allowed.
// Returns true if allowed (token consumed), false if rate limit exceeded.
func (pcl *PerClientLimiter) Allow(client string) bool {
	if client == "" {
		return true
	}

	pcl.mu.RLock()
	limiter, exists := pcl.limiters[client]
	pcl.mu.RUnlock()

	if !exists {
		pcl.mu.Lock()
		// Double-check after acquiring write lock
		limiter, exists = pcl.limiters[client]
		if !exists {
			limiter = New(pcl.config.MaxTokens, pcl.config.RefillRate)
			pcl.limiters[client] = limiter
		}
		pcl.mu.Unlock()
	}

	allowed := limiter.Allow()
	if !allowed && pcl.onDrop != nil {
		pcl.onDrop()
	}
	return allowed
}

// GetAvailable returns the number of available tokens for a client.
// Returns MaxTokens if the client has no limiter yet.
func (pcl *PerClientLimiter) GetAvailable(client string) float64 {
	if client == "" {
		return pcl.config.MaxTokens
	}

	pcl.mu.RLock()
	limiter, exists := pcl.limiters[client]
	pcl.mu.RUnlock()

	if !exists {
		return pcl.config.MaxTokens
	}

	return limiter.Available()
}

// GetActiveCount returns the number of active limiters.
func (pcl *PerClientLimiter) GetActiveCount() int {
	pcl.mu.RLock()
	defer pcl.mu.RUnlock()
	return len(pcl.limiters)
}

// cleanupLoop periodically removes inactive limiters.
func (pcl *PerClientLimiter) cleanupLoop() {
	ticker := time.NewTicker(pcl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-pcl.stopCh:
			return
		case <-ticker.C:
			pcl.mu.Lock()
			for client, limiter := range pcl.limiters {
				if limiter.IsFull() {
					delete(pcl.limiters, client)
				}
			}
			activeCount := len(pcl.limiters)
			pcl.mu.Unlock()

			if pcl.onUpdate != nil {
				pcl.onUpdate(activeCount)
			}
		}
	}
}

// Stop gracefully stops the cleanup goroutine.
// Safe to call multiple times.
func (pcl *PerClientLimiter) Stop() {
	select {
	case <-pcl.stopCh:
		// Already stopped
	default:
		close(pcl.stopCh)
	}
}
