package genai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	t.Parallel()

	t.Run("zero attempt has no delay", func(t *testing.T) {
		t.Parallel()
		if d := CalculateBackoff(0, 500*time.Millisecond, 3*time.Second); d != 0 {
			t.Errorf("CalculateBackoff(0) = %v, want 0", d)
		}
	})

	t.Run("delay within jitter bounds", func(t *testing.T) {
		t.Parallel()
		initial := 500 * time.Millisecond
		max := 3 * time.Second
		for attempt := 1; attempt <= 5; attempt++ {
			for i := 0; i < 20; i++ {
				d := CalculateBackoff(attempt, initial, max)
				if d < 0 || d > max {
					t.Errorf("attempt %d: delay %v outside [0, %v]", attempt, d, max)
				}
			}
		}
	})

	t.Run("respects max cap", func(t *testing.T) {
		t.Parallel()
		// Attempt 10 would be 500ms * 2^9 = 256s without the cap
		for i := 0; i < 20; i++ {
			d := CalculateBackoff(10, 500*time.Millisecond, time.Second)
			if d > time.Second {
				t.Errorf("delay %v exceeds cap", d)
			}
		}
	})
}

func TestSleep(t *testing.T) {
	t.Parallel()

	t.Run("zero duration returns immediately", func(t *testing.T) {
		t.Parallel()
		if err := Sleep(context.Background(), 0); err != nil {
			t.Errorf("Sleep(0) = %v, want nil", err)
		}
	})

	t.Run("cancelled context aborts sleep", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := Sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
			t.Errorf("Sleep = %v, want context.Canceled", err)
		}
	})
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

	t.Run("succeeds first try", func(t *testing.T) {
		t.Parallel()
		calls := 0
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Errorf("WithRetry = %v, want nil", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("retries transient errors", func(t *testing.T) {
		t.Parallel()
		calls := 0
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("503 service unavailable")
			}
			return nil
		})
		if err != nil {
			t.Errorf("WithRetry = %v, want nil", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		t.Parallel()
		calls := 0
		permanent := errors.New("401 unauthorized")
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			return permanent
		})
		if !errors.Is(err, permanent) {
			t.Errorf("WithRetry = %v, want permanent error", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1 (no retry on permanent)", calls)
		}
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		t.Parallel()
		calls := 0
		transient := errors.New("connection reset")
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			return transient
		})
		if !errors.Is(err, transient) {
			t.Errorf("WithRetry = %v, want last transient error", err)
		}
		if calls != cfg.MaxAttempts {
			t.Errorf("calls = %d, want %d", calls, cfg.MaxAttempts)
		}
	})

	t.Run("cancelled context stops immediately", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		err := WithRetry(ctx, cfg, func() error {
			calls++
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("WithRetry = %v, want context.Canceled", err)
		}
		if calls != 0 {
			t.Errorf("calls = %d, want 0", calls)
		}
	})
}
