package resilience

import (
	"context"
	"testing"
	"time"
)

func TestRetryPolicy_Normalize(t *testing.T) {
	t.Parallel()

	p := NormalizeRetryPolicy(RetryPolicy{})
	if p.MaxAttempts != 3 {
		t.Fatalf("default max attempts: got %d, want 3", p.MaxAttempts)
	}
	if p.Delay != 0 {
		t.Fatalf("zero delay should be kept, got %s", p.Delay)
	}

	p = NormalizeRetryPolicy(RetryPolicy{MaxAttempts: -1, Delay: -time.Second})
	if p.MaxAttempts != 3 || p.Delay != 2*time.Second {
		t.Fatalf("negative values should fall back to defaults, got %+v", p)
	}
}

func TestRetryPolicy_ShouldRetryStatus(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{MaxAttempts: 3}
	if p.ShouldRetryStatus(200) {
		t.Fatalf("2xx must never retry")
	}
	if !p.ShouldRetryStatus(404) || !p.ShouldRetryStatus(500) {
		t.Fatalf("nil predicate should retry every non-2xx status")
	}

	p.RetryableStatus = func(status int) bool { return status >= 500 }
	if p.ShouldRetryStatus(404) {
		t.Fatalf("predicate should reject 404")
	}
	if !p.ShouldRetryStatus(503) {
		t.Fatalf("predicate should accept 503")
	}
}

func TestRetryPolicy_WaitBlocksForDelay(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{Delay: 50 * time.Millisecond}
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < p.Delay {
		t.Fatalf("wait returned after %v, want at least %v", elapsed, p.Delay)
	}
}

func TestRetryPolicy_WaitHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := RetryPolicy{Delay: time.Minute}
	start := time.Now()
	if err := p.Wait(ctx); err == nil {
		t.Fatalf("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("wait should return promptly on cancellation")
	}
}
