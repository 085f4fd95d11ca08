package resilience

import (
	"context"
	"time"
)

// RetryPolicy is the attempt budget applied to a single provider request.
// MaxAttempts counts the first try; a policy of 3 performs at most two
// retries with Delay between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	// RetryableStatus decides whether an HTTP status is worth another
	// attempt. Nil means every non-2xx status is retryable.
	RetryableStatus func(status int) bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
	}
}

func NormalizeRetryPolicy(p RetryPolicy) RetryPolicy {
	defaults := DefaultRetryPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = defaults.MaxAttempts
	}
	if p.Delay < 0 {
		p.Delay = defaults.Delay
	}
	return p
}

// ShouldRetryStatus reports whether the policy allows another attempt for
// the given HTTP status. Successful statuses are never retried.
func (p RetryPolicy) ShouldRetryStatus(status int) bool {
	if status >= 200 && status < 300 {
		return false
	}
	if p.RetryableStatus == nil {
		return true
	}
	return p.RetryableStatus(status)
}

// Wait blocks for the policy delay, honoring context cancellation.
func (p RetryPolicy) Wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
