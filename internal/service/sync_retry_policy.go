package service

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-chama-sync/internal/store"
)

// Local write retry defaults: three attempts, waiting attempt x 100ms between
// them.
const (
	DefaultRetryAttempts  = 3
	DefaultRetryBaseDelay = 100 * time.Millisecond
)

// RetryPolicy retries local writes that fail with
// [store.ErrReferentialIntegrity]. Every other error is returned at once.
type RetryPolicy struct {
	attempts  uint64
	baseDelay time.Duration
}

// NewRetryPolicy returns a policy making up to attempts tries with a linearly
// growing delay of n x baseDelay before try n+1. Non-positive arguments fall
// back to the defaults.
func NewRetryPolicy(attempts int, baseDelay time.Duration) RetryPolicy {
	if attempts <= 0 {
		attempts = DefaultRetryAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultRetryBaseDelay
	}
	return RetryPolicy{attempts: uint64(attempts), baseDelay: baseDelay}
}

// IsZero reports whether p is the zero value rather than a policy built by
// [NewRetryPolicy].
func (p RetryPolicy) IsZero() bool {
	return p.attempts == 0
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempts run out. The last error is returned unwrapped.
func (p RetryPolicy) Do(ctx context.Context, collection string, op func(ctx context.Context) error) error {
	attempt := 0
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			retryAttempts.WithLabelValues(collection).Inc()
		}

		err := op(ctx)
		if errors.Is(err, store.ErrReferentialIntegrity) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (p RetryPolicy) backoff() retry.Backoff {
	var n time.Duration
	linear := retry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return n * p.baseDelay, false
	})
	retries := uint64(0)
	if p.attempts > 1 {
		retries = p.attempts - 1
	}
	return retry.WithMaxRetries(retries, linear)
}
