package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetry tells Blocking to call the function again.
var ErrRetry = errors.New("retry")

// ErrGaveUp is returned by a Backoff made with Limited when attempts are exhausted.
var ErrGaveUp = errors.New("gave up retrying")

// Backoff is a (blocking) function returns when to retry.
//
// # Args
//
// - context: context. If context is canceled, Backoff should return ctx.Err().
//
// # Returns
//
// - error: nil if retry, non-nil if not.
type Backoff func(context.Context) error

// StaticBackoff returns a Backoff function that waits for a fixed interval.
func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1, 0)
}

// ExponentialBackoff returns a Backoff function that waits with exponential backoff.
//
// # Args
//
// - initialInterval: initial interval.
//
// - r: multiplier of interval.
//
// - max: upper bound of interval. Zero or negative means unbounded.
//
// # Returns
//
// Backoff function.
// For N-th call, it waits for `min(initialInterval * r^N, max)` or context to be done.
func ExponentialBackoff(initialInterval time.Duration, r float64, max time.Duration) Backoff {
	interval := initialInterval
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			next := time.Duration(int64(float64(interval) * r))
			if 0 < max && max < next {
				next = max
			}
			interval = next
			return nil
		}
	}
}

// Limited wraps b so that it gives up after `attempts` waits.
func Limited(b Backoff, attempts int) Backoff {
	count := 0
	return func(ctx context.Context) error {
		if attempts <= count {
			return fmt.Errorf("%w: after %d attempts", ErrGaveUp, count)
		}
		count += 1
		return b(ctx)
	}
}

// Blocking calls f until it returns nil or non-retry error.
//
// f is called at once, and then after each backoff while it returns ErrRetry.
//
// # Returns
//
// - T: last return value of f
//
// - error: error returned by f, or by the backoff.
func Blocking[T any](ctx context.Context, b Backoff, f func() (T, error)) (T, error) {
	for {
		last, err := f()
		if err == nil {
			return last, nil
		}
		if !errors.Is(err, ErrRetry) {
			return last, err
		}
		if err := b(ctx); err != nil {
			return last, err
		}
	}
}
