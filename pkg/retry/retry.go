// Package retry repeats calls that fail with transient errors.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

const defaultDelay = 100 * time.Millisecond

// A Backoff returns the pause after the given failed attempt, counted from 1.
type Backoff func(attempt int) time.Duration

// A Classifier reports whether err is worth another attempt.
type Classifier func(err error) bool

// Policy zero values mean a single attempt, exponential backoff from 100ms
// and every error treated as retryable.
type Policy struct {
	Attempts  int
	Backoff   Backoff
	Retryable Classifier
}

func (p Policy) withDefaults() Policy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Backoff == nil {
		p.Backoff = Exponential(defaultDelay, 0)
	}
	if p.Retryable == nil {
		p.Retryable = func(error) bool { return true }
	}
	return p
}

// Exponential doubles delay on every attempt and adds up to half of it as
// jitter. A positive limit caps the pause.
func Exponential(delay, limit time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if delay <= 0 {
			return 0
		}
		d := delay << min(attempt, 30)
		if d <= 0 || (limit > 0 && d > limit) {
			d = limit
		}
		if half := int64(d / 2); half > 0 {
			d += time.Duration(rand.Int64N(half) + 1)
		}
		return d
	}
}

// Constant always pauses for delay.
func Constant(delay time.Duration) Backoff {
	return func(int) time.Duration { return delay }
}

func Do(ctx context.Context, p Policy, fn func(context.Context) error) error {
	_, err := Value(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Value calls fn until it succeeds, the error is not retryable or the
// attempts are used up, and returns the last error. A context cancelled
// during a pause is joined with that error.
func Value[T any](
	ctx context.Context, p Policy, fn func(context.Context) (T, error),
) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	p = p.withDefaults()

	var pause *time.Timer
	defer func() {
		if pause != nil {
			pause.Stop()
		}
	}()

	for attempt := 1; ; attempt++ {
		v, err := fn(ctx)
		switch {
		case err == nil:
			return v, nil
		case attempt >= p.Attempts || !p.Retryable(err):
			return zero, err
		}

		wait := p.Backoff(attempt)
		if pause == nil {
			pause = time.NewTimer(wait)
		} else {
			pause.Reset(wait)
		}
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-pause.C:
		}
	}
}
