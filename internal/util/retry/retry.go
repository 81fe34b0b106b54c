// Package retry provides a bounded-retry abstraction for operations exposed
// to eventual-consistency delays.
//
// A Policy is a declared value (attempts, delay, multiplier) rather than an
// inline pause, so callers state their propagation tolerance up front and
// tests can assert the exact attempt count.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy describes how often and how quickly an operation is retried.
// A Multiplier of 1 yields a fixed inter-attempt delay.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultPolicy is used when no options are given: 5 attempts with
// exponential backoff starting at one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		Delay:       1 * time.Second,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
	}
}

// Fixed returns a policy with a constant inter-attempt delay.
func Fixed(attempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: attempts,
		Delay:       delay,
		MaxDelay:    delay,
		Multiplier:  1.0,
	}
}

// Option is a functional option applied on top of DefaultPolicy.
type Option func(*Policy)

// WithMaxAttempts sets the total number of attempts (not extra retries).
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		p.MaxAttempts = n
	}
}

// WithDelay sets the initial inter-attempt delay.
func WithDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.Delay = d
	}
}

// WithMaxDelay caps the inter-attempt delay.
func WithMaxDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier. Use 1 for a fixed delay.
func WithMultiplier(m float64) Option {
	return func(p *Policy) {
		p.Multiplier = m
	}
}

// Do executes the operation under the default policy adjusted by opts.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	return p.Do(ctx, operation)
}

// Do executes the operation until it succeeds, the attempt budget is
// exhausted, or the context is cancelled. Errors wrapped with Fatal are
// returned immediately without further attempts.
func (p Policy) Do(ctx context.Context, operation func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.Delay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(delay):
				if p.Multiplier > 1 {
					delay = time.Duration(float64(delay) * p.Multiplier)
					if p.MaxDelay > 0 && delay > p.MaxDelay {
						delay = p.MaxDelay
					}
				}
			}
		}
	}

	return fmt.Errorf("gave up after %d attempts: %w", attempts, lastErr)
}

// FatalError wraps an error to mark it as non-retryable.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as non-retryable.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err was marked with Fatal.
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
