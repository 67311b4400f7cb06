// Package retry models the asset-fetch retry behavior as an explicit,
// testable policy instead of a bare loop.
package retry

import "time"

// Backoff computes the delay before the next retry attempt.
type Backoff interface {
	Next(attempt int) time.Duration
}

// ConstantBackoff waits the same delay between every attempt. The zero value
// retries immediately, matching the original fetch loop.
type ConstantBackoff struct {
	Delay time.Duration
}

// Next returns the fixed delay regardless of attempt number.
func (b ConstantBackoff) Next(attempt int) time.Duration {
	if b.Delay < 0 {
		return 0
	}
	return b.Delay
}

// ExponentialBackoff grows delays by powers of two, capped at Max.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

// Next returns the delay for the given attempt (1-based).
func (b ExponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := b.Base
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	delay := base << (attempt - 1)
	if b.Max > 0 && delay > b.Max {
		return b.Max
	}
	return delay
}

// DefaultBackoff returns the default exponential retry policy.
func DefaultBackoff() Backoff {
	return ExponentialBackoff{
		Base: 100 * time.Millisecond,
		Max:  5 * time.Second,
	}
}

// Policy pairs an attempt budget with a backoff strategy.
type Policy struct {
	MaxAttempts int
	Backoff     Backoff
}

// Attempts returns the attempt budget, defaulting to a single attempt.
func (p Policy) Attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Wait returns the delay before the given 1-based retry attempt.
func (p Policy) Wait(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff.Next(attempt)
}

// DefaultPolicy reproduces the legacy fetch behavior: three attempts with no
// delay between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff:     ConstantBackoff{},
	}
}
