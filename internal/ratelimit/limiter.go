// Package ratelimit throttles outgoing explorer API requests. The limiter is
// an explicit collaborator handed to the API client rather than process-wide
// state, so tests can substitute an unlimited limiter or a fake clock.
package ratelimit

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/ratelimit"
)

// Limiter blocks callers as needed to hold request issuance at or below a
// configured rate. Take never errors; it only sleeps.
type Limiter interface {
	// Take blocks until a request may be issued and returns the grant time.
	Take() time.Time
}

// Option customizes limiter construction.
type Option func(*options)

type options struct {
	clock clock.Clock
}

// WithClock makes the limiter measure time against the given clock instead
// of the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}

// NewPerSecond returns a limiter permitting at most rps requests per second.
// A non-positive rps returns an unlimited limiter.
func NewPerSecond(rps int, opts ...Option) Limiter {
	if rps <= 0 {
		return ratelimit.NewUnlimited()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var rlOpts []ratelimit.Option
	if o.clock != nil {
		rlOpts = append(rlOpts, ratelimit.WithClock(o.clock))
	}

	return ratelimit.New(rps, rlOpts...)
}
