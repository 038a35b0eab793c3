package core

import (
	"context"
	"time"
)

// CircuitBreaker is the interface the protection envelope depends on.
// Concrete implementations live in package resilience; this interface
// exists so core never imports resilience (avoiding the cycle resilience
// -> core -> resilience), mirroring the teacher's split between
// core/circuit_breaker.go (interface) and resilience/circuit_breaker.go
// (implementation).
type CircuitBreaker interface {
	// Execute runs fn under circuit breaker protection with the given
	// timeout (0 means no deadline beyond ctx's own). fn receives a
	// context carrying that deadline. Returns ErrBreakerOpen without
	// calling fn if the circuit is open; returns context.DeadlineExceeded
	// if fn doesn't finish in time; otherwise returns fn's error.
	Execute(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error

	// State returns "closed", "open", or "half_open".
	State() string

	// Stats returns a snapshot of counters, timestamps, and configuration.
	Stats() map[string]interface{}

	// Reset returns the breaker to Closed with zeroed counters.
	Reset()
}
