// Package resilience implements the circuit breaker that protects every
// agent call. Grounded on the teacher's resilience/circuit_breaker.go
// structure (atomic state, exclusive guard released before the wrapped call
// runs, Logger/Metrics injection) but replacing the teacher's sliding-window
// error-rate state machine with the consecutive-failure/recovery-timeout
// machine this runtime's original Python implementation used.
package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/khushparag/agentic-learning-coach/core"
)

// State is one of the three circuit breaker states.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Config holds the breaker's configuration. Defaults match spec §4.2.
type Config struct {
	Name             string
	FailureThreshold int
	RecoveryTimeout  time.Duration
	SuccessThreshold int
	DefaultTimeout   time.Duration
	Logger           core.Logger
}

// DefaultConfig returns the spec-mandated defaults for the named breaker.
func DefaultConfig(name string) *Config {
	return &Config{
		Name:             name,
		FailureThreshold: 5,
		RecoveryTimeout:  60 * time.Second,
		SuccessThreshold: 3,
		DefaultTimeout:   30 * time.Second,
		Logger:           core.NoOpLogger{},
	}
}

func (c *Config) applyDefaults() {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.RecoveryTimeout <= 0 {
		c.RecoveryTimeout = 60 * time.Second
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = 3
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = core.NoOpLogger{}
	}
}

// CircuitBreaker is a deterministic three-state failure isolator. It
// implements core.CircuitBreaker. State mutation is always performed under
// mu, but mu is released before the wrapped operation runs, so long calls
// never serialize unrelated callers (spec §4.2 per-call procedure).
type CircuitBreaker struct {
	config Config

	mu                  sync.Mutex
	state               State
	consecutiveFailures int
	halfOpenSuccesses   int
	totalCalls          uint64
	stateChanges        uint64
	lastFailureAt       time.Time
	lastSuccessAt       time.Time
}

// New builds a circuit breaker from config, applying spec defaults for any
// zero-valued field.
func New(config Config) *CircuitBreaker {
	config.applyDefaults()
	return &CircuitBreaker{config: config, state: StateClosed}
}

// State returns the current state as a string, satisfying core.CircuitBreaker.
func (cb *CircuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state.String()
}

// admit evaluates whether a call should proceed, per the §4.2 transition
// table, and performs the Open→HalfOpen transition if the recovery timeout
// has elapsed. Returns false if the call must be rejected.
func (cb *CircuitBreaker) admit() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if time.Since(cb.lastFailureAt) < cb.config.RecoveryTimeout {
			return false
		}
		cb.transitionLocked(StateHalfOpen)
		cb.halfOpenSuccesses = 0
		return true
	default:
		return false
	}
}

// Execute runs fn under breaker protection with the given timeout. It
// implements the five-step per-call procedure in spec §4.2.
func (cb *CircuitBreaker) Execute(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if !cb.admit() {
		cb.config.Logger.Debug("circuit breaker rejected call", map[string]interface{}{
			"breaker": cb.config.Name,
			"state":   "open",
		})
		return fmt.Errorf("breaker %q is open: %w", cb.config.Name, core.ErrBreakerOpen)
	}

	cb.mu.Lock()
	cb.totalCalls++
	cb.mu.Unlock()

	if timeout <= 0 {
		timeout = cb.config.DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(callCtx)
	}()

	select {
	case err := <-done:
		cb.recordOutcome(err)
		return err
	case <-callCtx.Done():
		// Timeout counts as a failure; the goroutine is abandoned and its
		// eventual result discarded (cooperative cancellation is the
		// operation's responsibility via callCtx).
		cb.recordOutcome(context.DeadlineExceeded)
		return context.DeadlineExceeded
	}
}

func (cb *CircuitBreaker) recordOutcome(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.lastSuccessAt = time.Now()
		switch cb.state {
		case StateClosed:
			cb.consecutiveFailures = 0
		case StateHalfOpen:
			cb.halfOpenSuccesses++
			if cb.halfOpenSuccesses >= cb.config.SuccessThreshold {
				cb.transitionLocked(StateClosed)
				cb.consecutiveFailures = 0
				cb.halfOpenSuccesses = 0
			}
		}
		return
	}

	cb.lastFailureAt = time.Now()
	switch cb.state {
	case StateClosed:
		cb.consecutiveFailures++
		if cb.consecutiveFailures >= cb.config.FailureThreshold {
			cb.transitionLocked(StateOpen)
		}
	case StateHalfOpen:
		cb.transitionLocked(StateOpen)
		cb.halfOpenSuccesses = 0
	}
}

// transitionLocked changes state; mu must already be held.
func (cb *CircuitBreaker) transitionLocked(to State) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	cb.stateChanges++
	cb.config.Logger.Info("circuit breaker state changed", map[string]interface{}{
		"breaker": cb.config.Name,
		"from":    from.String(),
		"to":      to.String(),
	})
}

// Stats returns a snapshot per spec §4.2's get_stats().
func (cb *CircuitBreaker) Stats() map[string]interface{} {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	stats := map[string]interface{}{
		"name":                 cb.config.Name,
		"state":                cb.state.String(),
		"consecutive_failures": cb.consecutiveFailures,
		"half_open_successes":  cb.halfOpenSuccesses,
		"total_calls":          cb.totalCalls,
		"state_changes":        cb.stateChanges,
		"failure_threshold":    cb.config.FailureThreshold,
		"recovery_timeout":     cb.config.RecoveryTimeout.String(),
		"success_threshold":    cb.config.SuccessThreshold,
		"default_timeout":      cb.config.DefaultTimeout.String(),
	}
	if !cb.lastFailureAt.IsZero() {
		stats["last_failure_at"] = cb.lastFailureAt
	}
	if !cb.lastSuccessAt.IsZero() {
		stats["last_success_at"] = cb.lastSuccessAt
	}
	return stats
}

// Reset returns the breaker to Closed with zeroed counters. Idempotent.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.consecutiveFailures = 0
	cb.halfOpenSuccesses = 0
	cb.totalCalls = 0
	cb.stateChanges = 0
	cb.lastFailureAt = time.Time{}
	cb.lastSuccessAt = time.Time{}
}

var _ core.CircuitBreaker = (*CircuitBreaker)(nil)
