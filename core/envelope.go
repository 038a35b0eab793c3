package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// defaultEnvelopeTimeout is used when neither payload.Timeout nor the
// agent's own DefaultTimeout() is set.
const defaultEnvelopeTimeout = 30 * time.Second

// Envelope is the protection wrapper every call to an Agent.Process passes
// through: validate, then execute under the circuit breaker with a timeout,
// then fall back on timeout or processing error. See spec §4.1.
//
// An Envelope is built once per agent and reused across calls; it holds no
// per-request state.
type Envelope struct {
	agent     Agent
	breaker   CircuitBreaker
	logger    Logger
	telemetry Telemetry
}

// NewEnvelope wraps agent with breaker protection. logger and telemetry may
// be nil, in which case NoOpLogger/NoOpTelemetry are used.
func NewEnvelope(agent Agent, breaker CircuitBreaker, logger Logger, telemetry Telemetry) *Envelope {
	if logger == nil {
		logger = NoOpLogger{}
	}
	if telemetry == nil {
		telemetry = NoOpTelemetry{}
	}
	return &Envelope{agent: agent, breaker: breaker, logger: logger, telemetry: telemetry}
}

// Execute runs payload through the envelope's agent. It always returns a
// non-nil Result: validation failures, circuit-open rejections, timeouts,
// and processing errors are all reported as Error-variant Results rather
// than Go errors, so callers (the orchestrator, tests) have one shape to
// inspect. See spec §4.1 steps 1-6.
func (e *Envelope) Execute(ctx context.Context, rc *Context, payload *Payload) *Result {
	ctx = WithCorrelationID(ctx, rc.CorrelationID)
	ctx, span := e.telemetry.StartSpan(ctx, "envelope.execute")
	defer span.End()
	span.SetAttribute("agent_type", string(e.agent.AgentType()))
	span.SetAttribute("intent", string(payload.IntentOrEmpty()))

	fields := map[string]interface{}{
		"agent_type": e.agent.AgentType(),
		"intent":     payload.IntentOrEmpty(),
		"user_id":    rc.UserID,
		"session_id": rc.SessionID,
	}
	e.logger.InfoWithContext(ctx, "envelope call started", fields)

	// Step 1: validate. Validation failures never touch the breaker.
	if err := e.validate(rc, payload); err != nil {
		span.RecordError(err)
		e.logger.WarnWithContext(ctx, "envelope validation failed", mergeFields(fields, map[string]interface{}{"error": err.Error()}))
		return ErrorResult(err.Error(), ErrValidation, nil)
	}

	// Step 2: execute under the breaker with the effective timeout.
	timeout := e.effectiveTimeout(payload)
	var result *Result
	var procErr error
	breakerErr := e.breaker.Execute(ctx, timeout, func(callCtx context.Context) error {
		result, procErr = e.agent.Process(callCtx, rc, payload)
		return procErr
	})

	switch {
	case breakerErr == nil:
		e.logger.InfoWithContext(ctx, "envelope call completed", fields)
		if result == nil {
			result = SuccessResult(nil, nil, nil)
		}
		return result

	case errors.Is(breakerErr, ErrBreakerOpen):
		// Step 5: circuit open. process/fallbacks are never invoked.
		span.RecordError(breakerErr)
		e.logger.WarnWithContext(ctx, "envelope rejected: circuit open", fields)
		return ErrorResult("circuit breaker is open for "+string(e.agent.AgentType()), ErrCircuitOpen, nil)

	case errors.Is(breakerErr, context.DeadlineExceeded):
		// Step 3: timeout.
		span.RecordError(breakerErr)
		e.logger.WarnWithContext(ctx, "envelope call timed out", mergeFields(fields, map[string]interface{}{"timeout": timeout.String()}))
		if fb, ok := e.agent.(TimeoutFallback); ok {
			if fr := fb.OnTimeout(ctx, rc, payload); fr != nil {
				e.logger.InfoWithContext(ctx, "envelope timeout fallback used", fields)
				return fr.WithMetadata("fallback_used", "timeout")
			}
		}
		return ErrorResult(fmt.Sprintf("%s timed out after %s", e.agent.AgentType(), timeout), ErrTimeout, nil)

	default:
		// Step 4: processing error. The breaker has already recorded the failure.
		span.RecordError(breakerErr)
		e.logger.ErrorWithContext(ctx, "envelope call failed", mergeFields(fields, map[string]interface{}{"error": breakerErr.Error()}))
		if fb, ok := e.agent.(ErrorFallback); ok {
			if fr := fb.OnError(ctx, rc, payload, breakerErr); fr != nil {
				e.logger.InfoWithContext(ctx, "envelope error fallback used", fields)
				return fr.WithMetadata("fallback_used", "error")
			}
		}
		code := ErrProcessingError
		if result != nil && result.ErrorCode != "" {
			code = result.ErrorCode
		}
		return ErrorResult(breakerErr.Error(), code, nil)
	}
}

// BreakerStats exposes the wrapped breaker's stats for health reporting
// (spec §6's Health interface names "per-agent breaker state").
func (e *Envelope) BreakerStats() map[string]interface{} {
	return e.breaker.Stats()
}

func (e *Envelope) validate(rc *Context, payload *Payload) error {
	if rc == nil || rc.UserID == "" {
		return ErrMissingUserID
	}
	if rc.SessionID == "" {
		return ErrMissingSessionID
	}
	if payload == nil {
		return ErrMissingIntent
	}
	if payload.Intent == "" {
		// A bare workflow or natural-language request carries no intent of
		// its own yet; the Orchestrator resolves one internally (spec
		// §4.5 modes 1 and 3) before ever calling a specialist's envelope.
		if payload.Workflow != "" || payload.Message != "" {
			return nil
		}
		return ErrMissingIntent
	}
	for _, supported := range e.agent.SupportedIntents() {
		if supported == payload.Intent {
			return nil
		}
	}
	return fmt.Errorf("%s does not support intent %q: %w", e.agent.AgentType(), payload.Intent, ErrUnsupportedIntent)
}

func (e *Envelope) effectiveTimeout(payload *Payload) time.Duration {
	if payload.Timeout > 0 {
		return payload.Timeout
	}
	if dt, ok := e.agent.(DefaultTimeouter); ok {
		if d := dt.DefaultTimeout(); d > 0 {
			return d
		}
	}
	return defaultEnvelopeTimeout
}

func mergeFields(base, extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
