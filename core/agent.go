package core

import (
	"context"
	"time"
)

// Payload is the request body passed to Process. Each intent documents its
// own shape for the Data map; Intent/Workflow/Message/Timeout are the
// envelope- and orchestrator-recognized fields (spec §3, §4.5).
type Payload struct {
	Intent   Intent
	Workflow string
	Message  string
	Timeout  time.Duration
	Data     map[string]interface{}
}

// IntentOrEmpty returns p.Intent, or "" if p is nil.
func (p *Payload) IntentOrEmpty() Intent {
	if p == nil {
		return ""
	}
	return p.Intent
}

// HealthStatus summarizes an agent's operational state.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
)

// Health is the structured response of Agent.Health().
type Health struct {
	AgentType        AgentType
	SupportedIntents []Intent
	BreakerStats     map[string]interface{}
	Status           HealthStatus
}

// Agent is the abstract contract every specialist and the Orchestrator
// implement. See spec §4.1.
type Agent interface {
	AgentType() AgentType
	SupportedIntents() []Intent
	Process(ctx context.Context, rc *Context, payload *Payload) (*Result, error)
	Health() Health
}

// TimeoutFallback is implemented by agents that want to mask a timeout with
// a degraded-but-successful Result instead of surfacing Error{Timeout}.
type TimeoutFallback interface {
	OnTimeout(ctx context.Context, rc *Context, payload *Payload) *Result
}

// ErrorFallback is implemented by agents that want to mask a processing
// error with a degraded-but-successful Result instead of surfacing
// Error{ProcessingError}.
type ErrorFallback interface {
	OnError(ctx context.Context, rc *Context, payload *Payload, cause error) *Result
}

// DefaultTimeouter is implemented by agents that declare their own default
// per-call timeout (spec §4.2's default_timeout, scoped per-agent).
type DefaultTimeouter interface {
	DefaultTimeout() time.Duration
}
