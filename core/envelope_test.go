package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBreaker lets tests dictate exactly what Execute returns without
// depending on package resilience's timing-sensitive state machine.
type fakeBreaker struct {
	forcedErr error
	callFn    bool
	calls     int
}

func (f *fakeBreaker) Execute(ctx context.Context, _ time.Duration, fn func(context.Context) error) error {
	f.calls++
	if f.forcedErr != nil && !f.callFn {
		return f.forcedErr
	}
	err := fn(ctx)
	if f.forcedErr != nil {
		return f.forcedErr
	}
	return err
}
func (f *fakeBreaker) State() string                    { return "closed" }
func (f *fakeBreaker) Stats() map[string]interface{}    { return map[string]interface{}{} }
func (f *fakeBreaker) Reset()                           {}

type stubAgent struct {
	agentType  AgentType
	intents    []Intent
	result     *Result
	err        error
	onTimeout  func(ctx context.Context, rc *Context, p *Payload) *Result
	onError    func(ctx context.Context, rc *Context, p *Payload, cause error) *Result
	defaultTO  time.Duration
	haveTO     bool
}

func (s *stubAgent) AgentType() AgentType          { return s.agentType }
func (s *stubAgent) SupportedIntents() []Intent    { return s.intents }
func (s *stubAgent) Process(ctx context.Context, rc *Context, p *Payload) (*Result, error) {
	return s.result, s.err
}
func (s *stubAgent) Health() Health {
	return Health{AgentType: s.agentType, SupportedIntents: s.intents, Status: HealthHealthy}
}
func (s *stubAgent) OnTimeout(ctx context.Context, rc *Context, p *Payload) *Result {
	if s.onTimeout == nil {
		return nil
	}
	return s.onTimeout(ctx, rc, p)
}
func (s *stubAgent) OnError(ctx context.Context, rc *Context, p *Payload, cause error) *Result {
	if s.onError == nil {
		return nil
	}
	return s.onError(ctx, rc, p, cause)
}
func (s *stubAgent) DefaultTimeout() time.Duration {
	return s.defaultTO
}

func mustContext(t *testing.T) *Context {
	t.Helper()
	rc, err := NewContext("user-1", "sess-1")
	require.NoError(t, err)
	return rc
}

func TestEnvelopeValidationRejectsMissingIntent(t *testing.T) {
	agent := &stubAgent{agentType: AgentProfile, intents: []Intent{IntentGetProfile}}
	breaker := &fakeBreaker{}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{})

	assert.False(t, res.Success)
	assert.Equal(t, ErrValidation, res.ErrorCode)
	assert.Zero(t, breaker.calls, "breaker must not be consulted on validation failure")
}

func TestEnvelopeValidationRejectsUnsupportedIntent(t *testing.T) {
	agent := &stubAgent{agentType: AgentProfile, intents: []Intent{IntentGetProfile}}
	breaker := &fakeBreaker{}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{Intent: IntentUpdateGoals})

	assert.False(t, res.Success)
	assert.Equal(t, ErrValidation, res.ErrorCode)
	assert.Zero(t, breaker.calls)
}

func TestEnvelopeSuccessPassesThrough(t *testing.T) {
	want := SuccessResult(map[string]interface{}{"ok": true}, nil, nil)
	agent := &stubAgent{agentType: AgentProfile, intents: []Intent{IntentGetProfile}, result: want}
	breaker := &fakeBreaker{}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{Intent: IntentGetProfile})

	assert.True(t, res.Success)
	assert.Equal(t, want.Data, res.Data)
	assert.Equal(t, 1, breaker.calls)
}

func TestEnvelopeCircuitOpenSkipsProcessAndFallback(t *testing.T) {
	called := false
	agent := &stubAgent{
		agentType: AgentProfile,
		intents:   []Intent{IntentGetProfile},
		onError:   func(context.Context, *Context, *Payload, error) *Result { called = true; return nil },
	}
	breaker := &fakeBreaker{forcedErr: ErrBreakerOpen}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{Intent: IntentGetProfile})

	assert.False(t, res.Success)
	assert.Equal(t, ErrCircuitOpen, res.ErrorCode)
	assert.False(t, called, "fallback must not run when circuit is open")
}

func TestEnvelopeTimeoutUsesFallbackWhenDefined(t *testing.T) {
	fallback := SuccessResult("cached", nil, nil)
	agent := &stubAgent{
		agentType: AgentProfile,
		intents:   []Intent{IntentGetProfile},
		onTimeout: func(context.Context, *Context, *Payload) *Result { return fallback },
	}
	breaker := &fakeBreaker{forcedErr: context.DeadlineExceeded, callFn: true}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{Intent: IntentGetProfile})

	assert.True(t, res.Success)
	assert.Equal(t, "cached", res.Data)
	assert.Equal(t, "timeout", res.Metadata["fallback_used"])
}

func TestEnvelopeTimeoutWithoutFallbackReturnsTimeoutError(t *testing.T) {
	agent := &stubAgent{agentType: AgentProfile, intents: []Intent{IntentGetProfile}}
	breaker := &fakeBreaker{forcedErr: context.DeadlineExceeded, callFn: true}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{Intent: IntentGetProfile})

	assert.False(t, res.Success)
	assert.Equal(t, ErrTimeout, res.ErrorCode)
}

func TestEnvelopeProcessingErrorUsesFallbackWhenDefined(t *testing.T) {
	fallback := SuccessResult("degraded", nil, nil)
	boom := errors.New("boom")
	agent := &stubAgent{
		agentType: AgentProfile,
		intents:   []Intent{IntentGetProfile},
		err:       boom,
		onError:   func(context.Context, *Context, *Payload, error) *Result { return fallback },
	}
	breaker := &fakeBreaker{}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{Intent: IntentGetProfile})

	assert.True(t, res.Success)
	assert.Equal(t, "degraded", res.Data)
	assert.Equal(t, "error", res.Metadata["fallback_used"])
}

func TestEnvelopeProcessingErrorWithoutFallbackReturnsProcessingError(t *testing.T) {
	boom := errors.New("boom")
	agent := &stubAgent{agentType: AgentProfile, intents: []Intent{IntentGetProfile}, err: boom}
	breaker := &fakeBreaker{}
	env := NewEnvelope(agent, breaker, nil, nil)

	res := env.Execute(context.Background(), mustContext(t), &Payload{Intent: IntentGetProfile})

	assert.False(t, res.Success)
	assert.Equal(t, ErrProcessingError, res.ErrorCode)
}

func TestEnvelopeEffectiveTimeoutPrefersPayloadThenAgentThenDefault(t *testing.T) {
	agent := &stubAgent{agentType: AgentProfile, intents: []Intent{IntentGetProfile}, defaultTO: 5 * time.Second}
	env := NewEnvelope(agent, &fakeBreaker{}, nil, nil)

	assert.Equal(t, 2*time.Second, env.effectiveTimeout(&Payload{Timeout: 2 * time.Second}))
	assert.Equal(t, 5*time.Second, env.effectiveTimeout(&Payload{}))

	noDefaultAgent := &stubAgent{agentType: AgentProfile, intents: []Intent{IntentGetProfile}}
	env2 := NewEnvelope(noDefaultAgent, &fakeBreaker{}, nil, nil)
	assert.Equal(t, defaultEnvelopeTimeout, env2.effectiveTimeout(&Payload{}))
}
