package registry

import (
	"context"
	"testing"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgentForRegistry struct {
	agentType core.AgentType
	intents   []core.Intent
}

func (s *stubAgentForRegistry) AgentType() core.AgentType       { return s.agentType }
func (s *stubAgentForRegistry) SupportedIntents() []core.Intent { return s.intents }
func (s *stubAgentForRegistry) Process(context.Context, *core.Context, *core.Payload) (*core.Result, error) {
	return core.SuccessResult(nil, nil, nil), nil
}
func (s *stubAgentForRegistry) Health() core.Health {
	return core.Health{AgentType: s.agentType, SupportedIntents: s.intents, Status: core.HealthHealthy}
}

func newProfileAgent() *stubAgentForRegistry {
	return &stubAgentForRegistry{
		agentType: core.AgentProfile,
		intents:   []core.Intent{core.IntentGetProfile, core.IntentCreateProfile},
	}
}

func TestRegisterMakesAgentResolvableByTypeAndIntent(t *testing.T) {
	r := New()
	agent := newProfileAgent()
	r.Register(agent)

	got, ok := r.Get(core.AgentProfile)
	require.True(t, ok)
	assert.Same(t, agent, got)

	got2, ok := r.GetForIntent(core.IntentGetProfile)
	require.True(t, ok)
	assert.Same(t, agent, got2)
}

func TestReRegisterReplacesPriorEntry(t *testing.T) {
	r := New()
	first := newProfileAgent()
	r.Register(first)

	second := &stubAgentForRegistry{
		agentType: core.AgentProfile,
		intents:   []core.Intent{core.IntentUpdateProfile},
	}
	r.Register(second)

	got, _ := r.Get(core.AgentProfile)
	assert.Same(t, second, got)

	_, ok := r.GetForIntent(core.IntentGetProfile)
	assert.False(t, ok, "stale intent from the replaced agent must no longer resolve")

	got2, ok := r.GetForIntent(core.IntentUpdateProfile)
	require.True(t, ok)
	assert.Same(t, second, got2)
}

func TestUnregisterRestoresObservableState(t *testing.T) {
	r := New()
	agent := newProfileAgent()
	r.Register(agent)
	r.Unregister(core.AgentProfile)

	_, ok := r.Get(core.AgentProfile)
	assert.False(t, ok)
	_, ok = r.GetForIntent(core.IntentGetProfile)
	assert.False(t, ok)
}

func TestUnregisterUnknownTypeIsNoOp(t *testing.T) {
	r := New()
	assert.NotPanics(t, func() { r.Unregister(core.AgentProfile) })
}

func TestRegisteredTypesSortedDeterministically(t *testing.T) {
	r := New()
	r.Register(&stubAgentForRegistry{agentType: core.AgentReviewer})
	r.Register(&stubAgentForRegistry{agentType: core.AgentProfile})

	types := r.RegisteredTypes()
	assert.Equal(t, []core.AgentType{core.AgentProfile, core.AgentReviewer}, types)
}

func TestAllAgentsReturnsEveryRegisteredAgent(t *testing.T) {
	r := New()
	r.Register(&stubAgentForRegistry{agentType: core.AgentReviewer})
	r.Register(&stubAgentForRegistry{agentType: core.AgentProfile})

	assert.Len(t, r.AllAgents(), 2)
}
