// Package registry holds the process-wide Agent registration and its
// derived intent index (spec §4.4). Grounded on the teacher's
// core/discovery.go Registry interface shape (register/unregister/get by
// type) generalized from network service discovery to in-process agent
// lookup; the optional Redis-backed mirror in redis_mirror.go is grounded
// on core/redis_registry.go.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/khushparag/agentic-learning-coach/core"
)

// Registry holds the live AgentType→Agent mapping plus a derived
// intent→Agent index rebuilt on every register/unregister. Registration is
// expected to happen at startup or during controlled reconfiguration, never
// concurrently with the hot path (spec §4.4), so a single RWMutex protecting
// both maps is sufficient.
type Registry struct {
	mu         sync.RWMutex
	byType     map[core.AgentType]core.Agent
	byIntent   map[core.Intent]core.Agent
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{
		byType:   make(map[core.AgentType]core.Agent),
		byIntent: make(map[core.Intent]core.Agent),
	}
}

// Register adds or replaces the agent for its AgentType, rebuilding the
// intent index entries it contributes. Re-registering the same type
// replaces the prior entry (spec §4.4 invariant).
func (r *Registry) Register(agent core.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	agentType := agent.AgentType()
	if prior, ok := r.byType[agentType]; ok {
		for _, intent := range prior.SupportedIntents() {
			if r.byIntent[intent] == prior {
				delete(r.byIntent, intent)
			}
		}
	}

	r.byType[agentType] = agent
	for _, intent := range agent.SupportedIntents() {
		r.byIntent[intent] = agent
	}
}

// Unregister removes the agent registered under agentType, if any, along
// with every intent index entry it owns.
func (r *Registry) Unregister(agentType core.AgentType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	agent, ok := r.byType[agentType]
	if !ok {
		return
	}
	delete(r.byType, agentType)
	for _, intent := range agent.SupportedIntents() {
		if r.byIntent[intent] == agent {
			delete(r.byIntent, intent)
		}
	}
}

// Get resolves an agent by its AgentType.
func (r *Registry) Get(agentType core.AgentType) (core.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.byType[agentType]
	return agent, ok
}

// GetForIntent resolves an agent by a supported intent.
func (r *Registry) GetForIntent(intent core.Intent) (core.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.byIntent[intent]
	return agent, ok
}

// IsRegistered reports whether agentType currently has a registered agent.
func (r *Registry) IsRegistered(agentType core.AgentType) bool {
	_, ok := r.Get(agentType)
	return ok
}

// RegisteredTypes returns every currently-registered AgentType, sorted for
// deterministic iteration (health reports, tests).
func (r *Registry) RegisteredTypes() []core.AgentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]core.AgentType, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// AllAgents returns every currently-registered Agent.
func (r *Registry) AllAgents() []core.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agents := make([]core.Agent, 0, len(r.byType))
	for _, a := range r.byType {
		agents = append(agents, a)
	}
	return agents
}

// String renders a human-readable snapshot, handy for startup logs.
func (r *Registry) String() string {
	types := r.RegisteredTypes()
	return fmt.Sprintf("Registry{%d agents: %v}", len(types), types)
}
