package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/khushparag/agentic-learning-coach/core"
)

// RedisMirror publishes a read-only snapshot of the in-process Registry to
// Redis, so external tooling (ops dashboards, a future multi-process
// deployment) can inspect which agents are live without holding a
// reference into this process. It is a mirror, not a source of truth: the
// in-process Registry remains authoritative, consistent with spec §1's
// non-goal "not a distributed system; the core runs in one process."
// Grounded on the teacher's core/redis_registry.go (namespaced keys, TTL'd
// entries, JSON-marshaled records).
type RedisMirror struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
	logger    core.Logger
}

type mirrorEntry struct {
	AgentType core.AgentType `json:"agent_type"`
	Intents   []core.Intent  `json:"intents"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewRedisMirror builds a mirror over an existing *redis.Client. namespace
// prefixes every key; ttl bounds how long an entry survives without a
// refreshing re-register (0 disables expiry).
func NewRedisMirror(client *redis.Client, namespace string, ttl time.Duration, logger core.Logger) *RedisMirror {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &RedisMirror{client: client, namespace: namespace, ttl: ttl, logger: logger}
}

func (m *RedisMirror) key(agentType core.AgentType) string {
	return fmt.Sprintf("%s:agents:%s", m.namespace, agentType)
}

// Mirror writes (or refreshes) the snapshot entry for agent.
func (m *RedisMirror) Mirror(ctx context.Context, agent core.Agent) error {
	entry := mirrorEntry{
		AgentType: agent.AgentType(),
		Intents:   agent.SupportedIntents(),
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal registry mirror entry: %w", err)
	}
	if err := m.client.Set(ctx, m.key(agent.AgentType()), data, m.ttl).Err(); err != nil {
		m.logger.Warn("registry redis mirror write failed", map[string]interface{}{
			"agent_type": agent.AgentType(),
			"error":      err.Error(),
		})
		return fmt.Errorf("mirror register %s: %w", agent.AgentType(), err)
	}
	return nil
}

// Unmirror removes the snapshot entry for agentType.
func (m *RedisMirror) Unmirror(ctx context.Context, agentType core.AgentType) error {
	if err := m.client.Del(ctx, m.key(agentType)).Err(); err != nil {
		m.logger.Warn("registry redis mirror delete failed", map[string]interface{}{
			"agent_type": agentType,
			"error":      err.Error(),
		})
		return fmt.Errorf("mirror unregister %s: %w", agentType, err)
	}
	return nil
}

// Snapshot reads back every mirrored entry for the given agent types. Used
// by health checks and tests; never consulted on the hot path.
func (m *RedisMirror) Snapshot(ctx context.Context, agentTypes []core.AgentType) (map[core.AgentType][]core.Intent, error) {
	out := make(map[core.AgentType][]core.Intent, len(agentTypes))
	for _, agentType := range agentTypes {
		data, err := m.client.Get(ctx, m.key(agentType)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read mirror entry %s: %w", agentType, err)
		}
		var entry mirrorEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("unmarshal mirror entry %s: %w", agentType, err)
		}
		out[agentType] = entry.Intents
	}
	return out, nil
}

// MirroredRegistry wraps a Registry and best-effort mirrors every
// register/unregister to Redis. Mirror failures are logged, never
// propagated: the in-process Registry is authoritative and must never be
// blocked on Redis availability.
type MirroredRegistry struct {
	*Registry
	mirror *RedisMirror
	logger core.Logger
}

// NewMirroredRegistry builds a Registry whose mutations are shadowed to mirror.
func NewMirroredRegistry(mirror *RedisMirror, logger core.Logger) *MirroredRegistry {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &MirroredRegistry{Registry: New(), mirror: mirror, logger: logger}
}

// Register registers locally, then best-effort mirrors to Redis.
func (r *MirroredRegistry) Register(ctx context.Context, agent core.Agent) {
	r.Registry.Register(agent)
	if r.mirror == nil {
		return
	}
	if err := r.mirror.Mirror(ctx, agent); err != nil {
		r.logger.Warn("registry mirror out of sync", map[string]interface{}{
			"agent_type": agent.AgentType(),
			"error":      err.Error(),
		})
	}
}

// Unregister unregisters locally, then best-effort mirrors the removal.
func (r *MirroredRegistry) Unregister(ctx context.Context, agentType core.AgentType) {
	r.Registry.Unregister(agentType)
	if r.mirror == nil {
		return
	}
	if err := r.mirror.Unmirror(ctx, agentType); err != nil {
		r.logger.Warn("registry mirror out of sync", map[string]interface{}{
			"agent_type": agentType,
			"error":      err.Error(),
		})
	}
}
