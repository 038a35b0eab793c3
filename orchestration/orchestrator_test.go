package orchestration

import (
	"context"
	"testing"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/registry"
	"github.com/khushparag/agentic-learning-coach/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	rtr := router.New()
	o := New(reg, rtr, noFailBreaker("orchestrator"), nil, nil, nil)
	return o, reg
}

func TestOrchestratorUnknownWorkflowIsRejected(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	rc := testRC(t)

	result := o.ExecuteWithProtection(context.Background(), rc, &core.Payload{
		Intent:   core.IntentAssessSkillLevel,
		Workflow: "not_a_real_workflow",
	})
	require.False(t, result.Success)
	assert.Equal(t, core.ErrUnknownWorkflow, result.ErrorCode)
}

func TestOrchestratorRunsEnabledWorkflowEndToEnd(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	profile := &stepAgent{agentType: core.AgentProfile, intents: []core.Intent{core.IntentAssessSkillLevel, core.IntentUpdateGoals, core.IntentSetConstraints}, processFn: alwaysSucceeds(map[string]interface{}{"ok": true})}
	planner := &stepAgent{agentType: core.AgentCurriculumPlanner, intents: []core.Intent{core.IntentCreateLearningPath}, processFn: alwaysSucceeds(map[string]interface{}{"plan_id": "p1"})}
	o.Mount(profile, noFailBreaker("profile"))
	o.Mount(planner, noFailBreaker("planner"))

	rc := testRC(t)
	result := o.ExecuteWithProtection(context.Background(), rc, &core.Payload{
		Intent:   core.IntentAssessSkillLevel,
		Workflow: WorkflowNewLearnerOnboarding,
		Data:     map[string]interface{}{"responses": []string{"a"}},
	})

	require.True(t, result.Success)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, WorkflowNewLearnerOnboarding, data["workflow_name"])
	assert.Equal(t, 4, data["steps_completed"])
}

func TestOrchestratorDisabledWorkflowIsUnknown(t *testing.T) {
	reg := registry.New()
	rtr := router.New()
	o := New(reg, rtr, noFailBreaker("orchestrator"), nil, nil, []string{WorkflowResourceDiscovery})

	rc := testRC(t)
	result := o.ExecuteWithProtection(context.Background(), rc, &core.Payload{
		Intent:   core.IntentAssessSkillLevel,
		Workflow: WorkflowNewLearnerOnboarding,
	})
	require.False(t, result.Success)
	assert.Equal(t, core.ErrUnknownWorkflow, result.ErrorCode)
}

func TestOrchestratorRoutesExplicitIntent(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	profile := &stepAgent{agentType: core.AgentProfile, intents: []core.Intent{core.IntentGetProfile}, processFn: alwaysSucceeds(map[string]interface{}{"name": "ada"})}
	o.Mount(profile, noFailBreaker("profile"))

	rc := testRC(t)
	result := o.ExecuteWithProtection(context.Background(), rc, &core.Payload{Intent: core.IntentGetProfile})
	require.True(t, result.Success)
	assert.Equal(t, "ada", result.Data.(map[string]interface{})["name"])
}

func TestOrchestratorExplicitIntentWithoutMountedAgentIsUnavailable(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	rc := testRC(t)
	result := o.ExecuteWithProtection(context.Background(), rc, &core.Payload{Intent: core.IntentGetProfile})
	require.False(t, result.Success)
	assert.Equal(t, core.ErrAgentUnavailable, result.ErrorCode)
}

func TestOrchestratorLowConfidenceMessageAsksForClarification(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	rc := testRC(t)
	result := o.ExecuteWithProtection(context.Background(), rc, &core.Payload{Message: "zzz qqq unrelated gibberish"})
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data.(map[string]interface{})["needs_clarification"])
}

func TestOrchestratorHighConfidenceMessageRoutesThrough(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	profile := &stepAgent{agentType: core.AgentProfile, intents: []core.Intent{core.IntentGetStreakInfo}, processFn: alwaysSucceeds(map[string]interface{}{"streak": 5})}
	tracker := &stepAgent{agentType: core.AgentProgressTracker, intents: []core.Intent{core.IntentGetStreakInfo}, processFn: alwaysSucceeds(map[string]interface{}{"streak": 5})}
	_ = profile
	o.Mount(tracker, noFailBreaker("tracker"))

	rc := testRC(t)
	result := o.ExecuteWithProtection(context.Background(), rc, &core.Payload{Message: "how many days in a row have I been practicing my streak"})
	require.True(t, result.Success)
	assert.Equal(t, 5, result.Data.(map[string]interface{})["streak"])
	assert.Equal(t, true, result.Metadata["resolved_from_message"])
}

func TestOrchestratorHealthReflectsMountedAgents(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	profile := &stepAgent{agentType: core.AgentProfile, intents: []core.Intent{core.IntentGetProfile}, processFn: alwaysSucceeds(nil)}
	o.Mount(profile, noFailBreaker("profile"))

	health := o.Health()
	assert.Equal(t, core.AgentOrchestrator, health.AgentType)
	assert.Contains(t, health.BreakerStats, "profile")
	assert.Contains(t, health.BreakerStats, "orchestrator")
	assert.Equal(t, core.HealthDegraded, health.Status)
}
