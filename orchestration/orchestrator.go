package orchestration

import (
	"context"
	"fmt"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/registry"
	"github.com/khushparag/agentic-learning-coach/router"
)

// Orchestrator is itself an Agent (spec §4.5): it inherits the same
// protection envelope every specialist runs under, rather than carrying a
// bespoke entry point. Grounded on the teacher's orchestration/orchestrator.go
// for the "orchestrator mounts specialists behind their own envelopes"
// idiom, trimmed down from its HITL/LLM-DAG machinery to the three dispatch
// modes spec §4.5 actually calls for.
type Orchestrator struct {
	registry  *registry.Registry
	router    *router.Router
	executor  *Executor
	envelopes map[core.AgentType]*core.Envelope

	logger    core.Logger
	telemetry core.Telemetry

	enabledWorkflows map[string]bool

	selfEnvelope *core.Envelope
}

// New builds an Orchestrator wired to reg and rtr, protected by its own
// breaker. enabledWorkflows restricts which catalog entries mode 1 will
// run; a nil or empty slice enables all of them (spec §6's
// workflows.enabled default).
func New(reg *registry.Registry, rtr *router.Router, breaker core.CircuitBreaker, logger core.Logger, telemetry core.Telemetry, enabledWorkflows []string) *Orchestrator {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	if telemetry == nil {
		telemetry = core.NoOpTelemetry{}
	}

	o := &Orchestrator{
		registry:         reg,
		router:           rtr,
		envelopes:        make(map[core.AgentType]*core.Envelope),
		logger:           logger,
		telemetry:        telemetry,
		enabledWorkflows: enabledWorkflowSet(enabledWorkflows),
	}
	o.executor = NewExecutor(reg, o, logger)
	o.selfEnvelope = core.NewEnvelope(o, breaker, logger, telemetry)
	return o
}

func enabledWorkflowSet(names []string) map[string]bool {
	if len(names) == 0 {
		return map[string]bool{
			WorkflowNewLearnerOnboarding: true,
			WorkflowExerciseSubmission:   true,
			WorkflowResourceDiscovery:    true,
		}
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Mount registers a specialist with the Registry and gives it its own
// breaker-protected envelope, so every hop the executor or mode-2 dispatch
// makes goes through that specialist's own protection (spec §4.1, applied
// per agent rather than once globally).
func (o *Orchestrator) Mount(agent core.Agent, breaker core.CircuitBreaker) {
	o.registry.Register(agent)
	o.envelopes[agent.AgentType()] = core.NewEnvelope(agent, breaker, o.logger, o.telemetry)
}

// Envelope resolves the protection-wrapped entry point for agentType,
// satisfying executor.go's envelopeResolver.
func (o *Orchestrator) Envelope(agentType core.AgentType) (*core.Envelope, bool) {
	env, ok := o.envelopes[agentType]
	return env, ok
}

// ExecuteWithProtection is the single primary entry point callers use:
// run payload through the Orchestrator's own envelope. Everything below
// this (Process) assumes validation and breaker admission already happened.
func (o *Orchestrator) ExecuteWithProtection(ctx context.Context, rc *core.Context, payload *core.Payload) *core.Result {
	return o.selfEnvelope.Execute(ctx, rc, payload)
}

// AgentType implements core.Agent.
func (o *Orchestrator) AgentType() core.AgentType { return core.AgentOrchestrator }

// SupportedIntents implements core.Agent: the Orchestrator answers to
// every routable intent directly (mode 2), on top of accepting bare
// workflow/message payloads that carry no intent at all (mode 1 and 3,
// permitted by the envelope's relaxed validation for those two payload
// shapes — see core/envelope.go).
func (o *Orchestrator) SupportedIntents() []core.Intent { return core.RoutableIntents }

// Process implements the three dispatch modes of spec §4.5, in the
// precedence order the spec lists them: explicit workflow first, then
// explicit intent, then natural-language classification.
func (o *Orchestrator) Process(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	switch {
	case payload.Workflow != "":
		return o.runWorkflow(ctx, rc, payload)
	case payload.Intent != "":
		return o.routeIntent(ctx, rc, payload)
	case payload.Message != "":
		return o.classifyMessage(ctx, rc, payload)
	default:
		return core.ErrorResult("payload must set workflow, intent, or message", core.ErrValidation, nil), nil
	}
}

func (o *Orchestrator) runWorkflow(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	if !o.enabledWorkflows[payload.Workflow] {
		return core.ErrorResult(
			fmt.Sprintf("workflow %q is not enabled", payload.Workflow),
			core.ErrUnknownWorkflow,
			nil,
		), nil
	}
	builder, ok := Builders[payload.Workflow]
	if !ok {
		return core.ErrorResult(
			fmt.Sprintf("unknown workflow %q", payload.Workflow),
			core.ErrUnknownWorkflow,
			nil,
		), nil
	}
	wf := builder(payload)
	return o.executor.Run(ctx, rc, wf), nil
}

func (o *Orchestrator) routeIntent(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	agentType, ok := o.router.RouteIntent(payload.Intent)
	if !ok {
		return core.ErrorResult(
			fmt.Sprintf("no agent registered to handle intent %q", payload.Intent),
			core.ErrNoAgentForIntent,
			nil,
		), nil
	}
	env, ok := o.Envelope(agentType)
	if !ok {
		return core.ErrorResult(
			fmt.Sprintf("agent %q is not mounted", agentType),
			core.ErrAgentUnavailable,
			map[string]interface{}{"agent_type": agentType},
		), nil
	}
	return env.Execute(ctx, rc, payload), nil
}

func (o *Orchestrator) classifyMessage(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	classification := o.router.ClassifyMessage(payload.Message)
	if classification.Confidence < o.router.MinConfidence {
		return core.SuccessResult(
			map[string]interface{}{
				"needs_clarification": true,
				"best_guess":          classification.Intent,
				"confidence":          classification.Confidence,
				"alternatives":        classification.AlternativeIntents,
			},
			nil,
			nil,
		), nil
	}

	resolved := &core.Payload{
		Intent:  classification.Intent,
		Timeout: payload.Timeout,
		Data:    payload.Data,
	}
	result, err := o.routeIntent(ctx, rc, resolved)
	if result != nil {
		result = result.WithMetadata("resolved_from_message", true).WithMetadata("classification_confidence", classification.Confidence)
	}
	return result, err
}

// Health implements core.Agent, summarizing every mounted specialist's
// breaker state alongside the Orchestrator's own.
func (o *Orchestrator) Health() core.Health {
	return core.Health{
		AgentType:        core.AgentOrchestrator,
		SupportedIntents: core.RoutableIntents,
		BreakerStats:     o.aggregateBreakerStats(),
		Status:           o.status(),
	}
}

func (o *Orchestrator) aggregateBreakerStats() map[string]interface{} {
	stats := make(map[string]interface{}, len(o.envelopes)+1)
	stats["orchestrator"] = o.selfEnvelope.BreakerStats()
	for agentType, env := range o.envelopes {
		stats[string(agentType)] = env.BreakerStats()
	}
	stats["registered_agents"] = o.registry.RegisteredTypes()
	stats["available_workflows"] = o.availableWorkflows()
	return stats
}

func (o *Orchestrator) availableWorkflows() []string {
	names := make([]string, 0, len(o.enabledWorkflows))
	for name, enabled := range o.enabledWorkflows {
		if enabled {
			names = append(names, name)
		}
	}
	return names
}

func (o *Orchestrator) status() core.HealthStatus {
	for _, agentType := range core.AllAgentTypes {
		if !o.registry.IsRegistered(agentType) {
			return core.HealthDegraded
		}
	}
	return core.HealthHealthy
}
