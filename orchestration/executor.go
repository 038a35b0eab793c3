package orchestration

import (
	"context"
	"fmt"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/registry"
)

// envelopeResolver looks up the protection-wrapped entry point for an
// AgentType, so the executor never calls Agent.Process directly — every
// hop into a specialist goes through that specialist's own envelope
// (breaker, timeout, fallback), per spec §4.5.1 step b.
type envelopeResolver interface {
	Envelope(agentType core.AgentType) (*core.Envelope, bool)
}

// Executor runs a Workflow's Steps against the Registry, maintaining the
// running prior_outputs map the spec's algorithm threads through every
// PayloadTransform. Grounded on the teacher's orchestration/workflow_engine.go
// step-iteration shape, replacing its YAML DAG resolution with a plain
// ordered slice walk since spec §4.5.1's catalog is small and fixed.
type Executor struct {
	registry *registry.Registry
	envelope envelopeResolver
	logger   core.Logger
}

// NewExecutor builds an Executor over reg (for AgentUnavailable checks) and
// envelopes (for dispatch).
func NewExecutor(reg *registry.Registry, envelopes envelopeResolver, logger core.Logger) *Executor {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &Executor{registry: reg, envelope: envelopes, logger: logger}
}

// Run executes every step of wf in order, honoring each step's OnFailure
// policy and ConditionalNext branch, and returns the single Result the
// Orchestrator reports back to its own caller (spec §4.5.1).
func (x *Executor) Run(ctx context.Context, rc *core.Context, wf *Workflow) *core.Result {
	priorOutputs := make(map[int]*core.Result, len(wf.Steps))
	outputs := make([]map[string]interface{}, 0, len(wf.Steps))
	steps := append([]Step(nil), wf.Steps...)

	stepIndex := 0
	for i := 0; i < len(steps); i++ {
		step := steps[i]
		result, aborted := x.runStep(ctx, rc, wf.Name, stepIndex, step, priorOutputs)
		priorOutputs[stepIndex] = result
		outputs = append(outputs, map[string]interface{}{
			"step":       stepIndex,
			"agent_type": step.AgentType,
			"intent":     step.Intent,
			"result":     result,
		})
		stepIndex++

		if aborted {
			return core.ErrorResult(
				fmt.Sprintf("workflow %q aborted at step %d (%s/%s): %s", wf.Name, stepIndex-1, step.AgentType, step.Intent, result.Error),
				result.ErrorCode,
				map[string]interface{}{
					"workflow_step":   stepIndex - 1,
					"partial_outputs": outputs,
				},
			)
		}

		if result.Success && step.ConditionalNext != nil {
			if extra := step.ConditionalNext(rc, result); extra != nil {
				// Splice the conditional step in immediately after this one.
				rest := append([]Step(nil), steps[i+1:]...)
				steps = append(steps[:i+1], append([]Step{*extra}, rest...)...)
			}
		}
	}

	var nextActions []string
	if len(priorOutputs) > 0 {
		if last := priorOutputs[stepIndex-1]; last != nil {
			nextActions = last.NextActions
		}
	}

	return core.SuccessResult(
		map[string]interface{}{
			"workflow_name":   wf.Name,
			"steps_completed": stepIndex,
			"outputs":         outputs,
		},
		nextActions,
		nil,
	)
}

// runStep dispatches one step and reports whether its OnFailure policy
// demands the workflow abort.
func (x *Executor) runStep(ctx context.Context, rc *core.Context, workflowName string, index int, step Step, priorOutputs map[int]*core.Result) (*core.Result, bool) {
	payload := x.buildPayload(step, rc, priorOutputs)

	result := x.invoke(ctx, rc, step.AgentType, payload)
	if result.Success {
		return result, false
	}

	x.logger.WarnWithContext(ctx, "workflow step failed", map[string]interface{}{
		"workflow":   workflowName,
		"step":       index,
		"agent_type": step.AgentType,
		"intent":     step.Intent,
		"error_code": result.ErrorCode,
	})

	switch step.OnFailure.Policy {
	case PolicyContinue:
		return result, false
	case PolicyFallback:
		fallbackAgent, ok := x.registry.GetForIntent(step.OnFailure.FallbackIntent)
		if !ok {
			return core.ErrorResult(
				fmt.Sprintf("no agent registered for fallback intent %q", step.OnFailure.FallbackIntent),
				core.ErrNoAgentForIntent,
				nil,
			), true
		}
		fallbackPayload := &core.Payload{
			Intent:  step.OnFailure.FallbackIntent,
			Timeout: payload.Timeout,
			Data:    payload.Data,
		}
		fbResult := x.invoke(ctx, rc, fallbackAgent.AgentType(), fallbackPayload)
		// A fallback step's own failure still aborts: spec §4.5.1 step e
		// names Fallback as a substitute call, not a retry loop.
		return fbResult, !fbResult.Success
	default: // PolicyAbort, and the zero value.
		return result, true
	}
}

// buildPayload applies step.PayloadTransform, defaulting to a bare
// intent-only payload when none is declared (spec §4.5.1 step a).
func (x *Executor) buildPayload(step Step, rc *core.Context, priorOutputs map[int]*core.Result) *core.Payload {
	var payload *core.Payload
	if step.PayloadTransform != nil {
		payload = step.PayloadTransform(rc, priorOutputs)
	} else {
		payload = &core.Payload{Intent: step.Intent}
	}
	if payload.Intent == "" {
		payload.Intent = step.Intent
	}
	if step.Timeout > 0 {
		payload.Timeout = step.Timeout
	}
	return payload
}

// invoke resolves agentType's envelope and executes payload through it,
// reporting AgentUnavailable when the agent isn't registered.
func (x *Executor) invoke(ctx context.Context, rc *core.Context, agentType core.AgentType, payload *core.Payload) *core.Result {
	env, ok := x.envelope.Envelope(agentType)
	if !ok {
		return core.ErrorResult(
			fmt.Sprintf("no envelope registered for agent %q", agentType),
			core.ErrAgentUnavailable,
			map[string]interface{}{"agent_type": agentType},
		)
	}
	return env.Execute(ctx, rc, payload)
}
