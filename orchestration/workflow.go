// Package orchestration implements the Orchestrator agent: single-intent
// routing, the declarative workflow engine, and the fixed workflow catalog
// (spec §4.5). Grounded on the teacher's orchestration/workflow_engine.go
// for naming conventions (WorkflowDefinition, step execution records) and
// orchestration/orchestrator.go for the context-key span-propagation idiom,
// generalized down to the small fixed catalog spec §4.5.1 calls for instead
// of the teacher's YAML-driven DAG engine.
package orchestration

import (
	"time"

	"github.com/khushparag/agentic-learning-coach/core"
)

// FailurePolicy names what a failed step does to the rest of the workflow.
type FailurePolicy string

const (
	// PolicyAbort stops the workflow and surfaces the step's error.
	PolicyAbort FailurePolicy = "abort"
	// PolicyContinue proceeds to the next step, recording the failed Result.
	PolicyContinue FailurePolicy = "continue"
	// PolicyFallback executes a one-step subcall with a different intent in
	// place of the failed step.
	PolicyFallback FailurePolicy = "fallback"
)

// OnFailure describes what happens when a Step's envelope call returns an
// Error-variant Result. Policy PolicyFallback requires FallbackIntent.
type OnFailure struct {
	Policy         FailurePolicy
	FallbackIntent core.Intent
}

// Abort is the zero-value default policy (spec §4.5.1 step e, "Abort": stop).
var Abort = OnFailure{Policy: PolicyAbort}

// Continue proceeds past a failed step.
var Continue = OnFailure{Policy: PolicyContinue}

// Fallback builds a PolicyFallback OnFailure targeting intent.
func Fallback(intent core.Intent) OnFailure {
	return OnFailure{Policy: PolicyFallback, FallbackIntent: intent}
}

// PayloadTransform builds the payload for a step from the workflow's
// context and the outputs of every prior step. It must be pure: no I/O, no
// mutation of priorOutputs.
type PayloadTransform func(rc *core.Context, priorOutputs map[int]*core.Result) *core.Payload

// ConditionalNext inspects a step's successful Result and optionally
// returns one more Step to splice in immediately after it. It powers
// exercise_submission's "detect triggers; if triggers → adapt_difficulty"
// branch (spec §4.5.1's workflow catalog) without making the executor
// aware of any specific workflow's semantics — the branching logic lives in
// the catalog entry that needs it, not in the engine.
type ConditionalNext func(rc *core.Context, result *core.Result) *Step

// Step is one bound (agent_type, intent) unit in a Workflow (spec §3).
type Step struct {
	AgentType        core.AgentType
	Intent           core.Intent
	PayloadTransform PayloadTransform
	OnFailure        OnFailure
	Timeout          time.Duration
	ConditionalNext  ConditionalNext
}

// Workflow is an immutable, named, ordered sequence of Steps.
type Workflow struct {
	Name        string
	Description string
	Steps       []Step
}
