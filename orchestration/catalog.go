package orchestration

import (
	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/progress"
)

// passThroughTransform inherits the incoming payload, overriding only the
// intent, per spec §4.5.1 step a's default when no payload_transform is
// declared.
func passThroughTransform(intent core.Intent, base *core.Payload) PayloadTransform {
	return func(rc *core.Context, priorOutputs map[int]*core.Result) *core.Payload {
		p := &core.Payload{Intent: intent, Timeout: base.Timeout, Data: base.Data}
		return p
	}
}

// NewLearnerOnboarding is the onboarding workflow: spec §4.5.1.
func NewLearnerOnboarding(incoming *core.Payload) *Workflow {
	return &Workflow{
		Name:        "new_learner_onboarding",
		Description: "Assess a new learner, capture goals and constraints, and build their first learning path.",
		Steps: []Step{
			{AgentType: core.AgentProfile, Intent: core.IntentAssessSkillLevel, PayloadTransform: passThroughTransform(core.IntentAssessSkillLevel, incoming), OnFailure: Abort},
			{AgentType: core.AgentProfile, Intent: core.IntentUpdateGoals, PayloadTransform: passThroughTransform(core.IntentUpdateGoals, incoming), OnFailure: Abort},
			{AgentType: core.AgentProfile, Intent: core.IntentSetConstraints, PayloadTransform: passThroughTransform(core.IntentSetConstraints, incoming), OnFailure: Abort},
			{AgentType: core.AgentCurriculumPlanner, Intent: core.IntentCreateLearningPath, PayloadTransform: passThroughTransform(core.IntentCreateLearningPath, incoming), OnFailure: Abort},
		},
	}
}

// ExerciseSubmission is the submission-grading workflow: evaluate, update
// progress, then conditionally adapt difficulty if triggers fire. The third
// step (detect_adaptation_triggers) carries adaptDifficultyIfNeeded as its
// ConditionalNext, which inspects that step's output for needs_adaptation;
// executor.go only splices the returned adapt_difficulty step in after it.
func ExerciseSubmission(incoming *core.Payload) *Workflow {
	return &Workflow{
		Name:        "exercise_submission",
		Description: "Evaluate a submission, update progress, and adapt difficulty when warranted.",
		Steps: []Step{
			{AgentType: core.AgentReviewer, Intent: core.IntentEvaluateSubmission, PayloadTransform: passThroughTransform(core.IntentEvaluateSubmission, incoming), OnFailure: Abort},
			{AgentType: core.AgentProgressTracker, Intent: core.IntentUpdateProgress, PayloadTransform: passThroughTransform(core.IntentUpdateProgress, incoming), OnFailure: Continue},
			{
				AgentType:        core.AgentProgressTracker,
				Intent:           core.IntentDetectAdaptationTriggers,
				PayloadTransform: passThroughTransform(core.IntentDetectAdaptationTriggers, incoming),
				OnFailure:        Continue,
				ConditionalNext:  adaptDifficultyIfNeeded(incoming),
			},
		},
	}
}

// adaptDifficultyIfNeeded inspects detect_adaptation_triggers' Result for
// needs_adaptation=true and, when set, splices in an adapt_difficulty step
// aimed at the Curriculum Planner.
func adaptDifficultyIfNeeded(incoming *core.Payload) ConditionalNext {
	return func(rc *core.Context, result *core.Result) *Step {
		if result == nil || !result.Success {
			return nil
		}
		data, ok := result.Data.(map[string]interface{})
		if !ok {
			return nil
		}
		needsAdaptation, _ := data["needs_adaptation"].(bool)
		if !needsAdaptation {
			return nil
		}
		return &Step{
			AgentType: core.AgentCurriculumPlanner,
			Intent:    core.IntentAdaptDifficulty,
			PayloadTransform: func(rc *core.Context, priorOutputs map[int]*core.Result) *core.Payload {
				adaptData := map[string]interface{}{}
				for k, v := range incoming.Data {
					adaptData[k] = v
				}
				if trigger, ok := data["top_trigger"]; ok {
					adaptData["top_trigger"] = trigger
				}
				adaptData["performance_data"] = performanceDataFrom(data)
				return &core.Payload{Intent: core.IntentAdaptDifficulty, Timeout: incoming.Timeout, Data: adaptData}
			},
			OnFailure: Continue,
		}
	}
}

// performanceDataFrom builds the performance_data map the Curriculum
// Planner's adapt_difficulty handler reads (success_rate as a fraction,
// average_attempts as a per-task mean, consecutive_failures as a count), sourced
// from detect_adaptation_triggers' metrics and top_trigger.
func performanceDataFrom(data map[string]interface{}) map[string]interface{} {
	perf := map[string]interface{}{
		"success_rate":         0.0,
		"consecutive_failures": 0,
		"average_attempts":     0.0,
	}
	if metrics, ok := data["metrics"].(*progress.Metrics); ok {
		perf["success_rate"] = metrics.SuccessRate / 100
		perf["average_attempts"] = metrics.AverageAttemptsPerTask
	}
	if trigger, ok := data["top_trigger"].(progress.Trigger); ok {
		if cf, ok := trigger.Details["consecutive_failures"]; ok {
			perf["consecutive_failures"] = cf
		}
	}
	return perf
}

// ResourceDiscovery is the resource-recommendation workflow.
func ResourceDiscovery(incoming *core.Payload) *Workflow {
	return &Workflow{
		Name:        "resource_discovery",
		Description: "Search for resources, verify their quality, then recommend the best matches.",
		Steps: []Step{
			{AgentType: core.AgentResources, Intent: core.IntentSearchResources, PayloadTransform: passThroughTransform(core.IntentSearchResources, incoming), OnFailure: Abort},
			{AgentType: core.AgentResources, Intent: core.IntentVerifyResourceQuality, PayloadTransform: passThroughTransform(core.IntentVerifyResourceQuality, incoming), OnFailure: Continue},
			{AgentType: core.AgentResources, Intent: core.IntentRecommendResources, PayloadTransform: passThroughTransform(core.IntentRecommendResources, incoming), OnFailure: Abort},
		},
	}
}

// CatalogNames are the fixed workflow names, used by config.Workflows.Enabled
// and the Orchestrator's unknown-workflow check (spec §4.5.1, §6).
const (
	WorkflowNewLearnerOnboarding = "new_learner_onboarding"
	WorkflowExerciseSubmission   = "exercise_submission"
	WorkflowResourceDiscovery    = "resource_discovery"
)

// Builders maps each catalog name to its constructor. The catalog is fixed
// at compile time per spec §4.5.1's rationale ("a small, declarative
// catalog covers all multi-agent flows the product needs").
var Builders = map[string]func(*core.Payload) *Workflow{
	WorkflowNewLearnerOnboarding: NewLearnerOnboarding,
	WorkflowExerciseSubmission:   ExerciseSubmission,
	WorkflowResourceDiscovery:    ResourceDiscovery,
}
