// Package router implements the intent router: a static Intent→AgentType
// table (§4.3a) and a keyword-scored free-text classifier (§4.3b). Grounded
// on the teacher's pkg/routing package for naming conventions (RouterMode,
// functional options, confidence thresholds) though the teacher's own
// router is LLM-driven; this one is deliberately a small deterministic
// offline scorer per spec §4.3's rationale.
package router

import "github.com/khushparag/agentic-learning-coach/core"

// Table is the static, total Intent→AgentType mapping. It is built once at
// startup and never mutated afterward (spec §4.3: "the table is immutable
// after startup").
type Table struct {
	byIntent map[core.Intent]core.AgentType
}

// DefaultTable builds the covering table over core.RoutableIntents. Every
// routable intent appears exactly once; adapt_difficulty resolves to the
// Curriculum Planner (see core.RoutableIntents' doc comment on the
// exercise-generator overlap).
func DefaultTable() *Table {
	assignments := map[core.AgentType][]core.Intent{
		core.AgentProfile: {
			core.IntentAssessSkillLevel, core.IntentUpdateGoals, core.IntentSetConstraints,
			core.IntentCreateProfile, core.IntentUpdateProfile, core.IntentGetProfile, core.IntentParseTimeframe,
		},
		core.AgentCurriculumPlanner: {
			core.IntentCreateLearningPath, core.IntentGenerateCurriculum, core.IntentUpdateCurriculum,
			core.IntentAdaptDifficulty, core.IntentRequestNextTopic, core.IntentGetCurriculumStatus,
			core.IntentScheduleSpacedRepetition, core.IntentAddMiniProject, core.IntentAdjustPacing,
		},
		core.AgentExerciseGenerator: {
			core.IntentGenerateExercise, core.IntentCreateTestCases, core.IntentGenerateHints,
			core.IntentCreateStretchExercise, core.IntentCreateRecapExercise, core.IntentGenerateProjectExercise,
		},
		core.AgentReviewer: {
			core.IntentEvaluateSubmission, core.IntentRunTests, core.IntentGenerateFeedback,
			core.IntentCheckCodeQuality, core.IntentCompareSubmissions, core.IntentValidateSolution,
		},
		core.AgentResources: {
			core.IntentSearchResources, core.IntentGetResourceContent, core.IntentRecommendResources,
			core.IntentVerifyResourceQuality, core.IntentFindRelatedResources, core.IntentCurateLearningPathResources,
		},
		core.AgentProgressTracker: {
			core.IntentRecordAttempt, core.IntentUpdateProgress, core.IntentDetectAdaptationTriggers,
			core.IntentGetProgressSummary, core.IntentCalculateMetrics, core.IntentGetStreakInfo,
		},
	}

	t := &Table{byIntent: make(map[core.Intent]core.AgentType, len(core.RoutableIntents))}
	for agentType, intents := range assignments {
		for _, intent := range intents {
			t.byIntent[intent] = agentType
		}
	}
	return t
}

// Route is the total Intent→AgentType lookup. ok is false for any tag
// outside the static table.
func (t *Table) Route(intent core.Intent) (agentType core.AgentType, ok bool) {
	agentType, ok = t.byIntent[intent]
	return
}

// RouteString is the string-keyed counterpart used for payloads that arrive
// as raw tags (e.g. from a deserialized request) rather than typed Intent
// values.
func (t *Table) RouteString(tag string) (core.AgentType, bool) {
	return t.Route(core.Intent(tag))
}
