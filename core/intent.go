package core

// Intent is a short symbolic tag naming a request kind. The full set is
// closed (spec §4.3's "covering property": every enumerated Intent appears
// exactly once in the static routing table), enumerated here per specialist
// plus workflow-control intents the Orchestrator itself answers to.
type Intent string

// Profile intents.
const (
	IntentAssessSkillLevel Intent = "assess_skill_level"
	IntentUpdateGoals      Intent = "update_goals"
	IntentSetConstraints   Intent = "set_constraints"
	IntentCreateProfile    Intent = "create_profile"
	IntentUpdateProfile    Intent = "update_profile"
	IntentGetProfile       Intent = "get_profile"
	IntentParseTimeframe   Intent = "parse_timeframe"
)

// Curriculum planner intents.
const (
	IntentCreateLearningPath       Intent = "create_learning_path"
	IntentGenerateCurriculum       Intent = "generate_curriculum"
	IntentUpdateCurriculum         Intent = "update_curriculum"
	IntentAdaptDifficulty          Intent = "adapt_difficulty"
	IntentRequestNextTopic         Intent = "request_next_topic"
	IntentGetCurriculumStatus      Intent = "get_curriculum_status"
	IntentScheduleSpacedRepetition Intent = "schedule_spaced_repetition"
	IntentAddMiniProject           Intent = "add_mini_project"
	IntentAdjustPacing             Intent = "adjust_pacing"
)

// Exercise generator intents. IntentAdaptDifficulty above is the *routable*
// tag (resolves to the curriculum planner via the static table); the
// exercise generator exposes a same-named capability of its own that is
// only reachable via an explicit workflow step naming AgentExerciseGenerator
// directly.
const (
	IntentGenerateExercise       Intent = "generate_exercise"
	IntentCreateTestCases        Intent = "create_test_cases"
	IntentGenerateHints          Intent = "generate_hints"
	IntentCreateStretchExercise  Intent = "create_stretch_exercise"
	IntentCreateRecapExercise    Intent = "create_recap_exercise"
	IntentGenerateProjectExercise Intent = "generate_project_exercise"
)

// Reviewer intents.
const (
	IntentEvaluateSubmission  Intent = "evaluate_submission"
	IntentRunTests            Intent = "run_tests"
	IntentGenerateFeedback    Intent = "generate_feedback"
	IntentCheckCodeQuality    Intent = "check_code_quality"
	IntentCompareSubmissions  Intent = "compare_submissions"
	IntentValidateSolution    Intent = "validate_solution"
)

// Resources intents.
const (
	IntentSearchResources             Intent = "search_resources"
	IntentGetResourceContent          Intent = "get_resource_content"
	IntentRecommendResources          Intent = "recommend_resources"
	IntentVerifyResourceQuality       Intent = "verify_resource_quality"
	IntentFindRelatedResources        Intent = "find_related_resources"
	IntentCurateLearningPathResources Intent = "curate_learning_path_resources"
)

// Progress tracker intents.
const (
	IntentRecordAttempt             Intent = "record_attempt"
	IntentUpdateProgress            Intent = "update_progress"
	IntentDetectAdaptationTriggers  Intent = "detect_adaptation_triggers"
	IntentGetProgressSummary        Intent = "get_progress_summary"
	IntentCalculateMetrics          Intent = "calculate_metrics"
	IntentGetStreakInfo             Intent = "get_streak_info"
)

// RoutableIntents is the covering set for the static Intent→AgentType
// table: every intent that resolves through router.Table. It deliberately
// excludes the exercise generator's private adapt_difficulty capability
// (reachable only via an explicit workflow step), keeping the table a true
// one-to-one covering per spec §4.3.
var RoutableIntents = []Intent{
	IntentAssessSkillLevel, IntentUpdateGoals, IntentSetConstraints,
	IntentCreateProfile, IntentUpdateProfile, IntentGetProfile, IntentParseTimeframe,

	IntentCreateLearningPath, IntentGenerateCurriculum, IntentUpdateCurriculum,
	IntentAdaptDifficulty, IntentRequestNextTopic, IntentGetCurriculumStatus,
	IntentScheduleSpacedRepetition, IntentAddMiniProject, IntentAdjustPacing,

	IntentGenerateExercise, IntentCreateTestCases, IntentGenerateHints,
	IntentCreateStretchExercise, IntentCreateRecapExercise, IntentGenerateProjectExercise,

	IntentEvaluateSubmission, IntentRunTests, IntentGenerateFeedback,
	IntentCheckCodeQuality, IntentCompareSubmissions, IntentValidateSolution,

	IntentSearchResources, IntentGetResourceContent, IntentRecommendResources,
	IntentVerifyResourceQuality, IntentFindRelatedResources, IntentCurateLearningPathResources,

	IntentRecordAttempt, IntentUpdateProgress, IntentDetectAdaptationTriggers,
	IntentGetProgressSummary, IntentCalculateMetrics, IntentGetStreakInfo,
}
