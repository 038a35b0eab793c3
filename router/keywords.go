package router

import "github.com/khushparag/agentic-learning-coach/core"

// DefaultKeywordTable returns a curated starter vocabulary for free-text
// classification, one entry per routable intent, in the same declaration
// order as core.RoutableIntents. Hosts are expected to tune or replace this
// table for their product's actual phrasing; nothing here is load-bearing
// for the router's algorithm.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		core.IntentAssessSkillLevel: {
			{Phrase: "assess", Weight: 1.0}, {Phrase: "skill level", Weight: 2.0}, {Phrase: "how good am i", Weight: 1.5},
		},
		core.IntentUpdateGoals: {
			{Phrase: "goal", Weight: 1.0}, {Phrase: "update goals", Weight: 2.0}, {Phrase: "want to learn", Weight: 1.2},
		},
		core.IntentSetConstraints: {
			{Phrase: "hours per week", Weight: 2.0}, {Phrase: "time available", Weight: 1.5}, {Phrase: "constraint", Weight: 1.0},
		},
		core.IntentCreateProfile: {
			{Phrase: "create profile", Weight: 2.0}, {Phrase: "sign up", Weight: 1.0}, {Phrase: "new account", Weight: 1.0},
		},
		core.IntentUpdateProfile: {
			{Phrase: "update profile", Weight: 2.0}, {Phrase: "change my details", Weight: 1.2},
		},
		core.IntentGetProfile: {
			{Phrase: "my profile", Weight: 2.0}, {Phrase: "show profile", Weight: 1.5},
		},
		core.IntentParseTimeframe: {
			{Phrase: "timeframe", Weight: 1.5}, {Phrase: "how long", Weight: 1.0}, {Phrase: "deadline", Weight: 1.2},
		},
		core.IntentCreateLearningPath: {
			{Phrase: "learning path", Weight: 2.0}, {Phrase: "curriculum", Weight: 1.2}, {Phrase: "study plan", Weight: 1.5},
		},
		core.IntentGenerateCurriculum: {
			{Phrase: "generate curriculum", Weight: 2.0}, {Phrase: "build a course", Weight: 1.2},
		},
		core.IntentUpdateCurriculum: {
			{Phrase: "update curriculum", Weight: 2.0}, {Phrase: "change my plan", Weight: 1.2},
		},
		core.IntentAdaptDifficulty: {
			{Phrase: "too hard", Weight: 1.5}, {Phrase: "too easy", Weight: 1.5}, {Phrase: "adjust difficulty", Weight: 2.0},
		},
		core.IntentRequestNextTopic: {
			{Phrase: "next topic", Weight: 2.0}, {Phrase: "what's next", Weight: 1.5}, {Phrase: "continue", Weight: 0.8},
		},
		core.IntentGetCurriculumStatus: {
			{Phrase: "curriculum status", Weight: 2.0}, {Phrase: "how far along", Weight: 1.2},
		},
		core.IntentScheduleSpacedRepetition: {
			{Phrase: "spaced repetition", Weight: 2.0}, {Phrase: "review schedule", Weight: 1.5},
		},
		core.IntentAddMiniProject: {
			{Phrase: "mini project", Weight: 2.0}, {Phrase: "practice project", Weight: 1.2},
		},
		core.IntentAdjustPacing: {
			{Phrase: "pacing", Weight: 1.5}, {Phrase: "slow down", Weight: 1.2}, {Phrase: "speed up", Weight: 1.2},
		},
		core.IntentGenerateExercise: {
			{Phrase: "exercise", Weight: 1.0}, {Phrase: "give me a problem", Weight: 1.5}, {Phrase: "practice problem", Weight: 1.5},
		},
		core.IntentCreateTestCases: {
			{Phrase: "test cases", Weight: 2.0}, {Phrase: "unit tests", Weight: 1.2},
		},
		core.IntentGenerateHints: {
			{Phrase: "hint", Weight: 1.5}, {Phrase: "i'm stuck", Weight: 1.5}, {Phrase: "give me a clue", Weight: 1.2},
		},
		core.IntentCreateStretchExercise: {
			{Phrase: "stretch exercise", Weight: 2.0}, {Phrase: "harder challenge", Weight: 1.2},
		},
		core.IntentCreateRecapExercise: {
			{Phrase: "recap exercise", Weight: 2.0}, {Phrase: "review exercise", Weight: 1.2},
		},
		core.IntentGenerateProjectExercise: {
			{Phrase: "project exercise", Weight: 2.0}, {Phrase: "build a project", Weight: 1.2},
		},
		core.IntentEvaluateSubmission: {
			{Phrase: "evaluate", Weight: 1.0}, {Phrase: "grade my", Weight: 1.5}, {Phrase: "check my solution", Weight: 1.5},
		},
		core.IntentRunTests: {
			{Phrase: "run tests", Weight: 2.0}, {Phrase: "run my code", Weight: 1.2},
		},
		core.IntentGenerateFeedback: {
			{Phrase: "feedback", Weight: 1.5}, {Phrase: "what did i do wrong", Weight: 1.5},
		},
		core.IntentCheckCodeQuality: {
			{Phrase: "code quality", Weight: 2.0}, {Phrase: "code review", Weight: 1.5},
		},
		core.IntentCompareSubmissions: {
			{Phrase: "compare submissions", Weight: 2.0}, {Phrase: "compare my attempts", Weight: 1.5},
		},
		core.IntentValidateSolution: {
			{Phrase: "validate solution", Weight: 2.0}, {Phrase: "is this correct", Weight: 1.2},
		},
		core.IntentSearchResources: {
			{Phrase: "find resources", Weight: 1.5}, {Phrase: "search for", Weight: 1.0}, {Phrase: "article about", Weight: 1.2},
		},
		core.IntentGetResourceContent: {
			{Phrase: "resource content", Weight: 2.0}, {Phrase: "show me the article", Weight: 1.2},
		},
		core.IntentRecommendResources: {
			{Phrase: "recommend", Weight: 1.2}, {Phrase: "what should i read", Weight: 1.5},
		},
		core.IntentVerifyResourceQuality: {
			{Phrase: "is this reliable", Weight: 1.5}, {Phrase: "verify resource", Weight: 2.0},
		},
		core.IntentFindRelatedResources: {
			{Phrase: "related resources", Weight: 2.0}, {Phrase: "similar articles", Weight: 1.2},
		},
		core.IntentCurateLearningPathResources: {
			{Phrase: "curate resources", Weight: 2.0}, {Phrase: "resources for my path", Weight: 1.5},
		},
		core.IntentRecordAttempt: {
			{Phrase: "record attempt", Weight: 2.0}, {Phrase: "i submitted", Weight: 1.2},
		},
		core.IntentUpdateProgress: {
			{Phrase: "update progress", Weight: 2.0}, {Phrase: "mark complete", Weight: 1.5},
		},
		core.IntentDetectAdaptationTriggers: {
			{Phrase: "adaptation", Weight: 1.5}, {Phrase: "detect triggers", Weight: 2.0},
		},
		core.IntentGetProgressSummary: {
			{Phrase: "progress summary", Weight: 2.0}, {Phrase: "how am i doing", Weight: 1.5},
		},
		core.IntentCalculateMetrics: {
			{Phrase: "calculate metrics", Weight: 2.0}, {Phrase: "my stats", Weight: 1.2},
		},
		core.IntentGetStreakInfo: {
			{Phrase: "streak", Weight: 1.8}, {Phrase: "how many days in a row", Weight: 1.5},
		},
	}
}
