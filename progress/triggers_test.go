package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeForTriggersLowSuccessRate(t *testing.T) {
	metrics := &Metrics{TotalSubmissions: 10, SuccessRate: 30, CompletionRate: 50}
	triggers := AnalyzeForTriggers(metrics, 50, DefaultThresholds())

	require.Len(t, triggers, 1)
	assert.Equal(t, "low_success_rate", triggers[0].Type)
	assert.Equal(t, "high", triggers[0].Severity)
	assert.Equal(t, "reduce_difficulty", triggers[0].RecommendedAction)
	assert.Equal(t, 0.9, triggers[0].Confidence)
}

func TestAnalyzeForTriggersHighSuccessRateRequiresMinimumSubmissions(t *testing.T) {
	thresholds := DefaultThresholds()

	tooFew := AnalyzeForTriggers(&Metrics{TotalSubmissions: 3, SuccessRate: 95, CompletionRate: 50}, 50, thresholds)
	assert.Empty(t, tooFew)

	enough := AnalyzeForTriggers(&Metrics{TotalSubmissions: 5, SuccessRate: 95, CompletionRate: 50}, 50, thresholds)
	require.Len(t, enough, 1)
	assert.Equal(t, "high_success_rate", enough[0].Type)
	assert.Equal(t, "low", enough[0].Severity)
	assert.Equal(t, "increase_difficulty", enough[0].RecommendedAction)
	assert.Equal(t, 0.85, enough[0].Confidence)
}

func TestAnalyzeForTriggersQuickSuccess(t *testing.T) {
	metrics := &Metrics{CompletedTasks: 4, AverageAttemptsPerTask: 1.0, CompletionRate: 50}
	triggers := AnalyzeForTriggers(metrics, 50, DefaultThresholds())

	require.Len(t, triggers, 1)
	assert.Equal(t, "quick_success", triggers[0].Type)
	assert.Equal(t, "low", triggers[0].Severity)
	assert.Equal(t, "increase_difficulty", triggers[0].RecommendedAction)
	assert.Equal(t, 0.8, triggers[0].Confidence)
}

func TestAnalyzeForTriggersSlowProgress(t *testing.T) {
	metrics := &Metrics{CompletionRate: 10}
	triggers := AnalyzeForTriggers(metrics, 50, DefaultThresholds())

	require.Len(t, triggers, 1)
	assert.Equal(t, "slow_progress", triggers[0].Type)
	assert.Equal(t, "medium", triggers[0].Severity)
	assert.Equal(t, "adjust_schedule", triggers[0].RecommendedAction)
	assert.Equal(t, 0.75, triggers[0].Confidence)
}

func TestAnalyzeForTriggersNoneFireOnHealthyMetrics(t *testing.T) {
	metrics := &Metrics{
		TotalSubmissions:       10,
		SuccessRate:            70,
		CompletedTasks:         5,
		AverageAttemptsPerTask: 1.5,
		CompletionRate:         48,
	}
	triggers := AnalyzeForTriggers(metrics, 50, DefaultThresholds())
	assert.Empty(t, triggers)
}

func TestPrioritizeTriggersOrdersBySeverityThenConfidence(t *testing.T) {
	triggers := []Trigger{
		{Type: "a", Severity: "low", Confidence: 0.9},
		{Type: "b", Severity: "high", Confidence: 0.5},
		{Type: "c", Severity: "high", Confidence: 0.8},
		{Type: "d", Severity: "medium", Confidence: 0.6},
	}

	sorted := PrioritizeTriggers(triggers)

	require.Len(t, sorted, 4)
	assert.Equal(t, "c", sorted[0].Type)
	assert.Equal(t, "b", sorted[1].Type)
	assert.Equal(t, "d", sorted[2].Type)
	assert.Equal(t, "a", sorted[3].Type)
}

func TestConsecutiveFailuresStopsAtFirstPass(t *testing.T) {
	pass := true
	fail := false
	evaluations := []*bool{&fail, &fail, &pass, &fail}

	assert.Equal(t, 2, ConsecutiveFailures(evaluations))
}

func TestConsecutiveFailuresTreatsNilEvaluationAsFailure(t *testing.T) {
	evaluations := []*bool{nil, nil}
	assert.Equal(t, 2, ConsecutiveFailures(evaluations))
}

func TestConsecutiveFailuresAllPassingIsZero(t *testing.T) {
	pass := true
	evaluations := []*bool{&pass, &pass}
	assert.Zero(t, ConsecutiveFailures(evaluations))
}

func TestConsecutiveFailureTriggerFiresAtThreshold(t *testing.T) {
	thresholds := DefaultThresholds()

	assert.Nil(t, ConsecutiveFailureTrigger(1, "task-1", thresholds))

	trig := ConsecutiveFailureTrigger(2, "task-1", thresholds)
	require.NotNil(t, trig)
	assert.Equal(t, "consecutive_failures", trig.Type)
	assert.Equal(t, "task-1", trig.Details["task_id"])
	assert.Equal(t, "reduce_difficulty_and_recap", trig.RecommendedAction)
}
