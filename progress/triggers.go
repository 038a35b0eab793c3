package progress

import "sort"

// Trigger is a detected signal that a learner's plan should adapt, mirroring
// original_source's AdaptationTrigger dataclass.
type Trigger struct {
	Type              string
	Severity          string // "high", "medium", "low"
	Details           map[string]interface{}
	RecommendedAction string
	Confidence        float64
}

// Thresholds configures AnalyzeForTriggers and ConsecutiveFailureTrigger, pulled
// out as constructor parameters (DESIGN.md Open Question 3) rather than
// hard-coded constants so a deployment can tune sensitivity.
type Thresholds struct {
	ConsecutiveFailureThreshold  int
	QuickSuccessAttemptsThreshold float64
	LowSuccessRateThreshold       float64
	HighSuccessRateThreshold      float64
	HighSuccessRateMinSubmissions int
	QuickSuccessMinCompletedTasks int
	SlowProgressGapPercent        float64
}

// DefaultThresholds mirrors original_source's module-level constants:
// CONSECUTIVE_FAILURE_THRESHOLD=2, QUICK_SUCCESS_THRESHOLD=1.2,
// LOW_SUCCESS_RATE_THRESHOLD=0.5, HIGH_SUCCESS_RATE_THRESHOLD=0.9.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ConsecutiveFailureThreshold:   2,
		QuickSuccessAttemptsThreshold: 1.2,
		LowSuccessRateThreshold:       0.5,
		HighSuccessRateThreshold:      0.9,
		HighSuccessRateMinSubmissions: 5,
		QuickSuccessMinCompletedTasks: 3,
		SlowProgressGapPercent:        20,
	}
}

// AnalyzeForTriggers inspects aggregate Metrics against expectedCompletion
// and returns every adaptation trigger that fires, grounded on
// original_source's _analyze_for_triggers. Rates in Metrics are expressed as
// percentages (0-100); thresholds are expressed as fractions (0-1) to match
// the original's comparisons against submission_repo ratios, so they are
// scaled by 100 before comparing.
func AnalyzeForTriggers(metrics *Metrics, expectedCompletion float64, thresholds Thresholds) []Trigger {
	var triggers []Trigger

	if metrics.TotalSubmissions > 0 && metrics.SuccessRate < thresholds.LowSuccessRateThreshold*100 {
		triggers = append(triggers, Trigger{
			Type:     "low_success_rate",
			Severity: "high",
			Details: map[string]interface{}{
				"success_rate":     metrics.SuccessRate,
				"total_submissions": metrics.TotalSubmissions,
			},
			RecommendedAction: "reduce_difficulty",
			Confidence:        0.9,
		})
	}

	if metrics.TotalSubmissions >= thresholds.HighSuccessRateMinSubmissions &&
		metrics.SuccessRate > thresholds.HighSuccessRateThreshold*100 {
		triggers = append(triggers, Trigger{
			Type:     "high_success_rate",
			Severity: "low",
			Details: map[string]interface{}{
				"success_rate":     metrics.SuccessRate,
				"total_submissions": metrics.TotalSubmissions,
			},
			RecommendedAction: "increase_difficulty",
			Confidence:        0.85,
		})
	}

	if metrics.CompletedTasks >= thresholds.QuickSuccessMinCompletedTasks &&
		metrics.AverageAttemptsPerTask > 0 && metrics.AverageAttemptsPerTask < thresholds.QuickSuccessAttemptsThreshold {
		triggers = append(triggers, Trigger{
			Type:     "quick_success",
			Severity: "low",
			Details: map[string]interface{}{
				"average_attempts_per_task": metrics.AverageAttemptsPerTask,
				"completed_tasks":           metrics.CompletedTasks,
			},
			RecommendedAction: "increase_difficulty",
			Confidence:        0.8,
		})
	}

	if metrics.CompletionRate < expectedCompletion-thresholds.SlowProgressGapPercent {
		triggers = append(triggers, Trigger{
			Type:     "slow_progress",
			Severity: "medium",
			Details: map[string]interface{}{
				"completion_rate":     metrics.CompletionRate,
				"expected_completion": expectedCompletion,
			},
			RecommendedAction: "adjust_schedule",
			Confidence:        0.75,
		})
	}

	return PrioritizeTriggers(triggers)
}

// ConsecutiveFailures reports the number of trailing failed submissions for
// a task, most-recent first, stopping at the first pass. Unlike
// original_source's _count_consecutive_failures — which returns
// len(submissions) unconditionally whenever any submissions exist, without
// checking pass/fail at all — this walks each submission's latest
// evaluation and stops counting at the first passing one, so a learner who
// passed on their most recent attempt is never reported as mid-failure-streak.
// evaluations must be supplied most-recent-submission-first, one entry per
// submission (nil entries, meaning no evaluation yet, count as a failure).
func ConsecutiveFailures(evaluations []*bool) int {
	count := 0
	for _, passed := range evaluations {
		if passed != nil && *passed {
			break
		}
		count++
	}
	return count
}

// ConsecutiveFailureTrigger reports the Trigger to surface on the
// record_attempt path once count meets the configured threshold, or nil if
// it does not.
func ConsecutiveFailureTrigger(count int, taskID string, thresholds Thresholds) *Trigger {
	if count < thresholds.ConsecutiveFailureThreshold {
		return nil
	}
	return &Trigger{
		Type:     "consecutive_failures",
		Severity: "high",
		Details: map[string]interface{}{
			"consecutive_failures": count,
			"task_id":              taskID,
		},
		RecommendedAction: "reduce_difficulty_and_recap",
		Confidence:        0.9,
	}
}

var severityOrder = map[string]int{"high": 0, "medium": 1, "low": 2}

// PrioritizeTriggers sorts triggers by severity (high first) and, within a
// severity, by descending confidence, grounded on _prioritize_triggers.
func PrioritizeTriggers(triggers []Trigger) []Trigger {
	sorted := append([]Trigger(nil), triggers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := severityOrder[sorted[i].Severity], severityOrder[sorted[j].Severity]
		if si != sj {
			return si < sj
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}
