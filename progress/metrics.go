// Package progress implements the Progress Adaptation Engine: metrics
// computation, streak tracking, and adaptation-trigger detection, plus the
// Progress Tracker specialist agent built on top of them (spec §4.7).
// Grounded on original_source/src/agents/progress_tracker/progress_tracker.py
// (ProgressMetrics/AdaptationTrigger dataclasses, the threshold constants,
// and the streak/trigger algorithms), reimplemented in the teacher's
// struct-and-method idiom rather than ported line for line.
package progress

import (
	"time"

	"github.com/khushparag/agentic-learning-coach/ports"
)

// Metrics is the computed snapshot of a learner's progress against their
// active plan, mirroring original_source's ProgressMetrics dataclass.
type Metrics struct {
	CompletionRate         float64
	SuccessRate            float64
	AverageScore           float64
	TotalTasks             int
	CompletedTasks         int
	TotalSubmissions       int
	PassedSubmissions      int
	FailedSubmissions      int
	AverageAttemptsPerTask float64
	TimeSpentMinutes       int
	StreakDays             int
	LastActivityDate       *time.Time
}

// CalculateMetrics derives Metrics from a plan's task count, a repository
// progress summary, and the submission history used for the streak figure
// (the whole slice passed in; no date window is applied). now anchors every
// date computation so tests are deterministic.
func CalculateMetrics(plan *ports.LearningPlan, summary *ports.ProgressSummary, submissions []*ports.Submission, now time.Time) *Metrics {
	totalTasks := len(plan.AllTasks())

	var completionRate, successRate, avgAttempts float64
	if totalTasks > 0 {
		completionRate = float64(summary.CompletedTasks) / float64(totalTasks) * 100
	}
	if summary.TotalSubmissions > 0 {
		successRate = float64(summary.PassedSubmissions) / float64(summary.TotalSubmissions) * 100
	}
	if summary.CompletedTasks > 0 {
		avgAttempts = float64(summary.TotalSubmissions) / float64(summary.CompletedTasks)
	}

	streak := CalculateStreak(submissions, now)

	return &Metrics{
		CompletionRate:         round2(completionRate),
		SuccessRate:            round2(successRate),
		AverageScore:           round2(summary.AverageScore),
		TotalTasks:             totalTasks,
		CompletedTasks:         summary.CompletedTasks,
		TotalSubmissions:       summary.TotalSubmissions,
		PassedSubmissions:      summary.PassedSubmissions,
		FailedSubmissions:      summary.FailedSubmissions,
		AverageAttemptsPerTask: round2(avgAttempts),
		TimeSpentMinutes:       summary.TimeSpentMinutes,
		StreakDays:             streak.CurrentStreak,
		LastActivityDate:       streak.LastActivityDate,
	}
}

// ExpectedCompletion returns the completion percentage a learner "should"
// be at given how much of the plan's total_days has elapsed, clamped to
// [0, 100]. A plan with TotalDays <= 0 has no schedule to be behind or
// ahead of.
func ExpectedCompletion(plan *ports.LearningPlan, now time.Time) float64 {
	if plan.TotalDays <= 0 {
		return 0
	}
	elapsedDays := now.Sub(plan.CreatedAt).Hours() / 24
	expected := elapsedDays / float64(plan.TotalDays) * 100
	if expected < 0 {
		return 0
	}
	if expected > 100 {
		return 100
	}
	return expected
}

// Summary is the human-readable progress banner spec §4.7 pairs with Metrics.
type Summary struct {
	Status             string
	Message            string
	ExpectedCompletion float64
	ActualCompletion   float64
	DaysElapsed        int
	TotalDays          int
}

// Summarize classifies a learner's standing against ExpectedCompletion into
// one of four bands, grounded on _generate_progress_summary's threshold
// ladder (ahead / on_track / slightly_behind / behind).
func Summarize(metrics *Metrics, plan *ports.LearningPlan, now time.Time) Summary {
	expected := ExpectedCompletion(plan, now)

	var status, message string
	switch {
	case metrics.CompletionRate >= expected:
		status, message = "ahead", "Great progress, you're ahead of schedule."
	case metrics.CompletionRate >= expected-10:
		status, message = "on_track", "You're on track with your learning plan."
	case metrics.CompletionRate >= expected-25:
		status, message = "slightly_behind", "You're slightly behind schedule. Consider dedicating more time."
	default:
		status, message = "behind", "You're behind schedule. Let's adjust your plan."
	}

	return Summary{
		Status:             status,
		Message:            message,
		ExpectedCompletion: round2(expected),
		ActualCompletion:   metrics.CompletionRate,
		DaysElapsed:        int(now.Sub(plan.CreatedAt).Hours() / 24),
		TotalDays:          plan.TotalDays,
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
