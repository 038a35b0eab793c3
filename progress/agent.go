package progress

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
)

// Agent is the Progress Tracker specialist: it turns raw submission/
// evaluation history into metrics, streaks, and adaptation triggers.
// Grounded on original_source/src/agents/progress_tracker/progress_tracker.py,
// whose six public operations map directly onto the six intents below.
type Agent struct {
	curriculum ports.CurriculumRepository
	submission ports.SubmissionRepository
	thresholds Thresholds
	logger     core.Logger
	now        func() time.Time
}

// New builds a progress tracker Agent. now defaults to time.Now; tests
// inject a fixed clock so streak/metrics math is deterministic.
func New(curriculum ports.CurriculumRepository, submission ports.SubmissionRepository, thresholds Thresholds, logger core.Logger) *Agent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &Agent{
		curriculum: curriculum,
		submission: submission,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
	}
}

func (a *Agent) AgentType() core.AgentType { return core.AgentProgressTracker }

func (a *Agent) SupportedIntents() []core.Intent {
	return []core.Intent{
		core.IntentRecordAttempt,
		core.IntentUpdateProgress,
		core.IntentDetectAdaptationTriggers,
		core.IntentGetProgressSummary,
		core.IntentCalculateMetrics,
		core.IntentGetStreakInfo,
	}
}

func (a *Agent) Process(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	switch payload.Intent {
	case core.IntentRecordAttempt:
		return a.recordAttempt(ctx, rc, payload)
	case core.IntentUpdateProgress:
		return a.updateProgress(ctx, rc, payload)
	case core.IntentDetectAdaptationTriggers:
		return a.detectAdaptationTriggers(ctx, rc, payload)
	case core.IntentGetProgressSummary:
		return a.getProgressSummary(ctx, rc, payload)
	case core.IntentCalculateMetrics:
		return a.calculateMetrics(ctx, rc, payload)
	case core.IntentGetStreakInfo:
		return a.getStreakInfo(ctx, rc, payload)
	default:
		return core.ErrorResult(fmt.Sprintf("progress tracker does not support intent %q", payload.Intent), core.ErrValidation, nil), nil
	}
}

func (a *Agent) Health() core.Health {
	return core.Health{
		AgentType:        a.AgentType(),
		SupportedIntents: a.SupportedIntents(),
		Status:           core.HealthHealthy,
	}
}

// activePlan fetches the user's active plan, or a VALIDATION error if none
// exists — there is no dedicated "not found" ErrorCode in the closed set
// (spec §7), so a missing plan is reported as the request being invalid for
// this user's current state.
func (a *Agent) activePlan(ctx context.Context, userID string) (*ports.LearningPlan, *core.Result) {
	plan, err := a.curriculum.GetActivePlan(ctx, userID)
	if err != nil {
		return nil, core.ErrorResult(fmt.Sprintf("load active plan: %v", err), core.ErrProcessingError, nil)
	}
	if plan == nil {
		return nil, core.ErrorResult(fmt.Sprintf("no active learning plan for user %q", userID), core.ErrValidation, nil)
	}
	return plan, nil
}

func (a *Agent) recordAttempt(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	taskID, _ := payload.Data["task_id"].(string)
	submissionID, _ := payload.Data["submission_id"].(string)
	if taskID == "" || submissionID == "" {
		return core.ErrorResult("record_attempt requires task_id and submission_id", core.ErrValidation, nil), nil
	}

	evaluation, err := a.submission.GetLatestEvaluation(ctx, submissionID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load evaluation: %v", err), core.ErrProcessingError, nil), nil
	}

	history, err := a.submission.GetTaskSubmissions(ctx, taskID, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load task submissions: %v", err), core.ErrProcessingError, nil), nil
	}
	sort.Slice(history, func(i, j int) bool { return history[i].SubmittedAt.After(history[j].SubmittedAt) })

	passed := make([]*bool, 0, len(history))
	for _, s := range history {
		eval, err := a.submission.GetLatestEvaluation(ctx, s.ID)
		if err != nil {
			return core.ErrorResult(fmt.Sprintf("load submission history: %v", err), core.ErrProcessingError, nil), nil
		}
		if eval == nil {
			passed = append(passed, nil)
			continue
		}
		p := eval.Passed
		passed = append(passed, &p)
	}

	consecutive := ConsecutiveFailures(passed)

	var triggers []Trigger
	if trig := ConsecutiveFailureTrigger(consecutive, taskID, a.thresholds); trig != nil {
		triggers = append(triggers, *trig)
	}

	result := map[string]interface{}{
		"task_id":              taskID,
		"submission_id":        submissionID,
		"consecutive_failures": consecutive,
		"triggers":             triggers,
	}
	if evaluation != nil {
		result["passed"] = evaluation.Passed
		result["score"] = evaluation.Score
	}

	var nextActions []string
	if len(triggers) > 0 {
		nextActions = []string{"adapt_difficulty"}
	}

	return core.SuccessResult(result, nextActions, nil), nil
}

func (a *Agent) updateProgress(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.activePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	summary, err := a.submission.GetUserProgressSummary(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load progress summary: %v", err), core.ErrProcessingError, nil), nil
	}
	submissions, err := a.submission.GetUserSubmissions(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load submissions: %v", err), core.ErrProcessingError, nil), nil
	}

	metrics := CalculateMetrics(plan, summary, submissions, a.now())
	summaryBand := Summarize(metrics, plan, a.now())

	return core.SuccessResult(map[string]interface{}{
		"metrics":  metrics,
		"progress": summaryBand,
	}, nil, nil), nil
}

func (a *Agent) detectAdaptationTriggers(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.activePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	summary, err := a.submission.GetUserProgressSummary(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load progress summary: %v", err), core.ErrProcessingError, nil), nil
	}
	submissions, err := a.submission.GetUserSubmissions(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load submissions: %v", err), core.ErrProcessingError, nil), nil
	}

	metrics := CalculateMetrics(plan, summary, submissions, a.now())
	expected := ExpectedCompletion(plan, a.now())
	triggers := AnalyzeForTriggers(metrics, expected, a.thresholds)

	needsAdaptation := len(triggers) > 0
	var nextActions []string
	var topTrigger interface{}
	if needsAdaptation {
		nextActions = []string{"adapt_difficulty"}
		topTrigger = triggers[0]
	}

	return core.SuccessResult(map[string]interface{}{
		"triggers":            triggers,
		"metrics":             metrics,
		"expected_completion": expected,
		"needs_adaptation":    needsAdaptation,
		"top_trigger":         topTrigger,
	}, nextActions, nil), nil
}

func (a *Agent) getProgressSummary(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.activePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	summary, err := a.submission.GetUserProgressSummary(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load progress summary: %v", err), core.ErrProcessingError, nil), nil
	}
	submissions, err := a.submission.GetUserSubmissions(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load submissions: %v", err), core.ErrProcessingError, nil), nil
	}

	metrics := CalculateMetrics(plan, summary, submissions, a.now())
	band := Summarize(metrics, plan, a.now())
	streak := CalculateStreak(submissions, a.now())

	return core.SuccessResult(map[string]interface{}{
		"metrics":  metrics,
		"progress": band,
		"streak":   streak,
	}, nil, nil), nil
}

func (a *Agent) calculateMetrics(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.activePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	summary, err := a.submission.GetUserProgressSummary(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load progress summary: %v", err), core.ErrProcessingError, nil), nil
	}
	submissions, err := a.submission.GetUserSubmissions(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load submissions: %v", err), core.ErrProcessingError, nil), nil
	}

	metrics := CalculateMetrics(plan, summary, submissions, a.now())
	return core.SuccessResult(map[string]interface{}{"metrics": metrics}, nil, nil), nil
}

func (a *Agent) getStreakInfo(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	submissions, err := a.submission.GetUserSubmissions(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load submissions: %v", err), core.ErrProcessingError, nil), nil
	}
	streak := CalculateStreak(submissions, a.now())
	return core.SuccessResult(map[string]interface{}{"streak": streak}, nil, nil), nil
}

var _ core.Agent = (*Agent)(nil)
