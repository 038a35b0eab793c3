package progress

import (
	"context"
	"testing"
	"time"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCurriculumRepo struct {
	activePlan *ports.LearningPlan
}

func (f *fakeCurriculumRepo) SavePlan(context.Context, *ports.LearningPlan) (*ports.LearningPlan, error) {
	return nil, nil
}
func (f *fakeCurriculumRepo) GetPlan(context.Context, string) (*ports.LearningPlan, error) {
	return nil, nil
}
func (f *fakeCurriculumRepo) GetActivePlan(context.Context, string) (*ports.LearningPlan, error) {
	return f.activePlan, nil
}
func (f *fakeCurriculumRepo) GetUserPlans(context.Context, string) ([]*ports.LearningPlan, error) {
	return nil, nil
}
func (f *fakeCurriculumRepo) UpdatePlanStatus(context.Context, string, ports.LearningPlanStatus) error {
	return nil
}
func (f *fakeCurriculumRepo) DeletePlan(context.Context, string) error { return nil }
func (f *fakeCurriculumRepo) GetTasksForDay(context.Context, string, int) ([]ports.Task, error) {
	return nil, nil
}

type fakeSubmissionRepo struct {
	summary     *ports.ProgressSummary
	submissions []*ports.Submission
	evaluations map[string]*ports.EvaluationResult
	taskSubs    map[string][]*ports.Submission
}

func (f *fakeSubmissionRepo) SaveSubmission(context.Context, *ports.Submission) (*ports.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissionRepo) GetSubmission(context.Context, string) (*ports.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissionRepo) GetUserSubmissions(context.Context, string) ([]*ports.Submission, error) {
	return f.submissions, nil
}
func (f *fakeSubmissionRepo) GetTaskSubmissions(_ context.Context, taskID, _ string) ([]*ports.Submission, error) {
	return f.taskSubs[taskID], nil
}
func (f *fakeSubmissionRepo) GetSubmissionsByDateRange(context.Context, string, time.Time, time.Time) ([]*ports.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissionRepo) SaveEvaluation(context.Context, *ports.EvaluationResult) (*ports.EvaluationResult, error) {
	return nil, nil
}
func (f *fakeSubmissionRepo) GetLatestEvaluation(_ context.Context, submissionID string) (*ports.EvaluationResult, error) {
	return f.evaluations[submissionID], nil
}
func (f *fakeSubmissionRepo) GetUserEvaluations(context.Context, string, *ports.SubmissionStatus) ([]*ports.EvaluationResult, error) {
	return nil, nil
}
func (f *fakeSubmissionRepo) GetUserProgressSummary(context.Context, string) (*ports.ProgressSummary, error) {
	return f.summary, nil
}

func testRC(t *testing.T) *core.Context {
	t.Helper()
	rc, err := core.NewContext("user-1", "session-1")
	require.NoError(t, err)
	return rc
}

func TestAgentSupportedIntentsCoversAllSix(t *testing.T) {
	agent := New(&fakeCurriculumRepo{}, &fakeSubmissionRepo{}, DefaultThresholds(), nil)
	assert.Len(t, agent.SupportedIntents(), 6)
}

func TestAgentGetStreakInfoSucceedsEvenWithoutAnActivePlan(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	subRepo := &fakeSubmissionRepo{submissions: []*ports.Submission{submissionOn(now)}}
	agent := New(&fakeCurriculumRepo{}, subRepo, DefaultThresholds(), nil)
	agent.now = func() time.Time { return now }

	result, err := agent.Process(context.Background(), testRC(t), &core.Payload{Intent: core.IntentGetStreakInfo})
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestAgentCalculateMetricsFailsValidationWithoutActivePlan(t *testing.T) {
	agent := New(&fakeCurriculumRepo{activePlan: nil}, &fakeSubmissionRepo{}, DefaultThresholds(), nil)

	result, err := agent.Process(context.Background(), testRC(t), &core.Payload{Intent: core.IntentCalculateMetrics})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, core.ErrValidation, result.ErrorCode)
}

func TestAgentDetectAdaptationTriggersReturnsTriggersAndNextActions(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	plan := testPlan(30, now.AddDate(0, 0, -5), 10)
	summary := &ports.ProgressSummary{TotalSubmissions: 10, PassedSubmissions: 3, FailedSubmissions: 7, CompletedTasks: 3}

	agent := New(&fakeCurriculumRepo{activePlan: plan}, &fakeSubmissionRepo{summary: summary}, DefaultThresholds(), nil)
	agent.now = func() time.Time { return now }

	result, err := agent.Process(context.Background(), testRC(t), &core.Payload{Intent: core.IntentDetectAdaptationTriggers})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.NextActions, "adapt_difficulty")

	data := result.Data.(map[string]interface{})
	triggers := data["triggers"].([]Trigger)
	require.NotEmpty(t, triggers)
	assert.Equal(t, "low_success_rate", triggers[0].Type)

	assert.Equal(t, true, data["needs_adaptation"])
	topTrigger, ok := data["top_trigger"].(Trigger)
	require.True(t, ok, "top_trigger must be the prioritized first trigger")
	assert.Equal(t, triggers[0], topTrigger)
}

func TestAgentDetectAdaptationTriggersReportsNoAdaptationWhenNoneFire(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	plan := testPlan(30, now.AddDate(0, 0, -5), 10)
	summary := &ports.ProgressSummary{TotalSubmissions: 4, PassedSubmissions: 3, FailedSubmissions: 1, CompletedTasks: 1}

	agent := New(&fakeCurriculumRepo{activePlan: plan}, &fakeSubmissionRepo{summary: summary}, DefaultThresholds(), nil)
	agent.now = func() time.Time { return now }

	result, err := agent.Process(context.Background(), testRC(t), &core.Payload{Intent: core.IntentDetectAdaptationTriggers})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotContains(t, result.NextActions, "adapt_difficulty")

	data := result.Data.(map[string]interface{})
	assert.Equal(t, false, data["needs_adaptation"])
	assert.Nil(t, data["top_trigger"])
}

func TestAgentRecordAttemptRequiresTaskAndSubmissionIDs(t *testing.T) {
	agent := New(&fakeCurriculumRepo{}, &fakeSubmissionRepo{}, DefaultThresholds(), nil)

	result, err := agent.Process(context.Background(), testRC(t), &core.Payload{
		Intent: core.IntentRecordAttempt,
		Data:   map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, core.ErrValidation, result.ErrorCode)
}

func TestAgentRecordAttemptDetectsConsecutiveFailureTrigger(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	sub1 := &ports.Submission{ID: "sub-1", TaskID: "task-1", SubmittedAt: now.AddDate(0, 0, -2)}
	sub2 := &ports.Submission{ID: "sub-2", TaskID: "task-1", SubmittedAt: now.AddDate(0, 0, -1)}
	sub3 := &ports.Submission{ID: "sub-3", TaskID: "task-1", SubmittedAt: now}

	subRepo := &fakeSubmissionRepo{
		taskSubs: map[string][]*ports.Submission{"task-1": {sub1, sub2, sub3}},
		evaluations: map[string]*ports.EvaluationResult{
			"sub-1": {SubmissionID: "sub-1", Passed: false},
			"sub-2": {SubmissionID: "sub-2", Passed: false},
			"sub-3": {SubmissionID: "sub-3", Passed: false},
		},
	}
	agent := New(&fakeCurriculumRepo{}, subRepo, DefaultThresholds(), nil)
	agent.now = func() time.Time { return now }

	result, err := agent.Process(context.Background(), testRC(t), &core.Payload{
		Intent: core.IntentRecordAttempt,
		Data:   map[string]interface{}{"task_id": "task-1", "submission_id": "sub-3"},
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.NextActions, "adapt_difficulty")

	data := result.Data.(map[string]interface{})
	assert.Equal(t, 3, data["consecutive_failures"])
}

func TestAgentRecordAttemptNoTriggerWhenRecentPass(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	sub1 := &ports.Submission{ID: "sub-1", TaskID: "task-1", SubmittedAt: now.AddDate(0, 0, -1)}
	sub2 := &ports.Submission{ID: "sub-2", TaskID: "task-1", SubmittedAt: now}

	subRepo := &fakeSubmissionRepo{
		taskSubs: map[string][]*ports.Submission{"task-1": {sub1, sub2}},
		evaluations: map[string]*ports.EvaluationResult{
			"sub-1": {SubmissionID: "sub-1", Passed: false},
			"sub-2": {SubmissionID: "sub-2", Passed: true},
		},
	}
	agent := New(&fakeCurriculumRepo{}, subRepo, DefaultThresholds(), nil)
	agent.now = func() time.Time { return now }

	result, err := agent.Process(context.Background(), testRC(t), &core.Payload{
		Intent: core.IntentRecordAttempt,
		Data:   map[string]interface{}{"task_id": "task-1", "submission_id": "sub-2"},
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Empty(t, result.NextActions)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, 0, data["consecutive_failures"])
}

var _ ports.CurriculumRepository = (*fakeCurriculumRepo)(nil)
var _ ports.SubmissionRepository = (*fakeSubmissionRepo)(nil)
