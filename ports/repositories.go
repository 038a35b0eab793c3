package ports

import (
	"context"
	"time"
)

// UserRepository persists learner profiles.
type UserRepository interface {
	GetUserProfile(ctx context.Context, userID string) (*UserProfile, error)
	CreateUser(ctx context.Context, email, name, userID string) (*UserProfile, error)
	UpdateUserProfile(ctx context.Context, profile *UserProfile) (*UserProfile, error)
}

// CurriculumRepository persists learning plans and their tasks.
type CurriculumRepository interface {
	SavePlan(ctx context.Context, plan *LearningPlan) (*LearningPlan, error)
	GetPlan(ctx context.Context, planID string) (*LearningPlan, error)
	GetActivePlan(ctx context.Context, userID string) (*LearningPlan, error)
	GetUserPlans(ctx context.Context, userID string) ([]*LearningPlan, error)
	UpdatePlanStatus(ctx context.Context, planID string, status LearningPlanStatus) error
	DeletePlan(ctx context.Context, planID string) error
	GetTasksForDay(ctx context.Context, userID string, dayOffset int) ([]Task, error)
}

// ProgressSummary is the aggregate submission/task counters a
// SubmissionRepository reports for metrics calculation, mirroring the
// shape original_source's get_user_progress_summary returns.
type ProgressSummary struct {
	TotalSubmissions  int
	PassedSubmissions int
	FailedSubmissions int
	CompletedTasks    int
	AverageScore      float64
	TimeSpentMinutes  int
}

// SubmissionRepository persists submissions and their evaluations.
type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, submission *Submission) (*Submission, error)
	GetSubmission(ctx context.Context, submissionID string) (*Submission, error)
	GetUserSubmissions(ctx context.Context, userID string) ([]*Submission, error)
	GetTaskSubmissions(ctx context.Context, taskID, userID string) ([]*Submission, error)
	GetSubmissionsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*Submission, error)

	SaveEvaluation(ctx context.Context, evaluation *EvaluationResult) (*EvaluationResult, error)
	GetLatestEvaluation(ctx context.Context, submissionID string) (*EvaluationResult, error)
	GetUserEvaluations(ctx context.Context, userID string, statusFilter *SubmissionStatus) ([]*EvaluationResult, error)

	GetUserProgressSummary(ctx context.Context, userID string) (*ProgressSummary, error)
}
