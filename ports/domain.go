// Package ports declares the boundary interfaces the runtime depends on
// but does not implement: persistence (spec §6's repositories) and
// external services (code execution, documentation search, LLM). No
// concrete adapter lives here — wiring a database driver or an LLM client
// is explicitly out of SPEC_FULL.md's scope; agents in package agents are
// built to degrade gracefully when an optional port (LLMService) is nil.
// Grounded on original_source/src/ports/repositories/*.py and
// original_source/src/domain/entities/*.py, translated from Python
// dataclasses into plain Go structs.
package ports

import "time"

// TaskType is the closed enum of learning task kinds.
type TaskType string

const (
	TaskRead TaskType = "READ"
	TaskWatch TaskType = "WATCH"
	TaskCode TaskType = "CODE"
	TaskQuiz TaskType = "QUIZ"
)

// SubmissionStatus is the closed enum of evaluation outcomes.
type SubmissionStatus string

const (
	SubmissionPass    SubmissionStatus = "PASS"
	SubmissionFail    SubmissionStatus = "FAIL"
	SubmissionPartial SubmissionStatus = "PARTIAL"
)

// LearningPlanStatus is the closed enum of plan lifecycle states.
type LearningPlanStatus string

const (
	PlanDraft     LearningPlanStatus = "draft"
	PlanActive    LearningPlanStatus = "active"
	PlanCompleted LearningPlanStatus = "completed"
	PlanPaused    LearningPlanStatus = "paused"
)

// Task is one atomic learning activity within a Module.
type Task struct {
	ID                 string
	ModuleID           string
	DayOffset          int
	Type               TaskType
	Description        string
	EstimatedMinutes   int
	CompletionCriteria string
	Resources          []Resource
}

// Resource is a learning material reference attached to a Task or surfaced
// by the Resources specialist.
type Resource struct {
	Title string
	URL   string
	Type  string
}

// Module is an ordered group of Tasks within a LearningPlan.
type Module struct {
	ID          string
	Title       string
	Description string
	Tasks       []Task
}

// LearningPlan is a user's complete curriculum.
type LearningPlan struct {
	ID              string
	UserID          string
	Title           string
	GoalDescription string
	TotalDays       int
	Status          LearningPlanStatus
	Modules         []Module
	CreatedAt       time.Time
}

// AllTasks flattens every Module's Tasks into declaration order.
func (p *LearningPlan) AllTasks() []Task {
	var tasks []Task
	for _, m := range p.Modules {
		tasks = append(tasks, m.Tasks...)
	}
	return tasks
}

// Submission is one learner attempt at a Task.
type Submission struct {
	ID          string
	UserID      string
	TaskID      string
	Content     string
	SubmittedAt time.Time
}

// EvaluationResult is the graded outcome of a Submission.
type EvaluationResult struct {
	ID           string
	SubmissionID string
	Passed       bool
	Score        float64
	Status       SubmissionStatus
	Feedback     map[string]interface{}
	EvaluatedAt  time.Time
}

// UserProfile is a learner's identity and preferences record.
type UserProfile struct {
	UserID      string
	Email       string
	Name        string
	SkillLevel  string
	Goals       []string
	Constraints map[string]interface{}
	CreatedAt   time.Time
}
