package agents

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
)

// CurriculumPlannerAgent builds and adapts a learner's multi-day curriculum.
// Grounded on the nine intents and behaviors asserted by
// original_source/tests/unit/agents/test_curriculum_planner_agent.py (the
// agent's own source file was not retained in original_source/, only its
// test suite); reimplemented against that observed contract.
type CurriculumPlannerAgent struct {
	curriculum ports.CurriculumRepository
	users      ports.UserRepository
	logger     core.Logger
}

func NewCurriculumPlannerAgent(curriculum ports.CurriculumRepository, users ports.UserRepository, logger core.Logger) *CurriculumPlannerAgent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &CurriculumPlannerAgent{curriculum: curriculum, users: users, logger: logger}
}

func (a *CurriculumPlannerAgent) AgentType() core.AgentType { return core.AgentCurriculumPlanner }

func (a *CurriculumPlannerAgent) SupportedIntents() []core.Intent {
	return []core.Intent{
		core.IntentCreateLearningPath,
		core.IntentGenerateCurriculum,
		core.IntentUpdateCurriculum,
		core.IntentAdaptDifficulty,
		core.IntentRequestNextTopic,
		core.IntentGetCurriculumStatus,
		core.IntentScheduleSpacedRepetition,
		core.IntentAddMiniProject,
		core.IntentAdjustPacing,
	}
}

func (a *CurriculumPlannerAgent) Process(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	switch payload.Intent {
	case core.IntentCreateLearningPath:
		return a.createLearningPath(ctx, rc, payload)
	case core.IntentGenerateCurriculum:
		return a.generateCurriculum(ctx, rc, payload)
	case core.IntentUpdateCurriculum:
		return a.updateCurriculum(ctx, rc, payload)
	case core.IntentAdaptDifficulty:
		return a.adaptDifficulty(ctx, rc, payload)
	case core.IntentRequestNextTopic:
		return a.requestNextTopic(ctx, rc, payload)
	case core.IntentGetCurriculumStatus:
		return a.getCurriculumStatus(ctx, rc, payload)
	case core.IntentScheduleSpacedRepetition:
		return a.scheduleSpacedRepetition(ctx, rc, payload)
	case core.IntentAddMiniProject:
		return a.addMiniProject(ctx, rc, payload)
	case core.IntentAdjustPacing:
		return a.adjustPacing(ctx, rc, payload)
	default:
		return core.ErrorResult(fmt.Sprintf("curriculum planner does not support intent %q", payload.Intent), core.ErrValidation, nil), nil
	}
}

func (a *CurriculumPlannerAgent) Health() core.Health {
	return core.Health{AgentType: a.AgentType(), SupportedIntents: a.SupportedIntents(), Status: core.HealthHealthy}
}

func (a *CurriculumPlannerAgent) createLearningPath(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	profile, err := a.users.GetUserProfile(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load profile: %v", err), core.ErrProcessingError, nil), nil
	}
	if profile == nil {
		return core.ErrorResult("user profile not found, complete skill assessment first", core.ErrValidation, nil), nil
	}

	goals := stringSlice(payload.Data["goals"])
	if len(goals) == 0 {
		goals = profile.Goals
	}
	if len(goals) == 0 {
		return core.ErrorResult("no learning goals available to build a plan from", core.ErrValidation, nil), nil
	}

	hoursPerWeek := 5
	if tc, ok := payload.Data["time_constraints"].(map[string]interface{}); ok {
		hoursPerWeek = toInt(tc["hours_per_week"])
		if hoursPerWeek == 0 {
			hoursPerWeek = 5
		}
	}

	structure := buildCurriculumStructure(goals, profile.SkillLevel, hoursPerWeek)

	plan := &ports.LearningPlan{
		ID:              uuid.NewString(),
		UserID:          rc.UserID,
		Title:           fmt.Sprintf("%s Learning Path", capitalize(structure.primaryDomain)),
		GoalDescription: strings.Join(goals, ", "),
		TotalDays:       structure.totalDays,
		Status:          ports.PlanDraft,
		Modules:         structure.modules,
	}

	saved, err := a.curriculum.SavePlan(ctx, plan)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("save plan: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"learning_plan": saved,
		"curriculum_summary": map[string]interface{}{
			"total_days":   structure.totalDays,
			"module_count": len(structure.modules),
			"primary_domain": structure.primaryDomain,
		},
		"next_steps": []string{"Review your plan", "Begin day 1"},
	}, []string{"activate_learning_plan"}, nil), nil
}

func (a *CurriculumPlannerAgent) generateCurriculum(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	goals := stringSlice(payload.Data["goals"])
	if len(goals) == 0 {
		return core.ErrorResult("goals are required to generate a curriculum", core.ErrValidation, nil), nil
	}
	skillLevel, _ := payload.Data["skill_level"].(string)
	hoursPerWeek := 5
	if tc, ok := payload.Data["time_constraints"].(map[string]interface{}); ok {
		if h := toInt(tc["hours_per_week"]); h > 0 {
			hoursPerWeek = h
		}
	}

	structure := buildCurriculumStructure(goals, skillLevel, hoursPerWeek)

	return core.SuccessResult(map[string]interface{}{
		"curriculum_structure": map[string]interface{}{
			"primary_domain": structure.primaryDomain,
			"total_days":     structure.totalDays,
			"modules":        structure.modules,
		},
		"estimated_timeline":    fmt.Sprintf("%d days at %d hours/week", structure.totalDays, hoursPerWeek),
		"difficulty_progression": []string{"foundations", "practice", "synthesis"},
	}, nil, nil), nil
}

func (a *CurriculumPlannerAgent) updateCurriculum(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.loadActivePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	updates, _ := payload.Data["updates"].(map[string]interface{})
	changes := []string{}

	if title, ok := updates["title"].(string); ok && title != "" {
		plan.Title = title
		changes = append(changes, "title updated")
	}
	if addModules, ok := updates["add_modules"].([]interface{}); ok {
		for _, raw := range addModules {
			spec, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			module := moduleFromSpec(spec)
			plan.Modules = append(plan.Modules, module)
			plan.TotalDays += len(module.Tasks)
			changes = append(changes, fmt.Sprintf("added module %q", module.Title))
		}
	}

	saved, err := a.curriculum.SavePlan(ctx, plan)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("save plan: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"updated_plan":    saved,
		"changes_summary": changes,
	}, nil, nil), nil
}

// adaptDifficulty inspects performance_data and decides adaptations to
// apply, grounded on the test's low-success-rate -> adaptations_applied
// contract. Its cut-offs are literal copies of progress.DefaultThresholds'
// bands, since both read the same underlying signal; a non-default
// progress.Thresholds is not reflected here.
func (a *CurriculumPlannerAgent) adaptDifficulty(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.loadActivePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	perf, _ := payload.Data["performance_data"].(map[string]interface{})
	successRate := toFloat(perf["success_rate"])
	consecutiveFailures := toInt(perf["consecutive_failures"])
	averageAttempts := toFloat(perf["average_attempts"])

	var adaptations []string
	if successRate > 0 && successRate < 0.5 {
		adaptations = append(adaptations, "reduce_difficulty")
	}
	if consecutiveFailures >= 2 {
		adaptations = append(adaptations, "insert_remediation_task")
	}
	if successRate >= 0.9 && averageAttempts > 0 && averageAttempts < 1.2 {
		adaptations = append(adaptations, "increase_difficulty")
	}
	if len(adaptations) == 0 {
		adaptations = append(adaptations, "no_change")
	}

	saved, err := a.curriculum.SavePlan(ctx, plan)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("save plan: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"adaptations_applied": adaptations,
		"updated_plan":        saved,
		"adaptation_summary": map[string]interface{}{
			"success_rate":         successRate,
			"consecutive_failures": consecutiveFailures,
		},
	}, nil, nil), nil
}

func (a *CurriculumPlannerAgent) requestNextTopic(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.loadActivePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	currentDay := toInt(payload.Data["current_day"])
	tasks := plan.AllTasks()

	var next *ports.Task
	for i := range tasks {
		if tasks[i].DayOffset == currentDay+1 {
			next = &tasks[i]
			break
		}
	}

	progressPercentage := 0.0
	if plan.TotalDays > 0 {
		progressPercentage = math.Min(100, float64(currentDay)/float64(plan.TotalDays)*100)
	}

	if currentDay >= plan.TotalDays {
		return core.SuccessResult(map[string]interface{}{
			"next_topic":      nil,
			"plan_completed":  true,
			"progress_percentage": 100.0,
			"estimated_completion": "complete",
		}, []string{"celebrate_completion"}, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"next_topic":           next,
		"plan_completed":       false,
		"progress_percentage":  progressPercentage,
		"estimated_completion": fmt.Sprintf("%d days remaining", plan.TotalDays-currentDay),
	}, nil, nil), nil
}

func (a *CurriculumPlannerAgent) getCurriculumStatus(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, err := a.curriculum.GetActivePlan(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load active plan: %v", err), core.ErrProcessingError, nil), nil
	}
	if plan == nil {
		return core.SuccessResult(map[string]interface{}{"has_active_plan": false}, []string{"create_learning_plan"}, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"has_active_plan": true,
		"plan":            plan,
		"status":          plan.Status,
		"recommendations": []string{"Keep a consistent daily pace"},
	}, nil, nil), nil
}

func (a *CurriculumPlannerAgent) scheduleSpacedRepetition(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	topics, ok := payload.Data["completed_topics"].([]interface{})
	if !ok || len(topics) == 0 {
		return core.ErrorResult("completed_topics is required for spaced repetition scheduling", core.ErrValidation, nil), nil
	}
	currentDay := toInt(payload.Data["current_day"])

	intervals := []int{1, 3, 7, 14}
	var schedule []map[string]interface{}
	for _, raw := range topics {
		topic, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		topicID, _ := topic["topic_id"].(string)
		completionDay := toInt(topic["completion_day"])
		for i, interval := range intervals {
			reviewDay := completionDay + interval
			if reviewDay < currentDay {
				continue
			}
			schedule = append(schedule, map[string]interface{}{
				"topic_id":          topicID,
				"review_day":        reviewDay,
				"repetition_number": i + 1,
			})
		}
	}

	return core.SuccessResult(map[string]interface{}{"repetition_schedule": schedule}, nil, nil), nil
}

func (a *CurriculumPlannerAgent) addMiniProject(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.loadActivePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	projectType, _ := payload.Data["project_type"].(string)
	topics := stringSlice(payload.Data["topics_covered"])
	difficulty := toInt(payload.Data["difficulty_level"])
	if difficulty == 0 {
		difficulty = 1
	}

	estimatedHours := difficulty * 3
	project := map[string]interface{}{
		"title":           fmt.Sprintf("%s mini project: %s", capitalize(projectType), strings.Join(topics, ", ")),
		"description":     fmt.Sprintf("Apply %s in a self-contained %s project.", strings.Join(topics, ", "), projectType),
		"estimated_hours": estimatedHours,
	}

	module := ports.Module{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("Mini project: %s", projectType),
		Description: project["description"].(string),
		Tasks: []ports.Task{{
			ID:               uuid.NewString(),
			DayOffset:        plan.TotalDays + 1,
			Type:             ports.TaskCode,
			Description:      project["title"].(string),
			EstimatedMinutes: estimatedHours * 60,
		}},
	}
	plan.Modules = append(plan.Modules, module)
	plan.TotalDays++

	saved, err := a.curriculum.SavePlan(ctx, plan)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("save plan: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"mini_project": project,
		"updated_plan": saved,
		"project_timeline": map[string]interface{}{
			"day":             plan.TotalDays,
			"estimated_hours": estimatedHours,
		},
	}, nil, nil), nil
}

func (a *CurriculumPlannerAgent) adjustPacing(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	plan, errResult := a.loadActivePlan(ctx, rc.UserID)
	if errResult != nil {
		return errResult, nil
	}

	pacingFactor := toFloat(payload.Data["pacing_factor"])
	if pacingFactor <= 0 {
		pacingFactor = 1.0
	}
	reason, _ := payload.Data["reason"].(string)

	changeType := "unchanged"
	switch {
	case pacingFactor < 1:
		changeType = "slowed_down"
	case pacingFactor > 1:
		changeType = "sped_up"
	}

	newTotalDays := int(math.Round(float64(plan.TotalDays) / pacingFactor))

	return core.SuccessResult(map[string]interface{}{
		"adjusted_plan": plan,
		"pacing_changes": map[string]interface{}{
			"change_type":   changeType,
			"pacing_factor": pacingFactor,
			"reason":        reason,
		},
		"new_timeline": map[string]interface{}{
			"total_days": newTotalDays,
		},
	}, nil, nil), nil
}

func (a *CurriculumPlannerAgent) loadActivePlan(ctx context.Context, userID string) (*ports.LearningPlan, *core.Result) {
	plan, err := a.curriculum.GetActivePlan(ctx, userID)
	if err != nil {
		return nil, core.ErrorResult(fmt.Sprintf("load active plan: %v", err), core.ErrProcessingError, nil)
	}
	if plan == nil {
		return nil, core.ErrorResult(fmt.Sprintf("no active learning plan for user %q", userID), core.ErrValidation, nil)
	}
	return plan, nil
}

type curriculumStructure struct {
	primaryDomain string
	totalDays     int
	modules       []ports.Module
}

func buildCurriculumStructure(goals []string, skillLevel string, hoursPerWeek int) curriculumStructure {
	primaryDomain := "javascript"
	if len(goals) > 0 {
		primaryDomain = goals[0]
	}

	daysPerGoal := 7
	switch skillLevel {
	case string(core.SkillAdvanced), string(core.SkillExpert):
		daysPerGoal = 4
	case string(core.SkillIntermediate):
		daysPerGoal = 5
	}

	modules := make([]ports.Module, 0, len(goals))
	dayOffset := 0
	for _, goal := range goals {
		tasks := make([]ports.Task, 0, daysPerGoal)
		for d := 0; d < daysPerGoal; d++ {
			dayOffset++
			taskType := ports.TaskRead
			if d%2 == 1 {
				taskType = ports.TaskCode
			}
			tasks = append(tasks, ports.Task{
				ID:                 uuid.NewString(),
				DayOffset:          dayOffset,
				Type:               taskType,
				Description:        fmt.Sprintf("Day %d: %s practice", dayOffset, goal),
				EstimatedMinutes:   60,
				CompletionCriteria: "Complete the task successfully",
			})
		}
		modules = append(modules, ports.Module{
			ID:          uuid.NewString(),
			Title:       capitalize(goal),
			Description: fmt.Sprintf("Learn %s fundamentals and practice", goal),
			Tasks:       tasks,
		})
	}

	return curriculumStructure{primaryDomain: primaryDomain, totalDays: dayOffset, modules: modules}
}

func moduleFromSpec(spec map[string]interface{}) ports.Module {
	title, _ := spec["title"].(string)
	durationDays := toInt(spec["duration_days"])
	if durationDays == 0 {
		durationDays = 1
	}
	topics := stringSlice(spec["topics"])

	tasks := make([]ports.Task, 0, durationDays)
	for d := 0; d < durationDays; d++ {
		tasks = append(tasks, ports.Task{
			ID:               uuid.NewString(),
			DayOffset:        d + 1,
			Type:             ports.TaskRead,
			Description:      fmt.Sprintf("%s: %s", title, strings.Join(topics, ", ")),
			EstimatedMinutes: 60,
		})
	}

	return ports.Module{ID: uuid.NewString(), Title: title, Tasks: tasks}
}

func stringSlice(v interface{}) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

var _ core.Agent = (*CurriculumPlannerAgent)(nil)
