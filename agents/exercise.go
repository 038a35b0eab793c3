package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
)

// ExerciseGeneratorAgent creates coding exercises, test cases, and hints,
// preferring an LLM-backed generator and degrading to fixed templates when
// one is unavailable or fails. Grounded on
// original_source/src/agents/exercise_generator_agent.py.
type ExerciseGeneratorAgent struct {
	llm    ports.LLMService
	logger core.Logger
}

func NewExerciseGeneratorAgent(llm ports.LLMService, logger core.Logger) *ExerciseGeneratorAgent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &ExerciseGeneratorAgent{llm: llm, logger: logger}
}

func (a *ExerciseGeneratorAgent) AgentType() core.AgentType { return core.AgentExerciseGenerator }

func (a *ExerciseGeneratorAgent) SupportedIntents() []core.Intent {
	return []core.Intent{
		core.IntentGenerateExercise,
		core.IntentCreateTestCases,
		core.IntentGenerateHints,
		core.IntentAdaptDifficulty,
		core.IntentCreateStretchExercise,
		core.IntentCreateRecapExercise,
		core.IntentGenerateProjectExercise,
	}
}

func (a *ExerciseGeneratorAgent) Process(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	switch payload.Intent {
	case core.IntentGenerateExercise:
		return a.generateExercise(ctx, rc, payload)
	case core.IntentCreateTestCases:
		return a.createTestCases(ctx, rc, payload)
	case core.IntentGenerateHints:
		return a.generateHints(ctx, rc, payload)
	case core.IntentAdaptDifficulty:
		return a.adaptDifficulty(ctx, rc, payload)
	case core.IntentCreateStretchExercise:
		return a.createStretchExercise(ctx, rc, payload)
	case core.IntentCreateRecapExercise:
		return a.createRecapExercise(ctx, rc, payload)
	case core.IntentGenerateProjectExercise:
		return a.generateProjectExercise(ctx, rc, payload)
	default:
		return core.ErrorResult(fmt.Sprintf("exercise generator does not support intent %q", payload.Intent), core.ErrValidation, nil), nil
	}
}

func (a *ExerciseGeneratorAgent) Health() core.Health {
	return core.Health{AgentType: a.AgentType(), SupportedIntents: a.SupportedIntents(), Status: core.HealthHealthy}
}

// Exercise is the shape returned by every generation path: LLM-backed or
// template-backed, coding or project.
type Exercise struct {
	ID                string
	Title             string
	Description       string
	Instructions      string
	StarterCode       string
	Topic             string
	Difficulty        string
	Language          string
	TestCases         []TestCase
	Hints             []string
	GenerationMethod  string // "llm" or "template"
	EstimatedMinutes  int
	AdaptedFrom       string
	AdaptationDirection string
	IsStretch         bool
	IsRecap           bool
	TopicsCovered     []string
}

type TestCase struct {
	Name            string
	Input           string
	ExpectedOutput  string
	Description     string
}

func (a *ExerciseGeneratorAgent) generateExercise(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	topic, _ := payload.Data["topic"].(string)
	if topic == "" {
		return core.ErrorResult("topic is required for exercise generation", core.ErrValidation, nil), nil
	}
	difficulty, _ := payload.Data["difficulty"].(string)
	if difficulty == "" {
		difficulty = "intermediate"
	}
	language, _ := payload.Data["language"].(string)
	if language == "" {
		language = "python"
	}

	exercise := a.generateCodingExercise(ctx, topic, difficulty, language)
	exercise.TestCases = testCasesForTopic(topic, difficulty)
	exercise.Hints = a.hintsForExercise(ctx, exercise, 1)
	exercise.ID = uuid.NewString()
	exercise.EstimatedMinutes = estimateCompletionTime(difficulty, len(exercise.TestCases))

	return core.SuccessResult(map[string]interface{}{
		"exercise": exercise,
	}, []string{"submit_solution"}, map[string]interface{}{
		"topic": topic, "difficulty": difficulty, "language": language,
	}), nil
}

// generateCodingExercise tries the LLM service first, retrying transient
// failures with backoff, and falls back to a fixed template on exhaustion
// or when no LLMService is configured. Mirrors the original's
// _generate_coding_exercise LLM-then-template layering.
func (a *ExerciseGeneratorAgent) generateCodingExercise(ctx context.Context, topic, difficulty, language string) Exercise {
	if a.llm != nil {
		generated, err := backoff.Retry(ctx, func() (*ports.GeneratedExercise, error) {
			return a.llm.GenerateExercise(ctx, topic, difficulty)
		}, backoff.WithMaxTries(3), backoff.WithBackOff(backoff.NewExponentialBackOff()))
		if err == nil && generated != nil {
			return Exercise{
				Title:            orDefault(generated.Title, fmt.Sprintf("%s Exercise", capitalize(topic))),
				Description:      orDefault(generated.Description, fmt.Sprintf("Practice %s concepts", topic)),
				Instructions:     orDefault(generated.CompletionCriteria, fmt.Sprintf("Complete the %s exercise", topic)),
				StarterCode:      orDefault(generated.StarterCode, fmt.Sprintf("# %s exercise\n", topic)),
				Topic:            topic,
				Difficulty:       difficulty,
				Language:         language,
				GenerationMethod: "llm",
				EstimatedMinutes: generated.EstimatedMinutes,
			}
		}
		a.logger.WarnWithContext(ctx, "llm exercise generation failed, falling back to template", map[string]interface{}{"topic": topic, "error": errString(err)})
	}

	return exerciseTemplate(topic, difficulty, language)
}

func (a *ExerciseGeneratorAgent) createTestCases(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	exerciseData, hasExercise := payload.Data["exercise"].(map[string]interface{})
	code, _ := payload.Data["code"].(string)
	language, _ := payload.Data["language"].(string)
	if language == "" {
		language = "python"
	}

	if !hasExercise && code == "" {
		return core.ErrorResult("either exercise data or code is required", core.ErrValidation, nil), nil
	}

	var testCases []TestCase
	if hasExercise {
		topic, _ := exerciseData["topic"].(string)
		difficulty, _ := exerciseData["difficulty"].(string)
		testCases = testCasesForTopic(topic, difficulty)
	} else {
		testCases = genericTestCases(5, "general")
	}

	return core.SuccessResult(map[string]interface{}{"test_cases": testCases}, nil, map[string]interface{}{
		"test_case_count": len(testCases),
	}), nil
}

func (a *ExerciseGeneratorAgent) generateHints(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	exerciseData, ok := payload.Data["exercise"].(map[string]interface{})
	if !ok {
		return core.ErrorResult("exercise data is required", core.ErrValidation, nil), nil
	}
	hintLevel := toInt(payload.Data["hint_level"])
	if hintLevel == 0 {
		hintLevel = 1
	}

	topic, _ := exerciseData["topic"].(string)
	hints := a.hintsForExercise(ctx, Exercise{Topic: topic}, hintLevel)

	return core.SuccessResult(map[string]interface{}{
		"hints":      hints,
		"hint_level": hintLevel,
	}, nil, map[string]interface{}{"hint_count": len(hints)}), nil
}

// hintsForExercise prefers LLM-generated hints only above level 1, matching
// the original's policy of reserving LLM calls for deeper, more specific
// hints and answering quick level-1 nudges from templates.
func (a *ExerciseGeneratorAgent) hintsForExercise(ctx context.Context, exercise Exercise, hintLevel int) []string {
	if a.llm != nil && hintLevel > 1 {
		hints, err := backoff.Retry(ctx, func() ([]string, error) {
			return a.llm.GenerateHints(ctx, exercise.Description, 0)
		}, backoff.WithMaxTries(2), backoff.WithBackOff(backoff.NewExponentialBackOff()))
		if err == nil && len(hints) > 0 {
			if hintLevel > len(hints) {
				hintLevel = len(hints)
			}
			return hints[:hintLevel]
		}
		a.logger.WarnWithContext(ctx, "llm hint generation failed, falling back to template", map[string]interface{}{"error": errString(err)})
	}

	base := hintTemplates[exercise.Topic]
	if base == nil {
		base = []string{
			"Read the problem carefully",
			"Break the problem into smaller parts",
			"Test your solution with simple examples",
		}
	}
	if hintLevel > len(base) {
		hintLevel = len(base)
	}
	return base[:hintLevel]
}

func (a *ExerciseGeneratorAgent) adaptDifficulty(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	current, ok := payload.Data["current_exercise"].(map[string]interface{})
	if !ok {
		return core.ErrorResult("current exercise data is required", core.ErrValidation, nil), nil
	}

	direction, _ := payload.Data["direction"].(string)
	if direction == "" {
		direction = "auto"
	}
	if direction == "auto" {
		perf, _ := payload.Data["performance_data"].(map[string]interface{})
		direction = determineAdaptationDirection(perf, rc)
	}

	topic, _ := current["topic"].(string)
	currentDifficulty, _ := current["difficulty"].(string)
	language, _ := current["language"].(string)
	if language == "" {
		language = "python"
	}

	if direction == "maintain" {
		return core.SuccessResult(map[string]interface{}{"exercise": current}, []string{"submit_solution"}, map[string]interface{}{
			"adaptation_direction": direction,
		}), nil
	}

	var newDifficulty string
	if direction == "up" {
		newDifficulty = nextDifficultyLevel(currentDifficulty)
	} else {
		newDifficulty = previousDifficultyLevel(currentDifficulty)
	}

	adapted := a.generateCodingExercise(ctx, topic, newDifficulty, language)
	adapted.Topic = topic
	adapted.Language = language
	if id, ok := current["id"].(string); ok {
		adapted.AdaptedFrom = id
	}
	adapted.AdaptationDirection = direction

	return core.SuccessResult(map[string]interface{}{"exercise": adapted}, []string{"submit_solution"}, map[string]interface{}{
		"adaptation_direction": direction,
		"original_difficulty":  currentDifficulty,
		"new_difficulty":       newDifficulty,
	}), nil
}

func (a *ExerciseGeneratorAgent) createStretchExercise(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	topic, _ := payload.Data["topic"].(string)
	if topic == "" {
		return core.ErrorResult("topic is required for a stretch exercise", core.ErrValidation, nil), nil
	}
	currentDifficulty, _ := payload.Data["current_difficulty"].(string)
	if currentDifficulty == "" {
		currentDifficulty = "intermediate"
	}
	language, _ := payload.Data["language"].(string)
	if language == "" {
		language = "python"
	}

	stretchDifficulty := nextDifficultyLevel(currentDifficulty)
	exercise := a.generateCodingExercise(ctx, topic, stretchDifficulty, language)
	exercise.IsStretch = true
	exercise.Title = "Stretch Challenge: " + exercise.Title
	exercise.Description += "\n\nThis is a stretch exercise designed to challenge you beyond your current level."

	return core.SuccessResult(map[string]interface{}{"exercise": exercise}, []string{"submit_solution"}, map[string]interface{}{
		"exercise_type":      "stretch",
		"base_difficulty":    currentDifficulty,
		"stretch_difficulty": stretchDifficulty,
	}), nil
}

func (a *ExerciseGeneratorAgent) createRecapExercise(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	topics := stringSlice(payload.Data["topics"])
	if len(topics) == 0 {
		return core.ErrorResult("at least one topic is required for a recap exercise", core.ErrValidation, nil), nil
	}
	difficulty, _ := payload.Data["difficulty"].(string)
	if difficulty == "" {
		difficulty = "beginner"
	}

	primary := topics[0]
	exercise := exerciseTemplate(primary, difficulty, "python")
	exercise.IsRecap = true
	exercise.TopicsCovered = topics
	exercise.Title = "Recap: " + strings.Join(topics, ", ")
	exercise.Description += "\n\nThis recap exercise helps reinforce key concepts."
	exercise.TestCases = testCasesForTopic(primary, difficulty)

	return core.SuccessResult(map[string]interface{}{"exercise": exercise}, []string{"submit_solution"}, map[string]interface{}{
		"exercise_type":  "recap",
		"topics_covered": topics,
		"difficulty":     difficulty,
	}), nil
}

func (a *ExerciseGeneratorAgent) generateProjectExercise(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	topic, _ := payload.Data["topic"].(string)
	if topic == "" {
		return core.ErrorResult("topic is required for a project exercise", core.ErrValidation, nil), nil
	}
	difficulty, _ := payload.Data["difficulty"].(string)
	if difficulty == "" {
		difficulty = "intermediate"
	}
	language, _ := payload.Data["language"].(string)
	if language == "" {
		language = "python"
	}
	durationHours := toInt(payload.Data["duration_hours"])
	if durationHours == 0 {
		durationHours = 4
	}

	project := projectTemplate(topic, difficulty, language)
	project.ID = uuid.NewString()
	project.TopicsCovered = []string{topic}

	milestones := projectMilestones(durationHours)

	return core.SuccessResult(map[string]interface{}{
		"exercise":   project,
		"milestones": milestones,
	}, []string{"submit_solution"}, map[string]interface{}{
		"exercise_type":   "project",
		"topic":           topic,
		"difficulty":      difficulty,
		"estimated_hours": durationHours,
	}), nil
}

var difficultyLevels = []string{"beginner", "intermediate", "advanced", "expert"}

func nextDifficultyLevel(current string) string {
	for i, level := range difficultyLevels {
		if level == strings.ToLower(current) && i < len(difficultyLevels)-1 {
			return difficultyLevels[i+1]
		}
	}
	return current
}

func previousDifficultyLevel(current string) string {
	for i, level := range difficultyLevels {
		if level == strings.ToLower(current) && i > 0 {
			return difficultyLevels[i-1]
		}
	}
	return current
}

// determineAdaptationDirection mirrors _determine_adaptation_direction: a
// recent failed attempt forces "down"; a much-faster-than-estimated
// completion suggests "up"; otherwise "maintain".
func determineAdaptationDirection(performanceData map[string]interface{}, rc *core.Context) string {
	if rc.AttemptCount >= 2 && rc.LastFeedback != nil {
		if passed, ok := rc.LastFeedback["passed"].(bool); ok && !passed {
			return "down"
		}
	}

	completionTime := toFloat(performanceData["completion_time_minutes"])
	estimatedTime := toFloat(performanceData["estimated_time_minutes"])
	if estimatedTime == 0 {
		estimatedTime = 30
	}
	if completionTime > 0 && completionTime < estimatedTime*0.5 {
		return "up"
	}
	return "maintain"
}

func estimateCompletionTime(difficulty string, testCaseCount int) int {
	base := map[string]int{"beginner": 15, "intermediate": 30, "advanced": 60, "expert": 90}[difficulty]
	if base == 0 {
		base = 30
	}
	return base + testCaseCount*2
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

var hintTemplates = map[string][]string{
	"variables": {
		"Think about what type of data you need to store",
		"Remember to give your variables descriptive names",
		"Consider the operations you need to perform on the data",
	},
	"functions": {
		"Break down the problem into smaller steps",
		"Think about what inputs your function needs",
		"Consider what your function should return",
	},
	"loops": {
		"Identify what needs to be repeated",
		"Think about your loop condition",
		"Consider what happens in each iteration",
	},
}

func exerciseTemplate(topic, difficulty, language string) Exercise {
	return Exercise{
		Title:            fmt.Sprintf("%s Exercise", capitalize(topic)),
		Description:      fmt.Sprintf("Practice %s concepts", topic),
		Instructions:     fmt.Sprintf("Complete the %s exercise according to the requirements", topic),
		StarterCode:      "# Your code here\n",
		Topic:            topic,
		Difficulty:       difficulty,
		Language:         language,
		GenerationMethod: "template",
	}
}

func projectTemplate(topic, difficulty, language string) Exercise {
	return Exercise{
		Title:        fmt.Sprintf("%s Project", capitalize(topic)),
		Description:  fmt.Sprintf("Build a small project applying %s end to end.", topic),
		Instructions: fmt.Sprintf("Plan, implement, and test a %s project covering the core concepts.", topic),
		StarterCode:  fmt.Sprintf("# %s project starter\n", topic),
		Topic:        topic,
		Difficulty:   difficulty,
		Language:     language,
		GenerationMethod: "template",
	}
}

func projectMilestones(durationHours int) []string {
	return []string{
		"Plan the project structure and requirements",
		"Implement the core functionality",
		"Write tests and handle edge cases",
		"Polish and document the solution",
	}
}

func testCasesForTopic(topic, difficulty string) []TestCase {
	numCases := map[string]int{"beginner": 3, "intermediate": 5, "advanced": 7, "expert": 10}[difficulty]
	if numCases == 0 {
		numCases = 5
	}

	switch topic {
	case "variables":
		return variableTestCases(numCases)
	case "functions":
		return functionTestCases(numCases)
	case "loops":
		return loopTestCases(numCases)
	default:
		return genericTestCases(numCases, topic)
	}
}

func variableTestCases(n int) []TestCase {
	cases := []TestCase{
		{Name: "test_string_variable", ExpectedOutput: "Hello, World!", Description: "Test string variable creation"},
		{Name: "test_number_variable", ExpectedOutput: "42", Description: "Test number variable creation"},
		{Name: "test_boolean_variable", ExpectedOutput: "True", Description: "Test boolean variable creation"},
	}
	return truncateTestCases(cases, n)
}

func functionTestCases(n int) []TestCase {
	cases := []TestCase{
		{Name: "test_function_call", Input: "5", ExpectedOutput: "10", Description: "Test function with parameter"},
		{Name: "test_function_return", Input: "3, 4", ExpectedOutput: "7", Description: "Test function return value"},
		{Name: "test_function_edge_case", Input: "0", ExpectedOutput: "0", Description: "Test function edge case"},
	}
	return truncateTestCases(cases, n)
}

func loopTestCases(n int) []TestCase {
	cases := []TestCase{
		{Name: "test_loop_iteration", Input: "5", ExpectedOutput: "0 1 2 3 4", Description: "Test loop iteration"},
		{Name: "test_loop_sum", Input: "10", ExpectedOutput: "55", Description: "Test loop accumulation"},
		{Name: "test_empty_loop", Input: "0", ExpectedOutput: "", Description: "Test empty loop case"},
	}
	return truncateTestCases(cases, n)
}

func genericTestCases(n int, topic string) []TestCase {
	cases := make([]TestCase, 0, n)
	for i := 1; i <= n; i++ {
		cases = append(cases, TestCase{
			Name:           fmt.Sprintf("test_%s_%d", topic, i),
			Input:          fmt.Sprintf("test_input_%d", i),
			ExpectedOutput: fmt.Sprintf("expected_output_%d", i),
			Description:    fmt.Sprintf("Test case %d for %s", i, topic),
		})
	}
	return cases
}

func truncateTestCases(cases []TestCase, n int) []TestCase {
	if n < len(cases) {
		return cases[:n]
	}
	return cases
}

var _ core.Agent = (*ExerciseGeneratorAgent)(nil)
