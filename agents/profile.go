// Package agents holds the contract-level specialist implementations spec
// §4.6 enumerates: Profile, Curriculum Planner, Exercise Generator,
// Reviewer, Resources. Each depends only on the ports its domain needs and
// degrades gracefully when an optional port (LLMService) is nil.
package agents

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
)

// DiagnosticQuestion is one skill-assessment item, grounded on
// original_source's _initialize_diagnostic_questions question-bank shape.
type DiagnosticQuestion struct {
	ID         string
	Question   string
	Type       string // "multiple_choice" (default), "code", "explanation"
	Options    []string
	Correct    int
	Difficulty int
	Concepts   []string
}

// ProfileAgent manages learner identity: skill assessment, goals, time
// constraints, and the profile record itself. Grounded on
// original_source/src/agents/profile_agent.py.
type ProfileAgent struct {
	users     ports.UserRepository
	questions map[string][]DiagnosticQuestion
	logger    core.Logger
}

// NewProfileAgent builds a ProfileAgent backed by users.
func NewProfileAgent(users ports.UserRepository, logger core.Logger) *ProfileAgent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &ProfileAgent{
		users:     users,
		questions: diagnosticQuestionBank(),
		logger:    logger,
	}
}

func (a *ProfileAgent) AgentType() core.AgentType { return core.AgentProfile }

func (a *ProfileAgent) SupportedIntents() []core.Intent {
	return []core.Intent{
		core.IntentAssessSkillLevel,
		core.IntentUpdateGoals,
		core.IntentSetConstraints,
		core.IntentCreateProfile,
		core.IntentUpdateProfile,
		core.IntentGetProfile,
		core.IntentParseTimeframe,
	}
}

func (a *ProfileAgent) Process(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	switch payload.Intent {
	case core.IntentAssessSkillLevel:
		return a.assessSkillLevel(ctx, rc, payload)
	case core.IntentUpdateGoals:
		return a.updateGoals(ctx, rc, payload)
	case core.IntentSetConstraints:
		return a.setConstraints(ctx, rc, payload)
	case core.IntentCreateProfile:
		return a.createProfile(ctx, rc, payload)
	case core.IntentUpdateProfile:
		return a.updateProfile(ctx, rc, payload)
	case core.IntentGetProfile:
		return a.getProfile(ctx, rc, payload)
	case core.IntentParseTimeframe:
		return a.parseTimeframe(ctx, rc, payload)
	default:
		return core.ErrorResult(fmt.Sprintf("profile agent does not support intent %q", payload.Intent), core.ErrValidation, nil), nil
	}
}

func (a *ProfileAgent) Health() core.Health {
	return core.Health{AgentType: a.AgentType(), SupportedIntents: a.SupportedIntents(), Status: core.HealthHealthy}
}

func (a *ProfileAgent) assessSkillLevel(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	domain, _ := payload.Data["domain"].(string)
	if domain == "" {
		domain = "javascript"
	}

	responsesRaw, hasResponses := payload.Data["responses"].([]interface{})
	if !hasResponses || len(responsesRaw) == 0 {
		return core.SuccessResult(map[string]interface{}{
			"questions":    a.questionsFor(domain),
			"domain":       domain,
			"instructions": "Please answer these questions to assess your current skill level.",
		}, []string{"submit_assessment_responses"}, nil), nil
	}

	skillLevel := a.evaluateSkillResponses(responsesRaw, domain)

	profile, err := a.users.GetUserProfile(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load profile: %v", err), core.ErrProcessingError, nil), nil
	}
	if profile != nil {
		profile.SkillLevel = string(skillLevel)
		if _, err := a.users.UpdateUserProfile(ctx, profile); err != nil {
			return core.ErrorResult(fmt.Sprintf("update profile: %v", err), core.ErrProcessingError, nil), nil
		}
	}

	return core.SuccessResult(map[string]interface{}{
		"skill_level": skillLevel,
		"domain":      domain,
		"next_steps":  nextStepsForLevel(skillLevel),
	}, []string{"clarify_goals", "set_time_constraints"}, nil), nil
}

func (a *ProfileAgent) updateGoals(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	goalsInput := payload.Data["goals"]
	if goalsInput == nil {
		return core.ErrorResult("goals input is required", core.ErrValidation, nil), nil
	}

	validated := validateGoals(parseLearningGoals(goalsInput))

	profile, err := a.users.GetUserProfile(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load profile: %v", err), core.ErrProcessingError, nil), nil
	}
	if profile == nil {
		return core.ErrorResult("user profile not found, complete skill assessment first", core.ErrValidation, nil), nil
	}

	profile.Goals = validated
	if _, err := a.users.UpdateUserProfile(ctx, profile); err != nil {
		return core.ErrorResult(fmt.Sprintf("update profile: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"goals":           validated,
		"goal_categories": categorizeGoals(validated),
	}, []string{"set_time_constraints", "create_learning_plan"}, nil), nil
}

func (a *ProfileAgent) setConstraints(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	text, _ := payload.Data["constraints"].(string)
	if text == "" {
		return core.ErrorResult("time constraints input is required", core.ErrValidation, nil), nil
	}

	constraints := validateTimeConstraints(parseTimeConstraints(text))

	profile, err := a.users.GetUserProfile(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load profile: %v", err), core.ErrProcessingError, nil), nil
	}
	if profile == nil {
		return core.ErrorResult("user profile not found, complete skill assessment first", core.ErrValidation, nil), nil
	}

	profile.Constraints = constraints
	if _, err := a.users.UpdateUserProfile(ctx, profile); err != nil {
		return core.ErrorResult(fmt.Sprintf("update profile: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"time_constraints": constraints,
		"weekly_schedule":  generateWeeklySchedule(constraints),
	}, []string{"create_learning_plan"}, nil), nil
}

func (a *ProfileAgent) createProfile(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	email, _ := payload.Data["email"].(string)
	name, _ := payload.Data["name"].(string)
	if email == "" || name == "" {
		return core.ErrorResult("email and name are required for profile creation", core.ErrValidation, nil), nil
	}

	profile, err := a.users.CreateUser(ctx, email, name, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("create user: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"profile": profile,
		"next_steps": []string{
			"Complete skill assessment",
			"Set learning goals",
			"Define time constraints",
		},
	}, []string{"assess_skill_level"}, nil), nil
}

func (a *ProfileAgent) updateProfile(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	profile, err := a.users.GetUserProfile(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load profile: %v", err), core.ErrProcessingError, nil), nil
	}
	if profile == nil {
		return core.ErrorResult("user profile not found", core.ErrValidation, nil), nil
	}

	if prefs, ok := payload.Data["preferences"].(map[string]interface{}); ok {
		profile.Constraints = prefs
	}
	if skill, ok := payload.Data["skill_level"].(string); ok && skill != "" {
		if !core.SkillLevel(skill).Valid() || skill == "" {
			return core.ErrorResult(fmt.Sprintf("invalid skill level %q", skill), core.ErrValidation, nil), nil
		}
		profile.SkillLevel = skill
	}

	updated, err := a.users.UpdateUserProfile(ctx, profile)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("update profile: %v", err), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{"profile": updated}, []string{"adapt_learning_plan"}, nil), nil
}

func (a *ProfileAgent) getProfile(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	profile, err := a.users.GetUserProfile(ctx, rc.UserID)
	if err != nil {
		return core.ErrorResult(fmt.Sprintf("load profile: %v", err), core.ErrProcessingError, nil), nil
	}
	if profile == nil {
		return core.SuccessResult(map[string]interface{}{"profile": nil, "exists": false}, []string{"create_profile"}, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"profile":      profile,
		"exists":       true,
		"completeness": assessProfileCompleteness(profile),
	}, nil, nil), nil
}

func (a *ProfileAgent) parseTimeframe(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	text, _ := payload.Data["timeframe"].(string)
	if text == "" {
		return core.ErrorResult("timeframe text is required", core.ErrValidation, nil), nil
	}
	parsed := validateTimeConstraints(parseTimeConstraints(text))
	return core.SuccessResult(map[string]interface{}{"parsed_timeframe": parsed}, nil, nil), nil
}

func (a *ProfileAgent) questionsFor(domain string) []DiagnosticQuestion {
	questions, ok := a.questions[domain]
	if !ok {
		questions = a.questions["javascript"]
	}
	sorted := append([]DiagnosticQuestion(nil), questions...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Difficulty < sorted[j].Difficulty })
	return sorted
}

// evaluateSkillResponses scores diagnostic responses and maps the
// percentage score to a skill level. The first three bands (0.3/0.6/0.8)
// come from original_source's _evaluate_skill_responses; the fourth band
// (>=0.95 -> expert) is SPEC_FULL.md's supplement, since the original never
// produces SkillLevel.EXPERT at all (see DESIGN.md Open Question 4).
func (a *ProfileAgent) evaluateSkillResponses(responses []interface{}, domain string) core.SkillLevel {
	questions, ok := a.questions[domain]
	if !ok {
		questions = nil
	}
	byID := make(map[string]DiagnosticQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var totalScore, maxScore float64
	for _, raw := range responses {
		response, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		questionID, _ := response["question_id"].(string)
		question, ok := byID[questionID]
		if !ok {
			continue
		}
		maxScore += float64(question.Difficulty)

		var score float64
		switch {
		case question.Type == "code":
			code, _ := response["answer"].(string)
			score = scoreCodeResponse(code, question.Concepts) * float64(question.Difficulty)
		case len(question.Options) > 0:
			selected, _ := response["selected"].(float64)
			if int(selected) == question.Correct {
				score = float64(question.Difficulty)
			}
		default:
			explanation, _ := response["answer"].(string)
			score = scoreExplanationResponse(explanation, question.Concepts) * float64(question.Difficulty)
		}
		totalScore += score
	}

	if maxScore == 0 {
		return core.SkillBeginner
	}
	percentage := totalScore / maxScore

	switch {
	case percentage >= 0.95:
		return core.SkillExpert
	case percentage >= 0.8:
		return core.SkillAdvanced
	case percentage >= 0.6:
		return core.SkillIntermediate
	default:
		return core.SkillBeginner
	}
}

func scoreCodeResponse(code string, concepts []string) float64 {
	if strings.TrimSpace(code) == "" {
		return 0
	}
	lower := strings.ToLower(code)
	has := func(s string) bool { return strings.Contains(lower, s) }
	score := 0.0
	if containsConcept(concepts, "functions") && (has("function") || has("def ")) {
		score += 0.3
	}
	if containsConcept(concepts, "parameters") && strings.Contains(code, "(") && strings.Contains(code, ")") {
		score += 0.3
	}
	if containsConcept(concepts, "return") && has("return") {
		score += 0.4
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

var conceptKeywords = map[string][]string{
	"closures":      {"closure", "scope", "lexical", "environment", "function"},
	"type_coercion": {"coercion", "type", "conversion", "implicit"},
	"mutability":    {"mutable", "immutable", "change", "modify"},
}

func scoreExplanationResponse(explanation string, concepts []string) float64 {
	if strings.TrimSpace(explanation) == "" || len(concepts) == 0 {
		return 0
	}
	lower := strings.ToLower(explanation)
	score := 0.0
	for _, concept := range concepts {
		keywords, ok := conceptKeywords[concept]
		if !ok {
			keywords = []string{strings.ReplaceAll(concept, "_", " ")}
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score += 1.0 / float64(len(concepts))
				break
			}
		}
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

func containsConcept(concepts []string, target string) bool {
	for _, c := range concepts {
		if c == target {
			return true
		}
	}
	return false
}

func nextStepsForLevel(level core.SkillLevel) []string {
	switch level {
	case core.SkillBeginner:
		return []string{"Complete basic syntax exercises", "Build simple projects", "Learn debugging techniques"}
	case core.SkillIntermediate:
		return []string{"Work on intermediate projects", "Learn testing frameworks", "Study design patterns"}
	case core.SkillAdvanced:
		return []string{"Build complex applications", "Contribute to open source", "Learn system design"}
	case core.SkillExpert:
		return []string{"Contribute to open source", "Mentor others", "Design systems at scale"}
	default:
		return []string{"Continue practicing"}
	}
}

var goalMappings = map[string][]string{
	"web_development":     {"html", "css", "javascript", "react", "node.js"},
	"backend_development": {"python", "java", "databases", "apis", "microservices"},
	"data_science":        {"python", "pandas", "numpy", "machine_learning", "statistics"},
	"mobile_development":  {"react_native", "flutter", "swift", "kotlin"},
	"devops":              {"docker", "kubernetes", "ci_cd", "aws", "monitoring"},
}

var goalSplitPattern = regexp.MustCompile(`[,;]|\s+and\s+|\s+or\s+`)

func parseLearningGoals(goalInput interface{}) []string {
	switch v := goalInput.(type) {
	case []interface{}:
		goals := make([]string, 0, len(v))
		for _, g := range v {
			if s, ok := g.(string); ok && strings.TrimSpace(s) != "" {
				goals = append(goals, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		return goals
	case []string:
		goals := make([]string, 0, len(v))
		for _, g := range v {
			if strings.TrimSpace(g) != "" {
				goals = append(goals, strings.ToLower(strings.TrimSpace(g)))
			}
		}
		return goals
	case string:
		lower := strings.ToLower(v)
		var goals []string
		for category, keywords := range goalMappings {
			_ = category
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					limit := 3
					if len(keywords) < limit {
						limit = len(keywords)
					}
					goals = append(goals, keywords[:limit]...)
					break
				}
			}
		}
		if len(goals) == 0 {
			for _, part := range goalSplitPattern.Split(lower, -1) {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					goals = append(goals, trimmed)
				}
			}
		}
		if len(goals) > 5 {
			goals = goals[:5]
		}
		return goals
	default:
		return nil
	}
}

var goalNormalizations = map[string]string{
	"js":       "javascript",
	"react.js": "react",
	"node":     "node.js",
	"ml":       "machine_learning",
	"ai":       "artificial_intelligence",
}

func validateGoals(goals []string) []string {
	validated := make([]string, 0, len(goals))
	seen := make(map[string]bool)
	for _, goal := range goals {
		trimmed := strings.TrimSpace(strings.ToLower(goal))
		if len(trimmed) < 2 {
			continue
		}
		if mapped, ok := goalNormalizations[trimmed]; ok {
			trimmed = mapped
		}
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		validated = append(validated, trimmed)
		if len(validated) == 10 {
			break
		}
	}
	return validated
}

var categoryKeywords = map[string][]string{
	"frontend":     {"html", "css", "javascript", "react", "vue", "angular"},
	"backend":      {"python", "java", "node.js", "databases", "apis"},
	"data_science": {"python", "pandas", "numpy", "machine_learning", "statistics"},
	"mobile":       {"react_native", "flutter", "swift", "kotlin"},
	"devops":       {"docker", "kubernetes", "ci_cd", "aws"},
}

var categoryOrder = []string{"frontend", "backend", "data_science", "mobile", "devops"}

func categorizeGoals(goals []string) map[string][]string {
	categories := make(map[string][]string)
	for _, goal := range goals {
		categorized := false
		for _, category := range categoryOrder {
			for _, kw := range categoryKeywords[category] {
				if goal == kw {
					categories[category] = append(categories[category], goal)
					categorized = true
					break
				}
			}
			if categorized {
				break
			}
		}
		if !categorized {
			categories["other"] = append(categories["other"], goal)
		}
	}
	return categories
}

type timePattern struct {
	pattern *regexp.Regexp
	kind    string
	value   map[string]interface{}
}

var timePatterns = []timePattern{
	{pattern: regexp.MustCompile(`(\d+)\s*hours?\s*per\s*week`), kind: "hours_per_week"},
	{pattern: regexp.MustCompile(`(\d+)\s*minutes?\s*per\s*day`), kind: "minutes_per_day"},
	{pattern: regexp.MustCompile(`(\d+)\s*hours?\s*per\s*day`), kind: "hours_per_day"},
	{pattern: regexp.MustCompile(`weekends?\s*only`), kind: "weekends_only", value: map[string]interface{}{
		"available_days": []string{"saturday", "sunday"}, "hours_per_week": 8,
	}},
	{pattern: regexp.MustCompile(`evenings?\s*only`), kind: "evenings_only", value: map[string]interface{}{
		"preferred_times": []string{"evening"}, "hours_per_week": 10,
	}},
}

var timeOfDayKeywords = map[string][]string{
	"morning":   {"morning", "am", "early"},
	"afternoon": {"afternoon", "lunch", "midday"},
	"evening":   {"evening", "night", "pm", "after work"},
}

var dayKeywords = map[string][]string{
	"monday": {"monday", "mon"}, "tuesday": {"tuesday", "tue"}, "wednesday": {"wednesday", "wed"},
	"thursday": {"thursday", "thu"}, "friday": {"friday", "fri"}, "saturday": {"saturday", "sat"}, "sunday": {"sunday", "sun"},
}

var orderedDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
var orderedTimesOfDay = []string{"morning", "afternoon", "evening"}

// parseTimeConstraints mirrors original_source's regex-and-keyword
// time-constraint parser.
func parseTimeConstraints(text string) map[string]interface{} {
	constraints := map[string]interface{}{
		"hours_per_week":         5,
		"preferred_times":        []string{},
		"available_days":         []string{},
		"session_length_minutes": 60,
	}
	lower := strings.ToLower(text)

	for _, tp := range timePatterns {
		match := tp.pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		switch tp.kind {
		case "hours_per_week":
			if n, err := strconv.Atoi(match[1]); err == nil {
				constraints["hours_per_week"] = n
			}
		case "minutes_per_day":
			if n, err := strconv.Atoi(match[1]); err == nil {
				constraints["hours_per_week"] = float64(n*7) / 60
			}
		case "hours_per_day":
			if n, err := strconv.Atoi(match[1]); err == nil {
				constraints["hours_per_week"] = n * 7
			}
		default:
			for k, v := range tp.value {
				constraints[k] = v
			}
		}
	}

	var preferredTimes []string
	for _, period := range orderedTimesOfDay {
		for _, kw := range timeOfDayKeywords[period] {
			if strings.Contains(lower, kw) {
				preferredTimes = append(preferredTimes, period)
				break
			}
		}
	}
	constraints["preferred_times"] = preferredTimes

	var availableDays []string
	for _, day := range orderedDays {
		for _, kw := range dayKeywords[day] {
			if strings.Contains(lower, kw) {
				availableDays = append(availableDays, day)
				break
			}
		}
	}
	if len(availableDays) == 0 {
		availableDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	}
	constraints["available_days"] = availableDays

	return constraints
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func validateTimeConstraints(constraints map[string]interface{}) map[string]interface{} {
	validated := make(map[string]interface{}, len(constraints))
	for k, v := range constraints {
		validated[k] = v
	}

	validated["hours_per_week"] = clampInt(toInt(validated["hours_per_week"]), 1, 40)
	validated["session_length_minutes"] = clampInt(toInt(validated["session_length_minutes"]), 15, 180)

	if times, ok := validated["preferred_times"].([]string); ok {
		filtered := make([]string, 0, len(times))
		for _, t := range times {
			for _, valid := range orderedTimesOfDay {
				if t == valid {
					filtered = append(filtered, t)
					break
				}
			}
		}
		validated["preferred_times"] = filtered
	}

	if days, ok := validated["available_days"].([]string); ok {
		filtered := make([]string, 0, len(days))
		for _, d := range days {
			for _, valid := range orderedDays {
				if d == valid {
					filtered = append(filtered, d)
					break
				}
			}
		}
		validated["available_days"] = filtered
	}

	return validated
}

func generateWeeklySchedule(constraints map[string]interface{}) map[string]interface{} {
	hoursPerWeek := float64(toInt(constraints["hours_per_week"]))
	availableDays, _ := constraints["available_days"].([]string)
	if len(availableDays) == 0 {
		availableDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	}
	sessionLengthHours := float64(toInt(constraints["session_length_minutes"])) / 60
	if sessionLengthHours == 0 {
		sessionLengthHours = 1
	}

	sessionsPerWeek := int(hoursPerWeek/sessionLengthHours + 0.5)
	if sessionsPerWeek < 1 {
		sessionsPerWeek = 1
	}
	if sessionsPerWeek > len(availableDays) {
		sessionsPerWeek = len(availableDays)
	}

	preferredTimes, _ := constraints["preferred_times"].([]string)
	suggestedTime := "evening"
	if len(preferredTimes) > 0 {
		suggestedTime = preferredTimes[0]
	}

	schedule := make(map[string]interface{}, sessionsPerWeek)
	for _, day := range availableDays[:sessionsPerWeek] {
		schedule[day] = map[string]interface{}{
			"duration_minutes": int(sessionLengthHours * 60),
			"suggested_time":   suggestedTime,
		}
	}

	return map[string]interface{}{
		"weekly_schedule":         schedule,
		"total_sessions_per_week": len(schedule),
		"total_hours_per_week":    float64(len(schedule)) * sessionLengthHours,
	}
}

func assessProfileCompleteness(profile *ports.UserProfile) map[string]interface{} {
	score := 0
	const totalFields = 4

	if profile.SkillLevel != string(core.SkillBeginner) || len(profile.Goals) > 0 {
		score++
	}
	if len(profile.Goals) > 0 {
		score++
	}
	if len(profile.Constraints) > 0 {
		score++
	}
	if len(profile.Constraints) > 0 {
		score++
	}

	percentage := float64(score) / float64(totalFields) * 100
	status := "incomplete"
	if percentage == 100 {
		status = "complete"
	}

	return map[string]interface{}{
		"percentage": percentage,
		"status":     status,
	}
}

func diagnosticQuestionBank() map[string][]DiagnosticQuestion {
	return map[string][]DiagnosticQuestion{
		"javascript": {
			{
				ID:         "js_basics_1",
				Question:   "What will this code output?\nlet x = 5; let y = '5'; console.log(x == y); console.log(x === y);",
				Options:    []string{"true, true", "true, false", "false, true", "false, false"},
				Correct:    1,
				Difficulty: 1,
				Concepts:   []string{"type_coercion", "equality_operators"},
			},
			{
				ID:         "js_basics_2",
				Question:   "Write a function that takes two parameters and returns their sum.",
				Type:       "code",
				Difficulty: 1,
				Concepts:   []string{"functions", "parameters", "return"},
			},
			{
				ID:         "js_intermediate_1",
				Question:   "What is the output of arr.map(x => x * 2) on [1, 2, 3], and does it mutate arr?",
				Type:       "explanation",
				Difficulty: 2,
				Concepts:   []string{"mutability"},
			},
			{
				ID:         "js_advanced_1",
				Question:   "Explain the concept of closures in JavaScript and provide an example.",
				Type:       "explanation",
				Difficulty: 3,
				Concepts:   []string{"closures"},
			},
		},
		"python": {
			{
				ID:         "py_basics_1",
				Question:   "What is the difference between a list and a tuple in Python?",
				Type:       "explanation",
				Difficulty: 1,
				Concepts:   []string{"mutability"},
			},
			{
				ID:         "py_intermediate_1",
				Question:   "What will [x**2 for x in range(5) if x % 2 == 0] produce?",
				Options:    []string{"[0, 4, 16]", "[0, 1, 4, 9, 16]", "[1, 9]", "[0, 2, 4]"},
				Correct:    0,
				Difficulty: 2,
				Concepts:   []string{"list_comprehensions"},
			},
		},
	}
}

var _ core.Agent = (*ProfileAgent)(nil)
