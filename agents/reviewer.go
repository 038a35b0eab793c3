package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
)

// qualityCriterion pairs a code-quality dimension with its weight in the
// blended quality score, grounded on reviewer_agent.py's quality_criteria.
type qualityCriterion struct {
	key    string
	weight float64
}

var qualityCriteria = []qualityCriterion{
	{"readability", 0.25},
	{"correctness", 0.40},
	{"efficiency", 0.20},
	{"best_practices", 0.15},
}

// QualityScore is one dimension's verdict from analyzeCodeQuality.
type QualityScore struct {
	Score      float64
	Violations []string
	Details    map[string]interface{}
}

// CodeIssue is a single flagged line-level problem.
type CodeIssue struct {
	Type     string
	Line     int
	Message  string
	Severity string
}

// QualityAnalysis is the full multi-dimension quality report for one
// submission, grounded on reviewer_agent.py's _analyze_code_quality.
type QualityAnalysis struct {
	Readability    QualityScore
	Structure      QualityScore
	BestPractices  QualityScore
	Complexity     QualityScore
	Issues         []CodeIssue
	Suggestions    []string
}

// ReviewerAgent evaluates code submissions: execution, quality analysis,
// feedback generation, and requirement validation. Grounded on
// original_source/src/agents/reviewer_agent.py.
type ReviewerAgent struct {
	execution   ports.CodeExecutionService
	submissions ports.SubmissionRepository
	logger      core.Logger
}

// NewReviewerAgent builds a ReviewerAgent. execution may be nil, in which
// case evaluate_submission degrades to a quality-only review and run_tests
// returns an ErrProcessingError result.
func NewReviewerAgent(execution ports.CodeExecutionService, submissions ports.SubmissionRepository, logger core.Logger) *ReviewerAgent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &ReviewerAgent{execution: execution, submissions: submissions, logger: logger}
}

func (a *ReviewerAgent) AgentType() core.AgentType { return core.AgentReviewer }

func (a *ReviewerAgent) SupportedIntents() []core.Intent {
	return []core.Intent{
		core.IntentEvaluateSubmission,
		core.IntentRunTests,
		core.IntentGenerateFeedback,
		core.IntentCheckCodeQuality,
		core.IntentCompareSubmissions,
		core.IntentValidateSolution,
	}
}

func (a *ReviewerAgent) Process(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	switch payload.Intent {
	case core.IntentEvaluateSubmission:
		return a.evaluateSubmission(ctx, rc, payload.Data)
	case core.IntentRunTests:
		return a.runTests(ctx, rc, payload.Data)
	case core.IntentGenerateFeedback:
		return a.generateFeedback(ctx, rc, payload.Data)
	case core.IntentCheckCodeQuality:
		return a.checkCodeQuality(ctx, rc, payload.Data)
	case core.IntentCompareSubmissions:
		return a.compareSubmissions(ctx, rc, payload.Data)
	case core.IntentValidateSolution:
		return a.validateSolution(ctx, rc, payload.Data)
	default:
		return core.ErrorResult(fmt.Sprintf("unsupported intent: %s", payload.Intent), core.ErrValidation, nil), nil
	}
}

func (a *ReviewerAgent) Health() core.Health {
	return core.Health{AgentType: core.AgentReviewer, SupportedIntents: a.SupportedIntents(), Status: core.HealthHealthy}
}

func (a *ReviewerAgent) evaluateSubmission(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	submissionData, _ := data["submission"].(map[string]interface{})
	exerciseData, _ := data["exercise"].(map[string]interface{})
	if submissionData == nil {
		return core.ErrorResult("submission data is required", core.ErrValidation, nil), nil
	}
	if exerciseData == nil {
		return core.ErrorResult("exercise data is required", core.ErrValidation, nil), nil
	}

	code, _ := submissionData["code"].(string)
	language := orDefault(stringField(submissionData, "language"), "python")
	if strings.TrimSpace(code) == "" {
		return core.ErrorResult("code cannot be empty", core.ErrValidation, nil), nil
	}

	a.logger.DebugWithContext(ctx, "evaluating submission", map[string]interface{}{
		"language": language, "length": len(code),
	})

	taskID := orDefault(stringField(exerciseData, "id"), "exercise")
	submission := &ports.Submission{UserID: rc.UserID, TaskID: taskID, Content: code}
	if a.submissions != nil {
		saved, err := a.submissions.SaveSubmission(ctx, submission)
		if err != nil {
			return core.ErrorResult("failed to save submission: "+err.Error(), core.ErrProcessingError, nil), nil
		}
		submission = saved
	}

	testCases := testCaseList(exerciseData["test_cases"])
	execResult, execErr := a.executeWithTests(ctx, code, language, testCases)
	quality := analyzeCodeQuality(code, language)
	feedback := generateComprehensiveFeedback(execResult, quality)

	passed := execResult != nil && execResult.Status == "success" && allTestsPassed(execResult)
	score := calculateOverallScore(execResult, quality)

	evaluation := &ports.EvaluationResult{
		SubmissionID: submission.ID,
		Passed:       passed,
		Score:        score,
		Status:       statusFor(passed, execResult),
		Feedback:     feedback,
	}
	if a.submissions != nil {
		saved, err := a.submissions.SaveEvaluation(ctx, evaluation)
		if err == nil {
			evaluation = saved
		}
	}

	nextActions := determineNextActions(passed, rc)

	testCount, testsPassed := 0, 0
	if execResult != nil {
		testCount = len(execResult.TestResults)
		testsPassed = countPassed(execResult)
	}

	a.logger.InfoWithContext(ctx, "submission evaluated", map[string]interface{}{
		"passed": passed, "score": score,
	})

	data2 := map[string]interface{}{
		"evaluation":    evaluation,
		"submission_id": submission.ID,
		"quality_analysis": quality,
		"feedback":         feedback,
	}
	if execResult != nil {
		data2["execution_result"] = execResult
	} else if execErr != nil {
		data2["execution_error"] = execErr.Error()
	}

	return core.SuccessResult(data2, nextActions, map[string]interface{}{
		"passed":       passed,
		"score":        score,
		"language":     language,
		"test_count":   testCount,
		"tests_passed": testsPassed,
	}), nil
}

func (a *ReviewerAgent) runTests(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	code, _ := data["code"].(string)
	if strings.TrimSpace(code) == "" {
		return core.ErrorResult("code cannot be empty", core.ErrValidation, nil), nil
	}
	language := orDefault(stringField(data, "language"), "python")
	testCases := testCaseList(data["test_cases"])

	a.logger.DebugWithContext(ctx, "running tests", map[string]interface{}{
		"language": language, "test_count": len(testCases),
	})

	execResult, err := a.executeWithTests(ctx, code, language, testCases)
	if err != nil {
		return core.ErrorResult("test execution failed: "+err.Error(), core.ErrProcessingError, nil), nil
	}

	total := len(execResult.TestResults)
	passed := countPassed(execResult)
	successRate := 0.0
	if total > 0 {
		successRate = float64(passed) / float64(total)
	}

	return core.SuccessResult(map[string]interface{}{
		"execution_status": execResult.Status,
		"output":           execResult.Output,
		"errors":           execResult.Errors,
		"test_results":     execResult.TestResults,
		"summary": map[string]interface{}{
			"total_tests":      total,
			"passed_tests":     passed,
			"success_rate":     successRate,
			"execution_time_ms": execResult.ExecutionTimeMillis,
		},
	}, nil, map[string]interface{}{
		"all_tests_passed":    allTestsPassed(execResult),
		"execution_successful": execResult.Status == "success",
	}), nil
}

func (a *ReviewerAgent) generateFeedback(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	code, _ := data["code"].(string)
	if strings.TrimSpace(code) == "" {
		return core.ErrorResult("code cannot be empty", core.ErrValidation, nil), nil
	}
	language := orDefault(stringField(data, "language"), "python")

	a.logger.DebugWithContext(ctx, "generating feedback", map[string]interface{}{"language": language})

	quality := analyzeCodeQuality(code, language)
	feedback := generateDetailedFeedback(quality, rc)

	return core.SuccessResult(map[string]interface{}{
		"feedback":         feedback,
		"quality_analysis": quality,
	}, nil, map[string]interface{}{
		"feedback_sections":  len(feedback["sections"].([]map[string]interface{})),
		"suggestions_count": len(feedback["areas_for_improvement"].([]string)),
	}), nil
}

func (a *ReviewerAgent) checkCodeQuality(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	code, _ := data["code"].(string)
	if strings.TrimSpace(code) == "" {
		return core.ErrorResult("code cannot be empty", core.ErrValidation, nil), nil
	}
	language := orDefault(stringField(data, "language"), "python")

	quality := analyzeCodeQuality(code, language)
	overall := calculateQualityScore(quality)

	return core.SuccessResult(map[string]interface{}{
		"quality_analysis": quality,
		"overall_score":    overall,
		"quality_rating":   qualityRating(overall),
	}, nil, map[string]interface{}{
		"quality_score": overall,
		"issues_found":  len(quality.Issues),
	}), nil
}

func (a *ReviewerAgent) compareSubmissions(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	submissionsRaw, _ := data["submissions"].([]interface{})
	if len(submissionsRaw) < 2 {
		return core.ErrorResult("at least 2 submissions are required for comparison", core.ErrValidation, nil), nil
	}

	type analysisEntry struct {
		index   int
		id      string
		quality QualityAnalysis
		length  int
		language string
	}

	analyses := make([]analysisEntry, 0, len(submissionsRaw))
	for i, raw := range submissionsRaw {
		sub, _ := raw.(map[string]interface{})
		code, _ := sub["code"].(string)
		language := orDefault(stringField(sub, "language"), "python")
		analyses = append(analyses, analysisEntry{
			index: i, id: stringField(sub, "id"),
			quality: analyzeCodeQuality(code, language),
			length:  len(code), language: language,
		})
	}

	scores := make([]float64, len(analyses))
	bestIdx := 0
	for i, entry := range analyses {
		scores[i] = calculateQualityScore(entry.quality)
		if scores[i] > scores[bestIdx] {
			bestIdx = i
		}
	}

	trend := "declining"
	if scores[len(scores)-1] > scores[0] {
		trend = "improving"
	}
	avg, lo, hi := average(scores), minFloat(scores), maxFloat(scores)

	insights := []string{}
	if trend == "improving" {
		insights = append(insights, "Your code quality is improving over time!")
	}
	if hi-lo > 2.0 {
		insights = append(insights, "Your code quality varies significantly between submissions")
	}

	comparison := map[string]interface{}{
		"best_submission_index": analyses[bestIdx].index,
		"quality_trend":         trend,
		"average_quality":       avg,
		"quality_range":         hi - lo,
		"insights":              insights,
	}

	analysesOut := make([]map[string]interface{}, 0, len(analyses))
	for _, entry := range analyses {
		analysesOut = append(analysesOut, map[string]interface{}{
			"submission_index":  entry.index,
			"submission_id":     entry.id,
			"quality_analysis":  entry.quality,
			"code_length":       entry.length,
			"language":          entry.language,
		})
	}

	return core.SuccessResult(map[string]interface{}{
		"comparison":       comparison,
		"analyses":         analysesOut,
		"submission_count": len(analyses),
	}, nil, map[string]interface{}{
		"submissions_compared":   len(analyses),
		"best_submission_index": analyses[bestIdx].index,
	}), nil
}

func (a *ReviewerAgent) validateSolution(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	code, _ := data["code"].(string)
	if strings.TrimSpace(code) == "" {
		return core.ErrorResult("code cannot be empty", core.ErrValidation, nil), nil
	}
	requirements := stringSlice(data["requirements"])

	results := make([]map[string]interface{}, 0, len(requirements))
	met := 0
	for _, requirement := range requirements {
		r := validateRequirement(code, requirement)
		if r["met"].(bool) {
			met++
		}
		results = append(results, r)
	}

	total := len(requirements)
	score := 1.0
	if total > 0 {
		score = float64(met) / float64(total)
	}

	return core.SuccessResult(map[string]interface{}{
		"validation_results":  results,
		"validation_score":    score,
		"requirements_met":    met,
		"total_requirements":  total,
		"overall_valid":       score >= 0.8,
	}, nil, map[string]interface{}{
		"validation_score":     score,
		"requirements_checked": total,
	}), nil
}

func (a *ReviewerAgent) executeWithTests(ctx context.Context, code, language string, testCases []TestCase) (*ports.CodeExecutionResult, error) {
	if a.execution == nil {
		return nil, fmt.Errorf("code execution service unavailable")
	}
	req := ports.CodeExecutionRequest{
		Language: language,
		Code:     code,
		TestCode: encodeTestCases(testCases),
		Timeout:  30,
	}
	return a.execution.ExecuteCode(ctx, req)
}

// encodeTestCases renders test cases into the TestCode harness string the
// execution sandbox expects, one "name|input|expected" line per case.
func encodeTestCases(cases []TestCase) string {
	var b strings.Builder
	for _, c := range cases {
		b.WriteString(c.Name)
		b.WriteString("|")
		b.WriteString(c.Input)
		b.WriteString("|")
		b.WriteString(c.ExpectedOutput)
		b.WriteString("\n")
	}
	return b.String()
}

func testCaseList(raw interface{}) []TestCase {
	list, _ := raw.([]interface{})
	out := make([]TestCase, 0, len(list))
	for _, item := range list {
		m, _ := item.(map[string]interface{})
		out = append(out, TestCase{
			Name:           orDefault(stringField(m, "name"), "test"),
			Input:          stringField(m, "input"),
			ExpectedOutput: stringField(m, "expected_output"),
			Description:    stringField(m, "description"),
		})
	}
	return out
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func allTestsPassed(result *ports.CodeExecutionResult) bool {
	if result == nil || len(result.TestResults) == 0 {
		return result != nil && result.Status == "success"
	}
	for _, t := range result.TestResults {
		if !t.Passed {
			return false
		}
	}
	return true
}

func countPassed(result *ports.CodeExecutionResult) int {
	count := 0
	for _, t := range result.TestResults {
		if t.Passed {
			count++
		}
	}
	return count
}

func statusFor(passed bool, result *ports.CodeExecutionResult) ports.SubmissionStatus {
	if passed {
		return ports.SubmissionPass
	}
	if result != nil && result.Status == "success" {
		return ports.SubmissionPartial
	}
	return ports.SubmissionFail
}

// calculateOverallScore blends a 60% execution weight with a 40% quality
// weight, scaled to a percentage. Grounded on _calculate_overall_score.
func calculateOverallScore(execResult *ports.CodeExecutionResult, quality QualityAnalysis) float64 {
	executionScore := 0.0
	if execResult != nil && execResult.Status == "success" {
		executionScore = 0.5
		total := len(execResult.TestResults)
		if total > 0 {
			if allTestsPassed(execResult) {
				executionScore = 1.0
			} else {
				executionScore = 0.5 + (0.5 * float64(countPassed(execResult)) / float64(total))
			}
		}
	}
	qualityScore := calculateQualityScore(quality) / 10.0
	overall := (executionScore * 0.6) + (qualityScore * 0.4)
	return roundTo(overall*100, 1)
}

// calculateQualityScore produces the weighted 0-10 quality score. Only
// readability and best_practices have matching criteria entries -
// correctness and efficiency are weighted criteria with no corresponding
// analysis dimension, so they never contribute. That asymmetry is carried
// over faithfully from _calculate_quality_score rather than patched, since
// structure and complexity already surface elsewhere in the feedback.
func calculateQualityScore(quality QualityAnalysis) float64 {
	dimensions := map[string]float64{
		"readability":    quality.Readability.Score,
		"best_practices": quality.BestPractices.Score,
	}
	var weighted, totalWeight float64
	for _, c := range qualityCriteria {
		if score, ok := dimensions[c.key]; ok {
			weighted += score * c.weight
			totalWeight += c.weight
		}
	}
	if totalWeight == 0 {
		return 5.0
	}
	return roundTo((weighted/totalWeight)*10, 1)
}

func qualityRating(score float64) string {
	switch {
	case score >= 8.0:
		return "excellent"
	case score >= 6.0:
		return "good"
	case score >= 4.0:
		return "fair"
	default:
		return "needs_improvement"
	}
}

// determineNextActions mirrors _determine_next_actions: a pass offers
// forward progression, a failure offers remediation, and repeated failure
// adds a recap suggestion.
func determineNextActions(passed bool, rc *core.Context) []string {
	if passed {
		return []string{"continue_to_next_exercise", "request_stretch_exercise"}
	}
	actions := []string{"request_hint", "review_feedback", "retry_submission"}
	if rc.AttemptCount >= 2 {
		actions = append(actions, "request_recap_exercise")
	}
	return actions
}

func generateComprehensiveFeedback(execResult *ports.CodeExecutionResult, quality QualityAnalysis) map[string]interface{} {
	var assessment, encouragement string
	switch {
	case execResult != nil && execResult.Status == "success" && allTestsPassed(execResult):
		assessment = "Great job! Your code runs correctly and passes all tests."
		encouragement = "You're making excellent progress!"
	case execResult != nil && execResult.Status == "success":
		assessment = "Your code runs, but some tests are failing."
		encouragement = "You're on the right track, just need some adjustments."
	default:
		assessment = "Your code has some issues that prevent it from running."
		encouragement = "Don't worry, debugging is part of learning!"
	}

	sections := []map[string]interface{}{}
	if execResult != nil && len(execResult.TestResults) > 0 {
		sections = append(sections, map[string]interface{}{
			"title":   "Test Results",
			"content": fmt.Sprintf("Passed %d out of %d tests", countPassed(execResult), len(execResult.TestResults)),
			"details": execResult.TestResults,
		})
	}

	overallQuality := calculateQualityScore(quality)
	sections = append(sections, map[string]interface{}{
		"title":   "Code Quality",
		"content": fmt.Sprintf("Overall quality score: %.1f/10", overallQuality),
		"details": map[string]interface{}{
			"readability":    quality.Readability.Score,
			"structure":      quality.Structure.Score,
			"best_practices": quality.BestPractices.Score,
			"complexity":     quality.Complexity.Score,
		},
	})

	if len(quality.Issues) > 0 {
		sections = append(sections, map[string]interface{}{
			"title":   "Issues Found",
			"content": fmt.Sprintf("Found %d issues to address", len(quality.Issues)),
			"details": quality.Issues,
		})
	}

	nextSteps := []string{"Review the failing test cases", "Debug your code step by step", "Ask for hints if you're stuck"}
	if execResult != nil && allTestsPassed(execResult) {
		nextSteps = []string{"Try the next exercise in the series", "Challenge yourself with a harder difficulty level", "Review and refactor your code for better quality"}
	}

	return map[string]interface{}{
		"overall_assessment": assessment,
		"sections":           sections,
		"suggestions":        quality.Suggestions,
		"next_steps":         nextSteps,
		"encouragement":      encouragement,
	}
}

func generateDetailedFeedback(quality QualityAnalysis, rc *core.Context) map[string]interface{} {
	positives := []string{}
	if quality.Readability.Score > 0.7 {
		positives = append(positives, "Good code readability")
	}
	if quality.Structure.Score > 0.7 {
		positives = append(positives, "Well-structured code")
	}

	var recommendations []string
	if rc.SkillLevel == core.SkillBeginner {
		recommendations = []string{
			"Focus on writing clear, simple code",
			"Add comments to explain your thinking",
			"Test your code with different inputs",
		}
	}

	return map[string]interface{}{
		"summary":                "Code analysis completed",
		"quality_score":          calculateQualityScore(quality),
		"areas_for_improvement":  quality.Suggestions,
		"positive_aspects":       positives,
		"specific_recommendations": recommendations,
		"sections":               []map[string]interface{}{},
	}
}

// analyzeCodeQuality runs the static heuristics ported from
// reviewer_agent.py: readability, structure, best practices, and
// complexity, plus flagged issues and improvement suggestions.
func analyzeCodeQuality(code, language string) QualityAnalysis {
	lines := strings.Split(code, "\n")
	return QualityAnalysis{
		Readability:   analyzeReadability(lines, language),
		Structure:     analyzeStructure(lines, language),
		BestPractices: analyzeBestPractices(code, lines, language),
		Complexity:    analyzeComplexity(lines),
		Issues:        findCodeIssues(lines, language),
		Suggestions:   generateImprovementSuggestions(code, lines, language),
	}
}

func analyzeReadability(lines []string, language string) QualityScore {
	if len(lines) == 0 {
		return QualityScore{Score: 1.0, Details: map[string]interface{}{}}
	}
	totalLen, longLines, commentLines := 0, 0, 0
	inDocstring := false
	for _, line := range lines {
		totalLen += len(line)
		if len(line) > 80 {
			longLines++
		}
		stripped := strings.TrimSpace(line)
		if language == "python" {
			if strings.Contains(stripped, `"""`) || strings.Contains(stripped, "'''") {
				count := strings.Count(stripped, `"""`) + strings.Count(stripped, "'''")
				if count >= 2 {
					commentLines++
				} else {
					inDocstring = !inDocstring
					commentLines++
				}
			} else if inDocstring {
				commentLines++
			} else if strings.HasPrefix(stripped, "#") {
				commentLines++
			}
		} else if strings.HasPrefix(stripped, "//") || strings.HasPrefix(stripped, "/*") || strings.HasPrefix(stripped, "*") {
			commentLines++
		}
	}

	score := 1.0
	if float64(longLines) > float64(len(lines))*0.2 {
		score -= 0.2
	}
	commentRatio := float64(commentLines) / float64(len(lines))
	if commentRatio > 0.1 {
		score += 0.1
	}

	return QualityScore{
		Score: clampFloat(score, 0, 1),
		Details: map[string]interface{}{
			"avg_line_length":     float64(totalLen) / float64(len(lines)),
			"long_lines_count":    longLines,
			"comment_lines_count": commentLines,
			"comment_ratio":       commentRatio,
		},
	}
}

func analyzeStructure(lines []string, language string) QualityScore {
	functions, classes, imports := 0, 0, 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		lower := strings.ToLower(stripped)
		if language == "python" {
			if strings.HasPrefix(stripped, "def ") {
				functions++
			}
			if strings.HasPrefix(stripped, "class ") {
				classes++
			}
			if strings.HasPrefix(stripped, "import ") || strings.HasPrefix(stripped, "from ") {
				imports++
			}
		} else {
			if strings.Contains(lower, "function") {
				functions++
			}
			if strings.Contains(lower, "class") {
				classes++
			}
			if strings.Contains(lower, "import") {
				imports++
			}
		}
	}

	score := 0.5
	if functions > 0 {
		score += 0.2
	}
	if classes > 0 {
		score += 0.2
	}
	if imports > 0 {
		score += 0.1
	}

	return QualityScore{
		Score: clampFloat(score, 0, 1),
		Details: map[string]interface{}{
			"functions_count": functions,
			"classes_count":   classes,
			"imports_count":   imports,
			"total_lines":     len(lines),
		},
	}
}

func analyzeBestPractices(code string, lines []string, language string) QualityScore {
	score := 0.5
	var violations []string

	if language == "python" {
		if strings.Contains(code, "import *") {
			violations = append(violations, "Avoid wildcard imports")
			score -= 0.2
		}
		if strings.Contains(code, "except:") && !strings.Contains(code, "except Exception:") {
			violations = append(violations, "Use specific exception handling")
			score -= 0.1
		}
		for _, line := range lines {
			stripped := strings.TrimSpace(line)
			if strings.HasPrefix(stripped, "def ") {
				name := functionNameFromDef(stripped)
				if name != strings.ToLower(name) || strings.Contains(name, " ") {
					violations = append(violations, "Use snake_case for function names")
					score -= 0.1
					break
				}
			}
		}
	}

	return QualityScore{Score: clampFloat(score, 0, 1), Violations: violations}
}

func functionNameFromDef(stripped string) string {
	before, _, found := strings.Cut(stripped, "(")
	if !found {
		return ""
	}
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

var nestingPrefixes = []string{"if ", "for ", "while ", "try:", "with "}

func analyzeComplexity(lines []string) QualityScore {
	nesting, maxNesting := 0, 0
	nonBlank := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		nonBlank++
		switch {
		case startsWithAny(stripped, nestingPrefixes):
			nesting++
			if nesting > maxNesting {
				maxNesting = nesting
			}
		case stripped == "else:" || strings.HasPrefix(stripped, "elif ") || stripped == "except:" || stripped == "finally:":
			// same nesting level, no change
		case strings.HasPrefix(line, "    ") && nesting > 0:
			// still nested
		default:
			if nesting > 0 {
				nesting--
			}
		}
	}

	score := 1.0 - minFloat2(0.8, float64(maxNesting)*0.2)
	return QualityScore{
		Score: score,
		Details: map[string]interface{}{
			"max_nesting_level": maxNesting,
			"total_lines":       nonBlank,
		},
	}
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

var colonExemptPrefixes = []string{"def ", "class ", "if ", "for ", "while ", "try:", "except", "else:", "elif ", "finally:", "with "}

func findCodeIssues(lines []string, language string) []CodeIssue {
	var issues []CodeIssue
	for i, line := range lines {
		lineNo := i + 1
		stripped := strings.TrimSpace(line)

		if len(line) > 80 {
			issues = append(issues, CodeIssue{Type: "style", Line: lineNo, Message: "Line too long (>80 characters)", Severity: "low"})
		}

		if language == "python" {
			if strings.Contains(stripped, "print(") && !strings.HasPrefix(stripped, "#") {
				issues = append(issues, CodeIssue{Type: "debug", Line: lineNo, Message: "Debug print statement found", Severity: "low"})
			}
			if strings.HasSuffix(stripped, ":") && !startsWithAny(stripped, colonExemptPrefixes) {
				issues = append(issues, CodeIssue{Type: "syntax", Line: lineNo, Message: "Unexpected colon", Severity: "medium"})
			}
		}
	}
	return issues
}

func generateImprovementSuggestions(code string, lines []string, language string) []string {
	var suggestions []string

	commentPrefix := "//"
	if language == "python" {
		commentPrefix = "#"
	}
	hasComment := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			hasComment = true
			break
		}
	}
	if !hasComment {
		suggestions = append(suggestions, "Add comments to explain your code logic")
	}

	if language == "python" {
		hasFunctions := false
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "def ") {
				hasFunctions = true
				break
			}
		}
		if !hasFunctions && len(lines) > 10 {
			suggestions = append(suggestions, "Consider breaking your code into functions for better organization")
		}
		if !strings.Contains(code, "try:") {
			suggestions = append(suggestions, "Consider adding error handling with try/except blocks")
		}
	}

	for _, v := range []string{"x", "y", "z", "temp", "data"} {
		if strings.Contains(code, v) {
			suggestions = append(suggestions, "Use more descriptive variable names")
			break
		}
	}

	return suggestions
}

// validateRequirement checks one free-text requirement against code using
// keyword heuristics, grounded on _validate_requirement.
func validateRequirement(code, requirement string) map[string]interface{} {
	requirementLower := strings.ToLower(requirement)
	codeLower := strings.ToLower(code)

	var met bool
	var explanation string

	switch {
	case strings.Contains(requirementLower, "function"):
		met = strings.Contains(codeLower, "def ") || strings.Contains(codeLower, "function")
		explanation = describeMatch(met, "Function definition found", "No function definition found")
	case strings.Contains(requirementLower, "loop"):
		met = strings.Contains(codeLower, "for ") || strings.Contains(codeLower, "while ")
		explanation = describeMatch(met, "Loop found", "No loop found")
	case strings.Contains(requirementLower, "conditional") || strings.Contains(requirementLower, "if"):
		met = strings.Contains(codeLower, "if ")
		explanation = describeMatch(met, "Conditional statement found", "No conditional statement found")
	case strings.Contains(requirementLower, "comment"):
		met = strings.Contains(code, "#") || strings.Contains(code, "//")
		explanation = describeMatch(met, "Comments found", "No comments found")
	default:
		met = strings.Contains(codeLower, requirementLower)
		explanation = describeMatch(met, "Requirement keyword found", "Requirement keyword not found")
	}

	return map[string]interface{}{
		"requirement": requirement,
		"met":         met,
		"explanation": explanation,
	}
}

func describeMatch(met bool, yes, no string) string {
	if met {
		return yes
	}
	return no
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minFloat2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minFloat(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func roundTo(v float64, decimals int) float64 {
	pow := 1.0
	for i := 0; i < decimals; i++ {
		pow *= 10
	}
	return float64(int(v*pow+0.5)) / pow
}

var _ core.Agent = (*ReviewerAgent)(nil)
