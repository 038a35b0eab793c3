package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
)

// ResourcesAgent surfaces external learning material: documentation
// search, content retrieval, recommendation, and quality/relationship
// checks. No original_source file exists for this specialist; grounded on
// original_source/tests/unit/agents/test_resources_agent.py's intent and
// result-shape contract.
type ResourcesAgent struct {
	docs   ports.DocumentationService
	logger core.Logger
}

// NewResourcesAgent builds a ResourcesAgent. docs may be nil: search,
// recommendation, related-resource and curation intents then return empty
// results, verify_resource_quality returns a neutral 0.5 score, and
// get_resource_content fails with CONTENT_UNAVAILABLE.
func NewResourcesAgent(docs ports.DocumentationService, logger core.Logger) *ResourcesAgent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &ResourcesAgent{docs: docs, logger: logger}
}

func (a *ResourcesAgent) AgentType() core.AgentType { return core.AgentResources }

func (a *ResourcesAgent) SupportedIntents() []core.Intent {
	return []core.Intent{
		core.IntentSearchResources,
		core.IntentGetResourceContent,
		core.IntentRecommendResources,
		core.IntentVerifyResourceQuality,
		core.IntentFindRelatedResources,
		core.IntentCurateLearningPathResources,
	}
}

func (a *ResourcesAgent) Process(ctx context.Context, rc *core.Context, payload *core.Payload) (*core.Result, error) {
	switch payload.Intent {
	case core.IntentSearchResources:
		return a.searchResources(ctx, rc, payload.Data)
	case core.IntentGetResourceContent:
		return a.getResourceContent(ctx, rc, payload.Data)
	case core.IntentRecommendResources:
		return a.recommendResources(ctx, rc, payload.Data)
	case core.IntentVerifyResourceQuality:
		return a.verifyResourceQuality(ctx, rc, payload.Data)
	case core.IntentFindRelatedResources:
		return a.findRelatedResources(ctx, rc, payload.Data)
	case core.IntentCurateLearningPathResources:
		return a.curateLearningPathResources(ctx, rc, payload.Data)
	default:
		return core.ErrorResult(fmt.Sprintf("unsupported intent: %s", payload.Intent), core.ErrValidation, nil), nil
	}
}

func (a *ResourcesAgent) Health() core.Health {
	return core.Health{AgentType: core.AgentResources, SupportedIntents: a.SupportedIntents(), Status: core.HealthHealthy}
}

func (a *ResourcesAgent) searchResources(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	query, _ := data["query"].(string)
	if strings.TrimSpace(query) == "" {
		return core.ErrorResult("query is required", core.ErrValidation, nil), nil
	}
	maxResults := orDefaultInt(toInt(data["max_results"]), 10)

	a.logger.DebugWithContext(ctx, "searching resources", map[string]interface{}{"query": query, "max_results": maxResults})

	results, err := a.search(ctx, query, maxResults)
	if err != nil {
		return core.ErrorResult("resource search failed: "+err.Error(), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"resources": results,
		"query":     query,
	}, nil, map[string]interface{}{"result_count": len(results)}), nil
}

func (a *ResourcesAgent) getResourceContent(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	url, _ := data["url"].(string)
	if strings.TrimSpace(url) == "" {
		return core.ErrorResult("url is required", core.ErrValidation, nil), nil
	}
	if a.docs == nil {
		return core.ErrorResult("content is unavailable for this resource", "CONTENT_UNAVAILABLE", nil), nil
	}

	content, err := a.docs.GetResourceContent(ctx, url)
	if err != nil {
		return core.ErrorResult("content retrieval failed: "+err.Error(), core.ErrProcessingError, nil), nil
	}
	if content == "" {
		return core.ErrorResult("content is unavailable for this resource", "CONTENT_UNAVAILABLE", nil), nil
	}

	processed := processResourceContent(content, rc)

	return core.SuccessResult(map[string]interface{}{
		"url":            url,
		"content":        processed,
		"content_length": len(processed),
	}, nil, nil), nil
}

func (a *ResourcesAgent) recommendResources(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	topic, _ := data["topic"].(string)
	if strings.TrimSpace(topic) == "" {
		topic = rc.CurrentObjective
	}
	if strings.TrimSpace(topic) == "" {
		return core.ErrorResult("topic is required", core.ErrValidation, nil), nil
	}
	maxRecommendations := orDefaultInt(toInt(data["max_recommendations"]), 5)

	query := buildRecommendationQuery(topic, rc)
	candidates, err := a.search(ctx, query, maxRecommendations*3)
	if err != nil {
		return core.ErrorResult("recommendation search failed: "+err.Error(), core.ErrProcessingError, nil), nil
	}

	recommendations := rankByRelevance(candidates, rc)
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return core.SuccessResult(map[string]interface{}{
		"recommendations": recommendations,
		"topic":           topic,
	}, nil, map[string]interface{}{"recommendation_count": len(recommendations)}), nil
}

func (a *ResourcesAgent) verifyResourceQuality(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	resource, _ := data["resource"].(map[string]interface{})
	url := stringField(resource, "url")
	if url == "" {
		return core.ErrorResult("resource url is required", core.ErrValidation, nil), nil
	}
	if a.docs == nil {
		return core.SuccessResult(map[string]interface{}{
			"quality_score":  0.5,
			"quality_rating": getResourceQualityRating(0.5),
		}, nil, nil), nil
	}

	ok, meta, err := a.docs.VerifyResourceQuality(ctx, url)
	if err != nil {
		return core.ErrorResult("quality verification failed: "+err.Error(), core.ErrProcessingError, nil), nil
	}
	score := qualityScoreFromVerification(ok, meta)

	return core.SuccessResult(map[string]interface{}{
		"quality_score":  score,
		"quality_rating": getResourceQualityRating(score),
		"details":        meta,
	}, nil, map[string]interface{}{"quality_score": score}), nil
}

func (a *ResourcesAgent) findRelatedResources(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	resource, _ := data["resource"].(map[string]interface{})
	url := stringField(resource, "url")
	if url == "" {
		return core.ErrorResult("resource url is required", core.ErrValidation, nil), nil
	}
	maxRelated := orDefaultInt(toInt(data["max_related"]), 5)

	if a.docs == nil {
		return core.SuccessResult(map[string]interface{}{
			"related_resources": []ports.DocumentationResult{},
			"base_resource":      resource,
		}, nil, nil), nil
	}

	related, err := a.docs.GetRelatedResources(ctx, url, maxRelated)
	if err != nil {
		return core.ErrorResult("related resource lookup failed: "+err.Error(), core.ErrProcessingError, nil), nil
	}

	return core.SuccessResult(map[string]interface{}{
		"related_resources": related,
		"base_resource":      resource,
	}, nil, map[string]interface{}{"related_count": len(related)}), nil
}

func (a *ResourcesAgent) curateLearningPathResources(ctx context.Context, rc *core.Context, data map[string]interface{}) (*core.Result, error) {
	topics := stringSlice(data["topics"])
	if len(topics) == 0 {
		return core.ErrorResult("topics list is required", core.ErrValidation, nil), nil
	}
	resourcesPerTopic := orDefaultInt(toInt(data["resources_per_topic"]), 3)

	curated := make(map[string][]ports.DocumentationResult, len(topics))
	for _, topic := range topics {
		results, err := a.search(ctx, topic, resourcesPerTopic)
		if err != nil {
			a.logger.WarnWithContext(ctx, "topic resource search failed", map[string]interface{}{"topic": topic, "error": err.Error()})
			results = []ports.DocumentationResult{}
		}
		curated[topic] = results
	}

	return core.SuccessResult(map[string]interface{}{
		"curated_resources": curated,
		"topics":             topics,
	}, nil, map[string]interface{}{"topics_curated": len(topics)}), nil
}

func (a *ResourcesAgent) search(ctx context.Context, query string, limit int) ([]ports.DocumentationResult, error) {
	if a.docs == nil {
		return []ports.DocumentationResult{}, nil
	}
	return a.docs.SearchDocumentation(ctx, query, limit)
}

// inferLanguageFromContext scans a learner's goals and current objective
// for a recognizable programming language, checking the more specific
// tokens (typescript, javascript/react) before the substrings they embed
// (java is a substring of javascript).
func inferLanguageFromContext(rc *core.Context) string {
	text := strings.ToLower(strings.Join(rc.LearningGoals, " ") + " " + rc.CurrentObjective)
	switch {
	case strings.Contains(text, "python"):
		return "python"
	case strings.Contains(text, "typescript"):
		return "typescript"
	case strings.Contains(text, "javascript") || strings.Contains(text, "react"):
		return "javascript"
	case strings.Contains(text, "java"):
		return "java"
	case strings.Contains(text, "golang"):
		return "go"
	default:
		return ""
	}
}

func buildRecommendationQuery(topic string, rc *core.Context) string {
	parts := []string{topic}
	if language := inferLanguageFromContext(rc); language != "" {
		parts = append(parts, language)
	}
	if rc.SkillLevel != "" {
		parts = append(parts, string(rc.SkillLevel))
	}
	return strings.Join(parts, " ")
}

// rankByRelevance scores candidates against the learner's goals/objective
// and returns them sorted, most relevant first.
func rankByRelevance(candidates []ports.DocumentationResult, rc *core.Context) []ports.DocumentationResult {
	type scored struct {
		result ports.DocumentationResult
		score  float64
	}
	scoredList := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		scoredList = append(scoredList, scored{result: c, score: calculateRelevanceScore(c, rc)})
	}
	sort.SliceStable(scoredList, func(i, j int) bool { return scoredList[i].score > scoredList[j].score })

	ranked := make([]ports.DocumentationResult, len(scoredList))
	for i, s := range scoredList {
		ranked[i] = s.result
	}
	return ranked
}

// calculateRelevanceScore blends the documentation service's own
// relevance hint with a keyword overlap against the learner's goals and
// current objective, since DocumentationResult carries no structured
// topic/language metadata to match on directly.
func calculateRelevanceScore(result ports.DocumentationResult, rc *core.Context) float64 {
	haystack := strings.ToLower(result.Title + " " + result.Snippet)
	keywords := append(append([]string{}, rc.LearningGoals...), rc.CurrentObjective)

	matches := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(haystack, kw) {
			matches++
		}
	}
	keywordScore := 0.0
	if len(keywords) > 0 {
		keywordScore = float64(matches) / float64(len(keywords))
	}

	return clampFloat(result.Relevance*0.5+keywordScore*0.5, 0, 1)
}

func qualityScoreFromVerification(verified bool, meta map[string]interface{}) float64 {
	if meta != nil {
		if score, ok := meta["score"].(float64); ok {
			return clampFloat(score, 0, 1)
		}
	}
	if verified {
		return 0.8
	}
	return 0.3
}

func getResourceQualityRating(score float64) string {
	switch {
	case score >= 0.8:
		return "excellent"
	case score >= 0.6:
		return "good"
	case score >= 0.4:
		return "fair"
	default:
		return "poor"
	}
}

// processResourceContent truncates long content for beginners, mirroring
// the "don't overwhelm a new learner with a wall of text" intent without
// the original's hardcoded 2000-character budget changing per skill level.
func processResourceContent(content string, rc *core.Context) string {
	if rc.SkillLevel != core.SkillBeginner {
		return content
	}
	const limit = 2000
	if len(content) <= limit {
		return content
	}
	return content[:limit] + "... [content truncated for readability]"
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

var _ core.Agent = (*ResourcesAgent)(nil)
