package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentationService struct {
	searchResults []ports.DocumentationResult
	searchErr     error
	content       string
	contentErr    error
	verifyOK      bool
	verifyMeta    map[string]interface{}
	verifyErr     error
	related       []ports.DocumentationResult
	relatedErr    error
}

func (f *fakeDocumentationService) SearchDocumentation(context.Context, string, int) ([]ports.DocumentationResult, error) {
	return f.searchResults, f.searchErr
}
func (f *fakeDocumentationService) GetResourceContent(context.Context, string) (string, error) {
	return f.content, f.contentErr
}
func (f *fakeDocumentationService) VerifyResourceQuality(context.Context, string) (bool, map[string]interface{}, error) {
	return f.verifyOK, f.verifyMeta, f.verifyErr
}
func (f *fakeDocumentationService) GetRelatedResources(context.Context, string, int) ([]ports.DocumentationResult, error) {
	return f.related, f.relatedErr
}

func resourcesRC(t *testing.T) *core.Context {
	t.Helper()
	rc, err := core.NewContext("user-1", "session-1")
	require.NoError(t, err)
	return rc
}

func TestSearchResourcesRequiresQuery(t *testing.T) {
	agent := NewResourcesAgent(nil, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentSearchResources,
		Data:   map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, core.ErrValidation, result.ErrorCode)
}

func TestSearchResourcesReturnsResults(t *testing.T) {
	docs := &fakeDocumentationService{searchResults: []ports.DocumentationResult{
		{Title: "Python Functions Tutorial", URL: "https://docs.python.org", Snippet: "functions in python"},
	}}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentSearchResources,
		Data:   map[string]interface{}{"query": "python functions", "max_results": float64(5)},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, "python functions", data["query"])
	resources := data["resources"].([]ports.DocumentationResult)
	assert.Len(t, resources, 1)
}

func TestGetResourceContentRequiresURL(t *testing.T) {
	agent := NewResourcesAgent(nil, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentGetResourceContent,
		Data:   map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestGetResourceContentReturnsContent(t *testing.T) {
	docs := &fakeDocumentationService{content: "tutorial content about python functions"}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentGetResourceContent,
		Data:   map[string]interface{}{"url": "https://example.com/tutorial"},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, "https://example.com/tutorial", data["url"])
	assert.Equal(t, docs.content, data["content"])
	assert.Equal(t, len(docs.content), data["content_length"])
}

func TestGetResourceContentUnavailable(t *testing.T) {
	docs := &fakeDocumentationService{content: ""}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentGetResourceContent,
		Data:   map[string]interface{}{"url": "https://unavailable.com"},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, core.ErrorCode("CONTENT_UNAVAILABLE"), result.ErrorCode)
}

func TestGetResourceContentTruncatesForBeginners(t *testing.T) {
	longContent := strings.Repeat("A", 5000)
	docs := &fakeDocumentationService{content: longContent}
	agent := NewResourcesAgent(docs, nil)
	rc, err := core.NewContext("user-1", "session-1", core.WithSkillLevel(core.SkillBeginner))
	require.NoError(t, err)

	result, procErr := agent.Process(context.Background(), rc, &core.Payload{
		Intent: core.IntentGetResourceContent,
		Data:   map[string]interface{}{"url": "https://example.com"},
	})
	require.NoError(t, procErr)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	content := data["content"].(string)
	assert.Less(t, len(content), len(longContent))
	assert.Contains(t, content, "truncated")
}

func TestRecommendResourcesUsesContextObjectiveWhenNoTopic(t *testing.T) {
	docs := &fakeDocumentationService{searchResults: []ports.DocumentationResult{
		{Title: "Functions Guide", Snippet: "functions"},
	}}
	agent := NewResourcesAgent(docs, nil)
	rc, err := core.NewContext("user-1", "session-1", core.WithCurrentObjective("functions"))
	require.NoError(t, err)

	result, procErr := agent.Process(context.Background(), rc, &core.Payload{
		Intent: core.IntentRecommendResources,
		Data:   map[string]interface{}{},
	})
	require.NoError(t, procErr)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, "functions", data["topic"])
}

func TestRecommendResourcesLimitsCount(t *testing.T) {
	docs := &fakeDocumentationService{searchResults: []ports.DocumentationResult{
		{Title: "A"}, {Title: "B"}, {Title: "C"}, {Title: "D"},
	}}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentRecommendResources,
		Data:   map[string]interface{}{"topic": "functions", "max_recommendations": float64(2)},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	recs := data["recommendations"].([]ports.DocumentationResult)
	assert.Len(t, recs, 2)
}

func TestVerifyResourceQualityRequiresURL(t *testing.T) {
	agent := NewResourcesAgent(nil, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentVerifyResourceQuality,
		Data:   map[string]interface{}{"resource": map[string]interface{}{}},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestVerifyResourceQualityReturnsRating(t *testing.T) {
	docs := &fakeDocumentationService{verifyOK: true, verifyMeta: map[string]interface{}{"score": 0.85}}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentVerifyResourceQuality,
		Data:   map[string]interface{}{"resource": map[string]interface{}{"url": "https://docs.python.org"}},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, 0.85, data["quality_score"])
	assert.Equal(t, "excellent", data["quality_rating"])
}

func TestFindRelatedResourcesRequiresURL(t *testing.T) {
	agent := NewResourcesAgent(nil, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentFindRelatedResources,
		Data:   map[string]interface{}{"resource": map[string]interface{}{}},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestFindRelatedResourcesReturnsRelated(t *testing.T) {
	docs := &fakeDocumentationService{related: []ports.DocumentationResult{
		{Title: "JavaScript Functions Guide"}, {Title: "Functions in Programming"},
	}}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentFindRelatedResources,
		Data: map[string]interface{}{
			"resource":    map[string]interface{}{"url": "https://docs.python.org"},
			"max_related": float64(2),
		},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	related := data["related_resources"].([]ports.DocumentationResult)
	assert.Len(t, related, 2)
}

func TestCurateLearningPathResourcesRequiresTopics(t *testing.T) {
	agent := NewResourcesAgent(nil, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentCurateLearningPathResources,
		Data:   map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestCurateLearningPathResourcesBuildsPerTopicMap(t *testing.T) {
	docs := &fakeDocumentationService{searchResults: []ports.DocumentationResult{
		{Title: "A"}, {Title: "B"},
	}}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentCurateLearningPathResources,
		Data: map[string]interface{}{
			"topics":               []interface{}{"functions", "loops", "conditionals"},
			"resources_per_topic": float64(2),
		},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	curated := data["curated_resources"].(map[string][]ports.DocumentationResult)
	assert.Len(t, curated, 3)
	for _, topic := range []string{"functions", "loops", "conditionals"} {
		assert.LessOrEqual(t, len(curated[topic]), 2)
	}
}

func TestInferLanguageFromContext(t *testing.T) {
	cases := []struct {
		goals      []string
		objective  string
		want       string
	}{
		{goals: []string{"learn python programming"}, want: "python"},
		{goals: []string{"javascript fundamentals", "react development"}, want: "javascript"},
		{goals: []string{"typescript basics"}, want: "typescript"},
		{goals: []string{"java programming"}, want: "java"},
		{goals: []string{"golang tutorial"}, want: "go"},
		{goals: []string{"react components"}, want: "javascript"},
		{goals: nil, objective: "python functions", want: "python"},
		{goals: []string{"general programming"}, objective: "algorithms", want: ""},
	}
	for _, c := range cases {
		rc, err := core.NewContext("user-1", "session-1", core.WithLearningGoals(c.goals), core.WithCurrentObjective(c.objective))
		require.NoError(t, err)
		assert.Equal(t, c.want, inferLanguageFromContext(rc))
	}
}

func TestSearchResourcesPropagatesServiceError(t *testing.T) {
	docs := &fakeDocumentationService{searchErr: errors.New("service down")}
	agent := NewResourcesAgent(docs, nil)

	result, err := agent.Process(context.Background(), resourcesRC(t), &core.Payload{
		Intent: core.IntentSearchResources,
		Data:   map[string]interface{}{"query": "python"},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

var _ ports.DocumentationService = (*fakeDocumentationService)(nil)
