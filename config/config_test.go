package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushparag/agentic-learning-coach/orchestration"
)

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5, cfg.Breaker.FailureThreshold)
	assert.Equal(t, 60, cfg.Breaker.RecoveryTimeoutSecs)
	assert.Equal(t, 3, cfg.Breaker.SuccessThreshold)
	assert.Equal(t, 30, cfg.Breaker.DefaultTimeoutSecs)
	assert.Equal(t, 0.3, cfg.Router.MinConfidence)
	assert.ElementsMatch(t, []string{
		orchestration.WorkflowNewLearnerOnboarding,
		orchestration.WorkflowExerciseSubmission,
		orchestration.WorkflowResourceDiscovery,
	}, cfg.Workflows.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAppliesPartialOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "breaker:\n  failure_threshold: 10\nrouter:\n  min_confidence: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Breaker.FailureThreshold)
	assert.Equal(t, 0.5, cfg.Router.MinConfidence)
	assert.Equal(t, 60, cfg.Breaker.RecoveryTimeoutSecs)
	assert.Equal(t, 3, cfg.Breaker.SuccessThreshold)
}

func TestLoadRestrictsEnabledWorkflows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "workflows:\n  enabled:\n    - new_learner_onboarding\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{orchestration.WorkflowNewLearnerOnboarding}, cfg.Workflows.Enabled)
}

func TestLoadRejectsUnknownWorkflowName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "workflows:\n  enabled:\n    - not_a_real_workflow\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsOutOfRangeConfidence(t *testing.T) {
	cfg := Default()
	cfg.Router.MinConfidence = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveThresholds(t *testing.T) {
	cfg := Default()
	cfg.Breaker.FailureThreshold = 0
	assert.Error(t, cfg.Validate())
}

func TestRecoveryTimeoutAndDefaultTimeoutConvertToDuration(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 60_000_000_000, int(cfg.Breaker.RecoveryTimeout()))
	assert.Equal(t, 30_000_000_000, int(cfg.Breaker.DefaultTimeout()))
}
