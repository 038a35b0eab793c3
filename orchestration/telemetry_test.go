package orchestration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevelopmentTelemetryStartsAndEndsSpans(t *testing.T) {
	tel, err := NewDevelopmentTelemetry("coach-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })

	ctx, span := tel.StartSpan(context.Background(), "test.span")
	assert.NotNil(t, ctx)
	span.SetAttribute("agent_type", "profile")
	span.SetAttribute("attempt", 3)
	span.RecordError(nil)
	span.End()
}

func TestDevelopmentTelemetryRecordMetricRoutesByName(t *testing.T) {
	tel, err := NewDevelopmentTelemetry("coach-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })

	assert.NotPanics(t, func() {
		tel.RecordMetric("workflow_steps_total", 1, map[string]string{"workflow": "exercise_submission"})
		tel.RecordMetric("envelope_call_duration_ms", 42.5, map[string]string{"agent_type": "profile"})
	})
}

func TestNewDevelopmentTelemetryRejectsEmptyServiceName(t *testing.T) {
	_, err := NewDevelopmentTelemetry("")
	assert.Error(t, err)
}
