package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextRequiresUserID(t *testing.T) {
	_, err := NewContext("", "sess-1")
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestNewContextRequiresSessionID(t *testing.T) {
	_, err := NewContext("user-1", "")
	assert.ErrorIs(t, err, ErrMissingSessionID)
}

func TestNewContextGeneratesCorrelationID(t *testing.T) {
	c, err := NewContext("user-1", "sess-1")
	require.NoError(t, err)
	assert.NotEmpty(t, c.CorrelationID)
}

func TestNewContextHonorsSuppliedCorrelationID(t *testing.T) {
	c, err := NewContext("user-1", "sess-1", WithCorrelationID("fixed-id"))
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", c.CorrelationID)
}

func TestNewContextRejectsInvalidSkillLevel(t *testing.T) {
	_, err := NewContext("user-1", "sess-1", WithSkillLevel("expert-plus"))
	assert.ErrorIs(t, err, ErrInvalidSkillLevel)
}

func TestNewContextAcceptsExpertSkillLevel(t *testing.T) {
	c, err := NewContext("user-1", "sess-1", WithSkillLevel(SkillExpert))
	require.NoError(t, err)
	assert.Equal(t, SkillExpert, c.SkillLevel)
}

func TestNewContextRejectsNegativeAttemptCount(t *testing.T) {
	_, err := NewContext("user-1", "sess-1", WithAttemptCount(-1))
	assert.Error(t, err)
}

func TestContextCloneIsIndependentStruct(t *testing.T) {
	c, err := NewContext("user-1", "sess-1", WithLearningGoals([]string{"go"}))
	require.NoError(t, err)
	clone := c.Clone()
	clone.UserID = "user-2"
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "user-2", clone.UserID)
}
