package core

import (
	"fmt"

	"github.com/google/uuid"
)

// SkillLevel is the closed enum of learner skill tiers.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// Valid reports whether s is one of the enumerated skill levels, or empty
// (skill level is optional on Context).
func (s SkillLevel) Valid() bool {
	switch s {
	case "", SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	default:
		return false
	}
}

// Context is the immutable per-request carrier threaded through every
// envelope call and workflow step. Fields are read-only from the agent's
// perspective once constructed. See spec §3.
type Context struct {
	UserID        string
	SessionID     string
	CorrelationID string

	CurrentObjective string
	SkillLevel       SkillLevel
	LearningGoals    []string
	TimeConstraints  map[string]interface{}
	Preferences      map[string]interface{}

	AttemptCount int
	LastFeedback map[string]interface{}
}

// NewContext constructs a Context, generating a correlation id when one
// isn't supplied and validating the required identity fields. UserID and
// SessionID are mandatory per spec §3's invariants.
func NewContext(userID, sessionID string, opts ...ContextOption) (*Context, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	c := &Context{
		UserID:    userID,
		SessionID: sessionID,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.CorrelationID == "" {
		c.CorrelationID = uuid.NewString()
	}
	if !c.SkillLevel.Valid() {
		return nil, fmt.Errorf("invalid skill level %q: %w", c.SkillLevel, ErrInvalidSkillLevel)
	}
	if c.AttemptCount < 0 {
		return nil, fmt.Errorf("attempt_count must be >= 0, got %d", c.AttemptCount)
	}
	return c, nil
}

// ContextOption configures optional Context fields at construction time.
type ContextOption func(*Context)

func WithCorrelationID(id string) ContextOption {
	return func(c *Context) { c.CorrelationID = id }
}

func WithCurrentObjective(objective string) ContextOption {
	return func(c *Context) { c.CurrentObjective = objective }
}

func WithSkillLevel(level SkillLevel) ContextOption {
	return func(c *Context) { c.SkillLevel = level }
}

func WithLearningGoals(goals []string) ContextOption {
	return func(c *Context) { c.LearningGoals = goals }
}

func WithTimeConstraints(tc map[string]interface{}) ContextOption {
	return func(c *Context) { c.TimeConstraints = tc }
}

func WithPreferences(prefs map[string]interface{}) ContextOption {
	return func(c *Context) { c.Preferences = prefs }
}

func WithAttemptCount(n int) ContextOption {
	return func(c *Context) { c.AttemptCount = n }
}

func WithLastFeedback(fb map[string]interface{}) ContextOption {
	return func(c *Context) { c.LastFeedback = fb }
}

// Clone returns a shallow copy of c, safe for an agent to pass downstream
// without risking mutation of the caller's Context (maps are referenced,
// not deep-copied, matching spec §5's "read-mostly per request" model).
func (c *Context) Clone() *Context {
	cp := *c
	return &cp
}
