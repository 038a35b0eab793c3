// Package core provides the fundamental abstractions of the coordination
// runtime: the per-request Context and Result types, the closed set of
// error kinds every agent reports through, and the Agent contract with its
// protection envelope.
package core

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of machine-stable error kinds every Result
// and FrameworkError carries. See spec §7.
type ErrorCode string

const (
	ErrValidation       ErrorCode = "VALIDATION"
	ErrTimeout          ErrorCode = "TIMEOUT"
	ErrCircuitOpen      ErrorCode = "CIRCUIT_OPEN"
	ErrAgentUnavailable ErrorCode = "AGENT_UNAVAILABLE"
	ErrNoAgentForIntent ErrorCode = "NO_AGENT_FOR_INTENT"
	ErrUnknownWorkflow  ErrorCode = "UNKNOWN_WORKFLOW"
	ErrProcessingError  ErrorCode = "PROCESSING_ERROR"
)

// Sentinel errors for comparison with errors.Is, mirroring the teacher's
// core/errors.go pattern of wrap-friendly sentinels plus an Is* helper per
// category.
var (
	ErrAgentNotFound     = errors.New("agent not found")
	ErrAgentNotRegistered = errors.New("agent type not registered")

	ErrIntentNotRecognized = errors.New("intent not recognized")
	ErrWorkflowNotFound    = errors.New("workflow not found")

	ErrBreakerOpen = errors.New("circuit breaker is open")

	ErrMissingUserID     = errors.New("user_id is required")
	ErrMissingSessionID  = errors.New("session_id is required")
	ErrMissingIntent     = errors.New("intent is required")
	ErrUnsupportedIntent = errors.New("intent is not supported by this agent")
	ErrInvalidSkillLevel = errors.New("invalid skill level")
)

// FrameworkError provides structured, wrap-friendly error context: what
// operation failed, what kind of failure it was, and which entity was
// involved. Grounded on core/errors.go's FrameworkError.
type FrameworkError struct {
	Op      string
	Code    ErrorCode
	ID      string
	Message string
	Err     error
}

func (e *FrameworkError) Error() string {
	switch {
	case e.Op != "" && e.Err != nil && e.ID != "":
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s error", e.Code)
	}
}

func (e *FrameworkError) Unwrap() error { return e.Err }

// NewFrameworkError builds a FrameworkError for the given operation/kind.
func NewFrameworkError(op string, code ErrorCode, err error) *FrameworkError {
	return &FrameworkError{Op: op, Code: code, Err: err}
}

// IsValidation reports whether err (or anything it wraps) is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingUserID) ||
		errors.Is(err, ErrMissingSessionID) ||
		errors.Is(err, ErrMissingIntent) ||
		errors.Is(err, ErrUnsupportedIntent) ||
		errors.Is(err, ErrInvalidSkillLevel)
}

// IsNotFound reports whether err represents a missing agent, intent, or workflow.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAgentNotFound) ||
		errors.Is(err, ErrAgentNotRegistered) ||
		errors.Is(err, ErrIntentNotRecognized) ||
		errors.Is(err, ErrWorkflowNotFound)
}
