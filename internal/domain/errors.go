// Package domain holds the error kinds shared by the quiz core.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller input that is structurally or semantically invalid.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateID is returned when a question id is already present in a bank.
	ErrDuplicateID = errors.New("duplicate question id")

	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionNotFound  = errors.New("session not found")

	// ErrSession marks an operation attempted against a session in an
	// incompatible state (completed, terminated, paused).
	ErrSession = errors.New("session state conflict")
)

// ValidationError describes which field was rejected and why.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid is a shorthand for building a *ValidationError.
func Invalid(field string, value any, format string, args ...any) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}

// SessionError is returned when a session exists but cannot accept the
// requested operation. It matches ErrSession with errors.Is.
type SessionError struct {
	SessionID string
	Reason    string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s", e.SessionID, e.Reason)
}

func (e *SessionError) Unwrap() error {
	return ErrSession
}

// SessionNotFound builds an error matching ErrSessionNotFound.
func SessionNotFound(sessionID string) error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
}

// QuestionNotFound builds an error matching ErrQuestionNotFound.
func QuestionNotFound(questionID string) error {
	return fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
}
