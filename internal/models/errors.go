package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in one validation pass.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = v.Message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

func NewValidationError(violations []Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}
