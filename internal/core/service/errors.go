package service

import (
	"fmt"
	"strings"
)

// ValidationError carries every rule violation found in a rejected payload.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + strings.Join(e.Details, "; ")
}

func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

// NotFoundError signals that an entity id matched no row.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
}

// ConflictError signals a unique-value collision (username or email).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
