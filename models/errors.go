package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the engine, router, stores and handlers.
// Callers wrap these with fmt.Errorf("...: %w") and test with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoTarget            = errors.New("no target column")
	ErrClarificationNeeded = errors.New("clarification needed")
	ErrStorageFailure      = errors.New("storage failure")
)

// ValidationError reports the single constraint an entity violated.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Entity     string
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Field, e.Constraint)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(entity, field, constraint string) error {
	return &ValidationError{Entity: entity, Field: field, Constraint: constraint}
}
