package service

import (
	"errors"
	"kanban/models"
)

var (
	ErrNoInterpreter     = errors.New("natural-language commands are not configured")
	ErrInterpreterFailed = errors.New("interpreter request failed")
	ErrLastProject       = errors.New("cannot delete the last project")
	ErrNoProjects        = errors.New("no projects exist")
)

// ErrorCode names the error's category for API clients.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, models.ErrNoTarget):
		return "no_target"
	case errors.Is(err, models.ErrClarificationNeeded):
		return "clarification_needed"
	case errors.Is(err, ErrNoInterpreter), errors.Is(err, ErrInterpreterFailed):
		return "interpreter_unavailable"
	case errors.Is(err, models.ErrStorageFailure):
		return "storage_failure"
	default:
		return "internal"
	}
}
