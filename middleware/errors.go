package middleware

import (
	"errors"
	"kanban/models"
	"kanban/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrNoTarget),
		errors.Is(err, models.ErrClarificationNeeded):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoInterpreter):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInterpreterFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON body of every failed API request.
func ErrorBody(err error, msg string) gin.H {
	return gin.H{
		"error":   msg,
		"details": err.Error(),
		"code":    service.ErrorCode(err),
	}
}
