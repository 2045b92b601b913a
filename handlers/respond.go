package handlers

import (
	"fmt"
	"kanban/middleware"
	"kanban/models"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError writes {error, details, code} with the status matching err.
func respondError(c *gin.Context, err error, msg string) {
	status := middleware.StatusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "path", c.Request.URL.Path, "error", err)
	}

	c.JSON(status, middleware.ErrorBody(err, msg))
}

// badRequest reports a body that could not be bound.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.ErrorBody(fmt.Errorf("%w: %w", models.ErrInvalidInput, err), "invalid request body"))
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
