package handlers

import (
	"context"
	"kanban/middleware"
	"kanban/models"
	"kanban/router"
	"kanban/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetBoard(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := boards.Board(c.Request.Context(), middleware.ProjectID(c))
		if err != nil {
			respondError(c, err, "failed to load board")
			return
		}

		c.JSON(http.StatusOK, gin.H{"board": b})
	}
}

func GetHistory(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, err := boards.History(c.Request.Context(), middleware.ProjectID(c))
		if err != nil {
			respondError(c, err, "failed to load history")
			return
		}

		c.JSON(http.StatusOK, h)
	}
}

func Undo(boards *service.Boards) gin.HandlerFunc {
	return travel(boards, boards.Undo, "failed to undo")
}

func Redo(boards *service.Boards) gin.HandlerFunc {
	return travel(boards, boards.Redo, "failed to redo")
}

type travelFunc func(ctx context.Context, projectID string) (*models.Board, bool, error)

func travel(boards *service.Boards, step travelFunc, failure string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectID := middleware.ProjectID(c)

		b, applied, err := step(ctx, projectID)
		if err != nil {
			respondError(c, err, failure)
			return
		}

		h, err := boards.History(ctx, projectID)
		if err != nil {
			respondError(c, err, "failed to load history")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"board":   b,
			"applied": applied,
			"history": h,
		})
	}
}

// IntentsRequest is a batch of structured intents, applied in order.
type IntentsRequest struct {
	Intents []router.Intent `json:"intents" binding:"required"`
}

func ApplyIntents(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IntentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		results, err := boards.ApplyIntents(c.Request.Context(), middleware.ProjectID(c), req.Intents)
		if err != nil {
			respondError(c, err, "failed to apply intents")
			return
		}

		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}

func RunCommand(commands *service.Commands) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AICommandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		res, err := commands.Run(c.Request.Context(), middleware.ProjectID(c), req.Message)
		if err != nil {
			respondError(c, err, "failed to run command")
			return
		}

		c.JSON(http.StatusOK, res)
	}
}
