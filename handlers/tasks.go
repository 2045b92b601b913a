package handlers

import (
	"fmt"
	"kanban/middleware"
	"kanban/models"
	"kanban/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListTasks(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.TaskQueryParams
		if err := c.ShouldBindQuery(&params); err != nil {
			respondError(c, fmt.Errorf("%w: %w", models.ErrInvalidInput, err), "invalid query")
			return
		}

		resp, err := boards.ListCards(c.Request.Context(), middleware.ProjectID(c), params)
		if err != nil {
			respondError(c, err, "failed to list tasks")
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func CreateTask(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		card, err := boards.CreateCard(c.Request.Context(), middleware.ProjectID(c), req)
		if err != nil {
			respondError(c, err, "failed to create task")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"card": card})
	}
}

func GetTask(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		card, err := boards.GetCard(c.Request.Context(), middleware.ProjectID(c), c.Param("id"))
		if err != nil {
			respondError(c, err, "task not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"card": card})
	}
}

func UpdateTask(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		card, err := boards.UpdateCard(c.Request.Context(), middleware.ProjectID(c), c.Param("id"), req)
		if err != nil {
			respondError(c, err, "failed to update task")
			return
		}

		c.JSON(http.StatusOK, gin.H{"card": card})
	}
}

func DeleteTask(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := boards.DeleteCard(c.Request.Context(), middleware.ProjectID(c), c.Param("id")); err != nil {
			respondError(c, err, "failed to delete task")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
	}
}

func MoveTask(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.MoveTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		card, err := boards.MoveCard(c.Request.Context(), middleware.ProjectID(c), c.Param("id"), req)
		if err != nil {
			respondError(c, err, "failed to move task")
			return
		}

		c.JSON(http.StatusOK, gin.H{"card": card})
	}
}
