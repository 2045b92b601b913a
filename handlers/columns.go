package handlers

import (
	"kanban/middleware"
	"kanban/models"
	"kanban/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListColumns(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		cols, err := boards.Columns(c.Request.Context(), middleware.ProjectID(c))
		if err != nil {
			respondError(c, err, "failed to list columns")
			return
		}

		c.JSON(http.StatusOK, gin.H{"columns": cols})
	}
}

func CreateColumn(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateColumnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		col, err := boards.AddColumn(c.Request.Context(), middleware.ProjectID(c), req)
		if err != nil {
			respondError(c, err, "failed to create column")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"column": col})
	}
}

func UpdateColumn(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateColumnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		col, err := boards.UpdateColumn(c.Request.Context(), middleware.ProjectID(c), c.Param("id"), req)
		if err != nil {
			respondError(c, err, "failed to update column")
			return
		}

		c.JSON(http.StatusOK, gin.H{"column": col})
	}
}

func DeleteColumn(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := boards.DeleteColumn(c.Request.Context(), middleware.ProjectID(c), c.Param("id")); err != nil {
			respondError(c, err, "failed to delete column")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "column deleted"})
	}
}

func MoveColumn(boards *service.Boards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.MoveColumnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		cols, err := boards.MoveColumn(c.Request.Context(), middleware.ProjectID(c), c.Param("id"), *req.Index)
		if err != nil {
			respondError(c, err, "failed to move column")
			return
		}

		c.JSON(http.StatusOK, gin.H{"columns": cols})
	}
}
