package handlers

import (
	"kanban/models"
	"kanban/service"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListProjects(projects *service.Projects) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := projects.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "failed to list projects")
			return
		}

		c.JSON(http.StatusOK, index)
	}
}

func CreateProject(projects *service.Projects) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		project, err := projects.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, "failed to create project")
			return
		}

		slog.Info("project created via API", "project", project.ID)
		c.JSON(http.StatusCreated, project)
	}
}

func GetProject(projects *service.Projects) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := projects.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "project not found")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func UpdateProject(projects *service.Projects) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		project, err := projects.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err, "failed to update project")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(projects *service.Projects) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, "failed to delete project")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}
