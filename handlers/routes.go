package handlers

import (
	"kanban/middleware"
	"kanban/service"

	"github.com/gin-gonic/gin"
)

// App bundles the services the routes call.
type App struct {
	Projects *service.Projects
	Boards   *service.Boards
	Commands *service.Commands
}

// RegisterRoutes mounts the kanban API on r.
func RegisterRoutes(r gin.IRouter, app App) {
	r.GET("/health", HealthCheck)

	r.GET("/projects", ListProjects(app.Projects))
	r.POST("/projects", CreateProject(app.Projects))
	r.GET("/projects/:id", GetProject(app.Projects))
	r.PUT("/projects/:id", UpdateProject(app.Projects))
	r.DELETE("/projects/:id", DeleteProject(app.Projects))

	scoped := r.Group("", middleware.ProjectScope(app.Projects))
	{
		scoped.GET("/board", GetBoard(app.Boards))

		scoped.GET("/tasks", ListTasks(app.Boards))
		scoped.POST("/tasks", CreateTask(app.Boards))
		scoped.GET("/tasks/:id", GetTask(app.Boards))
		scoped.PUT("/tasks/:id", UpdateTask(app.Boards))
		scoped.DELETE("/tasks/:id", DeleteTask(app.Boards))
		scoped.POST("/tasks/:id/move", MoveTask(app.Boards))

		scoped.GET("/columns", ListColumns(app.Boards))
		scoped.POST("/columns", CreateColumn(app.Boards))
		scoped.PUT("/columns/:id", UpdateColumn(app.Boards))
		scoped.DELETE("/columns/:id", DeleteColumn(app.Boards))
		scoped.POST("/columns/:id/move", MoveColumn(app.Boards))

		scoped.GET("/history", GetHistory(app.Boards))
		scoped.POST("/history/undo", Undo(app.Boards))
		scoped.POST("/history/redo", Redo(app.Boards))

		scoped.POST("/intents", ApplyIntents(app.Boards))
		scoped.POST("/ai/command", RunCommand(app.Commands))
	}
}
