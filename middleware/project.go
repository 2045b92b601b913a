package middleware

import (
	"kanban/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProjectIDKey is the gin context key holding the resolved project id.
const ProjectIDKey = "project_id"

// ProjectScope resolves ?projectId=, falling back to the default project,
// and stores the id under ProjectIDKey.
func ProjectScope(projects *service.Projects) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectID, err := projects.Resolve(ctx, c.Query("projectId"))
		if err != nil {
			status := StatusFor(err)
			msg := "failed to resolve project"
			if status == http.StatusNotFound {
				msg = "project not found"
			}
			c.AbortWithStatusJSON(status, ErrorBody(err, msg))
			return
		}

		c.Set(ProjectIDKey, projectID)

		c.Next()
	}
}

// ProjectID returns the id stored by ProjectScope.
func ProjectID(c *gin.Context) string {
	return c.GetString(ProjectIDKey)
}
