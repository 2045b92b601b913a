package client

import (
	"context"
	"errors"
	"kanban/database/sqlite"
	"kanban/engine"
	"kanban/handlers"
	"kanban/models"
	"kanban/router"
	"kanban/service"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "kanban.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	boards := service.NewBoards(store)
	app := handlers.App{
		Projects: service.NewProjects(store, boards),
		Boards:   boards,
		Commands: service.NewCommands(boards, nil),
	}
	r := gin.New()
	handlers.RegisterRoutes(r.Group("/api/kanban"), app)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/api/kanban/", opts...), srv
}

func TestClient_Workflow(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	_, err := c.Board(ctx)
	assert.True(t, IsNotFound(err), "no projects yet")

	p, err := c.CreateProject(ctx, models.CreateProjectRequest{Name: "Ops"})
	require.NoError(t, err)

	b, err := c.Board(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, b.ProjectID)

	card, err := c.CreateTask(ctx, models.CreateTaskRequest{Title: "Write runbook", ColumnName: "todo"})
	require.NoError(t, err)
	assert.Equal(t, engine.TodoColumnID, card.ColumnID)

	idx := 0
	moved, err := c.MoveTask(ctx, card.ID, models.MoveTaskRequest{ColumnName: "Completed", Index: &idx})
	require.NoError(t, err)
	assert.Equal(t, engine.CompletedColumnID, moved.ColumnID)

	title := "Write the runbook"
	updated, err := c.UpdateTask(ctx, card.ID, models.UpdateTaskRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	list, err := c.ListTasks(ctx, models.TaskQueryParams{Search: "runbook"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	col, err := c.CreateColumn(ctx, models.CreateColumnRequest{Title: "Blocked"})
	require.NoError(t, err)
	cols, err := c.MoveColumn(ctx, col.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, col.ID, cols[0].ID)

	h, err := c.History(ctx)
	require.NoError(t, err)
	assert.True(t, h.CanUndo)

	res, err := c.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, engine.TodoColumnID, res.Board.OrderedColumns()[0].ID)

	res, err = c.Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, col.ID, res.Board.OrderedColumns()[0].ID)

	require.NoError(t, c.DeleteColumn(ctx, col.ID))
	require.NoError(t, c.DeleteTask(ctx, card.ID))

	_, err = c.GetTask(ctx, card.ID)
	assert.True(t, IsNotFound(err))
}

func TestClient_ProjectScope(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	first, err := c.CreateProject(ctx, models.CreateProjectRequest{Name: "First"})
	require.NoError(t, err)
	second, err := c.CreateProject(ctx, models.CreateProjectRequest{Name: "Second"})
	require.NoError(t, err)

	scoped := New(srv.URL+"/api/kanban", WithProject(second.ID))
	assert.Equal(t, second.ID, scoped.Project())

	_, err = scoped.CreateTask(ctx, models.CreateTaskRequest{Title: "Only in second"})
	require.NoError(t, err)

	list, err := scoped.ListTasks(ctx, models.TaskQueryParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	list, err = c.ListTasks(ctx, models.TaskQueryParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total, "default project is %s", first.ID)

	index, err := c.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, index.Projects, 2)

	renamed := "Renamed"
	p, err := c.UpdateProject(ctx, second.ID, models.UpdateProjectRequest{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, renamed, p.Name)

	require.NoError(t, c.DeleteProject(ctx, second.ID))
	_, err = c.GetProject(ctx, second.ID)
	assert.True(t, IsNotFound(err))
}

func TestClient_Errors(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateProject(ctx, models.CreateProjectRequest{Name: ""})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = c.CreateProject(ctx, models.CreateProjectRequest{Name: "Ops"})
	require.NoError(t, err)

	_, err = c.CreateTask(ctx, models.CreateTaskRequest{Title: "   "})
	assert.ErrorIs(t, err, models.ErrClarificationNeeded)

	_, err = c.Command(ctx, "add a card")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestClient_ApplyIntents(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateProject(ctx, models.CreateProjectRequest{Name: "Ops"})
	require.NoError(t, err)

	results, err := c.ApplyIntents(ctx, []router.Intent{
		{Type: router.CreateCard, Data: map[string]any{"cards": []any{
			map[string]any{"title": "One"},
			map[string]any{"title": "Two"},
		}}},
		{Type: router.BoardSummary},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Contains(t, results[2].Message, "2 cards")
}

func TestAPIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Details)
	assert.Nil(t, apiErr.Unwrap())
}
