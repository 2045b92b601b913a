package client

import (
	"context"
	"kanban/models"
	"kanban/router"
	"kanban/service"
	"net/http"
	"net/url"
	"strconv"
)

type boardResponse struct {
	Board *models.Board `json:"board"`
}

type cardResponse struct {
	Card *models.Card `json:"card"`
}

type columnResponse struct {
	Column *models.Column `json:"column"`
}

type columnsResponse struct {
	Columns []models.Column `json:"columns"`
}

// TravelResult is the reply to undo and redo.
type TravelResult struct {
	Board   *models.Board          `json:"board"`
	Applied bool                   `json:"applied"`
	History models.HistoryResponse `json:"history"`
}

func (c *Client) Board(ctx context.Context) (*models.Board, error) {
	var out boardResponse
	if err := c.do(ctx, http.MethodGet, "/board", c.scope(nil), nil, &out); err != nil {
		return nil, err
	}
	return out.Board, nil
}

func (c *Client) ListTasks(ctx context.Context, params models.TaskQueryParams) (*models.TasksResponse, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Priority != "" {
		q.Set("priority", params.Priority)
	}
	if params.ColumnID != "" {
		q.Set("columnId", params.ColumnID)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var out models.TasksResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", c.scope(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Card, error) {
	var out cardResponse
	if err := c.do(ctx, http.MethodPost, "/tasks", c.scope(nil), req, &out); err != nil {
		return nil, err
	}
	return out.Card, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*models.Card, error) {
	var out cardResponse
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), c.scope(nil), nil, &out); err != nil {
		return nil, err
	}
	return out.Card, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Card, error) {
	var out cardResponse
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), c.scope(nil), req, &out); err != nil {
		return nil, err
	}
	return out.Card, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), c.scope(nil), nil, nil)
}

func (c *Client) MoveTask(ctx context.Context, id string, req models.MoveTaskRequest) (*models.Card, error) {
	var out cardResponse
	if err := c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/move", c.scope(nil), req, &out); err != nil {
		return nil, err
	}
	return out.Card, nil
}

func (c *Client) ListColumns(ctx context.Context) ([]models.Column, error) {
	var out columnsResponse
	if err := c.do(ctx, http.MethodGet, "/columns", c.scope(nil), nil, &out); err != nil {
		return nil, err
	}
	return out.Columns, nil
}

func (c *Client) CreateColumn(ctx context.Context, req models.CreateColumnRequest) (*models.Column, error) {
	var out columnResponse
	if err := c.do(ctx, http.MethodPost, "/columns", c.scope(nil), req, &out); err != nil {
		return nil, err
	}
	return out.Column, nil
}

func (c *Client) UpdateColumn(ctx context.Context, id string, req models.UpdateColumnRequest) (*models.Column, error) {
	var out columnResponse
	if err := c.do(ctx, http.MethodPut, "/columns/"+url.PathEscape(id), c.scope(nil), req, &out); err != nil {
		return nil, err
	}
	return out.Column, nil
}

func (c *Client) DeleteColumn(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/columns/"+url.PathEscape(id), c.scope(nil), nil, nil)
}

func (c *Client) MoveColumn(ctx context.Context, id string, index int) ([]models.Column, error) {
	var out columnsResponse
	req := models.MoveColumnRequest{Index: &index}
	if err := c.do(ctx, http.MethodPost, "/columns/"+url.PathEscape(id)+"/move", c.scope(nil), req, &out); err != nil {
		return nil, err
	}
	return out.Columns, nil
}

func (c *Client) History(ctx context.Context) (*models.HistoryResponse, error) {
	var out models.HistoryResponse
	if err := c.do(ctx, http.MethodGet, "/history", c.scope(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Undo(ctx context.Context) (*TravelResult, error) {
	var out TravelResult
	if err := c.do(ctx, http.MethodPost, "/history/undo", c.scope(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Redo(ctx context.Context) (*TravelResult, error) {
	var out TravelResult
	if err := c.do(ctx, http.MethodPost, "/history/redo", c.scope(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplyIntents sends structured intents, applied in order by the server.
func (c *Client) ApplyIntents(ctx context.Context, intents []router.Intent) ([]service.IntentResult, error) {
	var out struct {
		Results []service.IntentResult `json:"results"`
	}
	body := map[string]any{"intents": intents}
	if err := c.do(ctx, http.MethodPost, "/intents", c.scope(nil), body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Command asks the server's language model to carry out message.
func (c *Client) Command(ctx context.Context, message string) (*service.CommandResult, error) {
	var out service.CommandResult
	req := models.AICommandRequest{Message: message}
	if err := c.do(ctx, http.MethodPost, "/ai/command", c.scope(nil), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
