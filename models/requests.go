package models

// CreateTaskRequest creates a card. The target column is taken from
// ColumnID, then ColumnName, then the first column of the board.
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ColumnID    string   `json:"columnId"`
	ColumnName  string   `json:"columnName"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest patches a card. A changed ColumnID moves the card to
// the end of that column.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	ColumnID    *string   `json:"columnId"`
	Tags        *[]string `json:"tags"`
}

// MoveTaskRequest places a card at Index in the target column. A nil
// Index appends.
type MoveTaskRequest struct {
	ColumnID   string `json:"columnId"`
	ColumnName string `json:"columnName"`
	Index      *int   `json:"index"`
}

type CreateColumnRequest struct {
	Title string `json:"title" binding:"required"`
	Color string `json:"color"`
}

type UpdateColumnRequest struct {
	Title       *string `json:"title"`
	Color       *string `json:"color"`
	IsCollapsed *bool   `json:"isCollapsed"`
}

type MoveColumnRequest struct {
	Index *int `json:"index" binding:"required"`
}

// TaskQueryParams filters and pages GET /tasks.
type TaskQueryParams struct {
	ProjectID string `form:"projectId"`
	Search    string `form:"search"`
	Priority  string `form:"priority"`
	ColumnID  string `form:"columnId"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// TasksResponse is the paged task listing.
type TasksResponse struct {
	Cards   []*Card `json:"cards"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	HasMore bool    `json:"hasMore"`
}

// AICommandRequest is a free-text instruction for the language model.
type AICommandRequest struct {
	Message string `json:"message" binding:"required"`
}

// HistoryEntry describes one recorded board state.
type HistoryEntry struct {
	Label     string `json:"label"`
	Timestamp int64  `json:"timestamp"`
}

// HistoryResponse summarises the undo/redo stacks of a board.
type HistoryResponse struct {
	Past       []HistoryEntry `json:"past"`
	Future     []HistoryEntry `json:"future"`
	CanUndo    bool           `json:"canUndo"`
	CanRedo    bool           `json:"canRedo"`
	LastAction string         `json:"lastAction,omitempty"`
}
