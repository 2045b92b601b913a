// Package engine implements the board mutation operations.
//
// Every operation takes a board snapshot and returns a new snapshot or an
// error. The input is never modified, so a caller can keep the previous
// snapshot for history without copying it first.
package engine

import (
	"kanban/models"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default board layout created on first access to a project.
const (
	TodoColumnID       = "col-todo"
	InProgressColumnID = "col-in-progress"
	CompletedColumnID  = "col-completed"
)

// Engine carries the clock and id source used when building new entities.
// It holds no board state and is safe for concurrent use.
type Engine struct {
	now   func() time.Time
	newID func(prefix string) string
}

type Option func(*Engine)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDs replaces the id generator, mostly for tests.
func WithIDs(newID func(prefix string) string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewID returns a prefixed random id such as "card-1b4e28ba-2fa1-...".
func NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

// NewDefaultBoard builds the three-column board a project starts with.
func (e *Engine) NewDefaultBoard(projectID, title string) *models.Board {
	now := e.now()
	if strings.TrimSpace(title) == "" {
		title = "Tactical Operations"
	}

	column := func(id, title string, pos int) models.Column {
		return models.Column{ID: id, Title: title, Position: pos, CardIDs: []string{}, CreatedAt: now}
	}

	return &models.Board{
		ID:        models.BoardID(projectID),
		ProjectID: projectID,
		Title:     title,
		Columns: []models.Column{
			column(TodoColumnID, "TODO", 0),
			column(InProgressColumnID, "In Progress", 1),
			column(CompletedColumnID, "Completed", 2),
		},
		Cards:     map[string]*models.Card{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// fork copies b and stamps the copy as updated now.
func (e *Engine) fork(b *models.Board) (*models.Board, time.Time) {
	now := e.now()
	next := b.Clone()
	if next.Cards == nil {
		next.Cards = map[string]*models.Card{}
	}
	next.UpdatedAt = now
	return next, now
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func insertAt(ids []string, idx int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:idx]...)
	out = append(out, id)
	return append(out, ids[idx:]...)
}
