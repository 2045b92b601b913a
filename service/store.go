// Package service applies board and project operations against storage.
//
// It is the one place that loads a snapshot, runs the engine, records
// history and saves the result. Operations on the same project run one at a
// time; storage I/O happens only before and after the engine call.
package service

import (
	"context"
	"kanban/models"
	"kanban/router"
)

// Store persists projects and board snapshots. Implementations wrap a
// missing row in models.ErrNotFound and any I/O problem in
// models.ErrStorageFailure.
type Store interface {
	// ListProjects returns projects oldest first.
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, p models.Project) error
	UpdateProject(ctx context.Context, p models.Project) error
	// DeleteProject removes the project and its board.
	DeleteProject(ctx context.Context, id string) error

	// DefaultProjectID returns "" when no default is set.
	DefaultProjectID(ctx context.Context) (string, error)
	SetDefaultProjectID(ctx context.Context, id string) error

	GetBoard(ctx context.Context, projectID string) (*models.Board, error)
	SaveBoard(ctx context.Context, b *models.Board) error
}

// Cache holds recently used board snapshots. It is best effort: a miss or
// a failed write only costs a trip to the Store.
type Cache interface {
	GetBoard(ctx context.Context, projectID string) (*models.Board, bool)
	SetBoard(ctx context.Context, b *models.Board)
	Invalidate(ctx context.Context, projectID string)
}

// Interpreter turns a free-text instruction into intents for the board.
type Interpreter interface {
	Interpret(ctx context.Context, b *models.Board, message string) (*Reply, error)
}

// Reply is the interpreter's answer: text for the user plus the intents to
// apply, in order.
type Reply struct {
	Message string
	Actions []router.Intent
}

type nopCache struct{}

func (nopCache) GetBoard(context.Context, string) (*models.Board, bool) { return nil, false }
func (nopCache) SetBoard(context.Context, *models.Board)               {}
func (nopCache) Invalidate(context.Context, string)                    {}
