// Package storetest holds the behaviour every service.Store must share.
// Backends call Run from their own tests.
package storetest

import (
	"context"
	"kanban/engine"
	"kanban/models"
	"kanban/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store for one subtest.
type Factory func(t *testing.T) service.Store

var base = time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

func project(id, name string, age time.Duration) models.Project {
	created := base.Add(age)
	return models.Project{
		ID:             id,
		Name:           name,
		Description:    "about " + name,
		CreatedAt:      created,
		UpdatedAt:      created,
		LastAccessedAt: created,
	}
}

func Run(t *testing.T, newStore Factory) {
	t.Run("projects", func(t *testing.T) { testProjects(t, newStore(t)) })
	t.Run("missing rows", func(t *testing.T) { testNotFound(t, newStore(t)) })
	t.Run("default project", func(t *testing.T) { testDefaultProject(t, newStore(t)) })
	t.Run("boards", func(t *testing.T) { testBoards(t, newStore(t)) })
	t.Run("delete cascades", func(t *testing.T) { testDeleteCascades(t, newStore(t)) })
}

func testProjects(t *testing.T, s service.Store) {
	ctx := context.Background()

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	require.NoError(t, s.CreateProject(ctx, project("project-b", "Second", time.Minute)))
	require.NoError(t, s.CreateProject(ctx, project("project-a", "First", 0)))

	projects, err = s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "project-a", projects[0].ID, "oldest first")
	assert.Equal(t, "project-b", projects[1].ID)

	got, err := s.GetProject(ctx, "project-a")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
	assert.Equal(t, "about First", got.Description)
	assert.True(t, got.CreatedAt.Equal(base), "created_at round trip: %v", got.CreatedAt)

	got.Name = "Renamed"
	got.UpdatedAt = base.Add(time.Hour)
	got.LastAccessedAt = base.Add(2 * time.Hour)
	require.NoError(t, s.UpdateProject(ctx, *got))

	updated, err := s.GetProject(ctx, "project-a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.UpdatedAt.Equal(base.Add(time.Hour)))
	assert.True(t, updated.LastAccessedAt.Equal(base.Add(2*time.Hour)))
	assert.True(t, updated.CreatedAt.Equal(base))
}

func testNotFound(t *testing.T, s service.Store) {
	ctx := context.Background()

	_, err := s.GetProject(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = s.UpdateProject(ctx, project("ghost", "Ghost", 0))
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = s.DeleteProject(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.GetBoard(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func testDefaultProject(t *testing.T, s service.Store) {
	ctx := context.Background()

	id, err := s.DefaultProjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", id)

	require.NoError(t, s.CreateProject(ctx, project("project-a", "A", 0)))
	require.NoError(t, s.CreateProject(ctx, project("project-b", "B", time.Minute)))

	require.NoError(t, s.SetDefaultProjectID(ctx, "project-a"))
	require.NoError(t, s.SetDefaultProjectID(ctx, "project-b"))

	id, err = s.DefaultProjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "project-b", id)

	require.NoError(t, s.DeleteProject(ctx, "project-b"))
	id, err = s.DefaultProjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", id, "deleting the default clears it")

	require.NoError(t, s.SetDefaultProjectID(ctx, "project-a"))
	require.NoError(t, s.SetDefaultProjectID(ctx, ""))
	id, err = s.DefaultProjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func testBoards(t *testing.T, s service.Store) {
	ctx := context.Background()
	e := engine.New()

	require.NoError(t, s.CreateProject(ctx, project("project-a", "A", 0)))

	b := e.NewDefaultBoard("project-a", "A")
	b, card, err := e.AddCard(b, engine.TodoColumnID, "Fix bug", "details", models.PriorityHigh)
	require.NoError(t, err)
	tags := []string{"api", "auth"}
	b, err = e.UpdateCard(b, card.ID, engine.CardPatch{Tags: &tags})
	require.NoError(t, err)

	require.NoError(t, s.SaveBoard(ctx, b))

	got, err := s.GetBoard(ctx, "project-a")
	require.NoError(t, err)
	assert.Equal(t, b, got)
	assert.NoError(t, engine.Check(got))

	b, err = e.DeleteCard(b, card.ID)
	require.NoError(t, err)
	require.NoError(t, s.SaveBoard(ctx, b))

	got, err = s.GetBoard(ctx, "project-a")
	require.NoError(t, err)
	assert.Empty(t, got.Cards)
	assert.NotNil(t, got.Cards)
}

func testDeleteCascades(t *testing.T, s service.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateProject(ctx, project("project-a", "A", 0)))
	require.NoError(t, s.SaveBoard(ctx, engine.New().NewDefaultBoard("project-a", "A")))

	require.NoError(t, s.DeleteProject(ctx, "project-a"))

	_, err := s.GetBoard(ctx, "project-a")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
