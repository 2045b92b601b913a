package service

import (
	"context"
	"fmt"
	"kanban/engine"
	"kanban/models"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Projects manages the project list and the default project.
type Projects struct {
	store  Store
	boards *Boards
	now    func() time.Time

	// mu serializes changes to the project list and the default pointer.
	mu sync.Mutex
}

func NewProjects(store Store, boards *Boards) *Projects {
	return &Projects{
		store:  store,
		boards: boards,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns every project, oldest first, with the default project id.
func (s *Projects) List(ctx context.Context) (*models.ProjectsIndex, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	defaultID, err := s.store.DefaultProjectID(ctx)
	if err != nil {
		return nil, err
	}

	index := &models.ProjectsIndex{Projects: projects, UpdatedAt: s.now()}
	if defaultID != "" {
		index.DefaultProjectID = &defaultID
	}
	if len(projects) > 0 {
		index.UpdatedAt = projects[0].UpdatedAt
		for _, p := range projects[1:] {
			if p.UpdatedAt.After(index.UpdatedAt) {
				index.UpdatedAt = p.UpdatedAt
			}
		}
	}
	return index, nil
}

func (s *Projects) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.store.GetProject(ctx, id)
}

// Create adds a project. The first project becomes the default. Its board
// is created on first access.
func (s *Projects) Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	if err := models.ValidateProjectName(req.Name); err != nil {
		return nil, err
	}

	now := s.now()
	p := models.Project{
		ID:             engine.NewID("project"),
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		CreatedAt:      now,
		UpdatedAt:      now,
		LastAccessedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	defaultID, err := s.store.DefaultProjectID(ctx)
	if err != nil {
		return nil, err
	}
	if defaultID == "" {
		if err := s.store.SetDefaultProjectID(ctx, p.ID); err != nil {
			return nil, err
		}
	}

	slog.Info("project created", "project", p.ID, "name", p.Name)
	return &p, nil
}

// Update changes the fields set in req.
func (s *Projects) Update(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	if req.Name != nil {
		if err := models.ValidateProjectName(*req.Name); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.LastAccessedAt != nil {
		p.LastAccessedAt = req.LastAccessedAt.UTC()
	}
	p.UpdatedAt = s.now()

	if err := s.store.UpdateProject(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project and its board. The last project cannot be
// deleted. When the default project goes, the oldest remaining project
// takes its place.
func (s *Projects) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetProject(ctx, id); err != nil {
		return err
	}

	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) <= 1 {
		return fmt.Errorf("%w: %w", ErrLastProject, models.ErrInvalidInput)
	}

	defaultID, err := s.store.DefaultProjectID(ctx)
	if err != nil {
		return err
	}

	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	if s.boards != nil {
		s.boards.Forget(ctx, id)
	}

	if defaultID == id {
		for _, p := range projects {
			if p.ID != id {
				if err := s.store.SetDefaultProjectID(ctx, p.ID); err != nil {
					return err
				}
				slog.Info("default project changed", "project", p.ID)
				break
			}
		}
	}

	slog.Info("project deleted", "project", id)
	return nil
}

// Resolve returns id when the project exists, or the default project when
// id is empty.
func (s *Projects) Resolve(ctx context.Context, id string) (string, error) {
	if id != "" {
		if _, err := s.store.GetProject(ctx, id); err != nil {
			return "", err
		}
		return id, nil
	}

	defaultID, err := s.store.DefaultProjectID(ctx)
	if err != nil {
		return "", err
	}
	if defaultID == "" {
		return "", fmt.Errorf("%w: %w", ErrNoProjects, models.ErrNotFound)
	}
	return defaultID, nil
}
