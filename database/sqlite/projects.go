package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kanban/models"
)

type projectRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Description    string `db:"description"`
	CreatedAt      string `db:"created_at"`
	UpdatedAt      string `db:"updated_at"`
	LastAccessedAt string `db:"last_accessed_at"`
}

const projectColumns = "id, name, description, created_at, updated_at, last_accessed_at"

func (r projectRow) project() (*models.Project, error) {
	p := &models.Project{ID: r.ID, Name: r.Name, Description: r.Description}
	var err error
	if p.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}
	if p.LastAccessedAt, err = parseTime(r.LastAccessedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows := []projectRow{}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+projectColumns+" FROM projects ORDER BY created_at, id")
	if err != nil {
		return nil, storageError("list projects", err)
	}

	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.project()
		if err != nil {
			return nil, storageError("scan project", err)
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var row projectRow
	err := s.db.GetContext(ctx, &row, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	if err != nil {
		return nil, notFound("project", id, err)
	}

	p, err := row.project()
	if err != nil {
		return nil, storageError("scan project", err)
	}
	return p, nil
}

func (s *Store) CreateProject(ctx context.Context, p models.Project) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt), formatTime(p.LastAccessedAt),
	)
	if err != nil {
		return storageError("create project", err)
	}
	return nil
}

func (s *Store) UpdateProject(ctx context.Context, p models.Project) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, description = ?, updated_at = ?, last_accessed_at = ?
		WHERE id = ?`,
		p.Name, p.Description, formatTime(p.UpdatedAt), formatTime(p.LastAccessedAt), p.ID,
	)
	if err != nil {
		return storageError("update project", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", p.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteProject removes the project; its board goes with it through the
// foreign key. A default pointing at it is cleared.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return storageError("delete project", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM settings WHERE key = ? AND value = ?", defaultProjectKey, id); err != nil {
		return storageError("clear default project", err)
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit project delete", err)
	}
	return nil
}

func (s *Store) DefaultProjectID(ctx context.Context) (string, error) {
	var id string
	err := s.db.GetContext(ctx, &id, "SELECT value FROM settings WHERE key = ?", defaultProjectKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", storageError("get default project", err)
	}
	return id, nil
}

// SetDefaultProjectID stores id as the default project; "" clears it.
func (s *Store) SetDefaultProjectID(ctx context.Context, id string) error {
	var err error
	if id == "" {
		_, err = s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", defaultProjectKey)
	} else {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			defaultProjectKey, id)
	}
	if err != nil {
		return storageError("set default project", err)
	}
	return nil
}
