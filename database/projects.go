package database

import (
	"context"
	"errors"
	"fmt"
	"kanban/models"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

const projectColumns = "id, name, description, created_at, updated_at, last_accessed_at"

func (db *DB) ListProjects(ctx context.Context) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, id`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, storageError("list projects", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (db *DB) GetProject(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound("project", id, err)
	}
	return project, nil
}

func (db *DB) CreateProject(ctx context.Context, p models.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := db.Pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt, p.LastAccessedAt)
	if err != nil {
		return storageError("create project", err)
	}

	slog.Debug("created project", "project", p.ID, "name", p.Name)
	return nil
}

func (db *DB) UpdateProject(ctx context.Context, p models.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, updated_at = $4, last_accessed_at = $5
		WHERE id = $1
	`

	result, err := db.Pool.Exec(ctx, query, p.ID, p.Name, p.Description, p.UpdatedAt, p.LastAccessedAt)
	if err != nil {
		return storageError("update project", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", p.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteProject removes the project and, through the foreign key, its
// board. A default pointing at it is cleared in the same transaction.
func (db *DB) DeleteProject(ctx context.Context, id string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return storageError("delete project", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}

	_, err = tx.Exec(ctx, `DELETE FROM settings WHERE key = $1 AND value = $2`, defaultProjectKey, id)
	if err != nil {
		return storageError("clear default project", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storageError("commit project delete", err)
	}

	slog.Debug("deleted project", "project", id)
	return nil
}

func (db *DB) DefaultProjectID(ctx context.Context) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, defaultProjectKey).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", storageError("get default project", err)
	}
	return id, nil
}

// SetDefaultProjectID stores id as the default project; "" clears it.
func (db *DB) SetDefaultProjectID(ctx context.Context, id string) error {
	var err error
	if id == "" {
		_, err = db.Pool.Exec(ctx, `DELETE FROM settings WHERE key = $1`, defaultProjectKey)
	} else {
		_, err = db.Pool.Exec(ctx, `
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		`, defaultProjectKey, id)
	}
	if err != nil {
		return storageError("set default project", err)
	}
	return nil
}

// Helper functions

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.LastAccessedAt,
	)
	if err != nil {
		return nil, err
	}
	project.CreatedAt = project.CreatedAt.UTC()
	project.UpdatedAt = project.UpdatedAt.UTC()
	project.LastAccessedAt = project.LastAccessedAt.UTC()
	return &project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, storageError("scan project", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate projects", err)
	}

	return projects, nil
}
