package database

import (
	"context"
	"encoding/json"
	"kanban/models"
	"log/slog"
	"time"
)

// GetBoard returns the stored snapshot, or ErrNotFound when the project has
// no board yet.
func (db *DB) GetBoard(ctx context.Context, projectID string) (*models.Board, error) {
	var data []byte
	err := db.Pool.QueryRow(ctx, `SELECT data FROM boards WHERE project_id = $1`, projectID).Scan(&data)
	if err != nil {
		return nil, notFound("board of project", projectID, err)
	}

	var b models.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, storageError("decode board", err)
	}
	if b.Cards == nil {
		b.Cards = map[string]*models.Card{}
	}
	return &b, nil
}

// SaveBoard replaces the project's snapshot as one JSONB document.
func (db *DB) SaveBoard(ctx context.Context, b *models.Board) error {
	start := time.Now()
	defer func() {
		slog.Debug("SaveBoard", "project", b.ProjectID, "cards", len(b.Cards), "duration", time.Since(start))
	}()

	data, err := json.Marshal(b)
	if err != nil {
		return storageError("encode board", err)
	}

	query := `
		INSERT INTO boards (project_id, id, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id) DO UPDATE
		SET id = EXCLUDED.id, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	if _, err := db.Pool.Exec(ctx, query, b.ProjectID, b.ID, data, b.UpdatedAt); err != nil {
		return storageError("save board", err)
	}
	return nil
}
