package sqlite

import (
	"context"
	"encoding/json"
	"kanban/models"
	"log/slog"
	"time"
)

// GetBoard returns the stored snapshot, or ErrNotFound when the project has
// no board yet.
func (s *Store) GetBoard(ctx context.Context, projectID string) (*models.Board, error) {
	var data string
	err := s.db.GetContext(ctx, &data, "SELECT data FROM boards WHERE project_id = ?", projectID)
	if err != nil {
		return nil, notFound("board of project", projectID, err)
	}

	var b models.Board
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, storageError("decode board", err)
	}
	if b.Cards == nil {
		b.Cards = map[string]*models.Card{}
	}
	return &b, nil
}

// SaveBoard replaces the project's snapshot. The project must exist.
func (s *Store) SaveBoard(ctx context.Context, b *models.Board) error {
	start := time.Now()
	defer func() {
		slog.Debug("SaveBoard", "project", b.ProjectID, "duration", time.Since(start))
	}()

	data, err := json.Marshal(b)
	if err != nil {
		return storageError("encode board", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO boards (project_id, id, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			id = excluded.id, data = excluded.data, updated_at = excluded.updated_at`,
		b.ProjectID, b.ID, string(data), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return storageError("save board", err)
	}
	return nil
}
