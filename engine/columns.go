package engine

import (
	"fmt"
	"kanban/models"
	"strings"
)

// ColumnPatch lists the column fields to change. Nil fields are kept.
type ColumnPatch struct {
	Title       *string
	Color       *string
	IsCollapsed *bool
}

func (p ColumnPatch) IsZero() bool {
	return p == ColumnPatch{}
}

// AddColumn appends a column with Position equal to the current column count.
func (e *Engine) AddColumn(b *models.Board, title string) (*models.Board, *models.Column, error) {
	if err := models.ValidateColumnTitle(title); err != nil {
		return nil, nil, fmt.Errorf("add column: %w", err)
	}

	next, now := e.fork(b)
	next.Columns = append(next.Columns, models.Column{
		ID:        e.newID("col"),
		Title:     strings.TrimSpace(title),
		Position:  len(b.Columns),
		CardIDs:   []string{},
		CreatedAt: now,
	})

	return next, &next.Columns[len(next.Columns)-1], nil
}

// UpdateColumn merges the patch into the column. Position and card
// membership are never touched. An empty patch returns b itself.
func (e *Engine) UpdateColumn(b *models.Board, columnID string, patch ColumnPatch) (*models.Board, error) {
	if b.Column(columnID) == nil {
		return nil, fmt.Errorf("update column %s: %w", columnID, models.ErrNotFound)
	}
	if patch.IsZero() {
		return b, nil
	}

	next, _ := e.fork(b)
	col := next.Column(columnID)

	if patch.Title != nil {
		col.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Color != nil {
		col.Color = *patch.Color
	}
	if patch.IsCollapsed != nil {
		col.IsCollapsed = *patch.IsCollapsed
	}
	if err := col.Validate(); err != nil {
		return nil, fmt.Errorf("update column %s: %w", columnID, err)
	}

	return next, nil
}

// DeleteColumn removes the column and every card it holds. The remaining
// columns keep their positions, gaps included.
func (e *Engine) DeleteColumn(b *models.Board, columnID string) (*models.Board, error) {
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return nil, fmt.Errorf("delete column %s: %w", columnID, models.ErrNotFound)
	}

	next, _ := e.fork(b)
	for _, cardID := range next.Columns[idx].CardIDs {
		delete(next.Cards, cardID)
	}
	for id, card := range next.Cards {
		if card.ColumnID == columnID {
			delete(next.Cards, id)
		}
	}
	next.Columns = append(next.Columns[:idx], next.Columns[idx+1:]...)

	return next, nil
}

// MoveColumn reinserts the column at targetIndex of the display order,
// clamped to [0, N-1], and renumbers every column densely from zero.
// When the order and numbering are already as requested, b is returned.
func (e *Engine) MoveColumn(b *models.Board, columnID string, targetIndex int) (*models.Board, error) {
	ordered := b.OrderedColumns()
	cur := -1
	for i := range ordered {
		if ordered[i].ID == columnID {
			cur = i
			break
		}
	}
	if cur < 0 {
		return nil, fmt.Errorf("move column %s: %w", columnID, models.ErrNotFound)
	}

	idx := clamp(targetIndex, 0, len(ordered)-1)
	if idx == cur && isDense(b.Columns) {
		return b, nil
	}

	next, _ := e.fork(b)
	ordered = next.OrderedColumns()
	moved := ordered[cur]
	ordered = append(ordered[:cur], ordered[cur+1:]...)

	cols := make([]models.Column, 0, len(ordered)+1)
	cols = append(cols, ordered[:idx]...)
	cols = append(cols, moved)
	cols = append(cols, ordered[idx:]...)
	for i := range cols {
		cols[i].Position = i
	}
	next.Columns = cols

	return next, nil
}

func isDense(cols []models.Column) bool {
	for i := range cols {
		if cols[i].Position != i {
			return false
		}
	}
	return true
}
