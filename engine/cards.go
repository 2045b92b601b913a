package engine

import (
	"fmt"
	"kanban/models"
	"strings"
)

// CardPatch lists the card fields to change. Nil fields are kept.
type CardPatch struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	Tags        *[]string
	ColumnID    *string
}

// IsZero reports whether the patch changes nothing.
func (p CardPatch) IsZero() bool {
	return p == CardPatch{}
}

// AddCard appends a new card to the end of the column. An empty priority
// means medium. The returned card belongs to the returned board.
func (e *Engine) AddCard(b *models.Board, columnID, title, description string, priority models.Priority) (*models.Board, *models.Card, error) {
	if len(b.Columns) == 0 {
		return nil, nil, fmt.Errorf("add card: %w", models.ErrNoTarget)
	}
	col := b.Column(columnID)
	if col == nil {
		return nil, nil, fmt.Errorf("add card: column %s: %w", columnID, models.ErrNotFound)
	}
	if priority == "" {
		priority = models.DefaultPriority
	}

	next, now := e.fork(b)
	target := next.Column(columnID)

	card := &models.Card{
		ID:          e.newID("card"),
		Title:       strings.TrimSpace(title),
		Description: description,
		ColumnID:    columnID,
		Position:    len(target.CardIDs),
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := card.Validate(); err != nil {
		return nil, nil, fmt.Errorf("add card: %w", err)
	}

	target.CardIDs = append(target.CardIDs, card.ID)
	next.Cards[card.ID] = card

	return next, card, nil
}

// UpdateCard merges the patch into the card. A different ColumnID moves the
// card to the end of that column. An empty patch returns b itself.
func (e *Engine) UpdateCard(b *models.Board, cardID string, patch CardPatch) (*models.Board, error) {
	if _, ok := b.Cards[cardID]; !ok {
		return nil, fmt.Errorf("update card %s: %w", cardID, models.ErrNotFound)
	}
	if patch.IsZero() {
		return b, nil
	}
	if patch.ColumnID != nil && b.Column(*patch.ColumnID) == nil {
		return nil, fmt.Errorf("update card %s: column %s: %w", cardID, *patch.ColumnID, models.ErrNotFound)
	}

	next, now := e.fork(b)
	card := next.Cards[cardID]

	if patch.Title != nil {
		card.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		card.Description = *patch.Description
	}
	if patch.Priority != nil {
		card.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		card.Tags = append([]string{}, (*patch.Tags)...)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("update card %s: %w", cardID, err)
	}

	if patch.ColumnID != nil && *patch.ColumnID != card.ColumnID {
		if old := next.Column(card.ColumnID); old != nil {
			old.CardIDs = without(old.CardIDs, cardID)
		}
		target := next.Column(*patch.ColumnID)
		card.ColumnID = target.ID
		card.Position = len(target.CardIDs)
		target.CardIDs = append(target.CardIDs, cardID)
	}

	card.UpdatedAt = now
	return next, nil
}

// DeleteCard removes the card from the board and from its column. Sibling
// positions are left as they are.
func (e *Engine) DeleteCard(b *models.Board, cardID string) (*models.Board, error) {
	card, ok := b.Cards[cardID]
	if !ok {
		return nil, fmt.Errorf("delete card %s: %w", cardID, models.ErrNotFound)
	}

	next, _ := e.fork(b)
	delete(next.Cards, cardID)
	if col := next.Column(card.ColumnID); col != nil {
		col.CardIDs = without(col.CardIDs, cardID)
	}

	return next, nil
}

// MoveCard places the card at targetIndex in the target column, clamped to
// the column's bounds. When nothing would change, b itself is returned so
// the caller can skip recording history.
func (e *Engine) MoveCard(b *models.Board, cardID, targetColumnID string, targetIndex int) (*models.Board, error) {
	card, ok := b.Cards[cardID]
	if !ok {
		return nil, fmt.Errorf("move card %s: %w", cardID, models.ErrNotFound)
	}
	target := b.Column(targetColumnID)
	if target == nil {
		return nil, fmt.Errorf("move card %s: column %s: %w", cardID, targetColumnID, models.ErrNotFound)
	}

	// The index addresses the target list with the card already taken out.
	remaining := without(target.CardIDs, cardID)
	idx := clamp(targetIndex, 0, len(remaining))

	if card.ColumnID == targetColumnID && indexOf(target.CardIDs, cardID) == idx {
		return b, nil
	}

	next, now := e.fork(b)
	if src := next.Column(card.ColumnID); src != nil {
		src.CardIDs = without(src.CardIDs, cardID)
	}
	dst := next.Column(targetColumnID)
	dst.CardIDs = insertAt(without(dst.CardIDs, cardID), idx, cardID)

	moved := next.Cards[cardID]
	moved.ColumnID = targetColumnID
	moved.Position = idx
	moved.UpdatedAt = now

	return next, nil
}
