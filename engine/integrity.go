package engine

import (
	"errors"
	"fmt"
	"kanban/models"
)

// ErrCorruptBoard marks a snapshot whose columns and cards disagree.
var ErrCorruptBoard = errors.New("board integrity violated")

// Check verifies that every column's card ids exist in Cards, that each card
// sits in exactly one column, and that the column is the one it names.
func Check(b *models.Board) error {
	seenCols := make(map[string]bool, len(b.Columns))
	owner := make(map[string]string, len(b.Cards))

	for _, col := range b.Columns {
		if seenCols[col.ID] {
			return fmt.Errorf("%w: duplicate column %s", ErrCorruptBoard, col.ID)
		}
		seenCols[col.ID] = true

		for _, id := range col.CardIDs {
			if _, ok := b.Cards[id]; !ok {
				return fmt.Errorf("%w: column %s lists missing card %s", ErrCorruptBoard, col.ID, id)
			}
			if prev, dup := owner[id]; dup {
				return fmt.Errorf("%w: card %s listed by %s and %s", ErrCorruptBoard, id, prev, col.ID)
			}
			owner[id] = col.ID
		}
	}

	for id, card := range b.Cards {
		if owner[id] != card.ColumnID {
			return fmt.Errorf("%w: card %s names column %q but is listed by %q",
				ErrCorruptBoard, id, card.ColumnID, owner[id])
		}
	}

	return nil
}
