package engine

import (
	"fmt"
	"kanban/models"
	"strings"
)

// ColumnRef names a column by id, by title, or both.
type ColumnRef struct {
	ID   string
	Name string
}

func (r ColumnRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Name
}

// ResolveColumn finds the column a caller meant.
//
// The id wins when it exists. Otherwise the name is matched against titles in
// display order: an exact case-insensitive match first, then a substring
// match in either direction. When nothing matches and fallback is set, the
// first column is used. A board with no columns always fails with ErrNoTarget.
func ResolveColumn(b *models.Board, ref ColumnRef, fallback bool) (models.Column, error) {
	if len(b.Columns) == 0 {
		return models.Column{}, fmt.Errorf("resolve column %q: %w", ref.String(), models.ErrNoTarget)
	}

	if ref.ID != "" {
		if col := b.Column(ref.ID); col != nil {
			return *col, nil
		}
	}

	ordered := b.OrderedColumns()

	if name := normalize(ref.Name); name != "" {
		for _, col := range ordered {
			if normalize(col.Title) == name {
				return col, nil
			}
		}
		for _, col := range ordered {
			title := normalize(col.Title)
			if title == "" {
				continue
			}
			if strings.Contains(title, name) || strings.Contains(name, title) {
				return col, nil
			}
		}
	}

	if fallback {
		return ordered[0], nil
	}
	return models.Column{}, fmt.Errorf("resolve column %q: %w", ref.String(), models.ErrNotFound)
}

// FindCardByTitle returns the first card, in display order, whose title
// matches exactly ignoring case.
func FindCardByTitle(b *models.Board, title string) (*models.Card, bool) {
	want := normalize(title)
	if want == "" {
		return nil, false
	}
	for _, col := range b.OrderedColumns() {
		for _, id := range col.CardIDs {
			if card, ok := b.Cards[id]; ok && normalize(card.Title) == want {
				return card, true
			}
		}
	}
	return nil, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
