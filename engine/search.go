package engine

import (
	"kanban/models"
	"strings"
)

// CardFilter narrows a card listing. Zero values match everything.
type CardFilter struct {
	Query    string
	Priority models.Priority
	ColumnID string
}

// FilterCards returns copies of the matching cards in display order:
// columns by position, then each column's card order. The query matches
// title, description or any tag, ignoring case.
func FilterCards(b *models.Board, f CardFilter) []*models.Card {
	query := normalize(f.Query)
	out := []*models.Card{}

	for _, col := range b.OrderedColumns() {
		if f.ColumnID != "" && col.ID != f.ColumnID {
			continue
		}
		for _, id := range col.CardIDs {
			card, ok := b.Cards[id]
			if !ok {
				continue
			}
			if f.Priority != "" && card.Priority != f.Priority {
				continue
			}
			if query != "" && !cardMatches(card, query) {
				continue
			}
			out = append(out, card.Clone())
		}
	}

	return out
}

func cardMatches(card *models.Card, query string) bool {
	if strings.Contains(strings.ToLower(card.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(card.Description), query) {
		return true
	}
	for _, tag := range card.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
