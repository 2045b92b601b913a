package models

import (
	"sort"
	"time"
)

// Priority is the urgency of a card.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// DefaultPriority is applied to cards created without an explicit priority.
const DefaultPriority = PriorityMedium

// Board is the full kanban state of one project.
// Every id in a column's CardIDs is a key of Cards, and every card's
// ColumnID names the column whose CardIDs holds it.
type Board struct {
	ID        string           `json:"id"`
	ProjectID string           `json:"projectId"`
	Title     string           `json:"title"`
	Columns   []Column         `json:"columns"`
	Cards     map[string]*Card `json:"cards"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Column is an ordered lane of card references. Position drives left to
// right layout; IsCollapsed is view state only.
type Column struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Position    int       `json:"position"`
	CardIDs     []string  `json:"cardIds"`
	Color       string    `json:"color,omitempty"`
	IsCollapsed bool      `json:"isCollapsed,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Card is a single work item. Position is advisory; the owning column's
// CardIDs is the authoritative order.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ColumnID    string    `json:"columnId"`
	Position    int       `json:"position"`
	Priority    Priority  `json:"priority"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BoardID derives the board id for a project.
func BoardID(projectID string) string {
	return "board-" + projectID
}

// Column returns the column with the given id, or nil.
func (b *Board) Column(id string) *Column {
	if i := b.ColumnIndex(id); i >= 0 {
		return &b.Columns[i]
	}
	return nil
}

// ColumnIndex returns the slice index of the column with the given id, or -1.
func (b *Board) ColumnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// OrderedColumns returns the columns sorted by Position. Ties keep slice order.
// Deleting a column leaves gaps, so callers must not index by Position.
func (b *Board) OrderedColumns() []Column {
	cols := make([]Column, len(b.Columns))
	copy(cols, b.Columns)
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].Position < cols[j].Position
	})
	return cols
}

// Clone returns a deep copy that shares no slices or maps with b.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}

	out := *b
	out.Columns = make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		out.Columns[i] = col.clone()
	}

	out.Cards = make(map[string]*Card, len(b.Cards))
	for id, card := range b.Cards {
		out.Cards[id] = card.Clone()
	}

	return &out
}

func (c Column) clone() Column {
	c.CardIDs = append([]string{}, c.CardIDs...)
	return c
}

// Clone returns a copy of the card with its own tags slice.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	out := *c
	if c.Tags != nil {
		out.Tags = append([]string{}, c.Tags...)
	}
	return &out
}
