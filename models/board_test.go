package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() *Board {
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	return &Board{
		ID:        BoardID("p1"),
		ProjectID: "p1",
		Title:     "Ops",
		Columns: []Column{
			{ID: "todo", Title: "TODO", Position: 0, CardIDs: []string{"c1"}, CreatedAt: now},
			{ID: "doing", Title: "Doing", Position: 1, CardIDs: []string{}, CreatedAt: now},
		},
		Cards: map[string]*Card{
			"c1": {ID: "c1", Title: "Fix bug", ColumnID: "todo", Priority: PriorityHigh, Tags: []string{"api"}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBoardID(t *testing.T) {
	assert.Equal(t, "board-project-1", BoardID("project-1"))
}

func TestBoard_Clone_IsDeep(t *testing.T) {
	original := sampleBoard()
	clone := original.Clone()

	require.Equal(t, original, clone)

	clone.Columns[0].CardIDs[0] = "changed"
	clone.Columns[1].Title = "Changed"
	clone.Cards["c1"].Title = "Changed"
	clone.Cards["c1"].Tags[0] = "changed"
	clone.Cards["c2"] = &Card{ID: "c2"}

	assert.Equal(t, "c1", original.Columns[0].CardIDs[0])
	assert.Equal(t, "Doing", original.Columns[1].Title)
	assert.Equal(t, "Fix bug", original.Cards["c1"].Title)
	assert.Equal(t, "api", original.Cards["c1"].Tags[0])
	assert.NotContains(t, original.Cards, "c2")
}

func TestBoard_Clone_Nil(t *testing.T) {
	var b *Board
	assert.Nil(t, b.Clone())
}

func TestBoard_Column(t *testing.T) {
	b := sampleBoard()

	col := b.Column("doing")
	require.NotNil(t, col)
	assert.Equal(t, "Doing", col.Title)

	assert.Nil(t, b.Column("missing"))
	assert.Equal(t, 1, b.ColumnIndex("doing"))
	assert.Equal(t, -1, b.ColumnIndex("missing"))
}

func TestBoard_OrderedColumns(t *testing.T) {
	b := sampleBoard()
	b.Columns = []Column{
		{ID: "c", Position: 5},
		{ID: "a", Position: 0},
		{ID: "b", Position: 2},
	}

	ordered := b.OrderedColumns()

	ids := []string{}
	for _, col := range ordered {
		ids = append(ids, col.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, "c", b.Columns[0].ID, "receiver must not be reordered")
}
