package engine

import (
	"fmt"
	"kanban/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

// newTestEngine returns an engine whose clock advances one second per call
// and whose ids are "<prefix>-<n>".
func newTestEngine() *Engine {
	tick := 0
	seq := 0
	return New(
		WithClock(func() time.Time {
			tick++
			return testTime.Add(time.Duration(tick) * time.Second)
		}),
		WithIDs(func(prefix string) string {
			seq++
			return fmt.Sprintf("%s-%d", prefix, seq)
		}),
	)
}

// twoColumnBoard is the [TODO(pos0), Doing(pos1)] board used by the scenarios.
func twoColumnBoard() *models.Board {
	return &models.Board{
		ID:        models.BoardID("p1"),
		ProjectID: "p1",
		Title:     "Ops",
		Columns: []models.Column{
			{ID: "todo", Title: "TODO", Position: 0, CardIDs: []string{}, CreatedAt: testTime},
			{ID: "doing", Title: "Doing", Position: 1, CardIDs: []string{}, CreatedAt: testTime},
		},
		Cards:     map[string]*models.Card{},
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func addCards(t *testing.T, e *Engine, b *models.Board, columnID string, titles ...string) (*models.Board, []string) {
	t.Helper()
	ids := []string{}
	for _, title := range titles {
		next, card, err := e.AddCard(b, columnID, title, "", "")
		require.NoError(t, err)
		b = next
		ids = append(ids, card.ID)
	}
	return b, ids
}

func TestNewDefaultBoard(t *testing.T) {
	e := newTestEngine()

	b := e.NewDefaultBoard("p1", "")

	assert.Equal(t, "board-p1", b.ID)
	assert.Equal(t, "Tactical Operations", b.Title)
	require.Len(t, b.Columns, 3)
	assert.Equal(t, TodoColumnID, b.Columns[0].ID)
	assert.Equal(t, "TODO", b.Columns[0].Title)
	assert.Equal(t, "In Progress", b.Columns[1].Title)
	assert.Equal(t, "Completed", b.Columns[2].Title)
	for i, col := range b.Columns {
		assert.Equal(t, i, col.Position)
		assert.NotNil(t, col.CardIDs)
	}
	assert.Empty(t, b.Cards)
	assert.NoError(t, Check(b))
}

func TestAddCard_AppendsToColumn(t *testing.T) {
	e := newTestEngine()
	b := twoColumnBoard()

	next, card, err := e.AddCard(b, "todo", "Fix bug", "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{card.ID}, next.Column("todo").CardIDs)
	assert.Equal(t, 0, card.Position)
	assert.Equal(t, models.PriorityMedium, card.Priority)
	assert.Equal(t, "todo", card.ColumnID)
	assert.Same(t, card, next.Cards[card.ID])

	next, second, err := e.AddCard(next, "todo", "Write docs", "details", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, models.PriorityHigh, second.Priority)
	assert.Equal(t, []string{card.ID, second.ID}, next.Column("todo").CardIDs)

	assert.Empty(t, b.Cards, "input board must not change")
	assert.Empty(t, b.Column("todo").CardIDs)
	assert.NoError(t, Check(next))
}

func TestAddCard_Errors(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		board    *models.Board
		columnID string
		title    string
		priority models.Priority
		wantErr  error
	}{
		{name: "unknown column", board: twoColumnBoard(), columnID: "nope", title: "x", wantErr: models.ErrNotFound},
		{name: "empty title", board: twoColumnBoard(), columnID: "todo", title: "  ", wantErr: models.ErrInvalidInput},
		{name: "bad priority", board: twoColumnBoard(), columnID: "todo", title: "x", priority: "urgent", wantErr: models.ErrInvalidInput},
		{name: "no columns", board: &models.Board{Cards: map[string]*models.Card{}}, columnID: "todo", title: "x", wantErr: models.ErrNoTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, card, err := e.AddCard(tt.board, tt.columnID, tt.title, "", tt.priority)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, next)
			assert.Nil(t, card)
		})
	}
}

func TestUpdateCard(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "a", "b")
	b, doingIDs := addCards(t, e, b, "doing", "c")

	title := "renamed"
	priority := models.PriorityCritical
	tags := []string{"api"}
	next, err := e.UpdateCard(b, ids[0], CardPatch{Title: &title, Priority: &priority, Tags: &tags})
	require.NoError(t, err)

	card := next.Cards[ids[0]]
	assert.Equal(t, "renamed", card.Title)
	assert.Equal(t, models.PriorityCritical, card.Priority)
	assert.Equal(t, []string{"api"}, card.Tags)
	assert.True(t, card.UpdatedAt.After(b.Cards[ids[0]].UpdatedAt))
	assert.Equal(t, "a", b.Cards[ids[0]].Title)

	tags[0] = "changed"
	assert.Equal(t, "api", next.Cards[ids[0]].Tags[0], "patch slice must be copied")

	t.Run("column change appends to target", func(t *testing.T) {
		doing := "doing"
		moved, err := e.UpdateCard(b, ids[0], CardPatch{ColumnID: &doing})
		require.NoError(t, err)

		assert.Equal(t, []string{ids[1]}, moved.Column("todo").CardIDs)
		assert.Equal(t, []string{doingIDs[0], ids[0]}, moved.Column("doing").CardIDs)
		assert.Equal(t, "doing", moved.Cards[ids[0]].ColumnID)
		assert.Equal(t, 1, moved.Cards[ids[0]].Position)
		assert.NoError(t, Check(moved))
	})

	t.Run("same column keeps place", func(t *testing.T) {
		todo := "todo"
		same, err := e.UpdateCard(b, ids[0], CardPatch{ColumnID: &todo})
		require.NoError(t, err)
		assert.Equal(t, ids, same.Column("todo").CardIDs)
	})

	t.Run("missing card", func(t *testing.T) {
		_, err := e.UpdateCard(b, "ghost", CardPatch{Title: &title})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("missing target column", func(t *testing.T) {
		ghost := "ghost"
		_, err := e.UpdateCard(b, ids[0], CardPatch{ColumnID: &ghost})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		empty := ""
		_, err := e.UpdateCard(b, ids[0], CardPatch{Title: &empty})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Equal(t, "a", b.Cards[ids[0]].Title)
	})

	t.Run("empty patch returns same board", func(t *testing.T) {
		same, err := e.UpdateCard(b, ids[0], CardPatch{})
		require.NoError(t, err)
		assert.Same(t, b, same)

		_, err = e.UpdateCard(b, "ghost", CardPatch{})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestDeleteCard_LeavesGaps(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "a", "b", "c")

	next, err := e.DeleteCard(b, ids[1])
	require.NoError(t, err)

	assert.NotContains(t, next.Cards, ids[1])
	assert.Equal(t, []string{ids[0], ids[2]}, next.Column("todo").CardIDs)
	assert.Equal(t, 2, next.Cards[ids[2]].Position, "siblings are not renumbered")
	assert.Contains(t, b.Cards, ids[1])
	assert.NoError(t, Check(next))

	_, err = e.DeleteCard(next, ids[1])
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMoveCard_AcrossColumns(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "Fix bug")

	next, err := e.MoveCard(b, ids[0], "doing", 0)
	require.NoError(t, err)

	assert.NotContains(t, next.Column("todo").CardIDs, ids[0])
	assert.Equal(t, ids[0], next.Column("doing").CardIDs[0])
	assert.Equal(t, "doing", next.Cards[ids[0]].ColumnID)
	assert.Equal(t, "todo", b.Cards[ids[0]].ColumnID)
	assert.NoError(t, Check(next))
}

func TestMoveCard_Reorder(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "a", "b", "c")

	tests := []struct {
		name     string
		index    int
		expected []string
	}{
		{name: "to front", index: 0, expected: []string{ids[2], ids[0], ids[1]}},
		{name: "to middle", index: 1, expected: []string{ids[0], ids[2], ids[1]}},
		{name: "negative clamps to front", index: -5, expected: []string{ids[2], ids[0], ids[1]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := e.MoveCard(b, ids[2], "todo", tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, next.Column("todo").CardIDs)
			assert.NoError(t, Check(next))
		})
	}
}

func TestMoveCard_IndexClampedToEnd(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "a")
	b, doing := addCards(t, e, b, "doing", "x", "y")

	next, err := e.MoveCard(b, ids[0], "doing", 99)
	require.NoError(t, err)

	assert.Equal(t, []string{doing[0], doing[1], ids[0]}, next.Column("doing").CardIDs)
	assert.Equal(t, 2, next.Cards[ids[0]].Position)
}

func TestMoveCard_NoOpReturnsSameBoard(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "a", "b")
	before := b.Clone()

	next, err := e.MoveCard(b, ids[1], "todo", 1)
	require.NoError(t, err)
	assert.Same(t, b, next)
	assert.Equal(t, before, next)

	// Past the end clamps to the card's current slot.
	next, err = e.MoveCard(b, ids[1], "todo", 10)
	require.NoError(t, err)
	assert.Same(t, b, next)
}

func TestMoveCard_NotFound(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "a")

	_, err := e.MoveCard(b, "ghost", "todo", 0)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = e.MoveCard(b, ids[0], "ghost", 0)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddColumn(t *testing.T) {
	e := newTestEngine()
	b := twoColumnBoard()

	next, col, err := e.AddColumn(b, "  Review ")
	require.NoError(t, err)

	assert.Equal(t, "Review", col.Title)
	assert.Equal(t, 2, col.Position)
	assert.NotNil(t, col.CardIDs)
	assert.Len(t, next.Columns, 3)
	assert.Len(t, b.Columns, 2)

	_, _, err = e.AddColumn(b, "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateColumn(t *testing.T) {
	e := newTestEngine()
	b, ids := addCards(t, e, twoColumnBoard(), "todo", "a")

	title := "Backlog"
	collapsed := true
	next, err := e.UpdateColumn(b, "todo", ColumnPatch{Title: &title, IsCollapsed: &collapsed})
	require.NoError(t, err)

	col := next.Column("todo")
	assert.Equal(t, "Backlog", col.Title)
	assert.True(t, col.IsCollapsed)
	assert.Equal(t, 0, col.Position)
	assert.Equal(t, ids, col.CardIDs)
	assert.Equal(t, "TODO", b.Column("todo").Title)

	_, err = e.UpdateColumn(b, "ghost", ColumnPatch{Title: &title})
	assert.ErrorIs(t, err, models.ErrNotFound)

	empty := " "
	_, err = e.UpdateColumn(b, "todo", ColumnPatch{Title: &empty})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	same, err := e.UpdateColumn(b, "todo", ColumnPatch{})
	require.NoError(t, err)
	assert.Same(t, b, same)
}

func TestDeleteColumn_Cascades(t *testing.T) {
	e := newTestEngine()
	b, todo := addCards(t, e, twoColumnBoard(), "todo", "a", "b")
	b, doing := addCards(t, e, b, "doing", "c")
	b, review, err := e.AddColumn(b, "Review")
	require.NoError(t, err)

	next, err := e.DeleteColumn(b, "todo")
	require.NoError(t, err)

	for _, id := range todo {
		assert.NotContains(t, next.Cards, id)
	}
	assert.Equal(t, b.Cards[doing[0]], next.Cards[doing[0]])
	assert.Nil(t, next.Column("todo"))
	assert.Equal(t, 2, next.Column(review.ID).Position, "positions are not renumbered")
	assert.Len(t, b.Columns, 3)
	assert.NoError(t, Check(next))

	_, err = e.DeleteColumn(next, "todo")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteColumn_LastColumnThenAddCard(t *testing.T) {
	e := newTestEngine()
	b := &models.Board{
		Columns: []models.Column{{ID: "only", Title: "Only", CardIDs: []string{}}},
		Cards:   map[string]*models.Card{},
	}
	b, _ = addCards(t, e, b, "only", "a")

	next, err := e.DeleteColumn(b, "only")
	require.NoError(t, err)
	assert.Empty(t, next.Columns)
	assert.Empty(t, next.Cards)

	_, _, err = e.AddCard(next, "only", "b", "", "")
	assert.ErrorIs(t, err, models.ErrNoTarget)
}

func TestMoveColumn_RenumbersDensely(t *testing.T) {
	e := newTestEngine()
	b := twoColumnBoard()
	b, review, err := e.AddColumn(b, "Review")
	require.NoError(t, err)
	b, err = e.DeleteColumn(b, "doing")
	require.NoError(t, err)
	b, _, err = e.AddColumn(b, "Done")
	require.NoError(t, err)

	tests := []struct {
		name     string
		columnID string
		index    int
		expected []string
	}{
		{name: "to front", columnID: review.ID, index: 0, expected: []string{review.ID, "todo"}},
		{name: "clamped past end", columnID: "todo", index: 42, expected: []string{review.ID}},
		{name: "clamped below zero", columnID: review.ID, index: -1, expected: []string{review.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := e.MoveColumn(b, tt.columnID, tt.index)
			require.NoError(t, err)

			ordered := next.OrderedColumns()
			for i, col := range ordered {
				assert.Equal(t, i, col.Position)
			}
			for i, id := range tt.expected {
				assert.Equal(t, id, ordered[i].ID)
			}
			assert.NoError(t, Check(next))
		})
	}
}

func TestMoveColumn_NoOp(t *testing.T) {
	e := newTestEngine()
	b := twoColumnBoard()

	next, err := e.MoveColumn(b, "doing", 1)
	require.NoError(t, err)
	assert.Same(t, b, next)

	next, err = e.MoveColumn(b, "doing", 0)
	require.NoError(t, err)
	assert.NotSame(t, b, next)
	assert.Equal(t, "doing", next.OrderedColumns()[0].ID)
	assert.Equal(t, 1, b.Column("doing").Position)

	_, err = e.MoveColumn(b, "ghost", 0)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOperationSequenceKeepsIntegrity(t *testing.T) {
	e := newTestEngine()
	b := e.NewDefaultBoard("p1", "Ops")

	b, todo := addCards(t, e, b, TodoColumnID, "a", "b", "c")
	b, progress := addCards(t, e, b, InProgressColumnID, "d")

	steps := []func(*models.Board) (*models.Board, error){
		func(b *models.Board) (*models.Board, error) { return e.MoveCard(b, todo[0], InProgressColumnID, 0) },
		func(b *models.Board) (*models.Board, error) { return e.MoveCard(b, progress[0], CompletedColumnID, 3) },
		func(b *models.Board) (*models.Board, error) { return e.DeleteCard(b, todo[1]) },
		func(b *models.Board) (*models.Board, error) { return e.MoveColumn(b, CompletedColumnID, 0) },
		func(b *models.Board) (*models.Board, error) {
			col := TodoColumnID
			return e.UpdateCard(b, progress[0], CardPatch{ColumnID: &col})
		},
		func(b *models.Board) (*models.Board, error) { return e.DeleteColumn(b, InProgressColumnID) },
		func(b *models.Board) (*models.Board, error) { return e.MoveCard(b, todo[2], CompletedColumnID, 1) },
	}

	for i, step := range steps {
		next, err := step(b)
		require.NoError(t, err, "step %d", i)
		require.NoError(t, Check(next), "step %d", i)
		b = next
	}

	assert.NotContains(t, b.Cards, todo[0], "card moved into the deleted column is gone")
	assert.Equal(t, CompletedColumnID, b.Cards[todo[2]].ColumnID)
}

func TestCheck_DetectsCorruption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *models.Board)
	}{
		{name: "dangling card id", mutate: func(b *models.Board) {
			b.Columns[0].CardIDs = append(b.Columns[0].CardIDs, "ghost")
		}},
		{name: "card in two columns", mutate: func(b *models.Board) {
			b.Columns[1].CardIDs = append(b.Columns[1].CardIDs, b.Columns[0].CardIDs[0])
		}},
		{name: "wrong back reference", mutate: func(b *models.Board) {
			b.Cards[b.Columns[0].CardIDs[0]].ColumnID = "doing"
		}},
		{name: "orphan card", mutate: func(b *models.Board) {
			b.Cards["orphan"] = &models.Card{ID: "orphan", ColumnID: "todo"}
		}},
		{name: "duplicate column", mutate: func(b *models.Board) {
			b.Columns = append(b.Columns, b.Columns[0])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := addCards(t, newTestEngine(), twoColumnBoard(), "todo", "a")
			tt.mutate(b)
			assert.ErrorIs(t, Check(b), ErrCorruptBoard)
		})
	}
}
