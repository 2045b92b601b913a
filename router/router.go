package router

import (
	"errors"
	"fmt"
	"kanban/engine"
	"kanban/models"
	"strings"
)

// Outcome reports what an applied intent did. Board is nil when the board
// did not change, either because the intent never mutates or because the
// operation was a no-op.
type Outcome struct {
	Type    Type
	Board   *models.Board
	Label   string
	Card    *models.Card
	Column  *models.Column
	Message string
}

// Changed reports whether the caller has a new snapshot to save.
func (o Outcome) Changed() bool {
	return o.Board != nil
}

type Router struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Router {
	return &Router{engine: e}
}

// Apply validates one intent against b and runs the matching engine
// operation. Missing required fields fail with ErrClarificationNeeded and
// text fields holding another JSON type fail with ErrInvalidInput, both
// before the engine is called. Non-mutating intents return an outcome with
// a nil Board and never reach the engine.
func (r *Router) Apply(b *models.Board, in Intent) (Outcome, error) {
	if in.Type.Mutates() {
		if err := in.checkText(); err != nil {
			return Outcome{}, fmt.Errorf("%s: %w", in.Type, err)
		}
	}

	switch in.Type {
	case CreateCard:
		return r.createCard(b, in)
	case UpdateCard:
		return r.updateCard(b, in)
	case DeleteCard:
		return r.deleteCard(b, in)
	case MoveCard:
		return r.moveCard(b, in)
	case CreateColumn:
		return r.createColumn(b, in)
	case UpdateColumn:
		return r.updateColumn(b, in)
	case DeleteColumn:
		return r.deleteColumn(b, in)
	case BoardSummary:
		return Outcome{Type: in.Type, Message: Summarize(b)}, nil
	case AskClarification:
		return Outcome{Type: in.Type, Message: in.str("question", "message")}, nil
	default:
		return Outcome{Type: in.Type, Message: in.str("message")}, nil
	}
}

func (r *Router) createCard(b *models.Board, in Intent) (Outcome, error) {
	title := in.str("title")
	if title == "" {
		return Outcome{}, clarify(in.Type, "title")
	}
	priority, err := models.ParsePriority(in.str("priority"))
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", in.Type, err)
	}

	col, err := engine.ResolveColumn(b, columnRef(in), true)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", in.Type, err)
	}

	next, card, err := r.engine.AddCard(b, col.ID, title, in.str("description"), priority)
	if err != nil {
		return Outcome{}, err
	}
	if tags, ok := in.tags("tags"); ok && len(tags) > 0 {
		// Applied to the unpublished snapshot, so the caller still records
		// a single history entry.
		next, err = r.engine.UpdateCard(next, card.ID, engine.CardPatch{Tags: &tags})
		if err != nil {
			return Outcome{}, err
		}
		card = next.Cards[card.ID]
	}

	return Outcome{
		Type:    in.Type,
		Board:   next,
		Label:   fmt.Sprintf("Create card %q", card.Title),
		Card:    card,
		Message: fmt.Sprintf("Created card %q in %s", card.Title, col.Title),
	}, nil
}

func (r *Router) updateCard(b *models.Board, in Intent) (Outcome, error) {
	card, err := findCard(b, in, "cardTitle")
	if err != nil {
		return Outcome{}, err
	}

	patch := engine.CardPatch{}
	if title, ok := in.optStr("title"); ok {
		patch.Title = &title
	}
	if desc, ok := in.optStr("description"); ok {
		patch.Description = &desc
	}
	if p, ok := in.optStr("priority"); ok {
		priority, err := models.ParsePriority(p)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s: %w", in.Type, err)
		}
		patch.Priority = &priority
	}
	if tags, ok := in.tags("tags"); ok {
		patch.Tags = &tags
	}
	if ref := columnRef(in); ref != (engine.ColumnRef{}) {
		col, err := engine.ResolveColumn(b, ref, false)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s: %w", in.Type, err)
		}
		patch.ColumnID = &col.ID
	}
	if patch.IsZero() {
		return Outcome{}, clarify(in.Type, "title", "description", "priority", "tags", "columnId")
	}

	next, err := r.engine.UpdateCard(b, card.ID, patch)
	if err != nil {
		return Outcome{}, err
	}
	updated := next.Cards[card.ID]

	return Outcome{
		Type:    in.Type,
		Board:   next,
		Label:   fmt.Sprintf("Update card %q", updated.Title),
		Card:    updated,
		Message: fmt.Sprintf("Updated card %q", updated.Title),
	}, nil
}

func (r *Router) deleteCard(b *models.Board, in Intent) (Outcome, error) {
	card, err := findCard(b, in, "cardTitle", "title")
	if err != nil {
		return Outcome{}, err
	}

	next, err := r.engine.DeleteCard(b, card.ID)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Type:    in.Type,
		Board:   next,
		Label:   fmt.Sprintf("Delete card %q", card.Title),
		Card:    card.Clone(),
		Message: fmt.Sprintf("Deleted card %q", card.Title),
	}, nil
}

func (r *Router) moveCard(b *models.Board, in Intent) (Outcome, error) {
	card, err := findCard(b, in, "cardTitle", "title")
	if err != nil {
		return Outcome{}, err
	}
	ref := columnRef(in)
	if ref == (engine.ColumnRef{}) {
		return Outcome{}, clarify(in.Type, "columnId", "columnName")
	}

	col, err := engine.ResolveColumn(b, ref, true)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", in.Type, err)
	}

	idx, ok := in.index("index", "position")
	if !ok {
		idx = len(col.CardIDs)
	}

	next, err := r.engine.MoveCard(b, card.ID, col.ID, idx)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Type:    in.Type,
		Card:    card.Clone(),
		Message: fmt.Sprintf("Moved card %q to %s", card.Title, col.Title),
	}
	if next != b {
		out.Board = next
		out.Card = next.Cards[card.ID]
		out.Label = fmt.Sprintf("Move card %q to %s", card.Title, col.Title)
	}
	return out, nil
}

func (r *Router) createColumn(b *models.Board, in Intent) (Outcome, error) {
	// Models put the new name under any of these keys.
	title := in.str("title", "columnName", "name", "newColumnName")
	if title == "" {
		return Outcome{}, clarify(in.Type, "title")
	}

	next, col, err := r.engine.AddColumn(b, title)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Type:    in.Type,
		Board:   next,
		Label:   fmt.Sprintf("Create column %q", col.Title),
		Column:  col,
		Message: fmt.Sprintf("Created column %q", col.Title),
	}, nil
}

func (r *Router) updateColumn(b *models.Board, in Intent) (Outcome, error) {
	ref := columnRef(in)
	if ref == (engine.ColumnRef{}) {
		return Outcome{}, clarify(in.Type, "columnId", "columnName")
	}

	patch := engine.ColumnPatch{}
	if title, ok := in.optStr("newColumnName"); ok {
		patch.Title = &title
	} else if title, ok := in.optStr("title"); ok {
		patch.Title = &title
	}
	if color, ok := in.optStr("color"); ok {
		patch.Color = &color
	}
	if collapsed, ok := in.Data["isCollapsed"].(bool); ok {
		patch.IsCollapsed = &collapsed
	}
	if patch.IsZero() {
		return Outcome{}, clarify(in.Type, "newColumnName")
	}

	col, err := resolveExisting(b, in.Type, ref)
	if err != nil {
		return Outcome{}, err
	}

	next, err := r.engine.UpdateColumn(b, col.ID, patch)
	if err != nil {
		return Outcome{}, err
	}
	updated := next.Column(col.ID)

	return Outcome{
		Type:    in.Type,
		Board:   next,
		Label:   fmt.Sprintf("Update column %q", updated.Title),
		Column:  updated,
		Message: fmt.Sprintf("Updated column %q", updated.Title),
	}, nil
}

func (r *Router) deleteColumn(b *models.Board, in Intent) (Outcome, error) {
	ref := columnRef(in)
	if ref == (engine.ColumnRef{}) {
		return Outcome{}, clarify(in.Type, "columnId", "columnName")
	}

	col, err := resolveExisting(b, in.Type, ref)
	if err != nil {
		return Outcome{}, err
	}

	next, err := r.engine.DeleteColumn(b, col.ID)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Type:    in.Type,
		Board:   next,
		Label:   fmt.Sprintf("Delete column %q", col.Title),
		Column:  &col,
		Message: fmt.Sprintf("Deleted column %q and %d cards", col.Title, len(col.CardIDs)),
	}, nil
}

// resolveExisting resolves a column without the first-column fallback. A
// name that matches nothing is something to ask about, not a reason to
// rename or delete an arbitrary column.
func resolveExisting(b *models.Board, t Type, ref engine.ColumnRef) (models.Column, error) {
	col, err := engine.ResolveColumn(b, ref, false)
	if err == nil {
		return col, nil
	}
	if errors.Is(err, models.ErrNoTarget) || (ref.ID != "" && ref.Name == "") {
		return models.Column{}, fmt.Errorf("%s: %w", t, err)
	}
	return models.Column{}, fmt.Errorf("%s: no column matches %q: %w", t, ref.String(), models.ErrClarificationNeeded)
}

func columnRef(in Intent) engine.ColumnRef {
	return engine.ColumnRef{ID: in.str("columnId"), Name: in.str("columnName")}
}

// findCard looks the card up by id, then by exact title under titleKeys.
func findCard(b *models.Board, in Intent, titleKeys ...string) (*models.Card, error) {
	id := in.str("cardId")
	title := in.str(titleKeys...)

	if id != "" {
		if card, ok := b.Cards[id]; ok {
			return card, nil
		}
	}
	if title != "" {
		if card, ok := engine.FindCardByTitle(b, title); ok {
			return card, nil
		}
	}

	switch {
	case id != "":
		return nil, fmt.Errorf("%s: card %s: %w", in.Type, id, models.ErrNotFound)
	case title != "":
		return nil, fmt.Errorf("%s: card %q: %w", in.Type, title, models.ErrNotFound)
	default:
		return nil, clarify(in.Type, "cardId")
	}
}

func clarify(t Type, fields ...string) error {
	return fmt.Errorf("%s: missing %s: %w", t, strings.Join(fields, " or "), models.ErrClarificationNeeded)
}
