package service

import (
	"context"
	"errors"
	"fmt"
	"kanban/engine"
	"kanban/history"
	"kanban/models"
	"kanban/router"
	"log/slog"
	"sync"
	"time"
)

// MaxTaskPageSize caps the limit of a task listing.
const MaxTaskPageSize = 500

// Boards runs board operations for every project. Each project has its own
// lock and its own undo history; history lives in memory only.
type Boards struct {
	store        Store
	cache        Cache
	engine       *engine.Engine
	router       *router.Router
	historyLimit int

	mu        sync.Mutex
	locks     map[string]*sync.Mutex
	histories map[string]*history.Manager
}

type BoardsOption func(*Boards)

// WithCache puts a snapshot cache in front of the store. A nil cache is ignored.
func WithCache(c Cache) BoardsOption {
	return func(s *Boards) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithEngine(e *engine.Engine) BoardsOption {
	return func(s *Boards) {
		s.engine = e
	}
}

// WithHistoryLimit sets the undo depth of every project.
func WithHistoryLimit(n int) BoardsOption {
	return func(s *Boards) {
		s.historyLimit = n
	}
}

func NewBoards(store Store, opts ...BoardsOption) *Boards {
	s := &Boards{
		store:        store,
		cache:        nopCache{},
		engine:       engine.New(),
		historyLimit: history.MaxEntries,
		locks:        map[string]*sync.Mutex{},
		histories:    map[string]*history.Manager{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = router.New(s.engine)
	return s
}

// IntentResult reports the outcome of one applied intent.
type IntentResult struct {
	Type    router.Type    `json:"type"`
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Code    string         `json:"code,omitempty"`
	Card    *models.Card   `json:"card,omitempty"`
	Column  *models.Column `json:"column,omitempty"`
}

// Board returns the project's board, creating the default board on first
// access.
func (s *Boards) Board(ctx context.Context, projectID string) (*models.Board, error) {
	unlock := s.lock(projectID)
	defer unlock()

	return s.load(ctx, projectID)
}

func (s *Boards) GetCard(ctx context.Context, projectID, cardID string) (*models.Card, error) {
	b, err := s.Board(ctx, projectID)
	if err != nil {
		return nil, err
	}
	card, ok := b.Cards[cardID]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", cardID, models.ErrNotFound)
	}
	return card, nil
}

// ListCards filters the board's cards and returns one page of them in
// display order. A limit of zero returns every match.
func (s *Boards) ListCards(ctx context.Context, projectID string, params models.TaskQueryParams) (*models.TasksResponse, error) {
	filter := engine.CardFilter{Query: params.Search, ColumnID: params.ColumnID}
	if params.Priority != "" {
		p, err := models.ParsePriority(params.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = p
	}

	b, err := s.Board(ctx, projectID)
	if err != nil {
		return nil, err
	}

	cards := engine.FilterCards(b, filter)
	total := len(cards)

	limit := total
	if params.Limit > 0 {
		limit = validateLimit(params.Limit, total, MaxTaskPageSize)
	}
	offset := validateOffset(params.Offset)

	start := min(offset, total)
	end := min(start+limit, total)

	return &models.TasksResponse{
		Cards:   cards[start:end],
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: end < total,
	}, nil
}

// CreateCard places the card by column id, then column name, then the first
// column. Priority is set in the same operation.
func (s *Boards) CreateCard(ctx context.Context, projectID string, req models.CreateTaskRequest) (*models.Card, error) {
	data := map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"columnId":    req.ColumnID,
		"columnName":  req.ColumnName,
		"priority":    req.Priority,
	}
	if len(req.Tags) > 0 {
		tags := make([]any, len(req.Tags))
		for i, tag := range req.Tags {
			tags[i] = tag
		}
		data["tags"] = tags
	}

	var card *models.Card
	_, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		out, err := s.router.Apply(b, router.Intent{Type: router.CreateCard, Data: data})
		if err != nil {
			return nil, "", err
		}
		card = out.Card
		return out.Board, out.Label, nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Boards) UpdateCard(ctx context.Context, projectID, cardID string, req models.UpdateTaskRequest) (*models.Card, error) {
	patch := engine.CardPatch{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		Tags:        req.Tags,
	}
	if req.Priority != nil {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &p
	}

	next, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		next, err := s.engine.UpdateCard(b, cardID, patch)
		if err != nil {
			return nil, "", err
		}
		return next, fmt.Sprintf("Update card %q", next.Cards[cardID].Title), nil
	})
	if err != nil {
		return nil, err
	}
	return next.Cards[cardID], nil
}

func (s *Boards) DeleteCard(ctx context.Context, projectID, cardID string) error {
	_, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		card, ok := b.Cards[cardID]
		if !ok {
			return nil, "", fmt.Errorf("delete card %s: %w", cardID, models.ErrNotFound)
		}
		next, err := s.engine.DeleteCard(b, cardID)
		return next, fmt.Sprintf("Delete card %q", card.Title), err
	})
	return err
}

// MoveCard moves a card to req's column, or within its own column when no
// column is named. A nil index appends.
func (s *Boards) MoveCard(ctx context.Context, projectID, cardID string, req models.MoveTaskRequest) (*models.Card, error) {
	next, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		card, ok := b.Cards[cardID]
		if !ok {
			return nil, "", fmt.Errorf("move card %s: %w", cardID, models.ErrNotFound)
		}

		target := b.Column(card.ColumnID)
		if req.ColumnID != "" || req.ColumnName != "" {
			col, err := engine.ResolveColumn(b, engine.ColumnRef{ID: req.ColumnID, Name: req.ColumnName}, false)
			if err != nil {
				return nil, "", fmt.Errorf("move card %s: %w", cardID, err)
			}
			target = &col
		}
		if target == nil {
			return nil, "", fmt.Errorf("move card %s: column %s: %w", cardID, card.ColumnID, models.ErrNotFound)
		}

		idx := len(target.CardIDs)
		if req.Index != nil {
			idx = *req.Index
		}

		next, err := s.engine.MoveCard(b, cardID, target.ID, idx)
		return next, fmt.Sprintf("Move card %q to %s", card.Title, target.Title), err
	})
	if err != nil {
		return nil, err
	}
	return next.Cards[cardID], nil
}

// Columns returns the board's columns in display order.
func (s *Boards) Columns(ctx context.Context, projectID string) ([]models.Column, error) {
	b, err := s.Board(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return b.OrderedColumns(), nil
}

func (s *Boards) AddColumn(ctx context.Context, projectID string, req models.CreateColumnRequest) (*models.Column, error) {
	var id string
	next, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		next, col, err := s.engine.AddColumn(b, req.Title)
		if err != nil {
			return nil, "", err
		}
		id = col.ID
		if req.Color != "" {
			color := req.Color
			if next, err = s.engine.UpdateColumn(next, id, engine.ColumnPatch{Color: &color}); err != nil {
				return nil, "", err
			}
		}
		return next, fmt.Sprintf("Create column %q", col.Title), nil
	})
	if err != nil {
		return nil, err
	}
	return next.Column(id), nil
}

func (s *Boards) UpdateColumn(ctx context.Context, projectID, columnID string, req models.UpdateColumnRequest) (*models.Column, error) {
	patch := engine.ColumnPatch{Title: req.Title, Color: req.Color, IsCollapsed: req.IsCollapsed}

	next, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		next, err := s.engine.UpdateColumn(b, columnID, patch)
		if err != nil {
			return nil, "", err
		}
		return next, fmt.Sprintf("Update column %q", next.Column(columnID).Title), nil
	})
	if err != nil {
		return nil, err
	}
	return next.Column(columnID), nil
}

// DeleteColumn removes the column and every card in it.
func (s *Boards) DeleteColumn(ctx context.Context, projectID, columnID string) error {
	_, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		col := b.Column(columnID)
		if col == nil {
			return nil, "", fmt.Errorf("delete column %s: %w", columnID, models.ErrNotFound)
		}
		next, err := s.engine.DeleteColumn(b, columnID)
		return next, fmt.Sprintf("Delete column %q", col.Title), err
	})
	return err
}

// MoveColumn reorders the columns and returns them in their new order.
func (s *Boards) MoveColumn(ctx context.Context, projectID, columnID string, index int) ([]models.Column, error) {
	next, err := s.mutate(ctx, projectID, func(b *models.Board) (*models.Board, string, error) {
		col := b.Column(columnID)
		if col == nil {
			return nil, "", fmt.Errorf("move column %s: %w", columnID, models.ErrNotFound)
		}
		next, err := s.engine.MoveColumn(b, columnID, index)
		return next, fmt.Sprintf("Move column %q", col.Title), err
	})
	if err != nil {
		return nil, err
	}
	return next.OrderedColumns(), nil
}

// ApplyIntents runs the intents in order under one lock. A create_card
// carrying a cards array counts as one intent per card. An intent that
// fails is reported and skipped; the rest still run. Each change is saved
// and recorded in history on its own, so every intent can be undone
// separately. A storage error stops the batch.
func (s *Boards) ApplyIntents(ctx context.Context, projectID string, intents []router.Intent) ([]IntentResult, error) {
	unlock := s.lock(projectID)
	defer unlock()

	cur, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	results := []IntentResult{}
	for _, raw := range intents {
		for _, in := range router.Expand(raw) {
			out, err := s.router.Apply(cur, in)
			if err != nil {
				slog.Info("intent rejected", "project", projectID, "type", in.Type, "error", err)
				results = append(results, IntentResult{Type: in.Type, Error: err.Error(), Code: ErrorCode(err)})
				continue
			}

			if out.Changed() {
				if err := s.commit(ctx, out.Board); err != nil {
					return results, err
				}
				s.historyFor(projectID).Push(out.Board, out.Label)
				cur = out.Board
			}

			results = append(results, IntentResult{
				Type:    in.Type,
				Success: true,
				Message: out.Message,
				Card:    out.Card,
				Column:  out.Column,
			})
		}
	}

	return results, nil
}

// History describes the project's undo and redo stacks.
func (s *Boards) History(ctx context.Context, projectID string) (models.HistoryResponse, error) {
	unlock := s.lock(projectID)
	defer unlock()

	if _, err := s.load(ctx, projectID); err != nil {
		return models.HistoryResponse{}, err
	}
	return s.historyFor(projectID).Summary(), nil
}

// Undo restores the previous snapshot. When there is nothing to undo the
// current board is returned with applied set to false.
func (s *Boards) Undo(ctx context.Context, projectID string) (b *models.Board, applied bool, err error) {
	return s.travel(ctx, projectID, (*history.Manager).Undo, (*history.Manager).Redo)
}

// Redo re-applies the snapshot most recently undone.
func (s *Boards) Redo(ctx context.Context, projectID string) (b *models.Board, applied bool, err error) {
	return s.travel(ctx, projectID, (*history.Manager).Redo, (*history.Manager).Undo)
}

// travel moves through history and saves the restored snapshot. If the
// save fails, revert moves the history back so it still matches storage.
func (s *Boards) travel(ctx context.Context, projectID string, step, revert func(*history.Manager) (*models.Board, bool)) (*models.Board, bool, error) {
	unlock := s.lock(projectID)
	defer unlock()

	cur, err := s.load(ctx, projectID)
	if err != nil {
		return nil, false, err
	}

	h := s.historyFor(projectID)
	restored, ok := step(h)
	if !ok {
		return cur, false, nil
	}

	if err := s.commit(ctx, restored); err != nil {
		revert(h)
		return nil, false, err
	}
	return restored, true, nil
}

// Forget drops the project's lock, history and cached snapshot. It waits
// for an operation already running on the project to finish.
func (s *Boards) Forget(ctx context.Context, projectID string) {
	unlock := s.lock(projectID)

	s.mu.Lock()
	delete(s.locks, projectID)
	delete(s.histories, projectID)
	s.mu.Unlock()

	s.cache.Invalidate(ctx, projectID)
	unlock()
}

// mutate loads the board, applies op and, when op produced a new snapshot,
// saves it and records it in history under label. When op returns the
// board it was given, nothing is saved or recorded.
func (s *Boards) mutate(ctx context.Context, projectID string, op func(*models.Board) (*models.Board, string, error)) (*models.Board, error) {
	unlock := s.lock(projectID)
	defer unlock()

	cur, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	next, label, err := op(cur)
	if err != nil {
		return nil, err
	}
	if next == cur {
		return cur, nil
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.historyFor(projectID).Push(next, label)

	return next, nil
}

// load must be called with the project lock held.
func (s *Boards) load(ctx context.Context, projectID string) (*models.Board, error) {
	b, ok := s.cache.GetBoard(ctx, projectID)
	if !ok {
		var err error
		b, err = s.store.GetBoard(ctx, projectID)
		switch {
		case errors.Is(err, models.ErrNotFound):
			if b, err = s.createDefault(ctx, projectID); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		}

		if err := engine.Check(b); err != nil {
			return nil, fmt.Errorf("%w: board of project %s: %w", models.ErrStorageFailure, projectID, err)
		}
		s.cache.SetBoard(ctx, b)
	}

	h := s.historyFor(projectID)
	if past, _ := h.Len(); past == 0 {
		h.Push(b, "Initial state")
	}

	return b, nil
}

func (s *Boards) createDefault(ctx context.Context, projectID string) (*models.Board, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	b := s.engine.NewDefaultBoard(projectID, p.Name)
	if err := s.store.SaveBoard(ctx, b); err != nil {
		return nil, err
	}

	slog.Info("created default board", "project", projectID)
	return b, nil
}

func (s *Boards) commit(ctx context.Context, b *models.Board) error {
	start := time.Now()

	if err := s.store.SaveBoard(ctx, b); err != nil {
		s.cache.Invalidate(ctx, b.ProjectID)
		slog.Error("failed to save board", "project", b.ProjectID, "error", err)
		return err
	}
	s.cache.SetBoard(ctx, b)

	slog.Debug("board saved", "project", b.ProjectID, "duration", time.Since(start))
	return nil
}

// lock serializes work on one project. A waiter that wakes up holding a
// mutex Forget has since dropped lets go and takes the current one.
func (s *Boards) lock(projectID string) func() {
	for {
		s.mu.Lock()
		l, ok := s.locks[projectID]
		if !ok {
			l = &sync.Mutex{}
			s.locks[projectID] = l
		}
		s.mu.Unlock()

		l.Lock()

		s.mu.Lock()
		current := s.locks[projectID] == l
		s.mu.Unlock()
		if current {
			return l.Unlock
		}
		l.Unlock()
	}
}

func (s *Boards) historyFor(projectID string) *history.Manager {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.histories[projectID]
	if !ok {
		h = history.New(history.WithLimit(s.historyLimit))
		s.histories[projectID] = h
	}
	return h
}

func validateLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func validateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
