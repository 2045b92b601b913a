// Package history keeps the undo/redo stacks of whole-board snapshots.
package history

import (
	"kanban/models"
	"sync"
	"time"
)

// MaxEntries is the default capacity of the undo stack.
const MaxEntries = 50

type entry struct {
	board *models.Board
	label string
	at    time.Time
}

// Manager holds the past and future stacks of one board.
//
// past runs oldest to newest and its last entry is the current state.
// future runs from the next redo to the latest one. Snapshots are copied on
// the way in and on the way out, so callers never share memory with the
// stacks.
type Manager struct {
	mu     sync.Mutex
	past   []entry
	future []entry
	limit  int
	now    func() time.Time
}

type Option func(*Manager)

// WithLimit caps the undo stack. Values below 2 are raised to 2 so that one
// step can always be undone.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n < 2 {
			n = 2
		}
		m.limit = n
	}
}

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{
		limit: MaxEntries,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push records b as the newest state and drops the redo chain. The oldest
// entry is evicted once the stack is full.
func (m *Manager) Push(b *models.Board, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.past = append(m.past, entry{board: b.Clone(), label: label, at: m.now()})
	if over := len(m.past) - m.limit; over > 0 {
		m.past = append([]entry(nil), m.past[over:]...)
	}
	m.future = nil
}

// Undo steps back one state and returns the board to restore. The first
// recorded state is never undone, so ok is false while past holds one entry
// or none.
func (m *Manager) Undo() (board *models.Board, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.past) <= 1 {
		return nil, false
	}

	last := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append([]entry{last}, m.future...)

	return m.past[len(m.past)-1].board.Clone(), true
}

// Redo re-applies the state most recently undone.
func (m *Manager) Redo() (board *models.Board, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.future) == 0 {
		return nil, false
	}

	next := m.future[0]
	m.future = m.future[1:]
	m.past = append(m.past, next)

	return next.board.Clone(), true
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past) > 1
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.future) > 0
}

// LastAction is the label of the current state, or "" when nothing was pushed.
func (m *Manager) LastAction() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.past) == 0 {
		return ""
	}
	return m.past[len(m.past)-1].label
}

// Current returns a copy of the newest recorded state.
func (m *Manager) Current() (*models.Board, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.past) == 0 {
		return nil, false
	}
	return m.past[len(m.past)-1].board.Clone(), true
}

// Len reports the sizes of both stacks.
func (m *Manager) Len() (past, future int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past), len(m.future)
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.past = nil
	m.future = nil
}

// Summary describes both stacks without exposing the snapshots.
func (m *Manager) Summary() models.HistoryResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	resp := models.HistoryResponse{
		Past:    describe(m.past),
		Future:  describe(m.future),
		CanUndo: len(m.past) > 1,
		CanRedo: len(m.future) > 0,
	}
	if len(m.past) > 0 {
		resp.LastAction = m.past[len(m.past)-1].label
	}
	return resp
}

func describe(entries []entry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.HistoryEntry{Label: e.label, Timestamp: e.at.UnixMilli()})
	}
	return out
}
