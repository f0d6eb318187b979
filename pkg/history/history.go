// Package history implements a bounded, linear undo/redo timeline over board snapshots.
package history

import "github.com/ritzau/taskboard/pkg/model"

// DefaultLimit is the maximum number of slices kept on each stack
const DefaultLimit = 50

// Slice is a point-in-time copy of the structural board state
type Slice struct {
	Nodes []model.Node `json:"nodes"`
	Edges []model.Edge `json:"edges"`
}

// NewSlice deep-copies nodes and edges into a slice
func NewSlice(nodes []model.Node, edges []model.Edge) Slice {
	return Slice{
		Nodes: model.CloneNodes(nodes),
		Edges: model.CloneEdges(edges),
	}
}

// Clone returns a deep copy of the slice
func (s Slice) Clone() Slice {
	return NewSlice(s.Nodes, s.Edges)
}

// Manager keeps the past and future stacks. The top of each stack is its last element.
// Manager is not safe for concurrent use; the store serialises access.
type Manager struct {
	past   []Slice
	future []Slice
	limit  int
}

// New creates a manager keeping at most limit slices per stack.
// A non-positive limit falls back to DefaultLimit.
func New(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Record pushes the pre-mutation state onto the past stack, evicting the oldest
// slice beyond the limit, and discards the redo branch.
func (m *Manager) Record(current Slice) {
	m.past = push(m.past, current.Clone(), m.limit)
	m.future = nil
}

// Undo pops the most recent past slice and pushes current onto the future stack.
// It returns false and leaves both stacks untouched when there is nothing to undo.
func (m *Manager) Undo(current Slice) (Slice, bool) {
	if len(m.past) == 0 {
		return Slice{}, false
	}

	prev := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = push(m.future, current.Clone(), m.limit)

	return prev, true
}

// Redo pops the most recently undone slice and pushes current onto the past stack.
// It returns false when there is nothing to redo.
func (m *Manager) Redo(current Slice) (Slice, bool) {
	if len(m.future) == 0 {
		return Slice{}, false
	}

	next := m.future[len(m.future)-1]
	m.future = m.future[:len(m.future)-1]
	m.past = push(m.past, current.Clone(), m.limit)

	return next, true
}

// CanUndo reports whether Undo would change state
func (m *Manager) CanUndo() bool {
	return len(m.past) > 0
}

// CanRedo reports whether Redo would change state
func (m *Manager) CanRedo() bool {
	return len(m.future) > 0
}

// PastLen returns the number of undoable steps
func (m *Manager) PastLen() int {
	return len(m.past)
}

// FutureLen returns the number of redoable steps
func (m *Manager) FutureLen() int {
	return len(m.future)
}

func push(stack []Slice, s Slice, limit int) []Slice {
	stack = append(stack, s)
	if len(stack) > limit {
		// Copy so the evicted prefix can be collected
		stack = append([]Slice(nil), stack[len(stack)-limit:]...)
	}
	return stack
}
