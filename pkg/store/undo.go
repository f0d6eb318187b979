package store

import (
	"github.com/ritzau/taskboard/pkg/history"
	"github.com/ritzau/taskboard/pkg/logging"
)

// Undo restores the state before the most recent structural change
func (s *Store) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Undo(s.current())
	if !ok {
		noop("undo")
		return
	}
	s.restore(prev)
	s.changed("undo", true)
}

// Redo reapplies the most recently undone change
func (s *Store) Redo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.history.Redo(s.current())
	if !ok {
		noop("redo")
		return
	}
	s.restore(next)
	s.changed("redo", true)
}

// restore installs a history slice and re-derives the state that is not part of it:
// the collapsed set follows the group flags, departments follow the active preset
// and references to nodes or edges that no longer exist are cleared.
func (s *Store) restore(slice history.Slice) {
	s.nodes = slice.Nodes
	s.edges = slice.Edges
	s.dragStash = nil
	s.dragMoved = false

	s.collapsed = make(map[string]bool)
	for _, node := range s.nodes {
		if node.IsGroup() && node.Group.Collapsed {
			s.collapsed[node.ID] = true
		}
	}

	s.reconcileDepartments()

	if s.selectedNode != "" && s.nodeIndex(s.selectedNode) < 0 {
		s.selectedNode = ""
	}
	if s.editingNode != "" && s.nodeIndex(s.editingNode) < 0 {
		s.editingNode = ""
	}
	if s.selectedEdge != "" && s.edgeIndex(s.selectedEdge) < 0 {
		s.selectedEdge = ""
	}

	logging.Debug("restored history slice",
		"nodes", len(s.nodes), "edges", len(s.edges),
		"past", s.history.PastLen(), "future", s.history.FutureLen())
}
