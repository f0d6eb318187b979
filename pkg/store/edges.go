package store

import (
	"slices"

	"github.com/ritzau/taskboard/pkg/lens"
	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/model"
)

// AddEdge connects two nodes with a new "blocks" edge and returns its ID.
// Self-loops, exact duplicates and missing endpoints are ignored and return "".
func (s *Store) AddEdge(conn model.Connection) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case conn.Source == conn.Target:
		noop("addEdge", "source", conn.Source, "reason", "self-loop")
		return ""
	case s.nodeIndex(conn.Source) < 0 || s.nodeIndex(conn.Target) < 0:
		noop("addEdge", "source", conn.Source, "target", conn.Target, "reason", "missing endpoint")
		return ""
	case slices.ContainsFunc(s.edges, func(e model.Edge) bool { return conn.Matches(&e) }):
		noop("addEdge", "source", conn.Source, "target", conn.Target, "reason", "duplicate")
		return ""
	}

	edge := model.Edge{
		ID:           s.newID(),
		Source:       conn.Source,
		Target:       conn.Target,
		SourceHandle: conn.SourceHandle,
		TargetHandle: conn.TargetHandle,
		Type:         model.DefaultEdgeType,
	}

	s.record()
	s.edges = append(slices.Clip(s.edges), edge)
	logging.Debug("added edge", "id", edge.ID, "source", edge.Source, "target", edge.Target)
	s.changed("addEdge", true)
	return edge.ID
}

// RemoveEdge deletes a stored edge. Synthetic and unknown IDs are ignored.
func (s *Store) RemoveEdge(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeEdgeLocked(id) {
		s.changed("removeEdge", true)
	}
}

func (s *Store) removeEdgeLocked(id string) bool {
	i := s.storedEdgeIndex("removeEdge", id)
	if i < 0 {
		return false
	}

	s.record()
	s.edges = slices.Delete(slices.Clone(s.edges), i, i+1)
	if s.selectedEdge == id {
		s.selectedEdge = ""
	}
	logging.Debug("removed edge", "id", id)
	return true
}

// CycleEdgeType advances an edge one step through blocks, relates, triggers
func (s *Store) CycleEdgeType(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.storedEdgeIndex("cycleEdgeType", id)
	if i < 0 {
		return
	}

	edge := s.edges[i]
	edge.Type = edge.Type.Next()

	s.record()
	s.replaceEdge(i, edge)
	logging.Debug("cycled edge type", "id", id, "type", edge.Type)
	s.changed("cycleEdgeType", true)
}

// SetEdgeType sets an edge's type directly. Invalid types are ignored.
func (s *Store) SetEdgeType(id string, t model.EdgeType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !t.Valid() {
		noop("setEdgeType", "id", id, "type", t)
		return
	}
	i := s.storedEdgeIndex("setEdgeType", id)
	if i < 0 || s.edges[i].Type == t {
		return
	}

	edge := s.edges[i]
	edge.Type = t

	s.record()
	s.replaceEdge(i, edge)
	logging.Debug("set edge type", "id", id, "type", t)
	s.changed("setEdgeType", true)
}

// SetSelectedEdge selects an edge. An empty id clears the selection.
// Synthetic edges cannot be selected.
func (s *Store) SetSelectedEdge(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.storedEdgeIndex("setSelectedEdge", id) < 0 {
		return
	}
	if s.selectedEdge == id {
		return
	}
	s.selectedEdge = id
	s.changed("setSelectedEdge", false)
}

// storedEdgeIndex finds a real edge, logging why the operation is ignored otherwise
func (s *Store) storedEdgeIndex(op, id string) int {
	if lens.IsSyntheticID(id) {
		noop(op, "id", id, "reason", "synthetic")
		return -1
	}
	i := s.edgeIndex(id)
	if i < 0 {
		noop(op, "id", id)
	}
	return i
}
