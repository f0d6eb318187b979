package store

import (
	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/model"
)

// NodeChangeType names a change reported by the rendering surface
type NodeChangeType string

const (
	NodeChangePosition   NodeChangeType = "position"
	NodeChangeDimensions NodeChangeType = "dimensions"
	NodeChangeSelect     NodeChangeType = "select"
	NodeChangeRemove     NodeChangeType = "remove"
)

// NodeChange is one entry of a bulk node update from the rendering surface.
// Dragging is true while a drag or resize gesture is still in progress.
type NodeChange struct {
	Type       NodeChangeType    `json:"type"`
	ID         string            `json:"id"`
	Position   *model.Position   `json:"position,omitempty"`
	Dimensions *model.Dimensions `json:"dimensions,omitempty"`
	Dragging   bool              `json:"dragging,omitempty"`
	Selected   bool              `json:"selected,omitempty"`
}

// EdgeChangeType names an edge change reported by the rendering surface
type EdgeChangeType string

const (
	EdgeChangeSelect EdgeChangeType = "select"
	EdgeChangeRemove EdgeChangeType = "remove"
)

// EdgeChange is one entry of a bulk edge update from the rendering surface
type EdgeChange struct {
	Type     EdgeChangeType `json:"type"`
	ID       string         `json:"id"`
	Selected bool           `json:"selected,omitempty"`
}

// ApplyNodeChanges applies a batch of changes from the rendering surface.
//
// Positions and dimensions are applied as they arrive without touching history. The
// state before the first in-progress change of a gesture is kept aside and recorded
// once the gesture settles, so a whole drag is a single undo step. A settled change
// outside any gesture is recorded on its own.
func (s *Store) ApplyNodeChanges(changes []NodeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved, structural, selection := false, false, false

	for _, change := range changes {
		switch change.Type {
		case NodeChangePosition, NodeChangeDimensions:
			applied, recorded := s.applyGeometry(change)
			moved = moved || applied
			structural = structural || recorded
		case NodeChangeSelect:
			selection = s.applySelection(change) || selection
		case NodeChangeRemove:
			if s.deleteNodeLocked(change.ID) {
				structural = true
			}
		default:
			noop("applyNodeChanges", "type", change.Type, "id", change.ID)
		}
	}

	if moved || structural || selection {
		s.changed("applyNodeChanges", structural)
	}
}

// applyGeometry applies a position or dimensions change. It reports whether the node
// changed and whether a history entry was recorded.
func (s *Store) applyGeometry(change NodeChange) (applied, recorded bool) {
	i := s.nodeIndex(change.ID)
	if i < 0 {
		noop("applyNodeChanges", "type", change.Type, "id", change.ID)
		return false, false
	}

	node := s.nodes[i].Clone()
	switch {
	case change.Type == NodeChangePosition && change.Position != nil:
		applied = node.Position != *change.Position
		node.Position = *change.Position
	case change.Type == NodeChangeDimensions && change.Dimensions != nil && node.IsGroup():
		applied = node.Group.Dimensions != *change.Dimensions
		node.Group.Dimensions = *change.Dimensions
	}

	if change.Dragging {
		if s.dragStash == nil {
			stash := s.current().Clone()
			s.dragStash = &stash
			logging.Trace("gesture started", "id", change.ID)
		}
		s.dragMoved = s.dragMoved || applied
	} else if s.dragStash != nil {
		// Gesture settled: one history entry for the whole drag, none if nothing moved
		stash := *s.dragStash
		moved := s.dragMoved || applied
		s.dragStash = nil
		s.dragMoved = false
		if moved {
			s.history.Record(stash)
			recorded = true
			logging.Debug("gesture settled", "id", change.ID)
		} else {
			noop("applyNodeChanges", "id", change.ID, "reason", "gesture without movement")
		}
	} else if applied {
		s.record()
		recorded = true
	}

	if applied {
		s.replaceNode(i, node)
	}
	return applied, recorded
}

func (s *Store) applySelection(change NodeChange) bool {
	switch {
	case change.Selected && s.nodeIndex(change.ID) >= 0 && s.selectedNode != change.ID:
		s.selectedNode = change.ID
		return true
	case !change.Selected && s.selectedNode == change.ID && change.ID != "":
		s.selectedNode = ""
		return true
	}
	return false
}

// ApplyEdgeChanges applies a batch of edge changes from the rendering surface.
// Removals go through RemoveEdge, so synthetic edges are never removed.
func (s *Store) ApplyEdgeChanges(changes []EdgeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	structural, selection := false, false

	for _, change := range changes {
		switch change.Type {
		case EdgeChangeRemove:
			if s.removeEdgeLocked(change.ID) {
				structural = true
			}
		case EdgeChangeSelect:
			switch {
			case change.Selected && s.storedEdgeIndex("selectEdge", change.ID) >= 0 && s.selectedEdge != change.ID:
				s.selectedEdge = change.ID
				selection = true
			case !change.Selected && s.selectedEdge == change.ID && change.ID != "":
				s.selectedEdge = ""
				selection = true
			}
		default:
			noop("applyEdgeChanges", "type", change.Type, "id", change.ID)
		}
	}

	if structural || selection {
		s.changed("applyEdgeChanges", structural)
	}
}
