package store

import (
	"slices"

	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/model"
)

// Minimum inset of a child inside its group, keeping it clear of the group header
const (
	GroupInsetX = 10
	GroupInsetY = 40
)

// AddNode creates a task at pos with patch applied over the defaults and returns its ID
func (s *Store) AddNode(pos model.Position, patch model.TaskPatch) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.addNodeLocked(pos, patch)
	s.changed("addNode", true)
	return id
}

func (s *Store) addNodeLocked(pos model.Position, patch model.TaskPatch) string {
	node := model.NewTask(s.newID(), pos, s.scopeDepartment(patch))

	s.record()
	s.nodes = append(slices.Clip(s.nodes), node)
	logging.Debug("added node", "id", node.ID, "title", node.Task.Title)
	return node.ID
}

// AddConnectedNode creates a task and an edge from conn.Source to it as a single undo step.
// The source handle of conn is kept; its target fields are replaced by the new node.
// If the source does not exist the task is still created, without an edge.
func (s *Store) AddConnectedNode(pos model.Position, patch model.TaskPatch, conn model.Connection) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.addNodeLocked(pos, patch)
	if s.nodeIndex(conn.Source) >= 0 {
		edge := model.Edge{
			ID:           s.newID(),
			Source:       conn.Source,
			Target:       id,
			SourceHandle: conn.SourceHandle,
			TargetHandle: conn.TargetHandle,
			Type:         model.DefaultEdgeType,
		}
		s.edges = append(slices.Clip(s.edges), edge)
		logging.Debug("connected new node", "edge", edge.ID, "source", conn.Source, "target", id)
	}

	s.changed("addConnectedNode", true)
	return id
}

// UpdateNode shallow-merges patch into the task data of node id.
// Unknown IDs, group IDs and patches that change nothing are ignored.
func (s *Store) UpdateNode(id string, patch model.TaskPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.nodeIndex(id)
	if i < 0 || !s.nodes[i].IsTask() {
		noop("updateNode", "id", id)
		return
	}

	node := s.nodes[i].Clone()
	next := s.scopeDepartment(patch).Apply(*node.Task)
	if next.Equal(*node.Task) {
		noop("updateNode", "id", id, "reason", "unchanged")
		return
	}

	s.record()
	node.Task = &next
	s.replaceNode(i, node)
	s.changed("updateNode", true)
}

// UpdateGroup shallow-merges patch into the data of group id.
// Unknown IDs, task IDs and patches that change nothing are ignored.
func (s *Store) UpdateGroup(id string, patch model.GroupPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.nodeIndex(id)
	if i < 0 || !s.nodes[i].IsGroup() {
		noop("updateGroup", "id", id)
		return
	}

	node := s.nodes[i].Clone()
	next := patch.Apply(*node.Group)
	if next == *node.Group {
		noop("updateGroup", "id", id, "reason", "unchanged")
		return
	}

	s.record()
	node.Group = &next
	s.replaceNode(i, node)
	s.changed("updateGroup", true)
}

// DeleteNode removes a node and every edge touching it. A deleted group detaches its
// children: they keep their absolute position and become top-level and visible.
func (s *Store) DeleteNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteNodeLocked(id) {
		s.changed("deleteNode", true)
	}
}

func (s *Store) deleteNodeLocked(id string) bool {
	i := s.nodeIndex(id)
	if i < 0 {
		noop("deleteNode", "id", id)
		return false
	}

	s.record()
	deleted := s.nodes[i]

	nodes := make([]model.Node, 0, len(s.nodes)-1)
	detached := 0
	for _, node := range s.nodes {
		if node.ID == id {
			continue
		}
		if deleted.IsGroup() && node.ParentID == id {
			node = node.Clone()
			node.Position = node.Position.Add(deleted.Position)
			node.ParentID = ""
			node.Hidden = false
			detached++
		}
		nodes = append(nodes, node)
	}
	s.nodes = nodes

	edges := make([]model.Edge, 0, len(s.edges))
	for _, edge := range s.edges {
		if edge.Touches(id) {
			if edge.ID == s.selectedEdge {
				s.selectedEdge = ""
			}
			continue
		}
		edges = append(edges, edge)
	}
	removedEdges := len(s.edges) - len(edges)
	s.edges = edges

	delete(s.collapsed, id)
	if s.selectedNode == id {
		s.selectedNode = ""
	}
	if s.editingNode == id {
		s.editingNode = ""
	}

	logging.Debug("deleted node", "id", id, "edges", removedEdges, "detached", detached)
	return true
}

// AddGroupNode creates an expanded group container and returns its ID
func (s *Store) AddGroupNode(pos model.Position, title, color string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := model.NewGroup(s.newID(), pos, title, color)

	s.record()
	s.nodes = append(slices.Clip(s.nodes), node)
	logging.Debug("added group", "id", node.ID, "title", node.Group.Title)
	s.changed("addGroupNode", true)
	return node.ID
}

// ToggleGroupCollapse flips a group between collapsed and expanded, hiding or
// showing its children to match
func (s *Store) ToggleGroupCollapse(groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.nodeIndex(groupID)
	if i < 0 || !s.nodes[i].IsGroup() {
		noop("toggleGroupCollapse", "id", groupID)
		return
	}

	s.record()
	collapsed := !s.nodes[i].Group.Collapsed

	nodes := make([]model.Node, len(s.nodes))
	for j, node := range s.nodes {
		switch {
		case j == i:
			node = node.Clone()
			node.Group.Collapsed = collapsed
		case node.ParentID == groupID:
			node.Hidden = collapsed
		}
		nodes[j] = node
	}
	s.nodes = nodes

	if collapsed {
		s.collapsed[groupID] = true
	} else {
		delete(s.collapsed, groupID)
	}

	logging.Debug("toggled group", "id", groupID, "collapsed", collapsed)
	s.changed("toggleGroupCollapse", true)
}

// MoveNodeToGroup reparents a task. An empty groupID moves it out of its group.
// Positions are converted between canvas and group-relative coordinates so the task
// does not jump on screen, apart from clamping inside the group's header inset.
func (s *Store) MoveNodeToGroup(nodeID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.nodeIndex(nodeID)
	if i < 0 || !s.nodes[i].IsTask() {
		noop("moveNodeToGroup", "node", nodeID)
		return
	}
	node := s.nodes[i].Clone()
	if node.ParentID == groupID {
		noop("moveNodeToGroup", "node", nodeID, "reason", "already in group")
		return
	}

	var target *model.Node
	if groupID != "" {
		g := s.nodeIndex(groupID)
		if g < 0 || !s.nodes[g].IsGroup() {
			noop("moveNodeToGroup", "node", nodeID, "group", groupID)
			return
		}
		target = &s.nodes[g]
	}

	absolute := node.Position
	if p := s.nodeIndex(node.ParentID); node.ParentID != "" && p >= 0 {
		absolute = absolute.Add(s.nodes[p].Position)
	}

	if target == nil {
		node.Position = absolute
		node.ParentID = ""
		node.Hidden = false
	} else {
		relative := absolute.Sub(target.Position)
		relative.X = max(relative.X, GroupInsetX)
		relative.Y = max(relative.Y, GroupInsetY)
		node.Position = relative
		node.ParentID = groupID
		node.Hidden = target.Group.Collapsed
	}

	s.record()
	s.replaceNode(i, node)
	logging.Debug("moved node", "id", nodeID, "group", groupID)
	s.changed("moveNodeToGroup", true)
}

// SetSelectedNode selects a node. An empty id clears the selection; unknown IDs are ignored.
func (s *Store) SetSelectedNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.nodeIndex(id) < 0 {
		noop("setSelectedNode", "id", id)
		return
	}
	if s.selectedNode == id {
		return
	}
	s.selectedNode = id
	s.changed("setSelectedNode", false)
}

// SetEditingNode opens the editing panel for a node. An empty id closes it.
func (s *Store) SetEditingNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.nodeIndex(id) < 0 {
		noop("setEditingNode", "id", id)
		return
	}
	if s.editingNode == id {
		return
	}
	s.editingNode = id
	s.changed("setEditingNode", false)
}
