package model

import (
	"slices"
	"time"
)

// NodeKind distinguishes task cards from group containers
type NodeKind string

const (
	NodeKindTask  NodeKind = "task"
	NodeKindGroup NodeKind = "group"
)

// Position is a canvas coordinate. For a node inside a group it is relative to the group.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two positions
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference of two positions
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Dimensions is the rendered size of a group container
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node represents a vertex on the board: either a task card or a group container.
// Exactly one of Task and Group is set, matching Kind.
type Node struct {
	ID       string     `json:"id"`
	Kind     NodeKind   `json:"kind"`
	Position Position   `json:"position"`
	ParentID string     `json:"parentId,omitempty"` // ID of the owning group (tasks only)
	Hidden   bool       `json:"hidden,omitempty"`   // true while the owning group is collapsed
	Task     *TaskData  `json:"task,omitempty"`
	Group    *GroupData `json:"group,omitempty"`
}

// IsTask reports whether the node is a task card
func (n *Node) IsTask() bool {
	return n.Kind == NodeKindTask && n.Task != nil
}

// IsGroup reports whether the node is a group container
func (n *Node) IsGroup() bool {
	return n.Kind == NodeKindGroup && n.Group != nil
}

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	if n.Task != nil {
		t := n.Task.Clone()
		n.Task = &t
	}
	if n.Group != nil {
		g := *n.Group
		n.Group = &g
	}
	return n
}

// TaskData holds the editable fields of a task card
type TaskData struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Department  string     `json:"department"` // "" = uncategorized, else a category of the active preset
	Labels      []Label    `json:"labels"`
	Assignee    string     `json:"assignee"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      Status     `json:"status,omitempty"`
}

// Clone returns a deep copy of the task data
func (t TaskData) Clone() TaskData {
	if t.Labels != nil {
		t.Labels = append(make([]Label, 0, len(t.Labels)), t.Labels...)
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// Equal reports whether two task data values hold the same fields
func (t TaskData) Equal(o TaskData) bool {
	if t.Title != o.Title || t.Description != o.Description || t.Priority != o.Priority ||
		t.Department != o.Department || t.Assignee != o.Assignee || t.Status != o.Status {
		return false
	}
	if (t.DueDate == nil) != (o.DueDate == nil) {
		return false
	}
	if t.DueDate != nil && !t.DueDate.Equal(*o.DueDate) {
		return false
	}
	return slices.Equal(t.Labels, o.Labels)
}

// GroupData holds the fields of a group container
type GroupData struct {
	Title      string     `json:"title"`
	Color      string     `json:"color"`
	Collapsed  bool       `json:"collapsed"`
	Dimensions Dimensions `json:"dimensions"`
}

// GroupPatch is a partial update of GroupData. Collapsing goes through the toggle
// operation, so Collapsed is not patchable.
type GroupPatch struct {
	Title      *string     `json:"title,omitempty"`
	Color      *string     `json:"color,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// Apply shallow-merges the patch over g and returns the result
func (p GroupPatch) Apply(g GroupData) GroupData {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	if p.Dimensions != nil {
		g.Dimensions = *p.Dimensions
	}
	return g
}

// Label is a coloured tag attached to a task
type Label struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Edge represents a directed, typed relationship between two nodes.
// Synthetic and Count are only set on derived edges produced for collapsed groups.
type Edge struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	SourceHandle string   `json:"sourceHandle,omitempty"`
	TargetHandle string   `json:"targetHandle,omitempty"`
	Type         EdgeType `json:"type"`
	Synthetic    bool     `json:"synthetic,omitempty"`
	Count        int      `json:"count,omitempty"`
}

// Touches reports whether the edge has nodeID as either endpoint
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Connection is a request from the rendering surface to connect two nodes
type Connection struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Matches reports whether the edge connects exactly the same endpoints and handles
func (c Connection) Matches(e *Edge) bool {
	return e.Source == c.Source &&
		e.Target == c.Target &&
		e.SourceHandle == c.SourceHandle &&
		e.TargetHandle == c.TargetHandle
}

// CloneNodes returns a point-in-time deep copy of a node collection
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges returns a point-in-time copy of an edge collection
func CloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}
