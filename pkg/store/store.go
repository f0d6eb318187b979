// Package store owns the authoritative board state: nodes, edges, view state and the
// undo/redo history. All access goes through the Store's operations, which are
// serialised by a mutex. Invalid operations are silent no-ops.
package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/ritzau/taskboard/pkg/cycles"
	"github.com/ritzau/taskboard/pkg/graph"
	"github.com/ritzau/taskboard/pkg/history"
	"github.com/ritzau/taskboard/pkg/lens"
	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/model"
	"github.com/ritzau/taskboard/pkg/preset"
	"github.com/ritzau/taskboard/pkg/pubsub"
)

// Options configures a new Store. The zero value is usable.
type Options struct {
	Presets      *preset.Registry // nil uses the built-in presets
	ActivePreset string           // unknown or empty selects the first preset
	HistoryLimit int              // non-positive uses history.DefaultLimit
	Publisher    pubsub.Publisher // optional change notification sink
	NewID        func() string    // nil uses random UUIDs
}

// Store is the single writer of board state
type Store struct {
	mu sync.Mutex

	nodes []model.Node
	edges []model.Edge

	filters      model.Filters
	presets      *preset.Registry
	activePreset string
	collapsed    map[string]bool

	selectedNode string
	selectedEdge string
	editingNode  string

	history   *history.Manager
	dragStash *history.Slice // pre-gesture state while a drag or resize is in progress
	dragMoved bool           // whether the gesture in progress changed any geometry

	publisher pubsub.Publisher
	revision  int
	newID     func() string
}

// State is the board state tuple a persistence layer would save
type State struct {
	Nodes           []model.Node  `json:"nodes"`
	Edges           []model.Edge  `json:"edges"`
	Filters         model.Filters `json:"filters"`
	ActivePreset    string        `json:"activePresetId"`
	CollapsedGroups []string      `json:"collapsedGroupIds"`
}

// New creates an empty board
func New(opts Options) *Store {
	presets := opts.Presets
	if presets == nil {
		presets = preset.Default()
	}

	active := presets.First().ID
	if _, ok := presets.Lookup(opts.ActivePreset); ok {
		active = opts.ActivePreset
	} else if opts.ActivePreset != "" {
		logging.Warn("unknown preset, using first", "preset", opts.ActivePreset, "using", active)
	}

	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Store{
		presets:      presets,
		activePreset: active,
		collapsed:    make(map[string]bool),
		history:      history.New(opts.HistoryLimit),
		publisher:    opts.Publisher,
		newID:        newID,
	}
}

// Nodes returns a copy of all nodes in insertion order
func (s *Store) Nodes() []model.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneNodes(s.nodes)
}

// Edges returns a copy of all stored edges in insertion order
func (s *Store) Edges() []model.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneEdges(s.edges)
}

// Node returns a copy of the node with the given ID
func (s *Store) Node(id string) (model.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.nodeIndex(id); i >= 0 {
		return s.nodes[i].Clone(), true
	}
	return model.Node{}, false
}

// Edge returns a copy of the stored edge with the given ID
func (s *Store) Edge(id string) (model.Edge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.edgeIndex(id); i >= 0 {
		return s.edges[i], true
	}
	return model.Edge{}, false
}

// Filters returns the active filter criteria
func (s *Store) Filters() model.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// ActivePreset returns the preset that currently scopes departments
func (s *Store) ActivePreset() model.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePresetLocked()
}

// Presets returns every known preset in registry order
func (s *Store) Presets() []model.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presets.Presets()
}

// SelectedNode returns the selected node ID, or "" if nothing is selected
func (s *Store) SelectedNode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedNode
}

// SelectedEdge returns the selected edge ID, or ""
func (s *Store) SelectedEdge() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedEdge
}

// EditingNode returns the ID of the node open in the editing panel, or ""
func (s *Store) EditingNode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingNode
}

// CollapsedGroups returns the sorted IDs of collapsed groups
func (s *Store) CollapsedGroups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsedIDs()
}

// VisibleIDs returns the IDs of nodes matching the active filters
func (s *Store) VisibleIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lens.VisibleIDs(s.nodes, s.filters)
}

// DerivedEdges returns the edge list to render, with collapsed groups aggregated
func (s *Store) DerivedEdges() []lens.ViewEdge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lens.DeriveEdges(s.nodes, s.edges, s.collapsed, lens.VisibleIDs(s.nodes, s.filters))
}

// BlockingCycles returns the groups of nodes whose blocking edges form a cycle
func (s *Store) BlockingCycles() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cycles.FindBlockingCycles(s.nodes, s.edges)
}

// View computes the full derived view of the current state
func (s *Store) View() *lens.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := lens.Render(lens.Input{
		Nodes:     s.nodes,
		Edges:     s.edges,
		Filters:   s.filters,
		Collapsed: s.collapsed,
	})

	blocking := graph.BuildDependencyGraph(s.nodes, s.edges, model.EdgeBlocks)
	for i := range view.Nodes {
		view.Nodes[i].Blocks = blocking.Successors(view.Nodes[i].ID)
		view.Nodes[i].BlockedBy = blocking.Predecessors(view.Nodes[i].ID)
	}
	view.Cycles = cycles.FindCycles(blocking)
	return view
}

// State returns a copy of the board state tuple
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Nodes:           model.CloneNodes(s.nodes),
		Edges:           model.CloneEdges(s.edges),
		Filters:         s.filters.Clone(),
		ActivePreset:    s.activePreset,
		CollapsedGroups: s.collapsedIDs(),
	}
}

// Status summarises the board for change notifications
func (s *Store) Status() pubsub.BoardStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(false)
}

// CanUndo reports whether Undo would change the board
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the board
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Revision returns a counter bumped on every change
func (s *Store) Revision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *Store) activePresetLocked() model.Preset {
	p, ok := s.presets.Lookup(s.activePreset)
	if !ok {
		return s.presets.First()
	}
	return p
}

func (s *Store) collapsedIDs() []string {
	ids := make([]string, 0, len(s.collapsed))
	for id := range s.collapsed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Store) nodeIndex(id string) int {
	return slices.IndexFunc(s.nodes, func(n model.Node) bool { return n.ID == id })
}

func (s *Store) edgeIndex(id string) int {
	return slices.IndexFunc(s.edges, func(e model.Edge) bool { return e.ID == id })
}

func (s *Store) current() history.Slice {
	return history.Slice{Nodes: s.nodes, Edges: s.edges}
}

// record snapshots the pre-mutation state. Record clones, so the live slices can be passed.
func (s *Store) record() {
	s.history.Record(s.current())
	s.dragStash = nil
	s.dragMoved = false
}

// replaceNode installs a new version of the node at index i without touching the
// previous collection, so snapshots never alias live state.
func (s *Store) replaceNode(i int, node model.Node) {
	nodes := slices.Clone(s.nodes)
	nodes[i] = node
	s.nodes = nodes
}

func (s *Store) replaceEdge(i int, edge model.Edge) {
	edges := slices.Clone(s.edges)
	edges[i] = edge
	s.edges = edges
}

func (s *Store) statusLocked(structural bool) pubsub.BoardStatus {
	status := pubsub.BoardStatus{
		Revision:     s.revision,
		Edges:        len(s.edges),
		ActivePreset: s.activePreset,
		CanUndo:      s.history.CanUndo(),
		CanRedo:      s.history.CanRedo(),
		Structural:   structural,
	}
	for i := range s.nodes {
		if s.nodes[i].IsGroup() {
			status.Groups++
		} else {
			status.Nodes++
		}
	}
	return status
}

// changed bumps the revision and notifies subscribers. Called with the lock held.
func (s *Store) changed(op string, structural bool) {
	s.revision++
	logging.Debug("board changed", "op", op, "revision", s.revision, "structural", structural)

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(pubsub.TopicBoard, op, s.statusLocked(structural)); err != nil {
		logging.Warn("failed to publish board change", "op", op, "error", err)
	}
}

func noop(op string, args ...any) {
	logging.Trace("ignored "+op, args...)
}
