// Package graph indexes board edges of one relationship type as a gonum directed graph.
package graph

import (
	"sort"

	"github.com/ritzau/taskboard/pkg/model"
	"gonum.org/v1/gonum/graph/simple"
)

// DependencyGraph is a directed graph over board node IDs
type DependencyGraph struct {
	graph  *simple.DirectedGraph
	ids    map[string]int64 // Map from board node ID to graph ID
	labels map[int64]string // Map from graph ID back to board node ID
	nextID int64
}

// NewDependencyGraph creates an empty dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		graph:  simple.NewDirectedGraph(),
		ids:    make(map[string]int64),
		labels: make(map[int64]string),
	}
}

// BuildDependencyGraph indexes every stored edge of the given type whose endpoints both exist.
// Synthetic edges are skipped.
func BuildDependencyGraph(nodes []model.Node, edges []model.Edge, edgeType model.EdgeType) *DependencyGraph {
	dg := NewDependencyGraph()

	exists := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		exists[node.ID] = true
	}

	for _, edge := range edges {
		if edge.Synthetic || edge.Type != edgeType {
			continue
		}
		if !exists[edge.Source] || !exists[edge.Target] {
			continue
		}
		dg.AddDependency(edge.Source, edge.Target)
	}

	return dg
}

// AddNode adds a board node to the graph if it is not already present
func (dg *DependencyGraph) AddNode(id string) {
	if _, exists := dg.ids[id]; exists {
		return
	}

	dg.ids[id] = dg.nextID
	dg.labels[dg.nextID] = id
	dg.graph.AddNode(simple.Node(dg.nextID))
	dg.nextID++
}

// AddDependency adds an edge from source to target, adding missing nodes.
// Self-loops and repeated edges are ignored.
func (dg *DependencyGraph) AddDependency(source, target string) {
	if source == target {
		return
	}
	dg.AddNode(source)
	dg.AddNode(target)

	from, to := dg.ids[source], dg.ids[target]
	if !dg.graph.HasEdgeFromTo(from, to) {
		dg.graph.SetEdge(dg.graph.NewEdge(dg.graph.Node(from), dg.graph.Node(to)))
	}
}

// Graph returns the underlying directed graph
func (dg *DependencyGraph) Graph() *simple.DirectedGraph {
	return dg.graph
}

// Label returns the board node ID for a graph ID
func (dg *DependencyGraph) Label(id int64) (string, bool) {
	label, ok := dg.labels[id]
	return label, ok
}

// Len returns the number of nodes in the graph
func (dg *DependencyGraph) Len() int {
	return len(dg.ids)
}

// Successors returns the sorted IDs of nodes that id points to
func (dg *DependencyGraph) Successors(id string) []string {
	gid, exists := dg.ids[id]
	if !exists {
		return nil
	}

	var out []string
	iter := dg.graph.From(gid)
	for iter.Next() {
		out = append(out, dg.labels[iter.Node().ID()])
	}
	sort.Strings(out)
	return out
}

// Predecessors returns the sorted IDs of nodes pointing to id
func (dg *DependencyGraph) Predecessors(id string) []string {
	gid, exists := dg.ids[id]
	if !exists {
		return nil
	}

	var out []string
	iter := dg.graph.To(gid)
	for iter.Next() {
		out = append(out, dg.labels[iter.Node().ID()])
	}
	sort.Strings(out)
	return out
}
