package lens

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"reflect"
)

// ViewDiff represents the difference between two rendered views
type ViewDiff struct {
	AddedNodes    []ViewNode `json:"addedNodes"`
	RemovedNodes  []string   `json:"removedNodes"`  // Node IDs
	ModifiedNodes []ViewNode `json:"modifiedNodes"` // Nodes with changed properties
	AddedEdges    []ViewEdge `json:"addedEdges"`
	RemovedEdges  []string   `json:"removedEdges"`  // Edge IDs
	ModifiedEdges []ViewEdge `json:"modifiedEdges"` // Edges with changed type, count or opacity
	Cycles        [][]string `json:"cycles"`
	FullView      bool       `json:"fullView"` // True if this carries the whole view, not a diff
}

// Empty reports whether the diff carries no changes
func (d *ViewDiff) Empty() bool {
	return !d.FullView &&
		len(d.AddedNodes) == 0 && len(d.RemovedNodes) == 0 && len(d.ModifiedNodes) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0 && len(d.ModifiedEdges) == 0
}

// ViewSnapshot represents a cached view for diffing
type ViewSnapshot struct {
	Hash  string
	Nodes map[string]ViewNode // nodeID -> node
	Edges map[string]ViewEdge // edgeID -> edge
}

// CreateSnapshot creates a snapshot from a view for diffing
func CreateSnapshot(view *View) *ViewSnapshot {
	return newSnapshot(view, ComputeHash(view))
}

// NextSnapshot diffs view against old and returns the snapshot for the next round.
// When view hashes the same as old, old is returned with a nil diff and no per-entity
// comparison is done.
func NextSnapshot(old *ViewSnapshot, view *View) (*ViewSnapshot, *ViewDiff) {
	hash := ComputeHash(view)
	if old != nil && hash != "" && hash == old.Hash {
		return old, nil
	}
	return newSnapshot(view, hash), ComputeDiff(old, view)
}

func newSnapshot(view *View, hash string) *ViewSnapshot {
	snapshot := &ViewSnapshot{
		Hash:  hash,
		Nodes: make(map[string]ViewNode, len(view.Nodes)),
		Edges: make(map[string]ViewEdge, len(view.Edges)),
	}

	for _, node := range view.Nodes {
		snapshot.Nodes[node.ID] = node
	}

	// Edge IDs are unique: real edges get a generated ID, synthetic ones are keyed by endpoint pair
	for _, edge := range view.Edges {
		snapshot.Edges[edge.ID] = edge
	}

	return snapshot
}

// ComputeHash generates a content hash for a view
func ComputeHash(view *View) string {
	jsonData, err := json.Marshal(view)
	if err != nil {
		return ""
	}
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}

// ComputeDiff computes the difference between a snapshot and a newer view
func ComputeDiff(oldSnapshot *ViewSnapshot, newView *View) *ViewDiff {
	// If no old snapshot, return full view
	if oldSnapshot == nil {
		return &ViewDiff{
			AddedNodes: newView.Nodes,
			AddedEdges: newView.Edges,
			Cycles:     newView.Cycles,
			FullView:   true,
		}
	}

	diff := &ViewDiff{
		AddedNodes:    make([]ViewNode, 0),
		RemovedNodes:  make([]string, 0),
		ModifiedNodes: make([]ViewNode, 0),
		AddedEdges:    make([]ViewEdge, 0),
		RemovedEdges:  make([]string, 0),
		ModifiedEdges: make([]ViewEdge, 0),
		Cycles:        newView.Cycles,
	}

	newNodes := make(map[string]bool, len(newView.Nodes))
	for _, node := range newView.Nodes {
		newNodes[node.ID] = true
		if oldNode, exists := oldSnapshot.Nodes[node.ID]; exists {
			if !reflect.DeepEqual(oldNode, node) {
				diff.ModifiedNodes = append(diff.ModifiedNodes, node)
			}
		} else {
			diff.AddedNodes = append(diff.AddedNodes, node)
		}
	}

	newEdges := make(map[string]bool, len(newView.Edges))
	for _, edge := range newView.Edges {
		newEdges[edge.ID] = true
		if oldEdge, exists := oldSnapshot.Edges[edge.ID]; exists {
			if oldEdge != edge {
				diff.ModifiedEdges = append(diff.ModifiedEdges, edge)
			}
		} else {
			diff.AddedEdges = append(diff.AddedEdges, edge)
		}
	}

	// Removed IDs are reported in snapshot map order; consumers treat them as a set
	for id := range oldSnapshot.Nodes {
		if !newNodes[id] {
			diff.RemovedNodes = append(diff.RemovedNodes, id)
		}
	}
	for id := range oldSnapshot.Edges {
		if !newEdges[id] {
			diff.RemovedEdges = append(diff.RemovedEdges, id)
		}
	}

	return diff
}
