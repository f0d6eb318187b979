package lens

import (
	"strings"

	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/model"
)

// SyntheticPrefix marks the IDs of derived edges. Such IDs never name a stored edge.
const SyntheticPrefix = "synthetic:"

// SyntheticID returns the ID of the aggregated edge between two endpoints
func SyntheticID(source, target string) string {
	return SyntheticPrefix + source + "->" + target
}

// IsSyntheticID reports whether id belongs to a derived edge
func IsSyntheticID(id string) bool {
	return strings.HasPrefix(id, SyntheticPrefix)
}

// DeriveEdges produces the edge list to render. Edges with an endpoint inside a collapsed
// group are re-attached to the group and aggregated per ordered (source, target) pair into
// synthetic edges; edges internal to one collapsed group are dropped. Stored edges are
// never modified. visible drives filter dimming; nil means everything matches.
//
// Output order: pass-through edges in input order, then synthetic edges in first-seen order.
func DeriveEdges(nodes []model.Node, edges []model.Edge, collapsed map[string]bool, visible map[string]bool) []ViewEdge {
	childToGroup := buildChildToGroupMap(nodes, collapsed)

	result := make([]ViewEdge, 0, len(edges))
	if len(childToGroup) == 0 {
		for _, edge := range edges {
			result = append(result, realEdge(edge, visible))
		}
		return result
	}

	var synthetic []*model.Edge
	byPair := make(map[[2]string]*model.Edge)
	dropped := 0

	for _, edge := range edges {
		source, sourceMapped := remap(edge.Source, childToGroup)
		target, targetMapped := remap(edge.Target, childToGroup)

		// Untouched by any collapse
		if !sourceMapped && !targetMapped {
			result = append(result, realEdge(edge, visible))
			continue
		}

		// Internal to a single collapsed group
		if source == target {
			dropped++
			continue
		}

		key := [2]string{source, target}
		agg, exists := byPair[key]
		if !exists {
			agg = &model.Edge{
				ID:        SyntheticID(source, target),
				Source:    source,
				Target:    target,
				Type:      edge.Type,
				Synthetic: true,
				Count:     1,
			}
			byPair[key] = agg
			synthetic = append(synthetic, agg)
			continue
		}

		agg.Count++
		// Ties keep the first-seen type
		if edge.Type.Strength() > agg.Type.Strength() {
			agg.Type = edge.Type
		}
	}

	for _, agg := range synthetic {
		result = append(result, syntheticEdge(*agg))
	}

	logging.Trace("derived edges",
		"collapsedChildren", len(childToGroup), "synthetic", len(synthetic), "dropped", dropped)

	return result
}

// buildChildToGroupMap maps every child of a collapsed group to that group
func buildChildToGroupMap(nodes []model.Node, collapsed map[string]bool) map[string]string {
	childToGroup := make(map[string]string)
	if len(collapsed) == 0 {
		return childToGroup
	}

	for _, node := range nodes {
		if node.ParentID != "" && collapsed[node.ParentID] {
			childToGroup[node.ID] = node.ParentID
		}
	}

	return childToGroup
}

func remap(id string, childToGroup map[string]string) (string, bool) {
	if group, ok := childToGroup[id]; ok {
		return group, true
	}
	return id, false
}

// realEdge decorates a stored edge. Blocking edges stay opaque regardless of filters.
func realEdge(edge model.Edge, visible map[string]bool) ViewEdge {
	opacity := FullOpacity
	if edge.Type != model.EdgeBlocks && visible != nil && !(visible[edge.Source] && visible[edge.Target]) {
		opacity = EdgeDimmedOpacity
	}
	return ViewEdge{Edge: edge, Opacity: opacity}
}

// syntheticEdge decorates an aggregated edge. Synthetic edges are always opaque.
func syntheticEdge(edge model.Edge) ViewEdge {
	v := ViewEdge{Edge: edge, Opacity: FullOpacity}
	if edge.Count > 1 {
		v.Badge = edge.Count
	}
	return v
}
