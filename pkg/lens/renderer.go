package lens

import (
	"github.com/ritzau/taskboard/pkg/logging"
)

// Render computes the derived board view from scratch: filter matching, node opacity and
// the collapsed-group edge aggregation. Nothing is cached between calls.
func Render(in Input) *View {
	visible := VisibleIDs(in.Nodes, in.Filters)

	nodes := make([]ViewNode, 0, len(in.Nodes))
	matched := 0
	for _, node := range in.Nodes {
		vn := ViewNode{
			Node:    node.Clone(),
			Matched: visible[node.ID],
			Opacity: FullOpacity,
		}
		if vn.Matched {
			matched++
		} else {
			vn.Opacity = NodeDimmedOpacity
		}
		nodes = append(nodes, vn)
	}

	edges := DeriveEdges(in.Nodes, in.Edges, in.Collapsed, visible)

	logging.Debug("rendered view",
		"nodes", len(nodes), "matched", matched, "edges", len(edges), "collapsed", len(in.Collapsed))

	return &View{
		Nodes: nodes,
		Edges: edges,
	}
}
