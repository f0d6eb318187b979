package cycles

import (
	"sort"

	"github.com/ritzau/taskboard/pkg/graph"
	"github.com/ritzau/taskboard/pkg/model"
)

// FindBlockingCycles returns the groups of nodes whose "blocks" edges form a cycle.
// Each group is sorted, and groups are ordered by their first ID.
func FindBlockingCycles(nodes []model.Node, edges []model.Edge) [][]string {
	dg := graph.BuildDependencyGraph(nodes, edges, model.EdgeBlocks)
	return FindCycles(dg)
}

// FindCycles returns the strongly connected components of a dependency graph as board IDs
func FindCycles(dg *graph.DependencyGraph) [][]string {
	sccs := NewTarjanSCC(dg.Graph()).FindSCCs()

	cycles := make([][]string, 0, len(sccs))
	for _, scc := range sccs {
		ids := make([]string, 0, len(scc))
		for _, gid := range scc {
			if id, ok := dg.Label(gid); ok {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		cycles = append(cycles, ids)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})

	return cycles
}
