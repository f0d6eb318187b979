package graph

import (
	"reflect"
	"testing"

	"github.com/ritzau/taskboard/pkg/model"
)

func TestBuildDependencyGraphFiltersByType(t *testing.T) {
	nodes := []model.Node{
		model.NewTask("a", model.Position{}, model.TaskPatch{}),
		model.NewTask("b", model.Position{}, model.TaskPatch{}),
		model.NewTask("c", model.Position{}, model.TaskPatch{}),
	}
	edges := []model.Edge{
		{ID: "1", Source: "a", Target: "b", Type: model.EdgeBlocks},
		{ID: "2", Source: "a", Target: "c", Type: model.EdgeRelates},
		{ID: "3", Source: "c", Target: "b", Type: model.EdgeBlocks},
		{ID: "4", Source: "a", Target: "missing", Type: model.EdgeBlocks},
		{ID: "5", Source: "a", Target: "b", Type: model.EdgeBlocks, Synthetic: true, Count: 2},
	}

	dg := BuildDependencyGraph(nodes, edges, model.EdgeBlocks)

	if got := dg.Successors("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("expected a -> [b], got %v", got)
	}
	if got := dg.Predecessors("b"); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("expected b <- [a c], got %v", got)
	}
	if dg.Len() != 3 {
		t.Errorf("expected 3 nodes, got %d", dg.Len())
	}
}

func TestAddDependencyIgnoresSelfLoopsAndRepeats(t *testing.T) {
	dg := NewDependencyGraph()
	dg.AddDependency("a", "a")
	dg.AddDependency("a", "b")
	dg.AddDependency("a", "b")

	if dg.Graph().Edges().Len() != 1 {
		t.Errorf("expected 1 edge, got %d", dg.Graph().Edges().Len())
	}
	if got := dg.Successors("missing"); got != nil {
		t.Errorf("expected nil for unknown node, got %v", got)
	}
}
