package lens

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ritzau/taskboard/pkg/model"
)

func child(id, parent string) model.Node {
	n := model.NewTask(id, model.Position{}, model.TaskPatch{})
	n.ParentID = parent
	return n
}

func edge(id, source, target string, typ model.EdgeType) model.Edge {
	return model.Edge{ID: id, Source: source, Target: target, Type: typ}
}

func collapsedBoard() []model.Node {
	return []model.Node{
		model.NewGroup("G", model.Position{}, "Group", ""),
		child("C1", "G"),
		child("C2", "G"),
		task("X", model.TaskPatch{}),
		task("Y", model.TaskPatch{}),
	}
}

func TestDeriveEdgesAggregatesIntoCollapsedGroup(t *testing.T) {
	nodes := collapsedBoard()
	edges := []model.Edge{
		edge("e1", "X", "C1", model.EdgeBlocks),
		edge("e2", "X", "C2", model.EdgeRelates),
	}
	original := model.CloneEdges(edges)

	got := DeriveEdges(nodes, edges, map[string]bool{"G": true}, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 derived edge, got %d: %+v", len(got), got)
	}
	e := got[0]
	if e.Source != "X" || e.Target != "G" || !e.Synthetic || e.Count != 2 || e.Type != model.EdgeBlocks {
		t.Errorf("unexpected synthetic edge %+v", e.Edge)
	}
	if e.Badge != 2 || e.Opacity != FullOpacity {
		t.Errorf("expected badge 2 at full opacity, got badge=%d opacity=%v", e.Badge, e.Opacity)
	}
	if !IsSyntheticID(e.ID) {
		t.Errorf("expected synthetic id, got %q", e.ID)
	}
	if diff := cmp.Diff(original, edges); diff != "" {
		t.Errorf("stored edges were modified (-want +got):\n%s", diff)
	}

	// Expanding again restores exactly the real edges
	expanded := DeriveEdges(nodes, edges, map[string]bool{}, nil)
	if len(expanded) != 2 {
		t.Fatalf("expected 2 edges after expanding, got %d", len(expanded))
	}
	for i, e := range expanded {
		if e.Edge != original[i] {
			t.Errorf("edge %d: expected %+v, got %+v", i, original[i], e.Edge)
		}
	}
}

func TestDeriveEdgesStrengthAndTies(t *testing.T) {
	nodes := collapsedBoard()
	collapsed := map[string]bool{"G": true}

	tests := []struct {
		name  string
		types []model.EdgeType
		want  model.EdgeType
	}{
		{"upgrade to strongest", []model.EdgeType{model.EdgeRelates, model.EdgeTriggers}, model.EdgeTriggers},
		{"blocks wins", []model.EdgeType{model.EdgeTriggers, model.EdgeBlocks}, model.EdgeBlocks},
		{"weaker does not downgrade", []model.EdgeType{model.EdgeTriggers, model.EdgeRelates}, model.EdgeTriggers},
		{"tie keeps first seen", []model.EdgeType{model.EdgeRelates, model.EdgeRelates}, model.EdgeRelates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := []model.Edge{
				edge("a", "C1", "Y", tt.types[0]),
				edge("b", "C2", "Y", tt.types[1]),
			}
			got := DeriveEdges(nodes, edges, collapsed, nil)
			if len(got) != 1 {
				t.Fatalf("expected 1 edge, got %+v", got)
			}
			if got[0].Source != "G" || got[0].Target != "Y" {
				t.Errorf("expected G->Y, got %s->%s", got[0].Source, got[0].Target)
			}
			if got[0].Type != tt.want {
				t.Errorf("expected type %s, got %s", tt.want, got[0].Type)
			}
		})
	}
}

func TestDeriveEdgesDropsInternalAndKeepsUnaffected(t *testing.T) {
	nodes := collapsedBoard()
	edges := []model.Edge{
		edge("internal", "C1", "C2", model.EdgeBlocks),
		edge("outside", "X", "Y", model.EdgeRelates),
		edge("out", "C1", "X", model.EdgeRelates),
	}

	got := DeriveEdges(nodes, edges, map[string]bool{"G": true}, nil)

	if len(got) != 2 {
		t.Fatalf("expected 2 edges, got %+v", got)
	}
	if got[0].ID != "outside" || got[0].Synthetic {
		t.Errorf("expected pass-through edge first, got %+v", got[0])
	}
	if got[1].ID != SyntheticID("G", "X") || got[1].Count != 1 || got[1].Badge != 0 {
		t.Errorf("expected single synthetic G->X without badge, got %+v", got[1])
	}
}

func TestDeriveEdgesDirectionIsPartOfKey(t *testing.T) {
	nodes := collapsedBoard()
	edges := []model.Edge{
		edge("in", "X", "C1", model.EdgeRelates),
		edge("back", "C2", "X", model.EdgeRelates),
	}

	got := DeriveEdges(nodes, edges, map[string]bool{"G": true}, nil)

	if len(got) != 2 {
		t.Fatalf("expected one synthetic edge per direction, got %+v", got)
	}
}

func TestDeriveEdgesOpacity(t *testing.T) {
	nodes := collapsedBoard()
	edges := []model.Edge{
		edge("dim", "X", "Y", model.EdgeRelates),
		edge("block", "X", "Y", model.EdgeBlocks),
	}
	visible := map[string]bool{"X": true}

	got := DeriveEdges(nodes, edges, nil, visible)

	if got[0].Opacity != EdgeDimmedOpacity {
		t.Errorf("expected unmatched relates edge to be dimmed, got %v", got[0].Opacity)
	}
	if got[1].Opacity != FullOpacity {
		t.Errorf("expected blocking edge to stay opaque, got %v", got[1].Opacity)
	}
}

func TestDeriveEdgesIgnoresExpandedGroups(t *testing.T) {
	nodes := collapsedBoard()
	edges := []model.Edge{edge("e1", "X", "C1", model.EdgeRelates)}

	got := DeriveEdges(nodes, edges, map[string]bool{"other": true}, nil)

	if len(got) != 1 || got[0].Synthetic || got[0].Target != "C1" {
		t.Errorf("expected untouched edge, got %+v", got)
	}
}
