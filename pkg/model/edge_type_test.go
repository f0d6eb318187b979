package model

import "testing"

func TestEdgeTypeCycle(t *testing.T) {
	tests := []struct {
		from EdgeType
		want EdgeType
	}{
		{EdgeBlocks, EdgeRelates},
		{EdgeRelates, EdgeTriggers},
		{EdgeTriggers, EdgeBlocks},
	}

	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestEdgeTypeCycleReturnsAfterThreeSteps(t *testing.T) {
	for _, start := range []EdgeType{EdgeBlocks, EdgeRelates, EdgeTriggers} {
		got := start.Next().Next().Next()
		if got != start {
			t.Errorf("three steps from %s ended at %s", start, got)
		}
	}
}

func TestEdgeTypeStrength(t *testing.T) {
	if !(EdgeBlocks.Strength() > EdgeTriggers.Strength() && EdgeTriggers.Strength() > EdgeRelates.Strength()) {
		t.Errorf("expected blocks > triggers > relates, got %d, %d, %d",
			EdgeBlocks.Strength(), EdgeTriggers.Strength(), EdgeRelates.Strength())
	}
	if EdgeType("bogus").Valid() {
		t.Error("unknown edge type should not be valid")
	}
}
