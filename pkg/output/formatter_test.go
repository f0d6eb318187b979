package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/ritzau/taskboard/pkg/model"
)

func init() {
	color.NoColor = true
}

func TestPrintPresets(t *testing.T) {
	var buf bytes.Buffer
	presets := []model.Preset{
		{ID: "gamedev", Label: "Game Development", Categories: []model.Category{{Name: "Art", Color: "#ec4899"}}},
		{ID: "ops", Label: "Ops", Categories: []model.Category{{Name: "Oncall", Color: "bad"}}},
	}

	PrintPresets(&buf, presets, "ops")

	out := buf.String()
	assert.Contains(t, out, "  gamedev (Game Development)")
	assert.Contains(t, out, "* ops (Ops)")
	assert.Contains(t, out, "Art #ec4899")
	assert.Contains(t, out, "Oncall bad")
}

func TestPrintBoardSummary(t *testing.T) {
	nodes := []model.Node{
		model.NewTask("a", model.Position{}, model.TaskPatch{}),
		model.NewTask("b", model.Position{}, model.TaskPatch{}),
		model.NewGroup("g", model.Position{}, "", ""),
	}
	edges := []model.Edge{
		{ID: "1", Source: "a", Target: "b", Type: model.EdgeBlocks},
		{ID: "2", Source: "b", Target: "a", Type: model.EdgeBlocks},
		{ID: "3", Source: "a", Target: "g", Type: model.EdgeRelates},
	}

	var buf bytes.Buffer
	PrintBoardSummary(&buf, Summarize(nodes, edges, [][]string{{"a", "b"}}, "gamedev", 7))

	out := buf.String()
	assert.Contains(t, out, "Tasks: 2")
	assert.Contains(t, out, "Groups: 1")
	assert.Contains(t, out, "Edges: 3 (2 blocks, 1 relates)")
	assert.Contains(t, out, "Changes: 7")
	assert.Contains(t, out, "BLOCKING CYCLES: 1")
	assert.Contains(t, out, "a <-> b")
}

func TestPrintBoardSummaryNoCycles(t *testing.T) {
	var buf bytes.Buffer
	PrintBoardSummary(&buf, Summarize(nil, nil, nil, "software", 0))

	out := buf.String()
	assert.True(t, strings.Contains(out, "No blocking cycles"), out)
	assert.Contains(t, out, "Edges: 0\n")
}
