// Package output prints presets and board summaries to the console.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/taskboard/pkg/model"
)

// BoardSummary is the end-of-session overview printed on shutdown
type BoardSummary struct {
	Tasks        int
	Groups       int
	Edges        int
	EdgesByType  map[model.EdgeType]int
	Cycles       [][]string
	ActivePreset string
	Revision     int
}

// Summarize counts the nodes and edges of a board
func Summarize(nodes []model.Node, edges []model.Edge, cycles [][]string, activePreset string, revision int) BoardSummary {
	s := BoardSummary{
		Edges:        len(edges),
		EdgesByType:  make(map[model.EdgeType]int),
		Cycles:       cycles,
		ActivePreset: activePreset,
		Revision:     revision,
	}
	for i := range nodes {
		if nodes[i].IsGroup() {
			s.Groups++
		} else {
			s.Tasks++
		}
	}
	for _, e := range edges {
		s.EdgesByType[e.Type]++
	}
	return s
}

// PrintPresets lists every preset with a coloured swatch per category.
// The active preset is marked with an asterisk.
func PrintPresets(w io.Writer, presets []model.Preset, active string) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Fprintln(w, "Presets")
	bold.Fprintln(w, "=======")

	for _, p := range presets {
		marker := " "
		if p.ID == active {
			marker = "*"
		}
		cyan.Fprintf(w, "%s %s", marker, p.ID)
		fmt.Fprintf(w, " (%s)\n", p.Label)

		for _, c := range p.Categories {
			fmt.Fprint(w, "    ")
			swatch(c.Color).Fprint(w, "■")
			fmt.Fprintf(w, " %s %s\n", c.Name, c.Color)
		}
	}
}

// PrintBoardSummary prints node, edge and cycle counts with colors
func PrintBoardSummary(w io.Writer, s BoardSummary) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(w, "Board Summary")
	bold.Fprintln(w, "=============")
	fmt.Fprintf(w, "Preset: %s\n", s.ActivePreset)
	fmt.Fprintf(w, "Tasks: %d\n", s.Tasks)
	fmt.Fprintf(w, "Groups: %d\n", s.Groups)
	fmt.Fprintf(w, "Edges: %d", s.Edges)
	if s.Edges > 0 {
		parts := make([]string, 0, 3)
		for _, t := range []model.EdgeType{model.EdgeBlocks, model.EdgeRelates, model.EdgeTriggers} {
			if n := s.EdgesByType[t]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, t))
			}
		}
		fmt.Fprintf(w, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Changes: %d\n", s.Revision)

	if len(s.Cycles) == 0 {
		green.Fprintln(w, "✓ No blocking cycles")
		return
	}

	red.Fprintf(w, "BLOCKING CYCLES: %d\n", len(s.Cycles))
	for _, c := range s.Cycles {
		yellow.Fprintf(w, "  %s\n", strings.Join(c, " <-> "))
	}
}

// swatch returns a foreground color for a "#rrggbb" value, or the default color
func swatch(hex string) *color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return color.New(color.Reset)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff))
}
