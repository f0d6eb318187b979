package lens

import "github.com/ritzau/taskboard/pkg/model"

// Opacity applied to entities that do not match the active filters
const (
	FullOpacity       = 1.0
	NodeDimmedOpacity = 0.15
	EdgeDimmedOpacity = 0.1
)

// Input is everything the derived view is computed from
type Input struct {
	Nodes     []model.Node
	Edges     []model.Edge
	Filters   model.Filters
	Collapsed map[string]bool // IDs of collapsed groups
}

// ViewNode is a node decorated for rendering
type ViewNode struct {
	model.Node
	Matched   bool     `json:"matched"` // passes the active filters
	Opacity   float64  `json:"opacity"`
	Blocks    []string `json:"blocks,omitempty"`    // nodes this one blocks
	BlockedBy []string `json:"blockedBy,omitempty"` // nodes blocking this one
}

// ViewEdge is a real or synthetic edge decorated for rendering
type ViewEdge struct {
	model.Edge
	Opacity float64 `json:"opacity"`
	Badge   int     `json:"badge,omitempty"` // aggregated count, only set when > 1
}

// View is the derived board handed to the renderer
type View struct {
	Nodes  []ViewNode `json:"nodes"`
	Edges  []ViewEdge `json:"edges"`
	Cycles [][]string `json:"cycles,omitempty"` // groups of tasks blocking each other
}
