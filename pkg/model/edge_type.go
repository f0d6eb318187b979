package model

// EdgeType classifies the relationship an edge expresses
type EdgeType string

const (
	EdgeBlocks   EdgeType = "blocks"   // Source must finish before target can start
	EdgeRelates  EdgeType = "relates"  // Informational link
	EdgeTriggers EdgeType = "triggers" // Completing source starts target
)

// DefaultEdgeType is the type every new edge starts with
const DefaultEdgeType = EdgeBlocks

// Valid reports whether t is one of the three known edge types
func (t EdgeType) Valid() bool {
	switch t {
	case EdgeBlocks, EdgeRelates, EdgeTriggers:
		return true
	}
	return false
}

// Next advances one step in the fixed cycle blocks -> relates -> triggers -> blocks.
// Unknown types restart the cycle at blocks.
func (t EdgeType) Next() EdgeType {
	switch t {
	case EdgeBlocks:
		return EdgeRelates
	case EdgeRelates:
		return EdgeTriggers
	default:
		return EdgeBlocks
	}
}

// Strength ranks edge types for aggregation: blocks > triggers > relates
func (t EdgeType) Strength() int {
	switch t {
	case EdgeBlocks:
		return 3
	case EdgeTriggers:
		return 2
	case EdgeRelates:
		return 1
	}
	return 0
}
