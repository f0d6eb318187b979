package model

// Defaults applied by the entity factory
const (
	DefaultTaskTitle   = "Untitled"
	DefaultGroupTitle  = "Group"
	DefaultGroupColor  = "#64748b"
	DefaultGroupWidth  = 400
	DefaultGroupHeight = 300
)

// NewTask builds a task node with every unset field at its default, then applies patch
func NewTask(id string, pos Position, patch TaskPatch) Node {
	data := patch.Apply(TaskData{
		Title:    DefaultTaskTitle,
		Priority: PriorityMedium,
		Labels:   []Label{},
	})
	return Node{
		ID:       id,
		Kind:     NodeKindTask,
		Position: pos,
		Task:     &data,
	}
}

// NewGroup builds an expanded group container. Empty title or color fall back to defaults.
func NewGroup(id string, pos Position, title, color string) Node {
	if title == "" {
		title = DefaultGroupTitle
	}
	if color == "" {
		color = DefaultGroupColor
	}
	return Node{
		ID:       id,
		Kind:     NodeKindGroup,
		Position: pos,
		Group: &GroupData{
			Title: title,
			Color: color,
			Dimensions: Dimensions{
				Width:  DefaultGroupWidth,
				Height: DefaultGroupHeight,
			},
		},
	}
}
