package model

// Category is one department choice within a preset
type Category struct {
	Name  string `json:"name" koanf:"name"`
	Color string `json:"color" koanf:"color"`
}

// Preset is a named, ordered set of categories scoping the department field of tasks
type Preset struct {
	ID         string     `json:"id" koanf:"id"`
	Label      string     `json:"label" koanf:"label"`
	Categories []Category `json:"categories" koanf:"categories"`
}

// CategoryNames returns the set of category names in the preset
func (p *Preset) CategoryNames() map[string]bool {
	names := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		names[c.Name] = true
	}
	return names
}

// HasCategory reports whether name is one of the preset's categories
func (p *Preset) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
