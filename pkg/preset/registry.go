// Package preset holds the category definitions that scope the department field of tasks.
// A Registry is immutable once built; reloading produces a new Registry.
package preset

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/taskboard/pkg/model"
)

// Registry is an ordered, read-only collection of presets
type Registry struct {
	presets []model.Preset
}

// New validates the presets and builds a registry. Order is preserved.
func New(presets []model.Preset) (*Registry, error) {
	if len(presets) == 0 {
		return nil, fmt.Errorf("at least one preset is required")
	}

	seen := make(map[string]bool)
	out := make([]model.Preset, 0, len(presets))
	for _, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %q has no id", p.Label)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate preset id %q", p.ID)
		}
		seen[p.ID] = true

		names := make(map[string]bool)
		for _, c := range p.Categories {
			if c.Name == "" {
				return nil, fmt.Errorf("preset %q has a category without a name", p.ID)
			}
			if names[c.Name] {
				return nil, fmt.Errorf("preset %q lists category %q twice", p.ID, c.Name)
			}
			names[c.Name] = true
		}

		if p.Label == "" {
			p.Label = p.ID
		}
		p.Categories = append([]model.Category(nil), p.Categories...)
		out = append(out, p)
	}

	return &Registry{presets: out}, nil
}

// Default returns the registry of built-in presets
func Default() *Registry {
	r, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in presets are invalid: %v", err))
	}
	return r
}

// LoadFile reads presets from a TOML file of the form
//
//	[[presets]]
//	id = "gamedev"
//	label = "Game Development"
//	categories = [{ name = "Art", color = "#ec4899" }]
func LoadFile(path string) (*Registry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load preset file %s: %w", path, err)
	}

	var presets []model.Preset
	if err := k.Unmarshal("presets", &presets); err != nil {
		return nil, fmt.Errorf("failed to decode presets in %s: %w", path, err)
	}

	r, err := New(presets)
	if err != nil {
		return nil, fmt.Errorf("invalid presets in %s: %w", path, err)
	}
	return r, nil
}

// Presets returns a copy of all presets in registry order
func (r *Registry) Presets() []model.Preset {
	out := make([]model.Preset, len(r.presets))
	for i, p := range r.presets {
		p.Categories = append([]model.Category(nil), p.Categories...)
		out[i] = p
	}
	return out
}

// Lookup finds a preset by id
func (r *Registry) Lookup(id string) (model.Preset, bool) {
	for _, p := range r.presets {
		if p.ID == id {
			p.Categories = append([]model.Category(nil), p.Categories...)
			return p, true
		}
	}
	return model.Preset{}, false
}

// First returns the first preset, used when no active preset is configured
func (r *Registry) First() model.Preset {
	p := r.presets[0]
	p.Categories = append([]model.Category(nil), p.Categories...)
	return p
}

// Len returns the number of presets
func (r *Registry) Len() int {
	return len(r.presets)
}
