package store

import (
	"slices"

	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/model"
	"github.com/ritzau/taskboard/pkg/preset"
)

// SetFilters merges patch into the active filters. Filters are view state and are
// not recorded in history.
func (s *Store) SetFilters(patch model.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = patch.Apply(s.filters)
	s.changed("setFilters", false)
}

// ClearFilters resets every filter criterion to match everything
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filters.IsDefault() {
		return
	}
	s.filters = model.Filters{}
	s.changed("clearFilters", false)
}

// SetPreset switches the active preset. Task departments that are not categories of
// the new preset are reset to uncategorized and the department filter is cleared.
// The switch is not recorded in history. It returns the preset now active and false
// if id is unknown.
func (s *Store) SetPreset(id string) (model.Preset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presets.Lookup(id)
	if !ok {
		noop("setPreset", "id", id)
		return s.activePresetLocked(), false
	}

	s.activePreset = id
	s.reconcileDepartments()
	s.filters.Departments = nil
	logging.Debug("switched preset", "id", id)
	s.changed("setPreset", false)
	return p, true
}

// ReplacePresets installs a reloaded registry. If the active preset no longer exists
// the first preset becomes active. Departments are reconciled against the result.
func (s *Store) ReplacePresets(registry *preset.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.presets = registry
	if _, ok := registry.Lookup(s.activePreset); !ok {
		fallback := registry.First().ID
		logging.Warn("active preset removed, falling back", "preset", s.activePreset, "using", fallback)
		s.activePreset = fallback
	}

	active := s.activePresetLocked()
	departments := slices.DeleteFunc(slices.Clone(s.filters.Departments), func(name string) bool {
		return !active.HasCategory(name)
	})
	if len(departments) == 0 {
		departments = nil
	}
	s.filters.Departments = departments

	s.reconcileDepartments()
	s.changed("reloadPresets", false)
}

// reconcileDepartments resets every department that is not a category of the active preset
func (s *Store) reconcileDepartments() {
	p := s.activePresetLocked()
	names := p.CategoryNames()

	var nodes []model.Node
	reset := 0
	for i, node := range s.nodes {
		if !node.IsTask() || node.Task.Department == "" || names[node.Task.Department] {
			continue
		}
		if nodes == nil {
			nodes = slices.Clone(s.nodes)
		}
		node = node.Clone()
		node.Task.Department = ""
		nodes[i] = node
		reset++
	}

	if nodes != nil {
		s.nodes = nodes
		logging.Debug("reset departments", "preset", p.ID, "count", reset)
	}
}

// scopeDepartment drops a department from patch unless the active preset defines it
func (s *Store) scopeDepartment(patch model.TaskPatch) model.TaskPatch {
	if patch.Department == nil || *patch.Department == "" {
		return patch
	}
	p := s.activePresetLocked()
	if !p.HasCategory(*patch.Department) {
		noop("department", "department", *patch.Department, "preset", p.ID)
		patch.Department = nil
	}
	return patch
}
