package lens

import (
	"strings"

	"github.com/ritzau/taskboard/pkg/model"
)

// VisibleIDs returns the IDs of nodes matching the filters. Group nodes always match.
// With every criterion at its match-all value the full ID set is returned without
// evaluating individual nodes.
func VisibleIDs(nodes []model.Node, filters model.Filters) map[string]bool {
	visible := make(map[string]bool, len(nodes))

	if filters.IsDefault() {
		for _, node := range nodes {
			visible[node.ID] = true
		}
		return visible
	}

	m := newMatcher(filters)
	for _, node := range nodes {
		if !node.IsTask() || m.matches(node.Task) {
			visible[node.ID] = true
		}
	}

	return visible
}

// matcher holds the filter criteria pre-normalised for case-insensitive matching
type matcher struct {
	departments map[string]bool
	priority    model.Priority
	assignee    string
	search      string
}

func newMatcher(f model.Filters) *matcher {
	m := &matcher{
		priority: f.Priority,
		assignee: strings.ToLower(f.Assignee),
		search:   strings.ToLower(f.Search),
	}
	if len(f.Departments) > 0 {
		m.departments = make(map[string]bool, len(f.Departments))
		for _, d := range f.Departments {
			m.departments[d] = true
		}
	}
	return m
}

func (m *matcher) matches(task *model.TaskData) bool {
	if m.departments != nil && !m.departments[task.Department] {
		return false
	}
	if m.priority != "" && task.Priority != m.priority {
		return false
	}

	assignee := strings.ToLower(task.Assignee)
	if m.assignee != "" && !strings.Contains(assignee, m.assignee) {
		return false
	}
	if m.search != "" &&
		!strings.Contains(strings.ToLower(task.Title), m.search) &&
		!strings.Contains(assignee, m.search) {
		return false
	}

	return true
}
