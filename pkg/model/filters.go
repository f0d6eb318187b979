package model

// Filters narrows which task cards are highlighted. The zero value matches everything.
type Filters struct {
	Departments []string `json:"departments"`        // empty = all
	Priority    Priority `json:"priority,omitempty"` // "" = all
	Assignee    string   `json:"assignee"`           // case-insensitive substring, "" = all
	Search      string   `json:"search"`             // case-insensitive substring over title/assignee
}

// IsDefault reports whether every criterion is at its match-all value
func (f Filters) IsDefault() bool {
	return len(f.Departments) == 0 && f.Priority == "" && f.Assignee == "" && f.Search == ""
}

// Clone returns a copy that shares no memory with f
func (f Filters) Clone() Filters {
	if f.Departments != nil {
		f.Departments = append([]string(nil), f.Departments...)
	}
	return f
}

// FilterPatch is a partial filter update. Nil fields are left untouched.
// An empty Priority clears the priority criterion.
type FilterPatch struct {
	Departments *[]string `json:"departments,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Assignee    *string   `json:"assignee,omitempty"`
	Search      *string   `json:"search,omitempty"`
}

// Apply merges the patch over f and returns the result
func (p FilterPatch) Apply(f Filters) Filters {
	out := f.Clone()
	if p.Departments != nil {
		out.Departments = append([]string{}, (*p.Departments)...)
	}
	if p.Priority != nil && (*p.Priority == "" || p.Priority.Valid()) {
		out.Priority = *p.Priority
	}
	if p.Assignee != nil {
		out.Assignee = *p.Assignee
	}
	if p.Search != nil {
		out.Search = *p.Search
	}
	return out
}
