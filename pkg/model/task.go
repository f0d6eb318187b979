package model

import "time"

// Priority of a task card
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the optional board column of a task. The zero value means unset.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is unset or one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case "", StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPatch is a partial update of TaskData. Nil fields are left untouched.
type TaskPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Priority     *Priority  `json:"priority,omitempty"`
	Department   *string    `json:"department,omitempty"`
	Labels       *[]Label   `json:"labels,omitempty"`
	Assignee     *string    `json:"assignee,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClearDueDate bool       `json:"clearDueDate,omitempty"`
	Status       *Status    `json:"status,omitempty"`
}

// Apply shallow-merges the patch over t and returns the result. t is not modified.
// Invalid enum values in the patch are ignored.
func (p TaskPatch) Apply(t TaskData) TaskData {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Priority != nil && p.Priority.Valid() {
		out.Priority = *p.Priority
	}
	if p.Department != nil {
		out.Department = *p.Department
	}
	if p.Labels != nil {
		out.Labels = append([]Label{}, (*p.Labels)...)
	}
	if p.Assignee != nil {
		out.Assignee = *p.Assignee
	}
	if p.ClearDueDate {
		out.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		out.DueDate = &d
	}
	if p.Status != nil && p.Status.Valid() {
		out.Status = *p.Status
	}
	return out
}
