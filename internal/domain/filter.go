package domain

import (
	"time"
)

// Filter is a pure projection over a task list. It never mutates the
// underlying collection; presentation owns it.
type Filter struct {
	Status  *Status
	DueDate *time.Time
}

// NewFilter creates an empty filter matching every task.
func NewFilter() Filter {
	return Filter{}
}

// WithStatus returns a copy of the filter restricted to one status.
func (f Filter) WithStatus(s Status) Filter {
	f.Status = &s
	return f
}

// WithDueDate returns a copy of the filter restricted to one calendar day.
func (f Filter) WithDueDate(day time.Time) Filter {
	f.DueDate = &day
	return f
}

// Matches reports whether a task passes the filter.
func (f Filter) Matches(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.DueDate != nil && !SameCalendarDay(t.DueDate, *f.DueDate) {
		return false
	}
	return true
}

// Apply returns the tasks passing the filter, preserving input order.
func (f Filter) Apply(tasks []Task) []Task {
	if f.Status == nil && f.DueDate == nil {
		return tasks
	}
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
