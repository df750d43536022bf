package domain

import (
	"strings"
	"time"
)

// Status represents the board column a task lives in.
// Exactly one status value applies to a task at any time.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In-Progress"
	StatusCompleted  Status = "Completed"
)

// IsValid checks if the status is one of the known board columns.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Statuses returns all statuses in board column order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// IsValid checks if the priority is one of the known levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task represents a task in the domain model.
// The ID and CreatedAt are server-assigned and immutable once created.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     time.Time
	CreatedAt   time.Time
}

// IsValid checks if the task has valid data for submission.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && t.Status.IsValid() && t.Priority.IsValid()
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
