package domain

// Draft holds the user-provided fields of a task before the server has
// confirmed it. The due date stays a raw string here; it is normalized at
// the repository boundary just before transmission.
type Draft struct {
	ID          int64 // zero for creation, required for update
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     string
}

// NewDraft creates a Draft with the defaults applied to unset enum fields.
func NewDraft(title string) Draft {
	return Draft{
		Title:    title,
		Status:   StatusPending,
		Priority: PriorityMedium,
	}
}

// WithDefaults returns a copy of the draft with empty enum fields filled in.
func (d Draft) WithDefaults() Draft {
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

// DraftFromTask builds an update draft carrying every field of an existing
// task. Used when only one field changes but the server expects a full
// update payload.
func DraftFromTask(t Task) Draft {
	return Draft{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     FormatDueDate(t.DueDate),
	}
}
