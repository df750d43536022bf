package rest

import (
	"encoding/json"
	"time"

	"taskboard/internal/domain"
)

// taskWire is the decode-side representation of a task. The server is
// inconsistent about field naming: identity and timestamp fields arrive
// capitalized while task data fields arrive in lowercase snake case, and
// older payloads capitalize everything. Both namings are accepted for every
// field here, and nothing past this file ever sees the ambiguity.
type taskWire struct {
	ID      *int64 `json:"id"`
	IDUpper *int64 `json:"ID"`

	Title      *string `json:"title"`
	TitleUpper *string `json:"Title"`

	Description      *string `json:"description"`
	DescriptionUpper *string `json:"Description"`

	Status      *string `json:"status"`
	StatusUpper *string `json:"Status"`

	Priority      *string `json:"priority"`
	PriorityUpper *string `json:"Priority"`

	DueDate      *string `json:"due_date"`
	DueDateUpper *string `json:"DueDate"`

	CreatedAt      *string `json:"created_at"`
	CreatedAtUpper *string `json:"CreatedAt"`
}

// taskRequest is the encode-side representation. Requests always emit the
// canonical lowercase naming; the dual acceptance is decode-only.
type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// errorResponse is the body shape the server uses for failures.
type errorResponse struct {
	Error string `json:"error"`
}

func pickInt64(canonical, legacy *int64) int64 {
	if canonical != nil {
		return *canonical
	}
	if legacy != nil {
		return *legacy
	}
	return 0
}

func pickString(canonical, legacy *string) string {
	if canonical != nil {
		return *canonical
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}

func pickTime(canonical, legacy *string) time.Time {
	if t, ok := domain.ParseDueDate(pickString(canonical, legacy)); ok {
		return t
	}
	return time.Time{}
}

// toDomain collapses the dual-named wire form into the canonical task.
func (w taskWire) toDomain() domain.Task {
	return domain.Task{
		ID:          pickInt64(w.ID, w.IDUpper),
		Title:       pickString(w.Title, w.TitleUpper),
		Description: pickString(w.Description, w.DescriptionUpper),
		Status:      domain.Status(pickString(w.Status, w.StatusUpper)),
		Priority:    domain.Priority(pickString(w.Priority, w.PriorityUpper)),
		DueDate:     pickTime(w.DueDate, w.DueDateUpper),
		CreatedAt:   pickTime(w.CreatedAt, w.CreatedAtUpper),
	}
}

// decodeTask decodes a single task payload in either naming convention.
// An empty body decodes to a zero task; the caller fills in what it knows.
func decodeTask(data []byte) (*domain.Task, error) {
	if len(data) == 0 {
		return &domain.Task{}, nil
	}
	var wire taskWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	task := wire.toDomain()
	return &task, nil
}

// decodeTaskList decodes a task list payload in either naming convention.
func decodeTaskList(data []byte) ([]domain.Task, error) {
	var wires []taskWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, len(wires))
	for i, wire := range wires {
		tasks[i] = wire.toDomain()
	}
	return tasks, nil
}

// encodeDraft serializes a draft with the canonical naming, applying enum
// defaults and due date normalization on the way out.
func encodeDraft(draft domain.Draft, now func() time.Time) ([]byte, error) {
	draft = draft.WithDefaults()
	return json.Marshal(taskRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      string(draft.Status),
		Priority:    string(draft.Priority),
		DueDate:     domain.NormalizeDueDate(draft.DueDate, now),
	})
}

// decodeErrorMessage extracts the server-provided error message from a
// failure body, or returns the empty string.
func decodeErrorMessage(data []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return ""
	}
	return resp.Error
}
