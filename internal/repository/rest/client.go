package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/logging"
	"taskboard/internal/validation"
)

// TokenSource supplies the current bearer token for authenticated calls.
// The session store implements this.
type TokenSource interface {
	Token() string
}

// Client performs task CRUD against the remote API. All responses pass
// through the wire codec, so callers only ever see canonical domain tasks.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	taskValidator  *validation.TaskValidator
	onUnauthorized func()
	now            func() time.Time
}

// New creates a new task repository client.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		tokens:        tokens,
		taskValidator: validation.NewTaskValidator(),
		now:           time.Now,
	}
}

// SetUnauthorizedHook installs a callback invoked whenever any call
// receives a 401, before the error is returned. Wiring installs the
// session store's Logout here so a rejected token is never reused.
func (c *Client) SetUnauthorizedHook(hook func()) {
	c.onUnauthorized = hook
}

// List fetches every task. A 404 means the user has no tasks yet and is
// reported as a distinct not-found condition rather than a hard failure.
func (c *Client) List(ctx context.Context) ([]domain.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/tasks", nil, "list tasks")
	if err != nil {
		return nil, err
	}

	tasks, err := decodeTaskList(body)
	if err != nil {
		return nil, errors.NewRepositoryError("decode task list", 0, err)
	}
	return tasks, nil
}

// Create submits a new task and returns the authoritative copy with the
// server-assigned ID and creation timestamp.
func (c *Client) Create(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	if err := c.taskValidator.ValidateDraftForCreation(draft); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	payload, err := encodeDraft(draft, c.now)
	if err != nil {
		return nil, errors.NewRepositoryError("encode task", 0, err)
	}

	body, err := c.do(ctx, http.MethodPost, "/api/tasks", payload, "create task")
	if err != nil {
		return nil, err
	}

	task, err := decodeTask(body)
	if err != nil {
		return nil, errors.NewRepositoryError("decode created task", 0, err)
	}
	return task, nil
}

// Update replaces an existing task and returns the authoritative copy.
func (c *Client) Update(ctx context.Context, id int64, draft domain.Draft) (*domain.Task, error) {
	draft.ID = id
	if err := c.taskValidator.ValidateDraftForUpdate(draft); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	payload, err := encodeDraft(draft, c.now)
	if err != nil {
		return nil, errors.NewRepositoryError("encode task", 0, err)
	}

	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), payload, "update task")
	if err != nil {
		return nil, err
	}

	task, err := decodeTask(body)
	if err != nil {
		return nil, errors.NewRepositoryError("decode updated task", 0, err)
	}
	if task.ID == 0 {
		// Some server versions return an empty body on update.
		task.ID = id
	}
	return task, nil
}

// Delete removes a task by ID.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task id", err)
	}

	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, "delete task")
	return err
}

// do issues one authenticated request and maps the response to the error
// taxonomy: 401 fires the unauthorized hook, 404 becomes not-found, any
// other non-2xx becomes a repository error carrying the HTTP status.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, operation string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, errors.NewRepositoryError(operation, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewRepositoryError(operation, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewRepositoryError(operation, resp.StatusCode, err)
	}

	logging.Debugf("rest: %s %s -> %d\n", method, path, resp.StatusCode)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, errors.NewUnauthorizedError(operation)
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NewNotFoundError("tasks", path)
	default:
		cause := fmt.Errorf("server responded %d", resp.StatusCode)
		if message := decodeErrorMessage(body); message != "" {
			cause = fmt.Errorf("server responded %d: %s", resp.StatusCode, message)
		}
		return nil, errors.NewRepositoryError(operation, resp.StatusCode, cause)
	}
}
