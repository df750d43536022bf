package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	board        Board
	errorHandler *ErrorHandler

	title       string
	description string
	status      string
	priority    string
	dueDate     string
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, title, description, status, priority, dueDate string) *EditCommand {
	return &EditCommand{
		board:        app.board,
		errorHandler: NewErrorHandler(),
		title:        title,
		description:  description,
		status:       status,
		priority:     priority,
		dueDate:      dueDate,
	}
}

// Execute runs the edit command. Flags override their field; everything
// else is carried over from the task as currently known.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: tb edit <id> [flags]", nil)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid task id %q", args[0]), err)
	}

	existing, ok := c.findTask(ctx, id)
	if !ok {
		return errors.NewNotFoundError("task", args[0])
	}

	draft := domain.DraftFromTask(existing)
	if c.title != "" {
		draft.Title = strings.TrimSpace(c.title)
	}
	if c.description != "" {
		draft.Description = c.description
	}
	if c.status != "" {
		draft.Status = domain.Status(c.status)
	}
	if c.priority != "" {
		draft.Priority = domain.Priority(c.priority)
	}
	if c.dueDate != "" {
		draft.DueDate = c.dueDate
	}

	task, err := c.board.UpdateTask(ctx, draft)
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}

	fmt.Printf("Updated task #%d: %s\n", task.ID, task.Title)
	return nil
}

// findTask looks a task up by ID, refreshing the collection once when it
// is not yet known locally.
func (c *EditCommand) findTask(ctx context.Context, id int64) (domain.Task, bool) {
	if task, ok := lookupTask(c.board.Tasks(), id); ok {
		return task, true
	}
	if err := c.board.Refresh(ctx); err != nil {
		return domain.Task{}, false
	}
	return lookupTask(c.board.Tasks(), id)
}

// lookupTask finds a task by ID in a snapshot slice.
func lookupTask(tasks []domain.Task, id int64) (domain.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}
