package cli

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	board        Board
	errorHandler *ErrorHandler

	description string
	priority    string
	dueDate     string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, description, priority, dueDate string) *AddCommand {
	return &AddCommand{
		board:        app.board,
		errorHandler: NewErrorHandler(),
		description:  description,
		priority:     priority,
		dueDate:      dueDate,
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: tb add <title>", nil)
	}

	draft := domain.NewDraft(strings.Join(args, " "))
	draft.Description = c.description
	draft.DueDate = c.dueDate
	if c.priority != "" {
		draft.Priority = domain.Priority(c.priority)
	}

	task, err := c.board.CreateTask(ctx, draft)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	fmt.Printf("Created task #%d: %s\n", task.ID, task.Title)
	return nil
}
