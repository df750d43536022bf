package cli

import (
	"context"
	"fmt"
	"strconv"

	"taskboard/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	board        Board
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		board:        app.board,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: tb delete <id>", nil)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid task id %q", args[0]), err)
	}

	if err := c.board.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	fmt.Printf("Task #%d deleted\n", id)
	return nil
}
