package cli

import (
	"context"
	"fmt"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// MoveCommand handles the move command, the drag-and-drop equivalent:
// it changes only a task's status column.
type MoveCommand struct {
	board        Board
	errorHandler *ErrorHandler
}

// NewMoveCommand creates a new move command handler
func NewMoveCommand(app *App) *MoveCommand {
	return &MoveCommand{
		board:        app.board,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the move command
func (c *MoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewValidationError("usage: tb move <id> <Pending|In-Progress|Completed>", nil)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid task id %q", args[0]), err)
	}

	status := domain.Status(args[1])
	if !status.IsValid() {
		return errors.NewValidationError(
			fmt.Sprintf("unknown status %q: use Pending, In-Progress or Completed", args[1]), nil)
	}

	// Make sure the task is known locally before attempting the move.
	if _, ok := lookupTask(c.board.Tasks(), id); !ok {
		if err := c.board.Refresh(ctx); err != nil {
			return c.errorHandler.Handle("move task", err)
		}
	}

	task, err := c.board.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return c.errorHandler.Handle("move task", err)
	}
	if task == nil {
		fmt.Printf("Task #%d not found, nothing moved\n", id)
		return nil
	}

	fmt.Printf("Task #%d moved to %s\n", task.ID, task.Status)
	return nil
}
