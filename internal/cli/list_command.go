package cli

import (
	"context"
	"fmt"
	"os"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	board        Board
	errorHandler *ErrorHandler
	printer      *BoardPrinter

	statusFilter string
	dueFilter    string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, statusFilter, dueFilter string) *ListCommand {
	return &ListCommand{
		board:        app.board,
		errorHandler: NewErrorHandler(),
		printer:      NewBoardPrinter(os.Stdout),
		statusFilter: statusFilter,
		dueFilter:    dueFilter,
	}
}

// Execute runs the list command: refresh, then render the filtered board.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	filter, err := c.buildFilter()
	if err != nil {
		return err
	}

	if err := c.board.Refresh(ctx); err != nil {
		if c.errorHandler.IsNotFoundError(err) {
			fmt.Println("No tasks yet. Create one with: tb add <title>")
			return nil
		}
		return c.errorHandler.Handle("list tasks", err)
	}

	c.printer.PrintBoard(c.board.Tasks(), filter)
	return nil
}

// buildFilter converts the flag values to a domain filter.
func (c *ListCommand) buildFilter() (domain.Filter, error) {
	filter := domain.NewFilter()

	if c.statusFilter != "" {
		status := domain.Status(c.statusFilter)
		if !status.IsValid() {
			return filter, errors.NewValidationError(
				fmt.Sprintf("unknown status %q: use Pending, In-Progress or Completed", c.statusFilter), nil)
		}
		filter = filter.WithStatus(status)
	}

	if c.dueFilter != "" {
		day, ok := domain.ParseDueDate(c.dueFilter)
		if !ok {
			return filter, errors.NewValidationError(
				fmt.Sprintf("unparsable due date %q: use YYYY-MM-DD", c.dueFilter), nil)
		}
		filter = filter.WithDueDate(day)
	}

	return filter, nil
}
