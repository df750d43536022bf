package cli

import (
	"fmt"
	"io"

	"taskboard/internal/domain"
)

// BoardPrinter renders the task collection as status columns, the text
// stand-in for the board view.
type BoardPrinter struct {
	out io.Writer
}

// NewBoardPrinter creates a board printer writing to the given output
func NewBoardPrinter(out io.Writer) *BoardPrinter {
	return &BoardPrinter{out: out}
}

// PrintBoard prints the filtered tasks grouped by status column.
func (p *BoardPrinter) PrintBoard(tasks []domain.Task, filter domain.Filter) {
	filtered := filter.Apply(tasks)
	if len(filtered) == 0 {
		fmt.Fprintln(p.out, "No tasks found")
		return
	}

	byStatus := make(map[domain.Status][]domain.Task)
	for _, task := range filtered {
		byStatus[task.Status] = append(byStatus[task.Status], task)
	}

	for _, status := range domain.Statuses() {
		column := byStatus[status]
		if len(column) == 0 {
			continue
		}
		fmt.Fprintf(p.out, "%s (%d)\n", status, len(column))
		for _, task := range column {
			p.printTask(task)
		}
	}
}

// printTask prints one task line: id, title, priority and due date.
func (p *BoardPrinter) printTask(task domain.Task) {
	line := fmt.Sprintf("  #%d %s [%s]", task.ID, task.Title, task.Priority)
	if !task.DueDate.IsZero() {
		line += " due " + task.DueDate.Format("2006-01-02")
	}
	fmt.Fprintln(p.out, line)
}
