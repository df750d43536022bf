package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

// WatchCommand holds the notification channel open and keeps the board in
// sync, reprinting it after every resynchronization.
type WatchCommand struct {
	board        Board
	session      Session
	notifier     Notifier
	errorHandler *ErrorHandler
	printer      *BoardPrinter
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{
		board:        app.board,
		session:      app.session,
		notifier:     app.notifier,
		errorHandler: NewErrorHandler(),
		printer:      NewBoardPrinter(os.Stdout),
	}
}

// Execute runs the watch command until interrupted.
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	if !c.session.IsAuthenticated() {
		return errors.NewAuthenticationError("You must be logged in to watch the board", nil)
	}

	// Initial load before the channel delivers anything.
	if err := c.board.Refresh(ctx); err != nil && !c.errorHandler.IsNotFoundError(err) {
		return c.errorHandler.Handle("load tasks", err)
	}
	c.printer.PrintBoard(c.board.Tasks(), domain.NewFilter())

	resync := make(chan struct{}, 1)
	c.notifier.OnSignal(func(payload string) {
		// Payload content is opaque; any signal means resynchronize.
		select {
		case resync <- struct{}{}:
		default:
		}
	})
	c.notifier.OnError(func(err error) {
		fmt.Fprintln(os.Stderr, errors.GetUserMessage(err))
	})

	if err := c.notifier.Open(c.session.Token()); err != nil {
		// The channel has a reconnect scheduled; just report and keep waiting.
		fmt.Fprintln(os.Stderr, errors.GetUserMessage(err))
	}
	defer c.notifier.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	fmt.Println("Watching for changes. Press Ctrl-C to stop.")
	for {
		select {
		case <-resync:
			logging.Debugln("watch: change signal received, resynchronizing")
			c.board.HandleChangeSignal()
			c.printer.PrintBoard(c.board.Tasks(), domain.NewFilter())
		case <-interrupt:
			fmt.Println("Stopped watching")
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
