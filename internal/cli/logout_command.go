package cli

import (
	"context"
	"fmt"
)

// LogoutCommand handles the logout command
type LogoutCommand struct {
	session Session
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{session: app.session}
}

// Execute runs the logout command. Logout is purely local; no network call.
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	c.session.Logout()
	fmt.Println("Logged out")
	return nil
}
