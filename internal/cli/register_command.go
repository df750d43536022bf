package cli

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/errors"
)

// RegisterCommand handles the register command
type RegisterCommand struct {
	session      Session
	errorHandler *ErrorHandler
	password     string
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App, password string) *RegisterCommand {
	return &RegisterCommand{
		session:      app.session,
		errorHandler: NewErrorHandler(),
		password:     password,
	}
}

// Execute runs the register command
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewValidationError("usage: tb register <email> <name>", nil)
	}
	email := args[0]
	name := strings.Join(args[1:], " ")

	password := c.password
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	user, err := c.session.Register(ctx, email, password, name)
	if err != nil {
		return c.errorHandler.Handle("register", err)
	}

	fmt.Printf("Registered and logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}
