package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"taskboard/internal/errors"
)

// LoginCommand handles the login command
type LoginCommand struct {
	session      Session
	errorHandler *ErrorHandler
	password     string
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App, password string) *LoginCommand {
	return &LoginCommand{
		session:      app.session,
		errorHandler: NewErrorHandler(),
		password:     password,
	}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: tb login <email>", nil)
	}
	email := args[0]

	password := c.password
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	user, err := c.session.Login(ctx, email, password)
	if err != nil {
		return c.errorHandler.Handle("log in", err)
	}

	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

// promptPassword reads a password from standard input.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.NewValidationError("could not read password", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
