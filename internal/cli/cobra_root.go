package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    app,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "tb",
		Short: "A command-line task board client with live synchronization",
		Long: `Task Board (tb) is a command-line client for a shared task board server.

FEATURES:
  • Log in, register and log out against the board server
  • List tasks as status columns, filtered by status or due date
  • Add, edit, move and delete tasks
  • Watch mode: stays connected to the server's push channel and
    resynchronizes the board whenever anything changes

EXAMPLES:
  tb login alice@example.com               # Log in (password prompted)
  tb list                                  # Show the board
  tb list --status Completed               # Only the Completed column
  tb list --due 2024-03-15                 # Only tasks due that day
  tb add "Ship the release" --priority High --due 2024-03-15
  tb move 7 In-Progress                    # Drag a task to another column
  tb delete 7                              # Remove a task
  tb watch                                 # Follow live changes

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Server Configuration:
    TB_API_BASE_URL                        Board server URL (default: http://localhost:8080)
    TB_API_TIMEOUT                         Request timeout (default: 10s)

  Channel Configuration:
    TB_CHANNEL_RECONNECT_DELAY             Delay before reconnecting the push channel (default: 5s)
    TB_CHANNEL_HANDSHAKE_TIMEOUT           Websocket handshake timeout (default: 10s)

  Sync Configuration:
    TB_SYNC_REFRESH_DELAY                  Delay before the post-create refresh (default: 300ms)

  Credential Store Configuration:
    TB_DB_DIR                              Credential database directory (default: ~/.tb)
    TB_DB_FILENAME                         Credential database filename (default: tb.db)

  Application Configuration:
    TB_APP_TIMEOUT                         Application timeout (default: 60s)
    TB_APP_VERBOSE                         Enable verbose output (default: false)

GETTING HELP:
  tb [command] --help                      # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("api-url", "", "Board server base URL (overrides TB_API_BASE_URL)")
	flags.Duration("api-timeout", 0, "Request timeout (overrides TB_API_TIMEOUT)")
	flags.Duration("reconnect-delay", 0, "Push channel reconnect delay (overrides TB_CHANNEL_RECONNECT_DELAY)")
	flags.Duration("refresh-delay", 0, "Post-create refresh delay (overrides TB_SYNC_REFRESH_DELAY)")
	flags.String("db-dir", "", "Credential database directory (overrides TB_DB_DIR)")
	flags.String("db-filename", "", "Credential database filename (overrides TB_DB_FILENAME)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides TB_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TB_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in to the board server",
		Long:  "Authenticate against the board server and store the session credential locally.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewLoginCommand(r.app, loginPassword).Execute(ctx, args)
		},
	}
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")

	var registerPassword string
	registerCmd := &cobra.Command{
		Use:   "register <email> <name>",
		Short: "Create an account on the board server",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewRegisterCommand(r.app, registerPassword).Execute(ctx, args)
		},
	}
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (prompted when omitted)")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewLogoutCommand(r.app).Execute(ctx, args)
		},
	}

	var listStatus, listDue string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the task board",
		Long: `Fetch the authoritative task list and render it as status columns.

Examples:
  tb list                        # Whole board
  tb list --status In-Progress   # One column
  tb list --due 2024-03-15       # Tasks due on a calendar day`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewListCommand(r.app, listStatus, listDue).Execute(ctx, args)
		},
	}
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (Pending, In-Progress, Completed)")
	listCmd.Flags().StringVar(&listDue, "due", "", "Filter by due date (YYYY-MM-DD)")

	var addDescription, addPriority, addDue string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewAddCommand(r.app, addDescription, addPriority, addDue).Execute(ctx, args)
		},
	}
	addCmd.Flags().StringVar(&addDescription, "desc", "", "Task description")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "Priority (Low, Medium, High, Critical)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")

	var editTitle, editDescription, editStatus, editPriority, editDue string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewEditCommand(r.app, editTitle, editDescription, editStatus, editPriority, editDue).Execute(ctx, args)
		},
	}
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editDescription, "desc", "", "New description")
	editCmd.Flags().StringVar(&editStatus, "status", "", "New status (Pending, In-Progress, Completed)")
	editCmd.Flags().StringVar(&editPriority, "priority", "", "New priority (Low, Medium, High, Critical)")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date (YYYY-MM-DD)")

	moveCmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another status column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewMoveCommand(r.app).Execute(ctx, args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task on the server. The local board entry is removed only after the server confirms.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow live board changes",
		Long: `Hold the server's push channel open and resynchronize the board whenever
a change signal arrives. Lost connections are retried automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Watch runs until interrupted, so no timeout here.
			return NewWatchCommand(r.app).Execute(context.Background(), args)
		},
	}

	r.cmd.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		listCmd,
		addCmd,
		editCmd,
		moveCmd,
		deleteCmd,
		watchCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if apiURL, _ := flags.GetString("api-url"); apiURL != "" {
		r.config.API.BaseURL = apiURL
	}
	if apiTimeout, _ := flags.GetDuration("api-timeout"); apiTimeout > 0 {
		r.config.API.RequestTimeout = apiTimeout
	}
	if reconnectDelay, _ := flags.GetDuration("reconnect-delay"); reconnectDelay > 0 {
		r.config.Channel.ReconnectDelay = reconnectDelay
	}
	if refreshDelay, _ := flags.GetDuration("refresh-delay"); refreshDelay > 0 {
		r.config.Sync.PostCreateRefreshDelay = refreshDelay
	}
	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}
