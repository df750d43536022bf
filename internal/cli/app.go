package cli

import (
	"context"

	"taskboard/internal/config"
	"taskboard/internal/domain"
)

// Board is the slice of the reconciliation engine the commands consume.
type Board interface {
	Refresh(ctx context.Context) error
	CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error)
	UpdateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status domain.Status) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	HandleChangeSignal()
	Tasks() []domain.Task
}

// Session is the slice of the credential store the commands consume.
type Session interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Logout()
	IsAuthenticated() bool
	Token() string
	CurrentUser() *domain.User
}

// Notifier is the slice of the notification channel the watch command
// consumes.
type Notifier interface {
	OnSignal(fn func(payload string))
	OnError(fn func(err error))
	Open(token string) error
	Close()
}

// App bundles the dependencies every command handler draws from.
type App struct {
	board    Board
	session  Session
	notifier Notifier
	config   *config.Config
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(board Board, session Session, notifier Notifier, cfg *config.Config) *App {
	return &App{
		board:    board,
		session:  session,
		notifier: notifier,
		config:   cfg,
	}
}
