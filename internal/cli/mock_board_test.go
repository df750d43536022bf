package cli

import (
	"context"

	"taskboard/internal/domain"
)

// mockBoard implements the Board interface for testing
type mockBoard struct {
	tasks []domain.Task

	refreshErr     error
	refreshCalls   int
	refreshedTasks []domain.Task

	createResult *domain.Task
	createErr    error
	createdDraft domain.Draft
	createCalls  int

	updateResult *domain.Task
	updateErr    error
	updatedDraft domain.Draft

	moveResult *domain.Task
	moveErr    error
	movedID    int64
	movedTo    domain.Status

	deleteErr   error
	deletedID   int64
	deleteCalls int

	signalCalls int
}

func (m *mockBoard) Refresh(ctx context.Context) error {
	m.refreshCalls++
	if m.refreshErr != nil {
		return m.refreshErr
	}
	if m.refreshedTasks != nil {
		m.tasks = m.refreshedTasks
	}
	return nil
}

func (m *mockBoard) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	m.createCalls++
	m.createdDraft = draft
	return m.createResult, m.createErr
}

func (m *mockBoard) UpdateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	m.updatedDraft = draft
	return m.updateResult, m.updateErr
}

func (m *mockBoard) UpdateTaskStatus(ctx context.Context, id int64, status domain.Status) (*domain.Task, error) {
	m.movedID = id
	m.movedTo = status
	return m.moveResult, m.moveErr
}

func (m *mockBoard) DeleteTask(ctx context.Context, id int64) error {
	m.deleteCalls++
	m.deletedID = id
	return m.deleteErr
}

func (m *mockBoard) HandleChangeSignal() {
	m.signalCalls++
}

func (m *mockBoard) Tasks() []domain.Task {
	return m.tasks
}

// mockSession implements the Session interface for testing
type mockSession struct {
	loginResult    *domain.User
	loginErr       error
	loginEmail     string
	loginPassword  string
	registerResult *domain.User
	registerErr    error
	logoutCalls    int
	authenticated  bool
	token          string
	user           *domain.User
}

func (m *mockSession) Login(ctx context.Context, email, password string) (*domain.User, error) {
	m.loginEmail = email
	m.loginPassword = password
	return m.loginResult, m.loginErr
}

func (m *mockSession) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return m.registerResult, m.registerErr
}

func (m *mockSession) Logout() {
	m.logoutCalls++
	m.authenticated = false
}

func (m *mockSession) IsAuthenticated() bool { return m.authenticated }
func (m *mockSession) Token() string         { return m.token }
func (m *mockSession) CurrentUser() *domain.User {
	return m.user
}

// mockNotifier implements the Notifier interface for testing
type mockNotifier struct {
	onSignal   func(payload string)
	onError    func(err error)
	openErr    error
	openToken  string
	openCalls  int
	closeCalls int
}

func (m *mockNotifier) OnSignal(fn func(payload string)) { m.onSignal = fn }
func (m *mockNotifier) OnError(fn func(err error))       { m.onError = fn }

func (m *mockNotifier) Open(token string) error {
	m.openCalls++
	m.openToken = token
	return m.openErr
}

func (m *mockNotifier) Close() { m.closeCalls++ }

func newTestApp(board *mockBoard, session *mockSession, notifier *mockNotifier) *App {
	if board == nil {
		board = &mockBoard{}
	}
	if session == nil {
		session = &mockSession{}
	}
	if notifier == nil {
		notifier = &mockNotifier{}
	}
	return NewApp(board, session, notifier, nil)
}
