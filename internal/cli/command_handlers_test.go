package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

func TestAddCommand_Execute(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		description    string
		priority       string
		dueDate        string
		createResult   *domain.Task
		createErr      error
		wantDraft      domain.Draft
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:         "should create a task from joined args",
			args:         []string{"Buy", "milk"},
			createResult: &domain.Task{ID: 9, Title: "Buy milk"},
			wantDraft: domain.Draft{
				Title: "Buy milk", Status: domain.StatusPending, Priority: domain.PriorityMedium,
			},
		},
		{
			name:         "should carry flags into the draft",
			args:         []string{"Ship", "release"},
			description:  "cut the tag",
			priority:     "High",
			dueDate:      "2024-03-15",
			createResult: &domain.Task{ID: 10, Title: "Ship release"},
			wantDraft: domain.Draft{
				Title: "Ship release", Description: "cut the tag",
				Status: domain.StatusPending, Priority: domain.PriorityHigh,
				DueDate: "2024-03-15",
			},
		},
		{
			name: "should reject a call without a title",
			args: []string{},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name:      "should translate board failures",
			args:      []string{"Buy", "milk"},
			createErr: errors.NewAuthenticationError("You must be logged in to create tasks", nil),
			errorAssertion: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "logged in")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := &mockBoard{createResult: tt.createResult, createErr: tt.createErr}
			app := newTestApp(board, nil, nil)
			cmd := NewAddCommand(app, tt.description, tt.priority, tt.dueDate)

			err := cmd.Execute(context.Background(), tt.args)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantDraft, board.createdDraft)
			}
		})
	}
}

func TestListCommand_Execute(t *testing.T) {
	t.Run("should refresh before rendering", func(t *testing.T) {
		board := &mockBoard{
			refreshedTasks: []domain.Task{{ID: 1, Title: "a", Status: domain.StatusPending}},
		}
		app := newTestApp(board, nil, nil)

		err := NewListCommand(app, "", "").Execute(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, board.refreshCalls)
	})

	t.Run("should treat an empty board as a normal outcome", func(t *testing.T) {
		board := &mockBoard{refreshErr: errors.NewNotFoundError("tasks", "/api/tasks")}
		app := newTestApp(board, nil, nil)

		err := NewListCommand(app, "", "").Execute(context.Background(), nil)

		assert.NoError(t, err)
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		board := &mockBoard{}
		app := newTestApp(board, nil, nil)

		err := NewListCommand(app, "Done", "").Execute(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Done")
		assert.Equal(t, 0, board.refreshCalls)
	})

	t.Run("should reject an unparsable due filter", func(t *testing.T) {
		app := newTestApp(&mockBoard{}, nil, nil)

		err := NewListCommand(app, "", "someday").Execute(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "someday")
	})

	t.Run("should surface repository failures", func(t *testing.T) {
		board := &mockBoard{refreshErr: errors.NewRepositoryError("list tasks", 500, nil)}
		app := newTestApp(board, nil, nil)

		err := NewListCommand(app, "", "").Execute(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unavailable")
	})
}

func TestMoveCommand_Execute(t *testing.T) {
	existing := domain.Task{ID: 7, Title: "a", Status: domain.StatusPending}

	t.Run("should move a locally known task", func(t *testing.T) {
		moved := existing
		moved.Status = domain.StatusCompleted
		board := &mockBoard{tasks: []domain.Task{existing}, moveResult: &moved}
		app := newTestApp(board, nil, nil)

		err := NewMoveCommand(app).Execute(context.Background(), []string{"7", "Completed"})

		require.NoError(t, err)
		assert.Equal(t, int64(7), board.movedID)
		assert.Equal(t, domain.StatusCompleted, board.movedTo)
		assert.Equal(t, 0, board.refreshCalls)
	})

	t.Run("should refresh once for an unknown task", func(t *testing.T) {
		moved := existing
		moved.Status = domain.StatusCompleted
		board := &mockBoard{
			refreshedTasks: []domain.Task{existing},
			moveResult:     &moved,
		}
		app := newTestApp(board, nil, nil)

		err := NewMoveCommand(app).Execute(context.Background(), []string{"7", "Completed"})

		require.NoError(t, err)
		assert.Equal(t, 1, board.refreshCalls)
	})

	t.Run("should report a vanished task without failing", func(t *testing.T) {
		board := &mockBoard{} // UpdateTaskStatus returns nil, nil
		app := newTestApp(board, nil, nil)

		err := NewMoveCommand(app).Execute(context.Background(), []string{"7", "Completed"})

		assert.NoError(t, err)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		app := newTestApp(&mockBoard{}, nil, nil)

		err := NewMoveCommand(app).Execute(context.Background(), []string{"7", "Done"})

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})

	t.Run("should reject a non-numeric id", func(t *testing.T) {
		app := newTestApp(&mockBoard{}, nil, nil)

		err := NewMoveCommand(app).Execute(context.Background(), []string{"seven", "Completed"})

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})
}

func TestEditCommand_Execute(t *testing.T) {
	existing := domain.Task{
		ID: 7, Title: "old title", Description: "keep me",
		Status: domain.StatusPending, Priority: domain.PriorityMedium,
		DueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	t.Run("should override only the flagged fields", func(t *testing.T) {
		updated := existing
		updated.Title = "new title"
		board := &mockBoard{tasks: []domain.Task{existing}, updateResult: &updated}
		app := newTestApp(board, nil, nil)

		err := NewEditCommand(app, "new title", "", "", "", "").Execute(context.Background(), []string{"7"})

		require.NoError(t, err)
		assert.Equal(t, "new title", board.updatedDraft.Title)
		assert.Equal(t, "keep me", board.updatedDraft.Description)
		assert.Equal(t, domain.StatusPending, board.updatedDraft.Status)
		assert.Equal(t, "2024-03-15T00:00:00Z", board.updatedDraft.DueDate)
	})

	t.Run("should return not found for an unknown task", func(t *testing.T) {
		board := &mockBoard{}
		app := newTestApp(board, nil, nil)

		err := NewEditCommand(app, "x", "", "", "", "").Execute(context.Background(), []string{"99"})

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.Equal(t, 1, board.refreshCalls)
	})
}

func TestDeleteCommand_Execute(t *testing.T) {
	t.Run("should delete by id", func(t *testing.T) {
		board := &mockBoard{}
		app := newTestApp(board, nil, nil)

		err := NewDeleteCommand(app).Execute(context.Background(), []string{"7"})

		require.NoError(t, err)
		assert.Equal(t, int64(7), board.deletedID)
	})

	t.Run("should translate board failures", func(t *testing.T) {
		board := &mockBoard{deleteErr: errors.NewRepositoryError("delete task", 500, nil)}
		app := newTestApp(board, nil, nil)

		err := NewDeleteCommand(app).Execute(context.Background(), []string{"7"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete task")
	})

	t.Run("should reject a non-numeric id", func(t *testing.T) {
		board := &mockBoard{}
		app := newTestApp(board, nil, nil)

		err := NewDeleteCommand(app).Execute(context.Background(), []string{"x"})

		require.Error(t, err)
		assert.Equal(t, 0, board.deleteCalls)
	})
}

func TestLoginCommand_Execute(t *testing.T) {
	t.Run("should log in with the flag-provided password", func(t *testing.T) {
		session := &mockSession{
			loginResult: &domain.User{ID: 1, Email: "alice@example.com", Name: "Alice"},
		}
		app := newTestApp(nil, session, nil)

		err := NewLoginCommand(app, "hunter2").Execute(context.Background(), []string{"alice@example.com"})

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", session.loginEmail)
		assert.Equal(t, "hunter2", session.loginPassword)
	})

	t.Run("should surface authentication failures", func(t *testing.T) {
		session := &mockSession{
			loginErr: errors.NewAuthenticationError("Invalid email or password", nil),
		}
		app := newTestApp(nil, session, nil)

		err := NewLoginCommand(app, "wrong").Execute(context.Background(), []string{"alice@example.com"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("should require an email argument", func(t *testing.T) {
		app := newTestApp(nil, &mockSession{}, nil)

		err := NewLoginCommand(app, "hunter2").Execute(context.Background(), nil)

		assert.Error(t, err)
	})
}

func TestRegisterCommand_Execute(t *testing.T) {
	session := &mockSession{
		registerResult: &domain.User{ID: 1, Email: "alice@example.com", Name: "Alice"},
	}
	app := newTestApp(nil, session, nil)

	err := NewRegisterCommand(app, "hunter2").Execute(context.Background(), []string{"alice@example.com", "Alice"})

	assert.NoError(t, err)
}

func TestLogoutCommand_Execute(t *testing.T) {
	session := &mockSession{authenticated: true}
	app := newTestApp(nil, session, nil)

	err := NewLogoutCommand(app).Execute(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, session.logoutCalls)
	assert.False(t, session.IsAuthenticated())
}
