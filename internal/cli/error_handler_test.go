package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/errors"
	"taskboard/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	handler := NewErrorHandler()

	t.Run("should render validation errors with their field message", func(t *testing.T) {
		validationErr := validation.NewValidationError()
		validationErr.AddRequiredError("title")

		err := handler.Handle("create task", validationErr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create task")
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("should render app errors with the user message", func(t *testing.T) {
		err := handler.Handle("list tasks", errors.NewRepositoryError("list tasks", 500, nil))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unavailable")
	})

	t.Run("should wrap plain errors", func(t *testing.T) {
		cause := fmt.Errorf("plain failure")

		err := handler.Handle("do thing", cause)

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})
}

func TestErrorHandler_Checks(t *testing.T) {
	handler := NewErrorHandler()

	assert.True(t, handler.IsNotFoundError(errors.NewNotFoundError("task", "7")))
	assert.False(t, handler.IsNotFoundError(errors.NewChannelError("dial", nil)))
	assert.True(t, handler.IsAuthenticationError(errors.NewAuthenticationError("nope", nil)))
	assert.False(t, handler.IsAuthenticationError(fmt.Errorf("plain")))
}
