package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewAuthenticationError creates an error for a missing or rejected credential.
// The message is what the presentation layer shows, so server-provided
// messages should be passed through unchanged.
func NewAuthenticationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthentication,
		Message: message,
		Code:    "AUTHENTICATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewUnauthorizedError creates an authentication error for a 401 response
func NewUnauthorizedError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthentication,
		Message: fmt.Sprintf("credential rejected during %s", operation),
		Code:    "UNAUTHORIZED",
		Status:  http.StatusUnauthorized,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewRepositoryError creates a new repository error carrying the HTTP status
func NewRepositoryError(operation string, status int, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeRepository,
		Message: fmt.Sprintf("repository operation failed: %s", operation),
		Code:    "REPOSITORY_ERROR",
		Status:  status,
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewChannelError creates a new channel error. Channel errors are always
// recoverable: the channel schedules a reconnect after reporting one.
func NewChannelError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeChannel,
		Message: fmt.Sprintf("channel failure: %s", operation),
		Code:    "CHANNEL_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Status:  http.StatusNotFound,
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: fmt.Sprintf("invalid configuration for %s: %s", field, reason),
		Code:    "CONFIGURATION_ERROR",
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsUnauthorized reports whether the error represents a 401 response.
// Callers must invalidate the stored credential when this is true.
func IsUnauthorized(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Status == http.StatusUnauthorized
	}
	return false
}

// HTTPStatus returns the HTTP status attached to the error, or zero
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Status
	}
	return 0
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeAuthentication:
			return appErr.Message
		case ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeRepository:
			return "The task service is unavailable. Your last loaded tasks are still shown."
		case ErrorTypeChannel:
			return "Lost the live update connection. Reconnecting shortly."
		case ErrorTypeConfiguration:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound:
			return false // These are user errors, not system errors
		case ErrorTypeAuthentication, ErrorTypeRepository, ErrorTypeChannel, ErrorTypeConfiguration:
			return true
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
