package validation

import (
	"taskboard/internal/domain"
)

// TaskValidator provides validation for task drafts before they reach the
// network layer. Anything rejected here is never transmitted.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if !tv.validator.IsValidTitleLength(trimmed) {
		validationError.AddInvalidLengthError("title", trimmed, 1, 255)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateDraftForCreation validates a draft before a create call
func (tv *TaskValidator) ValidateDraftForCreation(draft domain.Draft) error {
	validationError := NewValidationError()

	if titleErr := tv.ValidateTitle(draft.Title); titleErr != nil {
		if titleValidationErr, ok := titleErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, titleValidationErr.Errors...)
		}
	}

	if draft.Status != "" && !draft.Status.IsValid() {
		validationError.AddInvalidValueError("status", draft.Status, "must be Pending, In-Progress or Completed")
	}

	if draft.Priority != "" && !draft.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", draft.Priority, "must be Low, Medium, High or Critical")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateDraftForUpdate validates a draft before an update call
func (tv *TaskValidator) ValidateDraftForUpdate(draft domain.Draft) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidTaskID(draft.ID) {
		validationError.AddInvalidValueError("id", draft.ID, "must be a positive integer")
	}

	if creationErr := tv.ValidateDraftForCreation(draft); creationErr != nil {
		if creationValidationErr, ok := creationErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, creationValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
