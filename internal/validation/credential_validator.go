package validation

// CredentialValidator provides validation for login and register input
type CredentialValidator struct {
	validator *Validator
}

// NewCredentialValidator creates a new credential validator
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{
		validator: NewValidator(),
	}
}

// ValidateLogin validates login input before the network call
func (cv *CredentialValidator) ValidateLogin(email, password string) error {
	validationError := NewValidationError()

	if !cv.validator.IsNonEmptyString(email) {
		validationError.AddRequiredError("email")
	} else if !cv.validator.IsValidEmail(email) {
		validationError.AddInvalidFormatError("email", email, "name@example.com")
	}

	if password == "" {
		validationError.AddRequiredError("password")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateRegistration validates registration input before the network call
func (cv *CredentialValidator) ValidateRegistration(email, password, name string) error {
	validationError := NewValidationError()

	if loginErr := cv.ValidateLogin(email, password); loginErr != nil {
		if loginValidationErr, ok := loginErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, loginValidationErr.Errors...)
		}
	}

	if !cv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
