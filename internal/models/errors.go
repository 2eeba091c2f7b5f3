package models

// ValidationError describes an invalid input field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
