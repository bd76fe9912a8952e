package domain

import "errors"

var (
	// ErrNotFound indicates no invoice exists for the given public id.
	ErrNotFound = errors.New("invoice_not_found")
	// ErrUnauthorized indicates a missing or non-matching edit token.
	ErrUnauthorized = errors.New("invalid_edit_token")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors aggregates per-field input errors.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

func (v *ValidationErrors) Error() string {
	return "validation error"
}

func (v *ValidationErrors) add(field, code, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Code: code, Message: message})
}

func (v *ValidationErrors) orNil() error {
	if len(v.Errors) == 0 {
		return nil
	}
	return v
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []FieldError{{Field: field, Code: code, Message: message}},
	}
}
