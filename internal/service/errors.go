package service

import (
	"errors"
	"fmt"

	"COURSEHUB_BACK-END/internal/validation"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong password
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError carries field-level messages for a rejected payload
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

// NotFoundError reports a referenced record that does not exist
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError reports a uniqueness violation
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// invalid wraps the result of validation.Struct. Non-validation errors pass through.
func invalid(message string, err error) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return &ValidationError{Message: message, Fields: verrs.Fields}
	}
	return err
}
