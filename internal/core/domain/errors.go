package domain

import (
	"errors"
	"fmt"
)

// Error is the typed failure surfaced to the boundary layer. Status carries
// the HTTP-like numeric code, Code a stable machine-readable tag.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
}

// FieldError points a validation failure at a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %d field error(s)", e.Message, len(e.Fields))
	}

	return e.Message
}

func NewError(status int, code string, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func NewValidationError(fields []FieldError) *Error {
	return &Error{
		Status:  400,
		Code:    "VALIDATION_ERROR",
		Message: "validation failed",
		Fields:  fields,
	}
}

var (
	ErrUsernameTaken = NewError(400, "CONFLICT", "username already exists")

	// ErrInvalidCredentials covers both the unknown-username and the
	// wrong-password branch of login. One value, so callers cannot probe
	// which usernames exist.
	ErrInvalidCredentials = NewError(401, "UNAUTHORIZED", "username or password wrong")

	ErrUserNotFound = NewError(404, "NOT_FOUND", "user not found")
	ErrTaskNotFound = NewError(404, "NOT_FOUND", "task not found")
)

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
