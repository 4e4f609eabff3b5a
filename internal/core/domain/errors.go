package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrUsernameTaken = errors.New("username already exists")
var ErrEmailTaken = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserDisabled = errors.New("user account is disabled")
var ErrForbidden = errors.New("access denied")

// ValidationError carries per-field validation failures. Fields maps a json
// field name to the messages reported against it.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError builds a ValidationError from alternating field/message
// pairs.
func NewValidationError(pairs ...string) *ValidationError {
	ve := &ValidationError{Fields: make(map[string][]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		ve.Add(pairs[i], pairs[i+1])
	}
	return ve
}

// Add appends a message against the given field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
