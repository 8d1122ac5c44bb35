package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by every layer. Repositories return them (possibly
// wrapped), delivery translates them into status codes.
var (
	ErrNotFound           = errors.New("record not found")
	ErrCPFRegistered      = errors.New("cpf already registered")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries every failed field of a request at once, so the
// caller gets the complete list in a single response instead of one field
// per attempt.
type ValidationError struct {
	Messages []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Messages, ", ")
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
