package application

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError is a caller-fixable input problem. Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	errMissingCredentials = &ValidationError{Message: "Email and password required"}
	errPasswordTooLong    = &ValidationError{Message: "Password must be at most 72 bytes"}
)
