package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)

// validationError carries a user-facing message while still matching
// ErrInvalidArgument in errors.Is checks.
type validationError struct{ msg string }

func (e *validationError) Error() string        { return e.msg }
func (e *validationError) Is(target error) bool { return target == ErrInvalidArgument }

// Invalid returns a validation error with a message safe to show to clients.
func Invalid(msg string) error { return &validationError{msg: msg} }
