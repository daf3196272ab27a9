package publish

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrNilStrategy indicates a unit was created without a strategy.
	ErrNilStrategy = errors.New("strategy cannot be nil")
	// ErrNilTarget indicates a unit was created without a target.
	ErrNilTarget = errors.New("target cannot be nil")
	// ErrNilUnit indicates a nil unit was passed to a registration hook.
	ErrNilUnit = errors.New("work unit cannot be nil")
)

// RegistrationError indicates a unit could not be registered with its
// strategy or target during creation.
type RegistrationError struct {
	Plugin string
	Item   string
	Err    error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registering unit %s/%s: %v", e.Plugin, e.Item, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// IsRegistrationError returns true if the error is a unit registration
// failure.
func IsRegistrationError(err error) bool {
	var regErr *RegistrationError
	return errors.As(err, &regErr)
}
