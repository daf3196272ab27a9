package plugin

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrNilHook indicates a plugin was created without a hook.
	ErrNilHook = errors.New("hook cannot be nil")
	// ErrEmptyName indicates a plugin instance name was empty.
	ErrEmptyName = errors.New("plugin name cannot be empty")
	// ErrNilPlugin indicates a nil plugin was passed to the registry.
	ErrNilPlugin = errors.New("plugin cannot be nil")
)

// ExistsError indicates a plugin instance name is already registered.
type ExistsError struct {
	Name string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("plugin %q already registered", e.Name)
}

// IsExists returns true if the error indicates a duplicate plugin name.
func IsExists(err error) bool {
	var existsErr *ExistsError
	return errors.As(err, &existsErr)
}

// NotFoundError indicates no plugin with the given name is registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugin %q not registered", e.Name)
}

// IsNotFound returns true if the error indicates a missing plugin.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// ValidationError collects multiple settings resolution failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return fmt.Sprintf("settings validation failed: %s", strings.Join(e.Errors, "; "))
}

// Add adds an error message to the collection.
func (e *ValidationError) Add(msg string) {
	e.Errors = append(e.Errors, msg)
}

// Addf adds a formatted error message to the collection.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// IsValidationError returns true if the error is a settings validation
// failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TargetTypeError indicates a work unit's target was not an item from this
// pipeline's item tree.
type TargetTypeError struct {
	Plugin string
	Target string
}

func (e *TargetTypeError) Error() string {
	return fmt.Sprintf("plugin %q: target %q is not a pipeline item", e.Plugin, e.Target)
}

// HookPanicError indicates a hook panicked during an accept evaluation.
type HookPanicError struct {
	Plugin string
	Value  interface{}
}

func (e *HookPanicError) Error() string {
	return fmt.Sprintf("hook for plugin %q panicked: %v", e.Plugin, e.Value)
}
