package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCollector indicates the manager was built without a collector.
	ErrNoCollector = errors.New("no collector configured")
	// ErrValidationFailed indicates a plugin reported invalid work without
	// returning a concrete error.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNotReady indicates a pass was requested before collection ran.
	ErrNotReady = errors.New("pipeline has not collected any items")
)

// UnitError reports a phase failure for a single work unit.
type UnitError struct {
	Plugin string
	Item   string
	Phase  string
	Err    error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s of %q for %q failed: %v", e.Phase, e.Plugin, e.Item, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// ValidationFailures aggregates every unit that failed the validation pass.
type ValidationFailures struct {
	Failures []*UnitError
}

func (e *ValidationFailures) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%d validation failures: %s", len(e.Failures), strings.Join(parts, "; "))
}

// IsValidationFailures checks if an error is a ValidationFailures.
func IsValidationFailures(err error) bool {
	var vf *ValidationFailures
	return errors.As(err, &vf)
}
