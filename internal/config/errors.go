package config

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError indicates the config file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// ParseError indicates the config file could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError indicates the config file extension is not supported.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported config format: %s (expected .yaml, .yml or .toml)", e.Path)
}

// VersionError indicates the config requires a newer tool version.
type VersionError struct {
	Required string
	Actual   string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("config requires version %s or newer, running %s", e.Required, e.Actual)
}

// ValidationError aggregates config consistency problems.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Addf(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Problems) > 0
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
