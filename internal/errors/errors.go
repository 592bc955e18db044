// Package errors provides the structured error type (HelperError) used across
// the helper chain for kind-based classification and exit-code mapping.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a HelperError for control flow and exit-code mapping.
type Kind string

const (
	// KindNotDerivable means no device id could be computed from the event.
	KindNotDerivable Kind = "not_derivable"

	// KindNotFound means an expected lookup (attribute, ancestor link,
	// links-file entry) is absent. Expected control flow, not logged as
	// an error by callers.
	KindNotFound Kind = "not_found"

	// KindIO means a filesystem operation failed. Fatal to the current
	// operation.
	KindIO Kind = "io_failure"

	// KindMalformedInput means a probe output token could not be parsed.
	KindMalformedInput Kind = "malformed_input"

	// KindProbe means the external probe tool exited non-zero; the tool's
	// exit code is carried on the error.
	KindProbe Kind = "probe"

	// KindConfig means the helper configuration is invalid or unloadable.
	KindConfig Kind = "config"
)

// ContextFields carries structured context for HelperError.
type ContextFields map[string]any

// HelperError is a structured error with kind, optional cause and context.
type HelperError struct {
	Kind    Kind
	Message string
	Cause   error
	Context ContextFields

	// ExitCode carries an external tool's exit status for KindProbe
	// errors; zero otherwise.
	ExitCode int
}

// Error implements the error interface.
func (e *HelperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *HelperError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *HelperError) WithContext(key string, value any) *HelperError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new HelperError.
func New(kind Kind, message string) *HelperError {
	return &HelperError{Kind: kind, Message: message}
}

// Wrap creates a new HelperError that wraps an existing error.
func Wrap(err error, kind Kind, message string) *HelperError {
	return &HelperError{Kind: kind, Message: message, Cause: err}
}

// KindOf returns the kind of err, or the empty Kind for non-HelperError
// values (including nil).
func KindOf(err error) Kind {
	var he *HelperError
	if stderrors.As(err, &he) {
		return he.Kind
	}
	return ""
}

// IsNotFound reports whether err is a KindNotFound HelperError.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
