// Package errors provides standardized fatal error values for Quill tools.
// Recoverable lexical and syntax errors are diagnostics, not errors from this
// package; a StandardError always ends processing of the affected input.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryIO         ErrorCategory = "IO"
	CategoryConfig     ErrorCategory = "CONFIG"
	CategoryValidation ErrorCategory = "VALIDATION"
	CategorySystem     ErrorCategory = "SYSTEM"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
	Err      error
}

// Error implements the error interface
func (e *StandardError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *StandardError) Unwrap() error { return e.Err }

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(1)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Common error constructors

func ReadFailure(path string, err error) *StandardError {
	se := NewStandardError(CategoryIO, "READ_FAILED",
		fmt.Sprintf("failed to read %s", path),
		map[string]interface{}{"path": path})
	se.Err = err
	return se
}

func WriteFailure(path string, err error) *StandardError {
	se := NewStandardError(CategoryIO, "WRITE_FAILED",
		fmt.Sprintf("failed to write %s", path),
		map[string]interface{}{"path": path})
	se.Err = err
	return se
}

func InvalidConfig(path string, err error) *StandardError {
	se := NewStandardError(CategoryConfig, "INVALID_CONFIG",
		fmt.Sprintf("invalid configuration in %s", path),
		map[string]interface{}{"path": path})
	se.Err = err
	return se
}

func UnsupportedLanguageVersion(have, want string) *StandardError {
	return NewStandardError(CategoryConfig, "LANGUAGE_VERSION",
		fmt.Sprintf("language version %s does not satisfy %q", have, want),
		map[string]interface{}{"have": have, "want": want})
}

func IncludeNotFound(path, from string) *StandardError {
	return NewStandardError(CategoryValidation, "INCLUDE_NOT_FOUND",
		fmt.Sprintf("include %q from %s not found", path, from),
		map[string]interface{}{"path": path, "from": from})
}

// As is errors.As re-exported so callers need a single import.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Is is errors.Is re-exported so callers need a single import.
func Is(err, target error) bool { return stderrors.Is(err, target) }
