package errors

import (
	"fmt"
)

// SieveError is the structured error type for sieve. It carries enough
// context for error handling, logging, and user presentation.
type SieveError struct {
	// Code is the unique error code (e.g., "ERR_204_STORE_CORRUPT").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *SieveError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SieveError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with SieveError.
func (e *SieveError) Is(target error) bool {
	if t, ok := target.(*SieveError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SieveError) WithDetail(key, value string) *SieveError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new SieveError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *SieveError {
	return &SieveError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a SieveError from an existing error.
// The error's message becomes the SieveError message.
func Wrap(code string, err error) *SieveError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SieveError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *SieveError {
	return New(ErrCodeStoreRead, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *SieveError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *SieveError {
	return New(ErrCodeInternal, message, cause)
}

// GetCode extracts the error code from a SieveError.
// Returns empty string if not a SieveError.
func GetCode(err error) string {
	if se, ok := err.(*SieveError); ok {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from a SieveError.
// Returns empty string if not a SieveError.
func GetCategory(err error) Category {
	if se, ok := err.(*SieveError); ok {
		return se.Category
	}
	return ""
}
