package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These classify engine failures for logging and HTTP status mapping.
const (
	EINVALID     = "invalid"     // 400 - unusable input (incomplete address, bad coordinate)
	ENOTFOUND    = "not_found"   // 404 - geocoder returned no usable candidate
	ETIMEOUT     = "timeout"     // 504 - geocoder did not answer within the deadline
	EUNAVAILABLE = "unavailable" // 502 - geocoder answered with a non-success status
	EINTERNAL    = "internal"    // 500 - everything else (hide details)
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, ETIMEOUT).
	Code string

	// Message is a human-readable message safe to show to users.
	Message string

	// Op is the operation where the error occurred (e.g., "validation.resolve").
	// Used for logging, not shown to users.
	Op string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a user-facing message from an error.
// Internal errors get a generic message to avoid leaking details.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}

	return "Ocurrió un error interno. Intente de nuevo más tarde."
}

// IsCode returns true if err carries the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// Errorf creates a new domain error with a formatted message.
// Example: domain.Errorf(domain.EINVALID, "validation.validate", "dirección incompleta")
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a domain code and operation,
// preserving the underlying error for logging. Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
