package field

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes accessor lookup failures.
type ErrorCode string

const (
	// ErrCodeKeyNotFound indicates nothing is registered for the field.
	ErrCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// ErrCodeTypeMismatch indicates an accessor is registered but its erased
	// source/target types differ from the requested ones.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// AccessorError reports why a typed accessor could not be produced.
//
// Both codes are recoverable: callers skip the affected (subject, field)
// unit and carry on.
type AccessorError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Field is the field that was looked up.
	Field UntypedField

	// Want is the field as the caller typed it (TYPE_MISMATCH only).
	Want UntypedField
}

// Error implements the error interface.
func (e *AccessorError) Error() string {
	switch e.Code {
	case ErrCodeKeyNotFound:
		return fmt.Sprintf("%s: no accessor registered (field=%s)", e.Code, e.Field)
	case ErrCodeTypeMismatch:
		return fmt.Sprintf("%s: accessor types do not match (field=%s, want=%s)", e.Code, e.Field, e.Want)
	default:
		return fmt.Sprintf("%s: field=%s", e.Code, e.Field)
	}
}

// IsKeyNotFound returns true if err is a KEY_NOT_FOUND AccessorError.
// Uses errors.As to handle wrapped errors.
func IsKeyNotFound(err error) bool {
	var ae *AccessorError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeKeyNotFound
	}
	return false
}

// IsTypeMismatch returns true if err is a TYPE_MISMATCH AccessorError.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatch(err error) bool {
	var ae *AccessorError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeTypeMismatch
	}
	return false
}
