// Package errors defines the error taxonomy shared by the call number packages.
//
// Every error here is local and recoverable by the caller. A record that simply
// cannot produce a call number is not an error at all; see callno.Result.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid ErrorClass = iota
	// ErrorUnsupported represents input the normalizer cannot map to ASCII
	ErrorUnsupported
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorInvalid:
		return "invalid"
	case ErrorUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Standard error variables
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedCharacter = errors.New("unsupported character")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrParsingFailed        = errors.New("parsing failed")
)

// ClassifiedError wraps an error with its classification and the operation
// that produced it.
type ClassifiedError struct {
	Class   ErrorClass
	Op      string
	Err     error
	Message string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message == "" {
		return fmt.Sprintf("%s: %v", ce.Op, ce.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ce.Op, ce.Message, ce.Err)
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// Invalid builds an ErrInvalidArgument error for op.
func Invalid(op, format string, args ...any) error {
	return &ClassifiedError{
		Class:   ErrorInvalid,
		Op:      op,
		Err:     ErrInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// Unsupported builds an ErrUnsupportedCharacter error for the rune r.
func Unsupported(op string, r rune) error {
	return &ClassifiedError{
		Class:   ErrorUnsupported,
		Op:      op,
		Err:     ErrUnsupportedCharacter,
		Message: fmt.Sprintf("code point %U", r),
	}
}

// InvalidConfig wraps err as a configuration error.
func InvalidConfig(op string, err error) error {
	return &ClassifiedError{
		Class: ErrorInvalid,
		Op:    op,
		Err:   fmt.Errorf("%w: %v", ErrInvalidConfig, err),
	}
}

// IsInvalid reports whether err was caused by invalid input or configuration.
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrInvalidConfig)
}

// IsUnsupported reports whether err was caused by an unmappable character.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedCharacter)
}

// Is, As and New re-export the standard library helpers so callers importing this
// package under its own name do not need a second errors import.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)
