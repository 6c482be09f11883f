package device

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a device operation failure.
type ErrorType int

const (
	// ErrTypeInvalidArgument indicates a malformed write payload. No
	// transfer is attempted.
	ErrTypeInvalidArgument ErrorType = iota
	// ErrTypeNoMemory indicates the transport could not allocate its
	// transfer buffers.
	ErrTypeNoMemory
	// ErrTypeIO indicates a failed or short control transfer, including
	// timeouts.
	ErrTypeIO
	// ErrTypeParse indicates the report descriptor could not be parsed
	// during attach.
	ErrTypeParse
	// ErrTypeStart indicates hardware I/O could not be started during
	// attach.
	ErrTypeStart
	// ErrTypeOpen indicates the device could not be opened for event
	// delivery during attach.
	ErrTypeOpen
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalidArgument:
		return "Invalid Argument"
	case ErrTypeNoMemory:
		return "Out Of Memory"
	case ErrTypeIO:
		return "I/O Error"
	case ErrTypeParse:
		return "Descriptor Parse Error"
	case ErrTypeStart:
		return "Hardware Start Error"
	case ErrTypeOpen:
		return "Device Open Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is a device operation failure with a closed category.
type Error struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidArgumentError creates an invalid-argument error.
func NewInvalidArgumentError(message string) *Error {
	return &Error{Type: ErrTypeInvalidArgument, Message: message}
}

// NewNoMemoryError creates an out-of-memory error.
func NewNoMemoryError(message string, err error) *Error {
	return &Error{Type: ErrTypeNoMemory, Message: message, Err: err}
}

// NewIOError creates a transfer-level I/O error.
func NewIOError(message string, err error) *Error {
	return &Error{Type: ErrTypeIO, Message: message, Err: err}
}

// NewParseError creates a descriptor parse error.
func NewParseError(message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Err: err}
}

// NewStartError creates a hardware start error.
func NewStartError(message string, err error) *Error {
	return &Error{Type: ErrTypeStart, Message: message, Err: err}
}

// NewOpenError creates a device open error.
func NewOpenError(message string, err error) *Error {
	return &Error{Type: ErrTypeOpen, Message: message, Err: err}
}

func isType(err error, et ErrorType) bool {
	var devErr *Error
	if errors.As(err, &devErr) {
		return devErr.Type == et
	}
	return false
}

// IsInvalidArgument checks if an error is an invalid-argument error.
func IsInvalidArgument(err error) bool { return isType(err, ErrTypeInvalidArgument) }

// IsNoMemory checks if an error is an out-of-memory error.
func IsNoMemory(err error) bool { return isType(err, ErrTypeNoMemory) }

// IsIOError checks if an error is a transfer-level I/O error.
func IsIOError(err error) bool { return isType(err, ErrTypeIO) }

// IsParseError checks if an error is a descriptor parse error.
func IsParseError(err error) bool { return isType(err, ErrTypeParse) }

// IsStartError checks if an error is a hardware start error.
func IsStartError(err error) bool { return isType(err, ErrTypeStart) }

// IsOpenError checks if an error is a device open error.
func IsOpenError(err error) bool { return isType(err, ErrTypeOpen) }
