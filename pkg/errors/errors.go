package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Filesystem guard errors
	ErrPathNotFound   ErrorCode = "PATH_NOT_FOUND"
	ErrNotADirectory  ErrorCode = "NOT_A_DIRECTORY"
	ErrNotAFile       ErrorCode = "NOT_A_FILE"
	ErrNotReadable    ErrorCode = "NOT_READABLE"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"

	// Integrity errors
	ErrIntegrityMismatch ErrorCode = "INTEGRITY_MISMATCH"
	ErrDigestAlgorithm   ErrorCode = "DIGEST_ALGORITHM"

	// Subprocess errors
	ErrProcessLaunch    ErrorCode = "PROCESS_LAUNCH"
	ErrProcessExecution ErrorCode = "PROCESS_EXECUTION"

	// Document errors
	ErrMalformedDocument ErrorCode = "MALFORMED_DOCUMENT"
)

// FlashError represents a structured error with code and details
type FlashError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FlashError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FlashError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FlashError) Is(target error) bool {
	var targetErr *FlashError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FlashError with the given code and message
func New(code ErrorCode, message string) *FlashError {
	return &FlashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FlashError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FlashError {
	return &FlashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FlashError
func Wrap(err error, code ErrorCode, message string) *FlashError {
	if err == nil {
		return nil
	}
	return &FlashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FlashError {
	if err == nil {
		return nil
	}
	return &FlashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FlashError) WithDetail(key string, value interface{}) *FlashError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *FlashError) WithDetails(details map[string]interface{}) *FlashError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var flashErr *FlashError
	if errors.As(err, &flashErr) {
		return flashErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FlashError
func GetErrorCode(err error) ErrorCode {
	var flashErr *FlashError
	if errors.As(err, &flashErr) {
		return flashErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FlashError
func GetErrorDetails(err error) map[string]interface{} {
	var flashErr *FlashError
	if errors.As(err, &flashErr) {
		return flashErr.Details
	}
	return nil
}
