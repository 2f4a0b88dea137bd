package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Capability errors
	ErrCapabilityNotReady = &Error{Code: "CAPABILITY_NOT_READY", Message: "data capability failed to initialize"}
	ErrOpNotAvailable     = &Error{Code: "OP_NOT_AVAILABLE", Message: "operation not registered on capability"}
	ErrOpFailed           = &Error{Code: "OP_FAILED", Message: "operation call failed"}

	// Resolver errors
	ErrNoCandidate = &Error{Code: "NO_CANDIDATE", Message: "no candidate succeeded"}

	// Query errors
	ErrMissingSymbol = &Error{Code: "MISSING_SYMBOL", Message: "query did not contain a stock code or name"}

	// Aggregate errors
	ErrAggregateFailed = &Error{Code: "AGGREGATE_FAILED", Message: "all overview sections failed"}

	// Script collaborator errors
	ErrScriptFailed  = &Error{Code: "SCRIPT_FAILED", Message: "external script failed"}
	ErrScriptTimeout = &Error{Code: "SCRIPT_TIMEOUT", Message: "external script timed out"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
)
