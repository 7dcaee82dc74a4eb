package grover

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes fatal search failures. Every fatal condition aborts
// the invocation and propagates with a distinguishing code; no partial
// result is ever returned.
type ErrorCode string

const (
	// CodeEmptyMarkedSet: the classical scan found zero matches.
	// Amplification is meaningless with no target.
	CodeEmptyMarkedSet ErrorCode = "EMPTY_MARKED_SET"

	// CodeInvalidParameter: bad pattern length, tolerance, top-k, or
	// register-width derivation.
	CodeInvalidParameter ErrorCode = "INVALID_PARAMETER"

	// CodeBackendUnavailable: the sampling variant's provider dependency is
	// not configured.
	CodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"

	// CodeRemoteExecution: a submitted job terminated in an error or
	// cancelled state, or could not be driven to completion.
	CodeRemoteExecution ErrorCode = "REMOTE_EXECUTION"
)

// RunError is a fatal search failure with a machine-readable code.
type RunError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RunError) Unwrap() error { return e.Err }

func newRunError(code ErrorCode, format string, args ...any) *RunError {
	return &RunError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code ErrorCode) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsEmptyMarkedSet reports a zero-match scan failure.
func IsEmptyMarkedSet(err error) bool { return hasCode(err, CodeEmptyMarkedSet) }

// IsInvalidParameter reports a precondition failure.
func IsInvalidParameter(err error) bool { return hasCode(err, CodeInvalidParameter) }

// IsBackendUnavailable reports a missing sampling-provider dependency.
func IsBackendUnavailable(err error) bool { return hasCode(err, CodeBackendUnavailable) }

// IsRemoteExecution reports a failed or cancelled remote job.
func IsRemoteExecution(err error) bool { return hasCode(err, CodeRemoteExecution) }
