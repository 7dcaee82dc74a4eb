package backend

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the sampling variant's provider is not
// configured. Fatal for the current call; the caller must reconfigure and
// re-invoke.
var ErrUnavailable = errors.New("sampling provider not configured")

// RemoteExecutionError reports a submitted job that terminated in an error
// or cancelled state, or a provider the client could not drive to a terminal
// state. The engine never retries; retry policy belongs to the orchestrator.
type RemoteExecutionError struct {
	JobID   string
	Status  string
	Message string
}

func (e *RemoteExecutionError) Error() string {
	if e.JobID != "" {
		return fmt.Sprintf("remote job %s %s: %s", e.JobID, e.Status, e.Message)
	}
	return fmt.Sprintf("remote execution %s: %s", e.Status, e.Message)
}

// IsRemoteExecution reports whether err is a RemoteExecutionError.
// Uses errors.As to handle wrapped errors.
func IsRemoteExecution(err error) bool {
	var re *RemoteExecutionError
	return errors.As(err, &re)
}
