package probedock

import (
	"errors"
	"fmt"
)

// ErrMalformedHierarchy is returned for a test that is not attached to a complete suite
// hierarchy ending in the root suite.
var ErrMalformedHierarchy = errors.New("malformed suite hierarchy")

// ErrAlreadyFlushed is reported by every Flush after the first one.
var ErrAlreadyFlushed = errors.New("test run has already been flushed")

// ConfigurationError means the Probe Dock settings could not be loaded. It is fatal.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid Probe Dock configuration in %s: %s", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// LifecycleViolation means a collaborator called into the report or the adapter out of
// order, for instance an event arriving after the run was closed. It is never recovered.
type LifecycleViolation struct {
	State     State
	Operation string
}

func (e *LifecycleViolation) Error() string {
	return fmt.Sprintf("lifecycle violation: %s while %s", e.Operation, e.State)
}

// SubmissionError is a failure to deliver the report to Probe Dock. Either the request
// could not be made (Cause is set) or the server rejected it (StatusCode is set).
type SubmissionError struct {
	StatusCode int
	Body       string
	Cause      error
}

func (e *SubmissionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not reach Probe Dock: %s", e.Cause)
	}
	if e.Body == "" {
		return fmt.Sprintf("Probe Dock returned HTTP status %d", e.StatusCode)
	}
	return fmt.Sprintf("Probe Dock returned HTTP status %d: %s", e.StatusCode, e.Body)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// SnapshotWriteError is a failure to write the local copy of the report.
type SnapshotWriteError struct {
	Path string
	Err  error
}

func (e *SnapshotWriteError) Error() string {
	return fmt.Sprintf("failed to write test run snapshot to %s: %s", e.Path, e.Err)
}

func (e *SnapshotWriteError) Unwrap() error { return e.Err }
