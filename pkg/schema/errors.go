package schema

import (
	"errors"
	"fmt"
)

// Fatal pipeline failures. Any of these aborts the current stage before an
// output file is written.
var (
	ErrSourceNotFound   = errors.New("source not found")
	ErrSourceUnreadable = errors.New("source unreadable")
	ErrSchemaMismatch   = errors.New("schema mismatch")
)

// StageError wraps a fatal failure with the pipeline stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageFailure wraps err as a StageError, or returns nil for a nil err.
func StageFailure(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
