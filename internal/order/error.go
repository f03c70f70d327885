package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrTransitionInFlight = errors.New("a transition for this order is already in progress")
)

// SourceUnavailableError means a whole-source fetch failed. The pipeline
// aborts and the previous in-memory list is retained unchanged.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// MalformedRecordError means a required identity field is absent. The record
// is dropped and the pass continues.
type MalformedRecordError struct {
	Source string
	Field  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: missing %s", e.Source, e.Field)
}

// TransitionRejectedError means the remote declined a status update. Local
// state is left unchanged.
type TransitionRejectedError struct {
	OrderID string
	Err     error
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("transition rejected for order %s: %v", e.OrderID, e.Err)
}

func (e *TransitionRejectedError) Unwrap() error { return e.Err }
