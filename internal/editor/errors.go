package editor

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	ErrNoEntry            = errors.New("no entry is bound to the editor")
	ErrSessionClosed      = errors.New("editing session is closed")
	ErrSubmitInFlight     = errors.New("an update is already in flight")
	ErrDeleteInFlight     = errors.New("a delete is already in flight")
	ErrPartnerUnavailable = errors.New("partner is only editable in soul link runs")
	ErrPoolNotLoaded      = errors.New("candidate pool is not loaded")
)

// LoadError reports a failed candidate-pool fetch. It is shown in place of
// the form; the user retries by closing and reopening.
type LoadError struct {
	RegionID string
	RunID    string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading candidates for run %s in %s: %v", e.RunID, e.RegionID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Op names a remote mutation.
type Op string

const (
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// RemoteOperationError reports a failed update or delete. The session
// stays open and editable.
type RemoteOperationError struct {
	Op      Op
	EntryID string
	Err     error
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("%s of entry %s failed: %v", e.Op, e.EntryID, e.Err)
}

func (e *RemoteOperationError) Unwrap() error { return e.Err }
