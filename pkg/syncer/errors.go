package syncer

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/err"
)

const (
	pkgName = "syncer"

	CodeNotFoundErr   = err.CodeNotFound
	CodeTransportErr  = err.CodeTransport
	CodeValidationErr = err.CodeValidation
)

// SyncError represents a failure of a whole sync invocation
type SyncError struct {
	base   *err.Error
	Remote string
	Phase  SyncPhase
}

// NewSyncError creates a new SyncError
func NewSyncError(op, code, remote string, phase SyncPhase, underlying error) *SyncError {
	return &SyncError{
		base:   err.New(pkgName, code, op, "", underlying),
		Remote: remote,
		Phase:  phase,
	}
}

// Error implements the error interface
func (e *SyncError) Error() string {
	msg := e.base.Error()
	if e.Remote != "" {
		msg += fmt.Sprintf(" [remote=%s]", e.Remote)
	}
	if e.Phase != "" {
		msg += fmt.Sprintf(" [phase=%s]", e.Phase)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *SyncError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	// ErrRemoteNotFound indicates the named remote is not configured
	ErrRemoteNotFound = err.New(pkgName, CodeNotFoundErr, "", "remote not found", nil)

	// ErrBatchAborted indicates per-entity failures exceeded the batch
	// budget without Force
	ErrBatchAborted = err.New(pkgName, CodeValidationErr, "", "batch aborted: failure budget exceeded", nil)
)
