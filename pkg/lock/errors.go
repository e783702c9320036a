package lock

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/err"
)

const (
	pkgName = "lock"

	CodeAlreadyLockedErr = err.CodeAlreadyLocked
	CodeIoErr            = err.CodeIoFailure
	CodeValidationErr    = err.CodeValidation
)

// LockError represents a lock-manager failure with the resource it concerns
type LockError struct {
	base     *err.Error
	Resource string
	Path     string
}

// NewLockError creates a new LockError
func NewLockError(op, code, resource, path string, underlying error) *LockError {
	return &LockError{
		base:     err.New(pkgName, code, op, "", underlying),
		Resource: resource,
		Path:     path,
	}
}

// Error implements the error interface
func (e *LockError) Error() string {
	msg := e.base.Error()
	if e.Resource != "" {
		msg += fmt.Sprintf(" [resource=%s]", e.Resource)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *LockError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	// ErrAlreadyLocked indicates the resource's lock is held
	ErrAlreadyLocked = err.New(pkgName, CodeAlreadyLockedErr, "", "resource is already locked", nil)

	// ErrNotInitialized indicates the manager was used before Initialize
	ErrNotInitialized = err.New(pkgName, err.CodeInternal, "", "lock manager not initialized", nil)
)

// IsAlreadyLocked returns true if the error reports lock contention
func IsAlreadyLocked(e error) bool {
	return err.IsCode(e, CodeAlreadyLockedErr)
}
