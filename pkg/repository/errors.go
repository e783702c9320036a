package repository

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/err"
)

const (
	pkgName = "repository"

	CodeNotFoundErr      = err.CodeNotFound
	CodeAlreadyExistsErr = err.CodeAlreadyExists
	CodeValidationErr    = err.CodeValidation
	CodeSerializationErr = err.CodeSerialization
	CodeIoErr            = err.CodeIoFailure
)

// RepositoryError represents an entity-level failure with the identity
// it concerns
type RepositoryError struct {
	base *err.Error
	Kind string
	ID   string
}

// NewRepositoryError creates a new RepositoryError
func NewRepositoryError(op, code, kind, id string, underlying error) *RepositoryError {
	return &RepositoryError{
		base: err.New(pkgName, code, op, "", underlying),
		Kind: kind,
		ID:   id,
	}
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	msg := e.base.Error()
	if e.Kind != "" {
		msg += fmt.Sprintf(" [kind=%s]", e.Kind)
	}
	if e.ID != "" {
		msg += fmt.Sprintf(" [id=%s]", e.ID)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	// ErrNotInitialized indicates the workspace has no tracker directory
	ErrNotInitialized = err.New(pkgName, err.CodeInternal, "", "workspace is not initialized", nil)

	// ErrAlreadyInitialized indicates Init ran on an initialized workspace
	ErrAlreadyInitialized = err.New(pkgName, CodeAlreadyExistsErr, "", "workspace is already initialized", nil)
)

// IsNotFound returns true if the error reports a missing entity
func IsNotFound(e error) bool {
	return err.IsCode(e, CodeNotFoundErr)
}

// IsAlreadyExists returns true if the error reports a duplicate entity
func IsAlreadyExists(e error) bool {
	return err.IsCode(e, CodeAlreadyExistsErr)
}
