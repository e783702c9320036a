package conflict

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/err"
)

const (
	pkgName = "conflict"

	CodeValidationErr = err.CodeValidation
)

// ConflictError represents a conflict-resolution failure
type ConflictError struct {
	base     *err.Error
	EntityID string
}

// NewConflictError creates a new ConflictError
func NewConflictError(op, code, entityID string, underlying error) *ConflictError {
	return &ConflictError{
		base:     err.New(pkgName, code, op, "", underlying),
		EntityID: entityID,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	msg := e.base.Error()
	if e.EntityID != "" {
		msg += fmt.Sprintf(" [entity=%s]", e.EntityID)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ConflictError) Unwrap() error {
	return e.base
}
