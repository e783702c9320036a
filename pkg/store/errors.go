package store

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/err"
)

const (
	pkgName = "store"

	CodeNotFoundErr      = err.CodeNotFound
	CodeCorruptionErr    = err.CodeCorruption
	CodeIoErr            = err.CodeIoFailure
	CodeValidationErr    = err.CodeValidation
	CodeSerializationErr = err.CodeSerialization
)

// StorageError represents an object-store failure with the digest and
// path it concerns
type StorageError struct {
	base   *err.Error
	Digest string
	Path   string
}

// NewStorageError creates a new StorageError
func NewStorageError(op, code, digest, path string, underlying error) *StorageError {
	return &StorageError{
		base:   err.New(pkgName, code, op, "", underlying),
		Digest: digest,
		Path:   path,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	msg := e.base.Error()
	if e.Digest != "" {
		msg += fmt.Sprintf(" [digest=%s]", e.Digest)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	// ErrNotInitialized indicates the store was used before Initialize
	ErrNotInitialized = err.New(pkgName, err.CodeInternal, "", "object store not initialized", nil)

	// ErrCorrupted indicates an object is present but fails integrity checks
	ErrCorrupted = err.New(pkgName, CodeCorruptionErr, "", "object is corrupted", nil)
)

// IsCorruption returns true if the error reports a damaged object
func IsCorruption(e error) bool {
	return err.IsCode(e, CodeCorruptionErr)
}

// IsNotFound returns true if the error reports a missing object
func IsNotFound(e error) bool {
	return err.IsCode(e, CodeNotFoundErr)
}
