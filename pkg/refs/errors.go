package refs

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/err"
)

const (
	pkgName = "refs"

	CodeNotFoundErr   = err.CodeNotFound
	CodeIoErr         = err.CodeIoFailure
	CodeValidationErr = err.CodeValidation
	CodeCorruptionErr = err.CodeCorruption
)

// RefError represents a reference-store failure with the reference
// name it concerns
type RefError struct {
	base *err.Error
	Name string
	Path string
}

// NewRefError creates a new RefError
func NewRefError(op, code, name, path string, underlying error) *RefError {
	return &RefError{
		base: err.New(pkgName, code, op, "", underlying),
		Name: name,
		Path: path,
	}
}

// Error implements the error interface
func (e *RefError) Error() string {
	msg := e.base.Error()
	if e.Name != "" {
		msg += fmt.Sprintf(" [ref=%s]", e.Name)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *RefError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	// ErrNotInitialized indicates the store was used before Initialize
	ErrNotInitialized = err.New(pkgName, err.CodeInternal, "", "reference store not initialized", nil)

	// ErrInvalidName indicates a malformed reference name
	ErrInvalidName = err.New(pkgName, CodeValidationErr, "", "invalid reference name", nil)

	// ErrCorruptRef indicates a reference file whose content cannot be
	// a digest, such as a zero-byte file left by a truncated write
	ErrCorruptRef = err.New(pkgName, CodeCorruptionErr, "", "corrupt reference file", nil)
)

// IsInvalidName returns true if the error reports a malformed name
func IsInvalidName(e error) bool {
	return err.IsCode(e, CodeValidationErr)
}

// IsCorrupt returns true if the error reports a damaged reference file
func IsCorrupt(e error) bool {
	return err.IsCode(e, CodeCorruptionErr)
}
