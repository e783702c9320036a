package transport

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/err"
)

const (
	pkgName = "transport"

	CodeTransportErr  = err.CodeTransport
	CodeValidationErr = err.CodeValidation
)

// TransportError represents a network-level failure with the endpoint
// it concerns. Any TransportError aborts the sync operation in flight.
type TransportError struct {
	base     *err.Error
	Endpoint string
	Status   int
}

// NewTransportError creates a new TransportError
func NewTransportError(op, code, endpoint string, status int, underlying error) *TransportError {
	return &TransportError{
		base:     err.New(pkgName, code, op, "", underlying),
		Endpoint: endpoint,
		Status:   status,
	}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	msg := e.base.Error()
	if e.Endpoint != "" {
		msg += fmt.Sprintf(" [endpoint=%s]", e.Endpoint)
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" [status=%d]", e.Status)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	// ErrMissingCredentials indicates required credential fields are unset
	ErrMissingCredentials = err.New(pkgName, CodeValidationErr, "", "required credential fields are missing", nil)

	// ErrUnknownCredentialKind indicates an unrecognized credential kind
	ErrUnknownCredentialKind = err.New(pkgName, CodeValidationErr, "", "unknown credential kind", nil)

	// ErrUnauthenticated indicates a request was made without a valid token
	ErrUnauthenticated = err.New(pkgName, CodeTransportErr, "", "request requires authentication", nil)
)

// IsTransportFailure returns true if the error is a network-level failure
func IsTransportFailure(e error) bool {
	return err.IsCode(e, CodeTransportErr)
}
