// Package err provides a standardized error handling system for the entire project.
//
// # Design Principles
//
// 1. Consistency: All packages use the same base error structure
// 2. Context: Errors carry package, operation, and code information
// 3. Wrapping: Full support for Go 1.13+ error wrapping with errors.Is/As
// 4. Categorization: Machine-readable error codes enable programmatic handling
//
// # Usage Patterns
//
// Each package defines its own error type embedding err.Error plus domain
// fields, along with sentinel values and IsX helpers:
//
//	type StorageError struct {
//	    base   *err.Error
//	    Digest string
//	    Path   string
//	}
//
// The error code taxonomy mirrors the failure modes of the system:
// NOT_FOUND, CORRUPTION, ALREADY_LOCKED, IO_FAILURE, TRANSPORT_FAILURE,
// SERIALIZATION_FAILURE, VALIDATION_FAILURE. NotFound is the only condition
// that callers may map to an empty result; every other code propagates.
//
// Error checking uses standard patterns:
//
//	if err.IsCode(e, err.CodeCorruption) {
//	    // surface to integrity tooling
//	}
package err
