package store

import (
	"github.com/utkarsh5026/TrackIt/pkg/objects"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// ObjectStore defines the interface for content-addressed snapshot storage.
// Objects are immutable once written and keyed by the digest of their
// serialized form.
type ObjectStore interface {
	// Initialize sets up the object store under the given .trackit directory.
	// Creates necessary directory structures if they don't exist.
	Initialize(track trackpath.TrackPath) error

	// Put stores entity content under its digest and returns the digest.
	// Writing content whose digest already exists is a no-op that still
	// returns the existing digest (deduplication).
	Put(kind objects.ObjectKind, content objects.ObjectContent) (objects.Digest, error)

	// Get retrieves an object by digest.
	// Returns (kind, content, nil) on success and ("", nil, nil) if the
	// object is absent. An object that exists but fails decompression,
	// header parsing, or digest verification is a corruption error,
	// never a silent miss.
	Get(digest objects.Digest) (objects.ObjectKind, objects.ObjectContent, error)

	// Has checks if an object exists in the store
	Has(digest objects.Digest) (bool, error)

	// Delete removes the object, reporting whether anything was removed.
	// Deleting an absent object is not an error.
	Delete(digest objects.Digest) (bool, error)

	// List enumerates the digests of all stored objects of the given kind
	List(kind objects.ObjectKind) ([]objects.Digest, error)

	// Verify re-reads every object and reports the digests that fail
	// integrity checks
	Verify() (corrupted []objects.Digest, err error)
}
