package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/TrackIt/pkg/common/fileops"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// FileObjectStore is a file-based implementation of content-addressed
// snapshot storage.
//
// Each object is:
// 1. Serialized to "<kind> <size>\0<content>"
// 2. Digested with SHA-256 over the serialized bytes
// 3. Compressed with DEFLATE
// 4. Stored under a path derived from its digest
//
// Directory structure:
//
//	.trackit/objects/
//	  9f/ <- first 2 hex characters of the digest
//	    86d081884c...a08 <- remaining 62 characters
//
// Writes are idempotent: storing identical content twice leaves one file.
type FileObjectStore struct {
	objectsPath trackpath.AbsolutePath
}

// NewFileObjectStore creates a new FileObjectStore instance
func NewFileObjectStore() *FileObjectStore {
	return &FileObjectStore{}
}

// Initialize sets up the object store by creating the objects directory
func (fos *FileObjectStore) Initialize(track trackpath.TrackPath) error {
	fos.objectsPath = track.ObjectsPath()

	if err := fileops.EnsureDir(fos.objectsPath); err != nil {
		return NewStorageError("initialize", CodeIoErr, "", fos.objectsPath.String(), err)
	}

	return nil
}

// Put stores entity content in the object store.
//
// If an object with the same digest already exists the write is skipped
// and the existing digest returned. Otherwise the serialized form is
// compressed and written read-only.
func (fos *FileObjectStore) Put(kind objects.ObjectKind, content objects.ObjectContent) (objects.Digest, error) {
	if err := fos.ensureInitialized(); err != nil {
		return "", err
	}
	if !kind.IsValid() {
		return "", NewStorageError("put", CodeValidationErr, "", "", fmt.Errorf("unknown object kind: %s", kind))
	}

	serialized := objects.NewSerializedObject(kind, content)
	digest := serialized.Digest()
	filePath := fos.objectPath(digest)

	exists, err := fileops.Exists(filePath)
	if err != nil {
		return "", NewStorageError("put", CodeIoErr, digest.String(), filePath.String(), err)
	}
	if exists {
		return digest, nil
	}

	compressed, err := serialized.Compress()
	if err != nil {
		return "", NewStorageError("put", CodeSerializationErr, digest.String(), "", err)
	}

	if err := fileops.WriteReadOnly(filePath, compressed.Bytes()); err != nil {
		return "", NewStorageError("put", CodeIoErr, digest.String(), filePath.String(), err)
	}

	return digest, nil
}

// Get retrieves an object from storage by its digest.
//
// Returns ("", nil, nil) when the object is absent. A present object
// whose bytes fail decompression, header parsing, or digest
// re-verification yields a corruption error.
func (fos *FileObjectStore) Get(digest objects.Digest) (objects.ObjectKind, objects.ObjectContent, error) {
	serialized, filePath, err := fos.readSerialized("get", digest)
	if err != nil || serialized == nil {
		return "", nil, err
	}

	kind, _, _, err := serialized.ParseHeader()
	if err != nil {
		return "", nil, NewStorageError("get", CodeCorruptionErr, digest.String(), filePath.String(), err)
	}

	content, err := serialized.Content()
	if err != nil {
		return "", nil, NewStorageError("get", CodeCorruptionErr, digest.String(), filePath.String(), err)
	}

	return kind, content, nil
}

// Has checks if an object exists in the store
func (fos *FileObjectStore) Has(digest objects.Digest) (bool, error) {
	if err := fos.ensureInitialized(); err != nil {
		return false, err
	}
	if err := digest.Validate(); err != nil {
		return false, NewStorageError("has", CodeValidationErr, digest.String(), "", err)
	}

	exists, err := fileops.Exists(fos.objectPath(digest))
	if err != nil {
		return false, NewStorageError("has", CodeIoErr, digest.String(), "", err)
	}
	return exists, nil
}

// Delete removes an object, reporting whether anything was removed.
// Deleting an absent object returns (false, nil).
func (fos *FileObjectStore) Delete(digest objects.Digest) (bool, error) {
	if err := fos.ensureInitialized(); err != nil {
		return false, err
	}
	if err := digest.Validate(); err != nil {
		return false, NewStorageError("delete", CodeValidationErr, digest.String(), "", err)
	}

	filePath := fos.objectPath(digest)
	exists, err := fileops.Exists(filePath)
	if err != nil {
		return false, NewStorageError("delete", CodeIoErr, digest.String(), filePath.String(), err)
	}
	if !exists {
		return false, nil
	}

	if err := fileops.SafeRemove(filePath); err != nil {
		return false, NewStorageError("delete", CodeIoErr, digest.String(), filePath.String(), err)
	}
	return true, nil
}

// List enumerates the digests of all stored objects of the given kind.
//
// The on-disk fan-out layout does not encode the kind, so each object's
// header is read to filter accurately. A damaged object surfaces as a
// corruption error so integrity tooling can detect it.
func (fos *FileObjectStore) List(kind objects.ObjectKind) ([]objects.Digest, error) {
	if err := fos.ensureInitialized(); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, NewStorageError("list", CodeValidationErr, "", "", fmt.Errorf("unknown object kind: %s", kind))
	}

	var digests []objects.Digest
	walkErr := filepath.WalkDir(fos.objectsPath.String(), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		digest, ok := fos.digestFromPath(path)
		if !ok {
			return nil
		}

		objKind, _, err := fos.Get(digest)
		if err != nil {
			return err
		}
		if objKind == kind {
			digests = append(digests, digest)
		}
		return nil
	})
	if walkErr != nil {
		if _, ok := walkErr.(*StorageError); ok {
			return nil, walkErr
		}
		return nil, NewStorageError("list", CodeIoErr, "", fos.objectsPath.String(), walkErr)
	}

	return digests, nil
}

// Verify re-reads every object and reports the digests that fail
// integrity checks. Used by fsck.
func (fos *FileObjectStore) Verify() (corrupted []objects.Digest, err error) {
	if err := fos.ensureInitialized(); err != nil {
		return nil, err
	}

	walkErr := filepath.WalkDir(fos.objectsPath.String(), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		digest, ok := fos.digestFromPath(path)
		if !ok {
			return nil
		}

		if _, _, getErr := fos.Get(digest); getErr != nil {
			if IsCorruption(getErr) {
				corrupted = append(corrupted, digest)
				return nil
			}
			return getErr
		}
		return nil
	})
	if walkErr != nil {
		return nil, NewStorageError("verify", CodeIoErr, "", fos.objectsPath.String(), walkErr)
	}

	return corrupted, nil
}

// IsInitialized checks if the object store has been initialized
func (fos *FileObjectStore) IsInitialized() bool {
	return fos.objectsPath.IsValid()
}

// ObjectsPath returns the path to the objects directory
func (fos *FileObjectStore) ObjectsPath() trackpath.AbsolutePath {
	return fos.objectsPath
}

// readSerialized loads and verifies the serialized bytes of an object.
// Returns (nil, path, nil) when the object is absent.
func (fos *FileObjectStore) readSerialized(op string, digest objects.Digest) (objects.SerializedObject, trackpath.AbsolutePath, error) {
	if err := fos.ensureInitialized(); err != nil {
		return nil, "", err
	}
	if err := digest.Validate(); err != nil {
		return nil, "", NewStorageError(op, CodeValidationErr, digest.String(), "", err)
	}

	filePath := fos.objectPath(digest)
	compressed, err := fileops.ReadBytes(filePath)
	if err != nil {
		return nil, filePath, NewStorageError(op, CodeIoErr, digest.String(), filePath.String(), err)
	}
	if compressed == nil {
		return nil, filePath, nil
	}

	decompressed, err := objects.CompressedData(compressed).Decompress()
	if err != nil {
		return nil, filePath, NewStorageError(op, CodeCorruptionErr, digest.String(), filePath.String(), err)
	}

	serialized := objects.SerializedObject(decompressed)
	if actual := serialized.Digest(); actual != digest {
		return nil, filePath, NewStorageError(op, CodeCorruptionErr, digest.String(), filePath.String(),
			fmt.Errorf("digest mismatch: stored bytes hash to %s", actual))
	}

	return serialized, filePath, nil
}

// objectPath converts a digest to its file path in the fan-out layout
func (fos *FileObjectStore) objectPath(digest objects.Digest) trackpath.AbsolutePath {
	prefix, rest := digest.Fanout()
	return fos.objectsPath.Join(prefix, rest)
}

// digestFromPath reconstructs a digest from an object file path.
// Returns false for files that don't fit the fan-out naming scheme.
func (fos *FileObjectStore) digestFromPath(path string) (objects.Digest, bool) {
	rel, err := filepath.Rel(fos.objectsPath.String(), path)
	if err != nil {
		return "", false
	}

	dir, file := filepath.Split(rel)
	prefix := filepath.Clean(dir)
	digest, parseErr := objects.ParseDigest(prefix + file)
	if parseErr != nil {
		return "", false
	}
	return digest, true
}

// ensureInitialized checks if the object store is initialized
func (fos *FileObjectStore) ensureInitialized() error {
	if !fos.IsInitialized() {
		return ErrNotInitialized
	}
	return nil
}
