package refs

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/TrackIt/pkg/common/fileops"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// RefStore maps hierarchical names to digests, the mutable naming layer
// over the immutable object store.
//
// Each reference is a file at refs/<name> containing the digest's hex
// text. Names may contain "/" to form subdirectories:
//
//	.trackit/refs/
//	  issues/
//	    7f3c1a...   <- file containing a 64-char digest
//	  remotes/
//	    origin
//
// A reference may point to a digest that no longer exists in the object
// store; readers treat that as "entity not found", never a crash.
type RefStore struct {
	refsPath trackpath.AbsolutePath
}

// NewRefStore creates a new reference store
func NewRefStore() *RefStore {
	return &RefStore{}
}

// Initialize sets up the reference store by creating the refs directory
func (rs *RefStore) Initialize(track trackpath.TrackPath) error {
	rs.refsPath = track.RefsPath()

	if err := fileops.EnsureDir(rs.refsPath); err != nil {
		return NewRefError("initialize", CodeIoErr, "", rs.refsPath.String(), err)
	}

	return nil
}

// Set points a name at a digest, overwriting any previous target.
// The write is atomic so a reader never observes a partial digest.
func (rs *RefStore) Set(name trackpath.RefName, digest objects.Digest) error {
	if err := rs.ensureInitialized(); err != nil {
		return err
	}
	if !name.IsValid() {
		return NewRefError("set", CodeValidationErr, name.String(), "", fmt.Errorf("%w: %s", ErrInvalidName, name))
	}
	if err := digest.Validate(); err != nil {
		return NewRefError("set", CodeValidationErr, name.String(), "", err)
	}

	fullPath := rs.refPath(name)
	if err := fileops.EnsureParentDir(fullPath); err != nil {
		return NewRefError("set", CodeIoErr, name.String(), fullPath.String(), err)
	}

	content := digest.String() + "\n"
	if err := fileops.AtomicWrite(fullPath, []byte(content), 0644); err != nil {
		return NewRefError("set", CodeIoErr, name.String(), fullPath.String(), err)
	}

	return nil
}

// Get resolves a name to its digest.
// A missing name yields ("", false, nil), not an error.
func (rs *RefStore) Get(name trackpath.RefName) (objects.Digest, bool, error) {
	if err := rs.ensureInitialized(); err != nil {
		return "", false, err
	}
	if !name.IsValid() {
		return "", false, NewRefError("get", CodeValidationErr, name.String(), "", fmt.Errorf("%w: %s", ErrInvalidName, name))
	}

	fullPath := rs.refPath(name)
	content, err := fileops.ReadString(fullPath)
	if err != nil {
		return "", false, NewRefError("get", CodeIoErr, name.String(), fullPath.String(), err)
	}
	if content == "" {
		// Set always writes a full digest atomically, so an existing
		// empty file can only be a truncated write
		exists, e := fileops.Exists(fullPath)
		if e != nil {
			return "", false, NewRefError("get", CodeIoErr, name.String(), fullPath.String(), e)
		}
		if exists {
			return "", false, NewRefError("get", CodeCorruptionErr, name.String(), fullPath.String(),
				fmt.Errorf("%w: empty reference file", ErrCorruptRef))
		}
		return "", false, nil
	}

	digest, err := objects.ParseDigest(content)
	if err != nil {
		return "", false, NewRefError("get", CodeValidationErr, name.String(), fullPath.String(),
			fmt.Errorf("invalid ref content: %w", err))
	}

	return digest, true, nil
}

// List returns every reference whose name starts with prefix,
// e.g. List("issues/") enumerates all issues without a separate index.
// An empty prefix lists every reference.
func (rs *RefStore) List(prefix string) ([]trackpath.RefName, error) {
	if err := rs.ensureInitialized(); err != nil {
		return nil, err
	}

	var names []trackpath.RefName
	root := rs.refsPath.String()

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := trackpath.RefName(filepath.ToSlash(rel))
		if strings.HasPrefix(name.String(), prefix) {
			names = append(names, name)
		}
		return nil
	})
	if walkErr != nil {
		return nil, NewRefError("list", CodeIoErr, prefix, root, walkErr)
	}

	return names, nil
}

// Delete removes a reference, reporting whether anything was removed
func (rs *RefStore) Delete(name trackpath.RefName) (bool, error) {
	if err := rs.ensureInitialized(); err != nil {
		return false, err
	}
	if !name.IsValid() {
		return false, NewRefError("delete", CodeValidationErr, name.String(), "", fmt.Errorf("%w: %s", ErrInvalidName, name))
	}

	fullPath := rs.refPath(name)
	exists, err := fileops.Exists(fullPath)
	if err != nil {
		return false, NewRefError("delete", CodeIoErr, name.String(), fullPath.String(), err)
	}
	if !exists {
		return false, nil
	}

	if err := fileops.SafeRemove(fullPath); err != nil {
		return false, NewRefError("delete", CodeIoErr, name.String(), fullPath.String(), err)
	}

	return true, nil
}

// RefsPath returns the path to the refs directory
func (rs *RefStore) RefsPath() trackpath.AbsolutePath {
	return rs.refsPath
}

// refPath resolves a reference name to its full filesystem path
func (rs *RefStore) refPath(name trackpath.RefName) trackpath.AbsolutePath {
	return rs.refsPath.Join(filepath.FromSlash(name.String()))
}

// ensureInitialized checks if the reference store is initialized
func (rs *RefStore) ensureInitialized() error {
	if !rs.refsPath.IsValid() {
		return ErrNotInitialized
	}
	return nil
}
