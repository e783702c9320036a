package lock

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/common/fileops"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// Manager hands out advisory, named, exclusive locks backed by sentinel
// files under .trackit/locks/. The mere existence of locks/<resource>.lock
// signals the lock is held.
//
// Acquisition is fail-fast: a second acquisition for a held resource
// returns an AlreadyLocked error instead of blocking, since the system
// is single-process-oriented. Locks never expire on their own; a crashed
// holder leaves a stale sentinel that ClearStale removes.
type Manager struct {
	locksPath trackpath.AbsolutePath
}

// Lock represents a held advisory lock. Callers must guarantee Release
// on every exit path; prefer Manager.With for that.
type Lock struct {
	resource   string
	path       trackpath.AbsolutePath
	file       *os.File
	acquiredAt time.Time
	released   bool
}

// NewManager creates a new lock manager
func NewManager() *Manager {
	return &Manager{}
}

// Initialize sets up the lock manager by creating the locks directory
func (m *Manager) Initialize(track trackpath.TrackPath) error {
	m.locksPath = track.LocksPath()

	if err := fileops.EnsureDir(m.locksPath); err != nil {
		return NewLockError("initialize", CodeIoErr, "", m.locksPath.String(), err)
	}

	return nil
}

// Acquire takes the exclusive lock for a resource.
// Fails with an AlreadyLocked error if any holder has it.
func (m *Manager) Acquire(resource string) (*Lock, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}
	if err := validateResource(resource); err != nil {
		return nil, NewLockError("acquire", CodeValidationErr, resource, "", err)
	}

	sentinel := m.sentinelPath(resource)
	file, err := os.OpenFile(sentinel.String(), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, NewLockError("acquire", CodeAlreadyLockedErr, resource, sentinel.String(),
				fmt.Errorf("%w: another holder has %s", ErrAlreadyLocked, resource))
		}
		return nil, NewLockError("acquire", CodeIoErr, resource, sentinel.String(), err)
	}

	now := time.Now()
	// The sentinel records when and by whom it was taken, for diagnostics
	fmt.Fprintf(file, "pid=%d acquired=%s\n", os.Getpid(), now.Format(time.RFC3339))

	return &Lock{
		resource:   resource,
		path:       sentinel,
		file:       file,
		acquiredAt: now,
	}, nil
}

// With runs fn while holding the resource's lock, releasing it on every
// exit path including panics and early error returns.
func (m *Manager) With(resource string, fn func() error) error {
	l, err := m.Acquire(resource)
	if err != nil {
		return err
	}
	defer l.Release()

	return fn()
}

// Held reports whether a sentinel currently exists for the resource
func (m *Manager) Held(resource string) (bool, error) {
	if err := m.ensureInitialized(); err != nil {
		return false, err
	}
	if err := validateResource(resource); err != nil {
		return false, NewLockError("held", CodeValidationErr, resource, "", err)
	}

	exists, err := fileops.Exists(m.sentinelPath(resource))
	if err != nil {
		return false, NewLockError("held", CodeIoErr, resource, "", err)
	}
	return exists, nil
}

// ClearStale removes a sentinel left behind by a crashed holder.
// This is an explicit repair operation used by fsck; it must never run
// while a live holder exists.
func (m *Manager) ClearStale(resource string) (bool, error) {
	if err := m.ensureInitialized(); err != nil {
		return false, err
	}
	if err := validateResource(resource); err != nil {
		return false, NewLockError("clear_stale", CodeValidationErr, resource, "", err)
	}

	sentinel := m.sentinelPath(resource)
	exists, err := fileops.Exists(sentinel)
	if err != nil {
		return false, NewLockError("clear_stale", CodeIoErr, resource, sentinel.String(), err)
	}
	if !exists {
		return false, nil
	}

	if err := fileops.SafeRemove(sentinel); err != nil {
		return false, NewLockError("clear_stale", CodeIoErr, resource, sentinel.String(), err)
	}
	return true, nil
}

// ListHeld returns the resources that currently have sentinels
func (m *Manager) ListHeld() ([]string, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.locksPath.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewLockError("list_held", CodeIoErr, "", m.locksPath.String(), err)
	}

	var resources []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, trackpath.LockSuffix) {
			continue
		}
		resources = append(resources, strings.TrimSuffix(name, trackpath.LockSuffix))
	}
	return resources, nil
}

// Lock methods

// Resource returns the locked resource name
func (l *Lock) Resource() string {
	return l.resource
}

// AcquiredAt returns when the lock was taken
func (l *Lock) AcquiredAt() time.Time {
	return l.acquiredAt
}

// Release removes the sentinel. Releasing twice is a no-op, not an error.
func (l *Lock) Release() error {
	if l.released {
		return nil
	}
	l.released = true

	if err := l.file.Close(); err != nil {
		return NewLockError("release", CodeIoErr, l.resource, l.path.String(), err)
	}
	if err := fileops.SafeRemove(l.path); err != nil {
		return NewLockError("release", CodeIoErr, l.resource, l.path.String(), err)
	}

	return nil
}

// sentinelPath resolves a resource name to its sentinel file path
func (m *Manager) sentinelPath(resource string) trackpath.AbsolutePath {
	return m.locksPath.Join(resource + trackpath.LockSuffix)
}

// validateResource rejects names that would escape the locks directory
func validateResource(resource string) error {
	if resource == "" {
		return fmt.Errorf("resource name cannot be empty")
	}
	if strings.ContainsAny(resource, "/\\") || strings.Contains(resource, "..") {
		return fmt.Errorf("resource name cannot contain path separators: %s", resource)
	}
	return nil
}

// ensureInitialized checks if the lock manager is initialized
func (m *Manager) ensureInitialized() error {
	if !m.locksPath.IsValid() {
		return ErrNotInitialized
	}
	return nil
}
