package trackpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// WorkspacePath represents an absolute path to a workspace root directory
// Example: "/home/user/myproject" or "C:\Users\user\myproject"
type WorkspacePath string

// TrackPath represents the absolute path to the .trackit directory
// inside a workspace
type TrackPath string

// AbsolutePath represents any absolute filesystem path
type AbsolutePath string

// RefName represents a reference name within the refs directory
// Examples: "issues/7f3c1a", "projects/backend", "remotes/origin"
type RefName string

// NewWorkspacePath creates a WorkspacePath from a string
// Returns an error if the path is not absolute
func NewWorkspacePath(path string) (WorkspacePath, error) {
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("workspace path must be absolute, got %q", path)
	}
	return WorkspacePath(filepath.Clean(path)), nil
}

// WorkspacePath methods

// String returns the path as a string
func (wp WorkspacePath) String() string {
	return string(wp)
}

// IsValid checks if this is a valid workspace path
func (wp WorkspacePath) IsValid() bool {
	return len(wp) > 0 && filepath.IsAbs(string(wp))
}

// TrackPath returns the path to the .trackit directory
func (wp WorkspacePath) TrackPath() TrackPath {
	return TrackPath(filepath.Join(string(wp), TrackDir))
}

// Join joins path elements to the workspace path
func (wp WorkspacePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(wp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// TrackPath methods

// String returns the path as a string
func (tp TrackPath) String() string {
	return string(tp)
}

// IsValid checks if this is a valid track path
func (tp TrackPath) IsValid() bool {
	return len(tp) > 0
}

// ObjectsPath returns the path to the objects directory
func (tp TrackPath) ObjectsPath() AbsolutePath {
	return tp.Join(ObjectsDir)
}

// RefsPath returns the path to the refs directory
func (tp TrackPath) RefsPath() AbsolutePath {
	return tp.Join(RefsDir)
}

// LocksPath returns the path to the locks directory
func (tp TrackPath) LocksPath() AbsolutePath {
	return tp.Join(LocksDir)
}

// ConfigPath returns the path to the workspace configuration file
func (tp TrackPath) ConfigPath() AbsolutePath {
	return tp.Join(ConfigFileName)
}

// Join joins path elements to the track path
func (tp TrackPath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(tp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// AbsolutePath methods

// String returns the path as a string
func (ap AbsolutePath) String() string {
	return string(ap)
}

// IsValid checks if this is a valid path
func (ap AbsolutePath) IsValid() bool {
	return len(ap) > 0
}

// Join joins path elements to the path
func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(ap)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// Dir returns all but the last element of the path
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// Base returns the last element of the path
func (ap AbsolutePath) Base() string {
	return filepath.Base(string(ap))
}

// RefName methods

// String returns the reference name as a string
func (rn RefName) String() string {
	return string(rn)
}

// IsValid checks if this is a valid reference name
// Reference names use forward slashes and must not escape the refs
// directory or collide with lock sentinels
func (rn RefName) IsValid() bool {
	s := string(rn)
	if len(s) == 0 {
		return false
	}

	invalid := []string{" ", "~", "^", ":", "?", "*", "[", "\\", "..", "//"}
	for _, seq := range invalid {
		if strings.Contains(s, seq) {
			return false
		}
	}

	if strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	if strings.HasSuffix(s, ".lock") {
		return false
	}

	return true
}

// Kind returns the leading path segment of the reference name
// "issues/7f3c1a" -> "issues"
func (rn RefName) Kind() string {
	s := string(rn)
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// ShortName returns the reference name without its leading segment
// "issues/7f3c1a" -> "7f3c1a"
func (rn RefName) ShortName() string {
	s := string(rn)
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// HasPrefix returns true if the reference name starts with the given prefix
func (rn RefName) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(rn), prefix)
}
