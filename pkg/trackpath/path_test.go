package trackpath

import (
	"path/filepath"
	"testing"
)

func TestNewWorkspacePath(t *testing.T) {
	wp, err := NewWorkspacePath("/home/user/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wp.IsValid() {
		t.Error("expected valid workspace path")
	}
	if wp.String() != filepath.Clean("/home/user/project") {
		t.Errorf("unexpected path: %s", wp)
	}
}

func TestNewWorkspacePathRejectsRelative(t *testing.T) {
	for _, path := range []string{"project", "./project", "../project", ""} {
		if _, err := NewWorkspacePath(path); err == nil {
			t.Errorf("expected error for relative path %q", path)
		}
	}
}

func TestWorkspacePathCleansInput(t *testing.T) {
	wp, err := NewWorkspacePath("/home/user//project/.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wp.String() != filepath.Clean("/home/user/project") {
		t.Errorf("path was not cleaned: %s", wp)
	}
}

func TestTrackPathLayout(t *testing.T) {
	wp, err := NewWorkspacePath("/workspace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tp := wp.TrackPath()
	base := filepath.Join("/workspace", TrackDir)

	cases := []struct {
		got  string
		want string
	}{
		{tp.String(), base},
		{tp.ObjectsPath().String(), filepath.Join(base, ObjectsDir)},
		{tp.RefsPath().String(), filepath.Join(base, RefsDir)},
		{tp.LocksPath().String(), filepath.Join(base, LocksDir)},
		{tp.ConfigPath().String(), filepath.Join(base, ConfigFileName)},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %s, want %s", c.got, c.want)
		}
	}
}

func TestAbsolutePathOperations(t *testing.T) {
	ap := AbsolutePath("/workspace/.trackit/objects")

	if ap.Base() != "objects" {
		t.Errorf("unexpected base: %s", ap.Base())
	}
	if ap.Dir().String() != filepath.Clean("/workspace/.trackit") {
		t.Errorf("unexpected dir: %s", ap.Dir())
	}
	joined := ap.Join("7f", "3c1a")
	if joined.String() != filepath.Join("/workspace/.trackit/objects", "7f", "3c1a") {
		t.Errorf("unexpected join: %s", joined)
	}
}

func TestRefNameValidation(t *testing.T) {
	valid := []RefName{
		"issues/7f3c1a",
		"projects/backend",
		"remotes/origin",
		"labels/needs-triage",
	}
	for _, name := range valid {
		if !name.IsValid() {
			t.Errorf("expected %q to be valid", name)
		}
	}

	invalid := []RefName{
		"",
		"/issues/7f3c1a",
		"issues/7f3c1a/",
		"issues//7f3c1a",
		"issues/../secrets",
		"issues/a b",
		"issues/a?b",
		".hidden",
		"issues/7f3c1a.lock",
		"issues\\7f3c1a",
	}
	for _, name := range invalid {
		if name.IsValid() {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}

func TestRefNameSegments(t *testing.T) {
	name := RefName("issues/7f3c1a")

	if name.Kind() != "issues" {
		t.Errorf("unexpected kind: %s", name.Kind())
	}
	if name.ShortName() != "7f3c1a" {
		t.Errorf("unexpected short name: %s", name.ShortName())
	}
	if !name.HasPrefix(IssuesPrefix) {
		t.Error("expected issues prefix to match")
	}

	bare := RefName("standalone")
	if bare.Kind() != "standalone" || bare.ShortName() != "standalone" {
		t.Errorf("bare name segments: kind=%s short=%s", bare.Kind(), bare.ShortName())
	}
}
