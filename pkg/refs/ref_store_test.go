package refs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/utkarsh5026/TrackIt/pkg/objects"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

func setupTestRefs(t *testing.T) *RefStore {
	t.Helper()

	workspace, err := trackpath.NewWorkspacePath(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create workspace path: %v", err)
	}

	rs := NewRefStore()
	if err := rs.Initialize(workspace.TrackPath()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	return rs
}

func TestRefStore_SetGet(t *testing.T) {
	rs := setupTestRefs(t)
	digest := objects.NewDigest([]byte("snapshot"))

	if err := rs.Set("issues/a1", digest); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, found, err := rs.Get("issues/a1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Fatal("reference should exist")
	}
	if got != digest {
		t.Errorf("digest mismatch: got %s, want %s", got, digest)
	}
}

func TestRefStore_GetMissing(t *testing.T) {
	rs := setupTestRefs(t)

	_, found, err := rs.Get("issues/never-set")
	if err != nil {
		t.Fatalf("Get() of missing ref should not error: %v", err)
	}
	if found {
		t.Error("missing reference should report not found")
	}
}

func TestRefStore_SetMovesReference(t *testing.T) {
	rs := setupTestRefs(t)
	d1 := objects.NewDigest([]byte("first snapshot"))
	d2 := objects.NewDigest([]byte("second snapshot"))

	if err := rs.Set("issues/a1", d1); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := rs.Set("issues/a1", d2); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	got, found, err := rs.Get("issues/a1")
	if err != nil || !found {
		t.Fatalf("Get() failed: found=%v err=%v", found, err)
	}
	if got != d2 {
		t.Errorf("reference should point at new digest: got %s, want %s", got, d2)
	}
}

func TestRefStore_ListByPrefix(t *testing.T) {
	rs := setupTestRefs(t)
	digest := objects.NewDigest([]byte("x"))

	for _, name := range []trackpath.RefName{"issues/a1", "issues/b2", "projects/p1"} {
		if err := rs.Set(name, digest); err != nil {
			t.Fatalf("Set(%s) failed: %v", name, err)
		}
	}

	issues, err := rs.List("issues/")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(issues) != 2 {
		t.Errorf("List(issues/) = %v, want 2 refs", issues)
	}
	for _, name := range issues {
		if !name.HasPrefix("issues/") {
			t.Errorf("unexpected ref in listing: %s", name)
		}
	}

	all, err := rs.List("")
	if err != nil {
		t.Fatalf("List(\"\") failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(\"\") = %v, want 3 refs", all)
	}
}

func TestRefStore_Delete(t *testing.T) {
	rs := setupTestRefs(t)
	digest := objects.NewDigest([]byte("x"))

	if err := rs.Set("issues/gone", digest); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	removed, err := rs.Delete("issues/gone")
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if !removed {
		t.Error("first Delete() should report removal")
	}

	removed, err = rs.Delete("issues/gone")
	if err != nil {
		t.Fatalf("second Delete() failed: %v", err)
	}
	if removed {
		t.Error("second Delete() should report nothing removed")
	}
}

func TestRefStore_RejectsInvalidNames(t *testing.T) {
	rs := setupTestRefs(t)
	digest := objects.NewDigest([]byte("x"))

	invalid := []trackpath.RefName{"", "../escape", "has space", "issues/x.lock", "/leading"}
	for _, name := range invalid {
		if err := rs.Set(name, digest); err == nil {
			t.Errorf("Set(%q) should fail", name)
		}
	}
}

func TestRefStore_GetEmptyFileIsCorrupt(t *testing.T) {
	rs := setupTestRefs(t)

	// A zero-byte ref can only come from a truncated write; Set always
	// lands a full digest atomically
	path := rs.refPath("issues/truncated")
	if err := os.MkdirAll(filepath.Dir(path.String()), 0755); err != nil {
		t.Fatalf("failed to create ref dir: %v", err)
	}
	if err := os.WriteFile(path.String(), nil, 0644); err != nil {
		t.Fatalf("failed to write empty ref: %v", err)
	}

	_, found, err := rs.Get("issues/truncated")
	if err == nil {
		t.Fatal("expected corruption error for empty ref file")
	}
	if !IsCorrupt(err) {
		t.Errorf("expected corruption error, got %v", err)
	}
	if found {
		t.Error("corrupt reference should not report found")
	}
}
