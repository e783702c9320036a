package fileops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

func TestAtomicWrite_Success(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "test-file.txt")
	absPath := trackpath.AbsolutePath(targetPath)

	testData := []byte("Hello, atomic write!")
	testMode := os.FileMode(0644)

	err := AtomicWrite(absPath, testData, testMode)
	if err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	content, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(testData) {
		t.Errorf("File content mismatch: got %q, want %q", string(content), string(testData))
	}

	// Permission bits are only meaningful on Unix-like systems
	if runtime.GOOS != "windows" {
		fileInfo, err := os.Stat(targetPath)
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}
		if fileInfo.Mode().Perm() != testMode {
			t.Errorf("File permissions mismatch: got %v, want %v", fileInfo.Mode().Perm(), testMode)
		}
	}
}

func TestAtomicWrite_OverwriteExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "overwrite-test.txt")
	absPath := trackpath.AbsolutePath(targetPath)

	if err := os.WriteFile(targetPath, []byte("initial content"), 0644); err != nil {
		t.Fatalf("Failed to create initial file: %v", err)
	}

	newData := []byte("new content after atomic write")
	if err := AtomicWrite(absPath, newData, 0644); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	content, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(newData) {
		t.Errorf("File content mismatch after overwrite: got %q, want %q", string(content), string(newData))
	}
}

func TestAtomicWrite_NoTempFileLeftBehind(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "clean.txt")

	if err := AtomicWrite(trackpath.AbsolutePath(targetPath), []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly 1 file in dir, got %d", len(entries))
	}
}

func TestAtomicWrite_MissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "does-not-exist", "file.txt")

	err := AtomicWrite(trackpath.AbsolutePath(targetPath), []byte("data"), 0644)
	if err == nil {
		t.Fatal("expected error writing into missing directory")
	}
}
