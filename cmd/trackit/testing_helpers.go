package main

import (
	"testing"

	"github.com/utkarsh5026/TrackIt/pkg/model"
	"github.com/utkarsh5026/TrackIt/pkg/repository"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// TestHelper provides utilities for CLI command testing
type TestHelper struct {
	t       *testing.T
	tempDir string
}

// NewTestHelper creates a new test helper with automatic cleanup
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	return &TestHelper{
		t:       t,
		tempDir: t.TempDir(),
	}
}

// TempDir returns the temporary directory path
func (th *TestHelper) TempDir() string {
	return th.tempDir
}

// Chdir moves the test into the temp directory and restores the
// working directory when the test ends
func (th *TestHelper) Chdir() {
	th.t.Helper()
	th.t.Chdir(th.tempDir)
}

// InitWorkspace initializes a workspace in the temp directory
func (th *TestHelper) InitWorkspace() *repository.Repository {
	th.t.Helper()

	workspace, err := trackpath.NewWorkspacePath(th.tempDir)
	if err != nil {
		th.t.Fatalf("failed to create workspace path: %v", err)
	}

	repo := repository.NewRepository(workspace)
	if err := repo.Init(); err != nil {
		th.t.Fatalf("failed to initialize workspace: %v", err)
	}
	return repo
}

// CreateIssue stores an issue directly, bypassing the CLI
func (th *TestHelper) CreateIssue(repo *repository.Repository, title string) *model.Issue {
	th.t.Helper()

	issue := model.NewIssue(title, "", "tester")
	if _, err := repo.Create(issue); err != nil {
		th.t.Fatalf("failed to create issue: %v", err)
	}
	return issue
}
