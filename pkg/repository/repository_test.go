package repository

import (
	"os"
	"testing"

	"github.com/utkarsh5026/TrackIt/pkg/model"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	tmpDir, e := os.MkdirTemp("", "repo_test_*")
	if e != nil {
		t.Fatalf("failed to create temp dir: %v", e)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	workspace, e := trackpath.NewWorkspacePath(tmpDir)
	if e != nil {
		t.Fatalf("failed to create workspace path: %v", e)
	}

	r := NewRepository(workspace)
	if e := r.Init(); e != nil {
		t.Fatalf("failed to init repository: %v", e)
	}
	return r
}

func TestInitAndOpen(t *testing.T) {
	r := setupTestRepository(t)

	if !r.IsInitialized() {
		t.Error("expected repository to be initialized")
	}

	if e := r.Init(); e == nil {
		t.Error("expected second init to fail")
	}

	other := NewRepository(r.Workspace())
	if e := other.Open(); e != nil {
		t.Errorf("expected open of initialized workspace to succeed, got: %v", e)
	}
}

func TestOpenUninitialized(t *testing.T) {
	tmpDir, e := os.MkdirTemp("", "repo_test_*")
	if e != nil {
		t.Fatalf("failed to create temp dir: %v", e)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	workspace, _ := trackpath.NewWorkspacePath(tmpDir)
	r := NewRepository(workspace)
	if e := r.Open(); e == nil {
		t.Error("expected open of uninitialized workspace to fail")
	}
}

func TestCreateAndGet(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("Fix login", "Login form rejects valid passwords", "alice")
	digest, e := r.Create(issue)
	if e != nil {
		t.Fatalf("create failed: %v", e)
	}
	if e := digest.Validate(); e != nil {
		t.Fatalf("create returned invalid digest: %v", e)
	}

	got, e := r.Issue(issue.ID)
	if e != nil {
		t.Fatalf("get failed: %v", e)
	}
	if got == nil {
		t.Fatal("expected issue to be found")
	}
	if got.Title != issue.Title || got.Author != issue.Author {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreateDuplicate(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("Fix login", "", "alice")
	if _, e := r.Create(issue); e != nil {
		t.Fatalf("create failed: %v", e)
	}

	_, e := r.Create(issue)
	if e == nil {
		t.Fatal("expected duplicate create to fail")
	}
	if !IsAlreadyExists(e) {
		t.Errorf("expected AlreadyExists error, got: %v", e)
	}
}

func TestCreateRejectsInvalidEntity(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("", "", "alice")
	if _, e := r.Create(issue); e == nil {
		t.Error("expected create of titleless issue to fail")
	}
}

func TestUpdateMovesReference(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("Fix login", "", "alice")
	d1, e := r.Create(issue)
	if e != nil {
		t.Fatalf("create failed: %v", e)
	}

	if e := issue.SetStatus(model.StatusInProgress); e != nil {
		t.Fatalf("set status failed: %v", e)
	}
	d2, e := r.Update(issue)
	if e != nil {
		t.Fatalf("update failed: %v", e)
	}
	if d1 == d2 {
		t.Error("expected a new digest after update")
	}

	got, e := r.Issue(issue.ID)
	if e != nil {
		t.Fatalf("get failed: %v", e)
	}
	if got.Status != model.StatusInProgress {
		t.Errorf("expected updated status, got %s", got.Status)
	}

	// The old snapshot is unreachable through the reference but still
	// retrievable by digest
	old, e := r.GetAt(d1)
	if e != nil {
		t.Fatalf("get at digest failed: %v", e)
	}
	oldIssue, ok := old.(*model.Issue)
	if !ok || oldIssue.Status != model.StatusOpen {
		t.Errorf("expected original snapshot at old digest, got %+v", old)
	}
}

func TestUpdateMissingEntity(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("Fix login", "", "alice")
	_, e := r.Update(issue)
	if e == nil {
		t.Fatal("expected update of missing entity to fail")
	}
	if !IsNotFound(e) {
		t.Errorf("expected NotFound error, got: %v", e)
	}
}

func TestSaveUpserts(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("Fix login", "", "alice")
	if _, e := r.Save(issue); e != nil {
		t.Fatalf("first save failed: %v", e)
	}

	issue.Priority = model.PriorityHigh
	if _, e := r.Save(issue); e != nil {
		t.Fatalf("second save failed: %v", e)
	}

	got, e := r.Issue(issue.ID)
	if e != nil {
		t.Fatalf("get failed: %v", e)
	}
	if got.Priority != model.PriorityHigh {
		t.Errorf("expected saved priority, got %s", got.Priority)
	}
}

func TestGetAbsent(t *testing.T) {
	r := setupTestRepository(t)

	got, e := r.Issue("no-such-id")
	if e != nil {
		t.Fatalf("expected no error for absent issue, got: %v", e)
	}
	if got != nil {
		t.Errorf("expected nil for absent issue, got %+v", got)
	}
}

func TestDanglingReferenceReadsAsNotFound(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("Fix login", "", "alice")
	digest, e := r.Create(issue)
	if e != nil {
		t.Fatalf("create failed: %v", e)
	}

	// Remove the snapshot out of band, leaving the reference dangling
	if _, e := r.Objects().Delete(digest); e != nil {
		t.Fatalf("object delete failed: %v", e)
	}

	got, e := r.Issue(issue.ID)
	if e != nil {
		t.Fatalf("expected dangling reference to read as absent, got: %v", e)
	}
	if got != nil {
		t.Errorf("expected nil for dangling reference, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	r := setupTestRepository(t)

	issue := model.NewIssue("Fix login", "", "alice")
	if _, e := r.Create(issue); e != nil {
		t.Fatalf("create failed: %v", e)
	}

	removed, e := r.Delete(objects.IssueKind, issue.ID)
	if e != nil {
		t.Fatalf("delete failed: %v", e)
	}
	if !removed {
		t.Error("expected delete to remove the entity")
	}

	removed, e = r.Delete(objects.IssueKind, issue.ID)
	if e != nil {
		t.Fatalf("second delete failed: %v", e)
	}
	if removed {
		t.Error("expected second delete to be a no-op")
	}

	got, _ := r.Issue(issue.ID)
	if got != nil {
		t.Error("expected issue to be gone after delete")
	}
}

func TestListByKind(t *testing.T) {
	r := setupTestRepository(t)

	for _, title := range []string{"Fix login", "Fix logout"} {
		if _, e := r.Create(model.NewIssue(title, "", "alice")); e != nil {
			t.Fatalf("create failed: %v", e)
		}
	}
	if _, e := r.Create(model.NewProject("Website", "")); e != nil {
		t.Fatalf("create project failed: %v", e)
	}

	issues, e := r.Issues()
	if e != nil {
		t.Fatalf("list issues failed: %v", e)
	}
	if len(issues) != 2 {
		t.Errorf("expected 2 issues, got %d", len(issues))
	}

	projects, e := r.Projects()
	if e != nil {
		t.Fatalf("list projects failed: %v", e)
	}
	if len(projects) != 1 {
		t.Errorf("expected 1 project, got %d", len(projects))
	}
}

func TestRemoteRoundTrip(t *testing.T) {
	r := setupTestRepository(t)

	remote := model.NewRemote("origin", "https://tracker.example.com")
	if _, e := r.Create(remote); e != nil {
		t.Fatalf("create remote failed: %v", e)
	}

	got, e := r.Remote(remote.ID)
	if e != nil {
		t.Fatalf("get remote failed: %v", e)
	}
	if got == nil || got.URL != remote.URL {
		t.Errorf("remote round trip mismatch: %+v", got)
	}

	remotes, e := r.Remotes()
	if e != nil {
		t.Fatalf("list remotes failed: %v", e)
	}
	if len(remotes) != 1 {
		t.Errorf("expected 1 remote, got %d", len(remotes))
	}
}
