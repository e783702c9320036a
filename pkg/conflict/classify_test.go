package conflict

import (
	"testing"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/model"
)

func makeIssuePair(t *testing.T) (*model.Issue, *model.Issue) {
	t.Helper()

	local := model.NewIssue("Fix login", "Login form rejects valid passwords", "alice")
	local.Assignees = []string{"bob"}
	local.Labels = []string{"bug"}
	return local, local.Clone()
}

func TestClassifyIdenticalSnapshots(t *testing.T) {
	local, remote := makeIssuePair(t)

	if kind, found := Classify(local, remote); found {
		t.Errorf("expected no conflict for identical snapshots, got %s", kind)
	}
}

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(remote *model.Issue)
		want   ConflictType
	}{
		{
			name:   "status differs",
			mutate: func(r *model.Issue) { r.Status = model.StatusInProgress },
			want:   StatusConflict,
		},
		{
			name:   "assignees differ",
			mutate: func(r *model.Issue) { r.Assignees = []string{"carol"} },
			want:   AssignmentConflict,
		},
		{
			name:   "labels differ",
			mutate: func(r *model.Issue) { r.Labels = []string{"bug", "urgent"} },
			want:   LabelConflict,
		},
		{
			name:   "title differs",
			mutate: func(r *model.Issue) { r.Title = "Fix login redirect" },
			want:   ContentConflict,
		},
		{
			name:   "description differs",
			mutate: func(r *model.Issue) { r.Description = "updated repro steps" },
			want:   ContentConflict,
		},
		{
			name:   "priority differs",
			mutate: func(r *model.Issue) { r.Priority = model.PriorityCritical },
			want:   MetadataConflict,
		},
		{
			name:   "co-authors differ",
			mutate: func(r *model.Issue) { r.CoAuthors = []string{"dave"} },
			want:   MetadataConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local, remote := makeIssuePair(t)
			tt.mutate(remote)

			kind, found := Classify(local, remote)
			if !found {
				t.Fatal("expected a conflict")
			}
			if kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, kind)
			}
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	local, remote := makeIssuePair(t)

	// Both status and labels diverge; status must win
	remote.Status = model.StatusResolved
	remote.Labels = []string{"wontfix"}

	kind, found := Classify(local, remote)
	if !found {
		t.Fatal("expected a conflict")
	}
	if kind != StatusConflict {
		t.Errorf("expected StatusConflict to outrank LabelConflict, got %s", kind)
	}
}

func TestClassifyIgnoresSetOrder(t *testing.T) {
	local, remote := makeIssuePair(t)
	local.Assignees = []string{"bob", "carol"}
	remote.Assignees = []string{"carol", "bob"}

	if kind, found := Classify(local, remote); found {
		t.Errorf("expected reordered assignees to not conflict, got %s", kind)
	}
}

func TestDetect(t *testing.T) {
	local, remote := makeIssuePair(t)
	remote.Status = model.StatusClosed

	c := Detect(local, remote)
	if c == nil {
		t.Fatal("expected a conflict")
	}
	if c.EntityID != local.ID {
		t.Errorf("expected entity id %s, got %s", local.ID, c.EntityID)
	}
	if c.Type != StatusConflict {
		t.Errorf("expected StatusConflict, got %s", c.Type)
	}
	if c.DetectedAt.IsZero() {
		t.Error("expected a detection timestamp")
	}

	if Detect(local, local.Clone()) != nil {
		t.Error("expected nil for identical snapshots")
	}
}

func TestCanAutoResolve(t *testing.T) {
	if !CanAutoResolve(MetadataConflict) {
		t.Error("expected MetadataConflict to be auto-resolvable")
	}

	for _, kind := range []ConflictType{StatusConflict, AssignmentConflict, LabelConflict, ContentConflict} {
		if CanAutoResolve(kind) {
			t.Errorf("expected %s to require explicit resolution", kind)
		}
	}
}

func TestResolve(t *testing.T) {
	local, remote := makeIssuePair(t)
	remote.Status = model.StatusClosed
	c := Detect(local, remote)

	got, e := Resolve(c, LocalResolution())
	if e != nil {
		t.Fatalf("resolve failed: %v", e)
	}
	if got.Status != local.Status {
		t.Errorf("expected local status %s, got %s", local.Status, got.Status)
	}

	got, e = Resolve(c, RemoteResolution())
	if e != nil {
		t.Fatalf("resolve failed: %v", e)
	}
	if got.Status != remote.Status {
		t.Errorf("expected remote status %s, got %s", remote.Status, got.Status)
	}

	merged := local.Clone()
	merged.Title = "Fix login (merged)"
	got, e = Resolve(c, ManualResolution(merged))
	if e != nil {
		t.Fatalf("resolve failed: %v", e)
	}
	if got.Title != merged.Title {
		t.Errorf("expected merged title, got %s", got.Title)
	}

	if _, e = Resolve(c, ConflictResolution{Kind: Manual}); e == nil {
		t.Error("expected manual resolution without a snapshot to fail")
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	local, remote := makeIssuePair(t)
	remote.Status = model.StatusClosed
	c := Detect(local, remote)

	got, e := Resolve(c, LocalResolution())
	if e != nil {
		t.Fatalf("resolve failed: %v", e)
	}

	got.Title = "mutated"
	if c.Local.Title == "mutated" {
		t.Error("expected resolved snapshot to be a copy")
	}
}

func TestNewerSnapshot(t *testing.T) {
	local, remote := makeIssuePair(t)
	remote.Priority = model.PriorityHigh
	remote.UpdatedAt = local.UpdatedAt.Add(time.Hour)

	c := Detect(local, remote)
	if c.NewerSnapshot() != remote {
		t.Error("expected the later-modified remote snapshot to win")
	}

	// Ties go to local
	remote.UpdatedAt = local.UpdatedAt
	if c.NewerSnapshot() != local {
		t.Error("expected ties to favor the local snapshot")
	}
}
