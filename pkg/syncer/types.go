package syncer

import (
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/conflict"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// SyncPhase tracks where a sync invocation is in its lifecycle.
// Transitions: Idle -> Connecting -> Pulling/Pushing -> Reconciling ->
// Completed | Failed.
type SyncPhase string

const (
	PhaseIdle        SyncPhase = "idle"
	PhaseConnecting  SyncPhase = "connecting"
	PhasePulling     SyncPhase = "pulling"
	PhasePushing     SyncPhase = "pushing"
	PhaseReconciling SyncPhase = "reconciling"
	PhaseCompleted   SyncPhase = "completed"
	PhaseFailed      SyncPhase = "failed"
)

// String returns the string representation of the phase
func (p SyncPhase) String() string {
	return string(p)
}

// SyncOptions scopes and shapes one sync invocation
type SyncOptions struct {
	// Kinds restricts the sync to the given entity kinds.
	// Empty means every kind except remote descriptors.
	Kinds []objects.ObjectKind

	// ProjectID restricts issue transfer to one project when set
	ProjectID string

	// Force keeps a batch going past its failure budget
	Force bool

	// DryRun lists and connects but never mutates either side
	DryRun bool

	// AutoResolve settles auto-resolvable conflicts in place, taking
	// whichever snapshot was modified later
	AutoResolve bool

	// BatchSize is the per-batch failure budget; a batch with more
	// than this many entity failures aborts unless Force is set
	BatchSize int

	// Timeout bounds the whole invocation. Advisory; it is applied at
	// the transport boundary through the request context.
	Timeout time.Duration
}

// DefaultSyncOptions returns the options used when the caller passes
// none
func DefaultSyncOptions() SyncOptions {
	return SyncOptions{
		BatchSize: 50,
		Timeout:   2 * time.Minute,
	}
}

// kinds resolves the effective kind filter
func (o SyncOptions) kinds() []objects.ObjectKind {
	if len(o.Kinds) > 0 {
		return o.Kinds
	}

	var kinds []objects.ObjectKind
	for _, kind := range objects.AllKinds() {
		if kind != objects.RemoteKind {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// SyncStats accumulates the quantitative outcome of a sync invocation
type SyncStats struct {
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at,omitzero"`
	Pulled            int       `json:"pulled"`
	Pushed            int       `json:"pushed"`
	ConflictsDetected int       `json:"conflicts_detected"`
	ConflictsResolved int       `json:"conflicts_resolved"`
	BytesTransferred  int64     `json:"bytes_transferred"`
}

// TotalProcessed is the number of entities that moved in either
// direction
func (s SyncStats) TotalProcessed() int {
	return s.Pulled + s.Pushed
}

// ResolutionRate is the fraction of detected conflicts that were
// resolved, zero when none were detected
func (s SyncStats) ResolutionRate() float64 {
	if s.ConflictsDetected == 0 {
		return 0
	}
	return float64(s.ConflictsResolved) / float64(s.ConflictsDetected)
}

// Duration is the wall time the invocation took
func (s SyncStats) Duration() time.Duration {
	if s.CompletedAt.IsZero() {
		return 0
	}
	return s.CompletedAt.Sub(s.StartedAt)
}

// EntityFailure records one isolated per-entity failure inside a batch
type EntityFailure struct {
	Kind objects.ObjectKind
	ID   string
	Err  error
}

// SyncResult is the aggregated outcome of one pull, push, or full sync
// invocation
type SyncResult struct {
	Remote    string
	Phase     SyncPhase
	DryRun    bool
	Stats     SyncStats
	PulledIDs []string
	PushedIDs []string
	Conflicts []*conflict.Conflict
	Failures  []EntityFailure
}

// newSyncResult starts a result in the idle phase
func newSyncResult(remote string, dryRun bool) *SyncResult {
	return &SyncResult{
		Remote: remote,
		Phase:  PhaseIdle,
		DryRun: dryRun,
		Stats:  SyncStats{StartedAt: time.Now()},
	}
}

// complete moves the result to its terminal phase
func (r *SyncResult) complete(failed bool) {
	r.Stats.CompletedAt = time.Now()
	if failed {
		r.Phase = PhaseFailed
	} else {
		r.Phase = PhaseCompleted
	}
}

// EntityMetadata is one row of a remote listing: just enough to decide
// transfer direction without downloading the snapshot
type EntityMetadata struct {
	ID         string    `json:"id"`
	Checksum   string    `json:"checksum"`
	ModifiedAt time.Time `json:"modified_at"`
}
