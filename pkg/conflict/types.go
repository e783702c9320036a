package conflict

import (
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/model"
)

// ConflictType labels the single most significant divergence between two
// snapshots of the same issue. The set is closed and priority-ordered;
// Classify always returns exactly one label.
type ConflictType string

const (
	// StatusConflict means the workflow status differs
	StatusConflict ConflictType = "status"

	// AssignmentConflict means the assignee sets differ
	AssignmentConflict ConflictType = "assignment"

	// LabelConflict means the label sets differ
	LabelConflict ConflictType = "label"

	// ContentConflict means the title or description differ
	ContentConflict ConflictType = "content"

	// MetadataConflict means priority, author, or co-author sets differ
	MetadataConflict ConflictType = "metadata"
)

// String returns the string representation of the conflict type
func (t ConflictType) String() string {
	return string(t)
}

// Conflict pairs the diverged snapshots of one entity with the category
// the classifier assigned. Conflicts are transient; they exist only for
// the duration of a sync pass unless the caller chooses to log them.
type Conflict struct {
	EntityID   string
	Local      *model.Issue
	Remote     *model.Issue
	Type       ConflictType
	DetectedAt time.Time
}

// ResolutionKind selects how a single conflict is settled
type ResolutionKind string

const (
	// AcceptLocal keeps the local snapshot
	AcceptLocal ResolutionKind = "accept_local"

	// AcceptRemote keeps the remote snapshot
	AcceptRemote ResolutionKind = "accept_remote"

	// Manual supplies a caller-merged snapshot
	Manual ResolutionKind = "manual"
)

// ConflictResolution is the outcome chosen for one conflict.
// Resolved is only consulted for Manual.
type ConflictResolution struct {
	Kind     ResolutionKind
	Resolved *model.Issue
}

// LocalResolution resolves by keeping the local snapshot
func LocalResolution() ConflictResolution {
	return ConflictResolution{Kind: AcceptLocal}
}

// RemoteResolution resolves by keeping the remote snapshot
func RemoteResolution() ConflictResolution {
	return ConflictResolution{Kind: AcceptRemote}
}

// ManualResolution resolves with a caller-supplied merged snapshot
func ManualResolution(resolved *model.Issue) ConflictResolution {
	return ConflictResolution{Kind: Manual, Resolved: resolved}
}

// StrategyKind selects how a batch of conflicts is processed
type StrategyKind string

const (
	// StopOnConflict halts the batch at the first unresolved conflict
	StopOnConflict StrategyKind = "stop_on_conflict"

	// SkipConflicts omits unresolved conflicts but keeps processing
	SkipConflicts StrategyKind = "skip_conflicts"

	// AutoResolve applies one resolution uniformly to every conflict
	AutoResolve StrategyKind = "auto_resolve"
)

// BatchConflictStrategy is the policy applied across a whole batch.
// Resolution is only consulted for AutoResolve; it is applied to every
// conflict regardless of type, so callers wanting type-sensitive
// handling must pre-filter with CanAutoResolve.
type BatchConflictStrategy struct {
	Kind       StrategyKind
	Resolution ConflictResolution
}

// StopStrategy halts the batch at the first unresolved conflict
func StopStrategy() BatchConflictStrategy {
	return BatchConflictStrategy{Kind: StopOnConflict}
}

// SkipStrategy skips unresolved conflicts without halting
func SkipStrategy() BatchConflictStrategy {
	return BatchConflictStrategy{Kind: SkipConflicts}
}

// AutoStrategy applies the given resolution uniformly
func AutoStrategy(resolution ConflictResolution) BatchConflictStrategy {
	return BatchConflictStrategy{Kind: AutoResolve, Resolution: resolution}
}
