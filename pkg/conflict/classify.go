package conflict

import (
	"fmt"
	"slices"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/model"
)

// Classify compares two snapshots of the same issue and reports the most
// significant divergence between them. Evaluation order is deliberate:
// a single pair of snapshots can trigger several categories at once, and
// the caller needs exactly one label to drive resolution, so the first
// match wins. Identical snapshots yield (_, false).
func Classify(local, remote *model.Issue) (ConflictType, bool) {
	switch {
	case local.Status != remote.Status:
		return StatusConflict, true
	case !sameSet(local.Assignees, remote.Assignees):
		return AssignmentConflict, true
	case !sameSet(local.Labels, remote.Labels):
		return LabelConflict, true
	case local.Title != remote.Title || local.Description != remote.Description:
		return ContentConflict, true
	case local.Priority != remote.Priority ||
		local.Author != remote.Author ||
		!sameSet(local.CoAuthors, remote.CoAuthors):
		return MetadataConflict, true
	default:
		return "", false
	}
}

// Detect classifies the pair and, if they diverge, wraps them in a
// Conflict stamped with the detection time. Returns nil when the
// snapshots agree.
func Detect(local, remote *model.Issue) *Conflict {
	kind, found := Classify(local, remote)
	if !found {
		return nil
	}

	return &Conflict{
		EntityID:   local.ID,
		Local:      local,
		Remote:     remote,
		Type:       kind,
		DetectedAt: time.Now(),
	}
}

// CanAutoResolve reports whether a conflict type may be settled without
// caller intervention. Only metadata divergence qualifies by default;
// every other category needs an explicit ConflictResolution. Callers can
// override this policy through a BatchConflictStrategy.
func CanAutoResolve(t ConflictType) bool {
	return t == MetadataConflict
}

// Resolve applies a resolution to a conflict and returns the winning
// snapshot. The returned issue is a copy; mutating it does not affect
// the conflict's snapshots.
func Resolve(c *Conflict, resolution ConflictResolution) (*model.Issue, error) {
	switch resolution.Kind {
	case AcceptLocal:
		return c.Local.Clone(), nil
	case AcceptRemote:
		return c.Remote.Clone(), nil
	case Manual:
		if resolution.Resolved == nil {
			return nil, NewConflictError("resolve", CodeValidationErr, c.EntityID,
				fmt.Errorf("manual resolution requires a resolved snapshot"))
		}
		return resolution.Resolved.Clone(), nil
	default:
		return nil, NewConflictError("resolve", CodeValidationErr, c.EntityID,
			fmt.Errorf("unknown resolution kind: %s", resolution.Kind))
	}
}

// NewerSnapshot returns whichever side of the conflict was modified
// later, the default winner for auto-resolvable metadata divergence.
// Ties go to the local snapshot.
func (c *Conflict) NewerSnapshot() *model.Issue {
	if c.Remote.UpdatedAt.After(c.Local.UpdatedAt) {
		return c.Remote
	}
	return c.Local
}

// sameSet compares two string slices as sets, ignoring order and
// duplicates
func sameSet(a, b []string) bool {
	return slices.Equal(normalize(a), normalize(b))
}

func normalize(values []string) []string {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
