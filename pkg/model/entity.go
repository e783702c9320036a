package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// Entity is implemented by every domain snapshot that can be persisted
// in the object store. Entities are value snapshots: mutating one and
// re-persisting it produces a new content-addressed object.
type Entity interface {
	// EntityID returns the stable logical identity of the entity
	EntityID() string

	// Kind returns the object kind used for storage and reference naming
	Kind() objects.ObjectKind

	// ModifiedAt returns the last modification time, used by the sync
	// engine to decide transfer direction
	ModifiedAt() time.Time

	// Encode serializes the entity to its canonical byte form
	Encode() (objects.ObjectContent, error)

	// Validate checks domain invariants before a write
	Validate() error
}

// RefName returns the reference name under which an entity is tracked
// Example: an issue with id "7f3c" -> "issues/7f3c"
func RefName(e Entity) string {
	return e.Kind().RefPrefix() + e.EntityID()
}

// Checksum computes the content-addressed digest an entity would be
// stored under, without touching the store
func Checksum(e Entity) (objects.Digest, error) {
	content, err := e.Encode()
	if err != nil {
		return "", err
	}
	return objects.ComputeDigest(e.Kind(), content), nil
}

// DecodeEntity deserializes entity content of a given kind
func DecodeEntity(kind objects.ObjectKind, content objects.ObjectContent) (Entity, error) {
	switch kind {
	case objects.IssueKind:
		return decodeInto[*Issue](content)
	case objects.ProjectKind:
		return decodeInto[*Project](content)
	case objects.UserKind:
		return decodeInto[*User](content)
	case objects.TeamKind:
		return decodeInto[*Team](content)
	case objects.LabelKind:
		return decodeInto[*Label](content)
	case objects.RemoteKind:
		return decodeInto[*Remote](content)
	default:
		return nil, fmt.Errorf("unknown object kind: %s", kind)
	}
}

func decodeInto[T Entity](content objects.ObjectContent) (Entity, error) {
	var value T
	if err := json.Unmarshal(content.Bytes(), &value); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return value, nil
}

// encode is the shared canonical encoding for all entities.
// encoding/json serializes struct fields in declaration order, which
// keeps the byte form stable for identical values.
func encode(v any) (objects.ObjectContent, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	return objects.ObjectContent(data), nil
}
