package model

import (
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// Remote describes a sync endpoint. LastSync advances only on a
// successful, non-dry-run synchronization.
type Remote struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	ProjectIDs []string  `json:"project_ids,omitempty"`
	LastSync   time.Time `json:"last_sync,omitzero"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewRemote creates a remote descriptor with a fresh identity
func NewRemote(name, rawURL string) *Remote {
	now := time.Now().UTC()
	return &Remote{
		ID:        uuid.NewString(),
		Name:      name,
		URL:       rawURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the remote's logical identity
func (r *Remote) EntityID() string {
	return r.ID
}

// Kind returns the storage kind
func (r *Remote) Kind() objects.ObjectKind {
	return objects.RemoteKind
}

// ModifiedAt returns the last modification time
func (r *Remote) ModifiedAt() time.Time {
	return r.UpdatedAt
}

// Encode serializes the remote to its canonical byte form
func (r *Remote) Encode() (objects.ObjectContent, error) {
	return encode(r)
}

// Validate checks the remote's domain invariants
func (r *Remote) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("remote id cannot be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("remote name cannot be empty")
	}
	parsed, err := url.Parse(r.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid remote URL: %s", r.URL)
	}
	return nil
}

// MarkSynced records a completed synchronization
func (r *Remote) MarkSynced(at time.Time) {
	r.LastSync = at.UTC()
	r.UpdatedAt = at.UTC()
}

// Clone returns a deep copy of the remote
func (r *Remote) Clone() *Remote {
	copied := *r
	copied.ProjectIDs = slices.Clone(r.ProjectIDs)
	return &copied
}
