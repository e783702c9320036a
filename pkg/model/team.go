package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// Team groups users for assignment and notification purposes
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTeam creates a team with a fresh identity
func NewTeam(name string, members ...string) *Team {
	now := time.Now().UTC()
	return &Team{
		ID:        uuid.NewString(),
		Name:      name,
		Members:   members,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the team's logical identity
func (t *Team) EntityID() string {
	return t.ID
}

// Kind returns the storage kind
func (t *Team) Kind() objects.ObjectKind {
	return objects.TeamKind
}

// ModifiedAt returns the last modification time
func (t *Team) ModifiedAt() time.Time {
	return t.UpdatedAt
}

// Encode serializes the team to its canonical byte form
func (t *Team) Encode() (objects.ObjectContent, error) {
	return encode(t)
}

// Validate checks the team's domain invariants
func (t *Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id cannot be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("team name cannot be empty")
	}
	return nil
}

// AddMember adds a user to the team if not already a member
func (t *Team) AddMember(user string) {
	if slices.Contains(t.Members, user) {
		return
	}
	t.Members = append(t.Members, user)
	t.UpdatedAt = time.Now().UTC()
}
