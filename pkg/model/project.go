package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// Project groups issues under a shared name
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Owner       string    `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a project with a fresh identity
func NewProject(name, description string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EntityID returns the project's logical identity
func (p *Project) EntityID() string {
	return p.ID
}

// Kind returns the storage kind
func (p *Project) Kind() objects.ObjectKind {
	return objects.ProjectKind
}

// ModifiedAt returns the last modification time
func (p *Project) ModifiedAt() time.Time {
	return p.UpdatedAt
}

// Encode serializes the project to its canonical byte form
func (p *Project) Encode() (objects.ObjectContent, error) {
	return encode(p)
}

// Validate checks the project's domain invariants
func (p *Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("project id cannot be empty")
	}
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return nil
}
