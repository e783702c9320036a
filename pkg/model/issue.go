package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// MaxTitleLength is the longest allowed issue title
const MaxTitleLength = 200

// Issue is the central entity of the tracker. An issue snapshot is
// immutable once stored; updates produce a new snapshot under a new digest.
type Issue struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Author      string    `json:"author"`
	Assignees   []string  `json:"assignees,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	CoAuthors   []string  `json:"co_authors,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewIssue creates an open issue with a fresh identity
func NewIssue(title, description, author string) *Issue {
	now := time.Now().UTC()
	return &Issue{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusOpen,
		Priority:    PriorityMedium,
		Author:      author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EntityID returns the issue's logical identity
func (i *Issue) EntityID() string {
	return i.ID
}

// Kind returns the storage kind
func (i *Issue) Kind() objects.ObjectKind {
	return objects.IssueKind
}

// ModifiedAt returns the last modification time
func (i *Issue) ModifiedAt() time.Time {
	return i.UpdatedAt
}

// Encode serializes the issue to its canonical byte form
func (i *Issue) Encode() (objects.ObjectContent, error) {
	return encode(i)
}

// Validate checks the issue's domain invariants
func (i *Issue) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("issue id cannot be empty")
	}
	if i.Title == "" {
		return fmt.Errorf("issue title cannot be empty")
	}
	if len(i.Title) > MaxTitleLength {
		return fmt.Errorf("issue title exceeds %d characters", MaxTitleLength)
	}
	if !i.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", i.Status)
	}
	if !i.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", i.Priority)
	}
	if i.Author == "" {
		return fmt.Errorf("issue author cannot be empty")
	}
	return nil
}

// Touch advances the modification timestamp
func (i *Issue) Touch() {
	i.UpdatedAt = time.Now().UTC()
}

// SetStatus changes the workflow status and touches the issue
func (i *Issue) SetStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("unknown status: %s", status)
	}
	i.Status = status
	i.Touch()
	return nil
}

// Assign adds an assignee if not already present
func (i *Issue) Assign(user string) {
	if slices.Contains(i.Assignees, user) {
		return
	}
	i.Assignees = append(i.Assignees, user)
	i.Touch()
}

// AddLabel attaches a label if not already present
func (i *Issue) AddLabel(label string) {
	if slices.Contains(i.Labels, label) {
		return
	}
	i.Labels = append(i.Labels, label)
	i.Touch()
}

// Clone returns a deep copy of the issue
func (i *Issue) Clone() *Issue {
	copied := *i
	copied.Assignees = slices.Clone(i.Assignees)
	copied.Labels = slices.Clone(i.Labels)
	copied.CoAuthors = slices.Clone(i.CoAuthors)
	return &copied
}
