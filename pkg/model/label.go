package model

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// colorPattern matches "#rgb" and "#rrggbb" hex colors
var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Label is a named tag with a display color
type Label struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLabel creates a label with a fresh identity
func NewLabel(name, color string) *Label {
	now := time.Now().UTC()
	return &Label{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the label's logical identity
func (l *Label) EntityID() string {
	return l.ID
}

// Kind returns the storage kind
func (l *Label) Kind() objects.ObjectKind {
	return objects.LabelKind
}

// ModifiedAt returns the last modification time
func (l *Label) ModifiedAt() time.Time {
	return l.UpdatedAt
}

// Encode serializes the label to its canonical byte form
func (l *Label) Encode() (objects.ObjectContent, error) {
	return encode(l)
}

// Validate checks the label's domain invariants
func (l *Label) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("label id cannot be empty")
	}
	if l.Name == "" {
		return fmt.Errorf("label name cannot be empty")
	}
	if !colorPattern.MatchString(l.Color) {
		return fmt.Errorf("invalid hex color: %s", l.Color)
	}
	return nil
}
