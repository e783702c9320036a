package model

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// emailPattern is a shallow shape check, not full RFC 5322 validation
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User identifies a participant
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a user with a fresh identity
func NewUser(name, email string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the user's logical identity
func (u *User) EntityID() string {
	return u.ID
}

// Kind returns the storage kind
func (u *User) Kind() objects.ObjectKind {
	return objects.UserKind
}

// ModifiedAt returns the last modification time
func (u *User) ModifiedAt() time.Time {
	return u.UpdatedAt
}

// Encode serializes the user to its canonical byte form
func (u *User) Encode() (objects.ObjectContent, error) {
	return encode(u)
}

// Validate checks the user's domain invariants
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	if u.Name == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	if u.Email != "" && !emailPattern.MatchString(u.Email) {
		return fmt.Errorf("invalid email: %s", u.Email)
	}
	return nil
}
