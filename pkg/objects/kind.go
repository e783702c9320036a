package objects

import "fmt"

// ObjectKind represents the kind of entity snapshot held in the object store
type ObjectKind string

const (
	IssueKind   ObjectKind = "issue"
	ProjectKind ObjectKind = "project"
	UserKind    ObjectKind = "user"
	TeamKind    ObjectKind = "team"
	LabelKind   ObjectKind = "label"
	RemoteKind  ObjectKind = "remote"
)

// String implements the Stringer interface
func (k ObjectKind) String() string {
	return string(k)
}

// IsValid returns true if this is a known object kind
func (k ObjectKind) IsValid() bool {
	switch k {
	case IssueKind, ProjectKind, UserKind, TeamKind, LabelKind, RemoteKind:
		return true
	default:
		return false
	}
}

// RefPrefix returns the reference namespace for this kind
// Example: IssueKind -> "issues/"
func (k ObjectKind) RefPrefix() string {
	return string(k) + "s/"
}

// AllKinds returns every supported object kind
func AllKinds() []ObjectKind {
	return []ObjectKind{IssueKind, ProjectKind, UserKind, TeamKind, LabelKind, RemoteKind}
}

// ParseObjectKind converts a string to an ObjectKind
func ParseObjectKind(s string) (ObjectKind, error) {
	kind := ObjectKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown object kind: %s", s)
	}
	return kind, nil
}
