package model

import "fmt"

// Status represents the workflow status of an issue
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// String implements the Stringer interface
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if this is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status ends the issue workflow
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// ParseStatus converts a string to a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status: %s", s)
	}
	return status, nil
}

// Priority represents the urgency of an issue
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// String implements the Stringer interface
func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if this is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// ParsePriority converts a string to a Priority
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("unknown priority: %s", s)
	}
	return priority, nil
}
