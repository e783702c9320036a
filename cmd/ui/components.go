package ui

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/TrackIt/pkg/conflict"
	"github.com/utkarsh5026/TrackIt/pkg/model"
)

// FormatStatus renders a workflow status with its color
func FormatStatus(status model.Status) string {
	switch status {
	case model.StatusOpen:
		return OpenStyle.Render(string(status))
	case model.StatusInProgress:
		return InProgressStyle.Render(string(status))
	case model.StatusResolved:
		return ResolvedStyle.Render(string(status))
	case model.StatusClosed:
		return ClosedStyle.Render(string(status))
	default:
		return string(status)
	}
}

// FormatPriority renders a priority with its color
func FormatPriority(priority model.Priority) string {
	switch priority {
	case model.PriorityCritical:
		return Red(string(priority))
	case model.PriorityHigh:
		return Yellow(string(priority))
	case model.PriorityMedium:
		return Blue(string(priority))
	case model.PriorityLow:
		return Gray(string(priority))
	default:
		return string(priority)
	}
}

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheck), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// ErrorMessage creates a failure message with a cross icon
func ErrorMessage(message string) string {
	return fmt.Sprintf("%s %s", Red(IconCross), Red(message))
}

// FormatIssueLine renders one issue as a single listing row
func FormatIssueLine(issue *model.Issue) string {
	parts := []string{
		Yellow(shortID(issue.ID)),
		FormatStatus(issue.Status),
		FormatPriority(issue.Priority),
		issue.Title,
	}
	if len(issue.Assignees) > 0 {
		parts = append(parts, Cyan("@"+strings.Join(issue.Assignees, ",@")))
	}
	return "  " + strings.Join(parts, "  ")
}

// FormatIssueDetailed renders an issue with full details in a box
func FormatIssueDetailed(issue *model.Issue) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("%s %s\n", Yellow(IconIssue), Yellow(issue.ID)))
	content.WriteString(fmt.Sprintf("%s  status: %s  priority: %s\n",
		issue.Title, FormatStatus(issue.Status), FormatPriority(issue.Priority)))
	content.WriteString(fmt.Sprintf("%s %s\n", Cyan(IconAuthor), Cyan(issue.Author)))
	content.WriteString(fmt.Sprintf("%s %s\n", Magenta(IconDate), Magenta(issue.UpdatedAt.Format("2006-01-02 15:04"))))

	if len(issue.Labels) > 0 {
		content.WriteString(fmt.Sprintf("labels: %s\n", Blue(strings.Join(issue.Labels, ", "))))
	}
	if len(issue.Assignees) > 0 {
		content.WriteString(fmt.Sprintf("assignees: %s\n", Cyan(strings.Join(issue.Assignees, ", "))))
	}
	if issue.Description != "" {
		content.WriteString("\n" + issue.Description)
	}

	return IssueBox(content.String())
}

// FormatConflict renders one detected conflict as a listing row
func FormatConflict(c *conflict.Conflict) string {
	return fmt.Sprintf("  %s %s %s  local=%s remote=%s",
		ConflictStyle.Render(IconConflict),
		Yellow(shortID(c.EntityID)),
		ConflictStyle.Render(c.Type.String()),
		Magenta(c.Local.UpdatedAt.Format("15:04:05")),
		Magenta(c.Remote.UpdatedAt.Format("15:04:05")))
}

// RemoteInfo formats remote information with an icon
func RemoteInfo(name, url string) string {
	return fmt.Sprintf("%s %s %s", Cyan(IconRemote), Blue(name), Gray(url))
}

// shortID abbreviates an entity id for listings
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
