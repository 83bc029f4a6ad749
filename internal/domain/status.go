package domain

import (
	"fmt"
	"strings"
)

// Status represents the state of a bounty issue.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved}

// ParseStatus converts free-form text ("open", "in-progress", "In_Progress", ...) to a Status.
// An empty string parses as StatusOpen.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)

	switch normalized {
	case "", "open":
		return StatusOpen, nil
	case "in progress", "inprogress":
		return StatusInProgress, nil
	case "resolved", "closed", "done":
		return StatusResolved, nil
	default:
		return StatusOpen, fmt.Errorf("unknown status %q", s)
	}
}

// IsKnown returns true if the status is one of the three board statuses.
func (s Status) IsKnown() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusResolved
}

// Icon returns the symbol shown next to the status.
func (s Status) Icon() string {
	switch s {
	case StatusOpen:
		return "🐛"
	case StatusInProgress:
		return "🔀"
	case StatusResolved:
		return "✅"
	default:
		return "•"
	}
}

// Color returns the color name used to render the status: green, yellow or blue.
func (s Status) Color() string {
	switch s {
	case StatusOpen:
		return "green"
	case StatusInProgress:
		return "yellow"
	case StatusResolved:
		return "blue"
	default:
		return "gray"
	}
}
