package domain

import "strings"

// Field defaults used when the data source leaves a cell empty.
const (
	DefaultTitle       = "No title"
	DefaultProjectLink = "No ProjectLink"
	DefaultTechStack   = "No tech stack"
	DefaultIssueURL    = "#"
)

// Issue represents one bounty issue shown on the board.
// Issues are values: once built by a source they are never modified.
type Issue struct {
	ID          int    `json:"id"` // position in the fetch result, starting at 1
	Title       string `json:"title"`
	IssueNumber int    `json:"issueNumber"`
	ProjectLink string `json:"projectLink"`
	TechStack   string `json:"techStack"` // comma-separated labels
	Status      Status `json:"status"`
	IssueURL    string `json:"issueUrl"`
	Category    string `json:"category,omitempty"`
}

// Labels returns the trimmed, non-empty tech stack labels of the issue.
func (i Issue) Labels() []string {
	return SplitLabels(i.TechStack)
}

// HasLabel reports whether label is one of the issue's tech stack labels.
// Matching is exact: "Rus" does not match "Rust".
func (i Issue) HasLabel(label string) bool {
	for _, l := range i.Labels() {
		if l == label {
			return true
		}
	}
	return false
}

// SplitLabels splits a comma-joined tech stack into trimmed labels, dropping empty pieces.
func SplitLabels(techStack string) []string {
	parts := strings.Split(techStack, ",")
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			labels = append(labels, part)
		}
	}
	return labels
}
