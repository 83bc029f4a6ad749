package board

import (
	"strings"

	"github.com/vilaca/bounty-board/internal/domain"
)

// All is the filter value meaning "no filtering applied".
const All = "All"

// Filter is the active selection on the board. Each field is either All or a
// value from the derived label/category sets. A Filter is replaced as a whole.
type Filter struct {
	Tech     string `json:"tech"`
	Category string `json:"category"`
}

// NewFilter returns a filter that lets every issue through.
func NewFilter() Filter {
	return Filter{Tech: All, Category: All}
}

// Normalize trims the filter and replaces blank values by All.
// A value no issue carries is kept as given, so it matches nothing.
func (f Filter) Normalize() Filter {
	return Filter{
		Tech:     pick(f.Tech),
		Category: pick(f.Category),
	}
}

// IsAll reports whether the filter lets every issue through.
func (f Filter) IsAll() bool {
	return isAll(f.Tech) && isAll(f.Category)
}

func pick(value string) string {
	value = strings.TrimSpace(value)
	if isAll(value) {
		return All
	}
	return value
}

// Known reports whether every non-All value of the filter is in labels or categories.
func (f Filter) Known(labels, categories []string) bool {
	return (isAll(f.Tech) || contains(labels, f.Tech)) &&
		(isAll(f.Category) || contains(categories, f.Category))
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func isAll(value string) bool {
	return value == "" || value == All
}

// Matches reports whether the issue passes the filter.
func (f Filter) Matches(issue domain.Issue) bool {
	if !isAll(f.Tech) && !issue.HasLabel(f.Tech) {
		return false
	}
	if !isAll(f.Category) && issue.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the issues that pass the filter, in input order.
// It never modifies its input.
func Apply(issues []domain.Issue, f Filter) []domain.Issue {
	result := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if f.Matches(issue) {
			result = append(result, issue)
		}
	}
	return result
}

// DistinctLabels returns All followed by every tech stack label in order of first occurrence.
func DistinctLabels(issues []domain.Issue) []string {
	labels := []string{All}
	seen := map[string]bool{All: true}
	for _, issue := range issues {
		for _, label := range issue.Labels() {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return labels
}

// DistinctCategories returns All followed by every non-empty category in order of first occurrence.
func DistinctCategories(issues []domain.Issue) []string {
	categories := []string{All}
	seen := map[string]bool{All: true}
	for _, issue := range issues {
		if issue.Category != "" && !seen[issue.Category] {
			seen[issue.Category] = true
			categories = append(categories, issue.Category)
		}
	}
	return categories
}
