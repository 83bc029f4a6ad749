package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vilaca/bounty-board/internal/domain"
)

func issuesWithStacks(stacks ...string) []domain.Issue {
	issues := make([]domain.Issue, len(stacks))
	for i, stack := range stacks {
		issues[i] = domain.Issue{ID: i + 1, TechStack: stack, Status: domain.StatusOpen}
	}
	return issues
}

// TestDistinctLabels tests first-occurrence order, trimming and the leading sentinel.
func TestDistinctLabels(t *testing.T) {
	// Arrange
	issues := issuesWithStacks("Python, FastAPI", "JavaScript", " Python ,Go", "No tech stack")

	// Act
	labels := DistinctLabels(issues)

	// Assert
	assert.Equal(t, []string{"All", "Python", "FastAPI", "JavaScript", "Go", "No tech stack"}, labels)
}

// TestDistinctLabels_Idempotent tests that deriving labels twice yields the same ordered result.
func TestDistinctLabels_Idempotent(t *testing.T) {
	issues := issuesWithStacks("Rust, Go", "Go, Zig", "C")

	assert.Equal(t, DistinctLabels(issues), DistinctLabels(issues))
}

func TestDistinctLabels_SentinelNotDuplicated(t *testing.T) {
	labels := DistinctLabels(issuesWithStacks("All, Go"))

	assert.Equal(t, []string{"All", "Go"}, labels)
}

func TestDistinctCategories(t *testing.T) {
	issues := []domain.Issue{{Category: "Backend"}, {Category: ""}, {Category: "Frontend"}, {Category: "Backend"}}

	assert.Equal(t, []string{"All", "Backend", "Frontend"}, DistinctCategories(issues))
	assert.Equal(t, []string{"All"}, DistinctCategories(issuesWithStacks("Go")))
}

// TestApply_All tests that the sentinel returns the full list in order.
func TestApply_All(t *testing.T) {
	// Arrange
	issues := issuesWithStacks("Go", "Rust", "Python")

	// Act
	result := Apply(issues, NewFilter())

	// Assert
	assert.Equal(t, issues, result)
}

// TestApply_ExactMatch tests that partial labels do not match.
func TestApply_ExactMatch(t *testing.T) {
	issues := issuesWithStacks("Go, Rust")

	assert.Len(t, Apply(issues, Filter{Tech: "Rust"}), 1)
	assert.Empty(t, Apply(issues, Filter{Tech: "Rus"}))
	assert.Empty(t, Apply(issues, Filter{Tech: "rust"}))
}

// TestApply_Scenario tests the Python filter over a three-row list.
func TestApply_Scenario(t *testing.T) {
	// Arrange
	issues := issuesWithStacks("Python, FastAPI", "JavaScript", "Python")

	// Act
	result := Apply(issues, Filter{Tech: "Python", Category: All})

	// Assert
	assert.Len(t, result, 2)
	assert.Equal(t, 1, result[0].ID)
	assert.Equal(t, 3, result[1].ID)
}

func TestApply_Category(t *testing.T) {
	issues := []domain.Issue{
		{ID: 1, TechStack: "Go", Category: "Backend"},
		{ID: 2, TechStack: "Go", Category: "Tooling"},
		{ID: 3, TechStack: "React", Category: "Backend"},
	}

	result := Apply(issues, Filter{Tech: "Go", Category: "Backend"})

	assert.Len(t, result, 1)
	assert.Equal(t, 1, result[0].ID)
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	issues := issuesWithStacks("Go", "Rust")
	before := append([]domain.Issue(nil), issues...)

	_ = Apply(issues, Filter{Tech: "Rust"})

	assert.Equal(t, before, issues)
}

func TestFilter_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Filter
		expected Filter
	}{
		{"blank", Filter{}, Filter{Tech: All, Category: All}},
		{"known", Filter{Tech: "Go", Category: "Backend"}, Filter{Tech: "Go", Category: "Backend"}},
		{"trimmed", Filter{Tech: " Rust "}, Filter{Tech: "Rust", Category: All}},
		{"unknown kept", Filter{Tech: "Cobol", Category: "Ops"}, Filter{Tech: "Cobol", Category: "Ops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Normalize())
		})
	}
}

func TestFilter_Known(t *testing.T) {
	labels := []string{"All", "Go", "Rust"}
	categories := []string{"All", "Backend"}

	assert.True(t, NewFilter().Known(labels, categories))
	assert.True(t, Filter{Tech: "Rust", Category: "Backend"}.Known(labels, categories))
	assert.False(t, Filter{Tech: "Rus"}.Known(labels, categories))
	assert.False(t, Filter{Tech: "Go", Category: "Ops"}.Known(labels, categories))
}

// TestApply_PrefixOfLabelMatchesNothing tests that a partial label never widens the result.
func TestApply_PrefixOfLabelMatchesNothing(t *testing.T) {
	// Arrange
	issues := issuesWithStacks("Go, Rust", "Python")

	// Act
	visible := Apply(issues, Filter{Tech: "Rus"}.Normalize())

	// Assert
	assert.Empty(t, visible)
}
