package sheets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/bounty-board/internal/domain"
	"github.com/vilaca/bounty-board/internal/source"
)

// TestDecodeTable_Defaults tests that absent and falsy cells take the documented defaults.
func TestDecodeTable_Defaults(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"no cells", `{}`},
		{"null cells", `{"c":null}`},
		{"short row", `{"c":[null,null]}`},
		{"null values", `{"c":[null,null,{"v":null},null,null,{"v":null},{"v":null},{"v":null}]}`},
		{"falsy values", `{"c":[null,null,{"v":0},null,null,{"v":""},{"v":""},{"v":false}]}`},
		{"cells without v", `{"c":[{},{},{},{},{},{},{},{}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			issues, rowErrs, err := DecodeTable(`{"table":{"rows":[`+tt.row+`]}}`, DefaultColumns)

			// Assert
			require.NoError(t, err)
			assert.Empty(t, rowErrs)
			require.Len(t, issues, 1)
			assert.Equal(t, source.DefaultIssue(0), issues[0])
			assert.Equal(t, "No title", issues[0].Title)
			assert.Equal(t, "#", issues[0].IssueURL)
		})
	}
}

// TestDecodeTable_PositionalIDs tests that ids equal position + 1 regardless of content.
func TestDecodeTable_PositionalIDs(t *testing.T) {
	// Arrange
	rows := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, fmt.Sprintf(`{"c":[{"v":999},null,{"v":%d}]}`, 100-i))
	}
	doc := `{"table":{"rows":[` + strings.Join(rows, ",") + `]}}`

	// Act
	issues, _, err := DecodeTable(doc, DefaultColumns)

	// Assert
	require.NoError(t, err)
	require.Len(t, issues, 5)
	for i, issue := range issues {
		assert.Equal(t, i+1, issue.ID)
		assert.Equal(t, 100-i, issue.IssueNumber)
	}
}

// TestDecodeTable_ColumnTwoFeedsNumberAndLink tests the shared column.
func TestDecodeTable_ColumnTwoFeedsNumberAndLink(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		expectNumber int
		expectLink   string
	}{
		{"number", `17`, 17, "17"},
		{"numeric text", `"#23"`, 23, "#23"},
		{"link text", `"owner/repo"`, 0, "owner/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"table":{"rows":[{"c":[null,null,{"v":` + tt.value + `}]}]}}`

			issues, _, err := DecodeTable(doc, DefaultColumns)

			require.NoError(t, err)
			assert.Equal(t, tt.expectNumber, issues[0].IssueNumber)
			assert.Equal(t, tt.expectLink, issues[0].ProjectLink)
		})
	}
}

// TestDecodeTable_MalformedRow tests that a bad row is defaulted, reported and does not abort the batch.
func TestDecodeTable_MalformedRow(t *testing.T) {
	// Arrange
	doc := `{"table":{"rows":[
		{"c":[null,null,null,null,null,{"v":"Go"}]},
		"garbage",
		{"c":{"not":"an array"}},
		{"c":[null,null,null,null,null,{"v":"Rust"}]}
	]}}`

	// Act
	issues, rowErrs, err := DecodeTable(doc, DefaultColumns)

	// Assert
	require.NoError(t, err)
	require.Len(t, issues, 4)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 1, rowErrs[0].Row)
	assert.Equal(t, 2, rowErrs[1].Row)
	assert.Equal(t, "Go", issues[0].TechStack)
	assert.Equal(t, source.DefaultIssue(1), issues[1])
	assert.Equal(t, source.DefaultIssue(2), issues[2])
	assert.Equal(t, "Rust", issues[3].TechStack)
	assert.Equal(t, 4, issues[3].ID)
}

// TestDecodeTable_StructuralErrors tests that a document without a rows array fails the batch.
func TestDecodeTable_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no table", `{"version":"0.6"}`},
		{"rows not array", `{"table":{"rows":{}}}`},
		{"query error", `{"status":"error","errors":[{"reason":"invalid_query","detailed_message":"bad sheet"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, _, err := DecodeTable(tt.doc, DefaultColumns)

			assert.ErrorIs(t, err, source.ErrDataFormat)
			assert.Nil(t, issues)
		})
	}
}

func TestDecodeTable_StatusAlwaysOpen(t *testing.T) {
	doc := `{"table":{"rows":[{"c":[null,null,null,{"v":"Resolved"},{"v":"Resolved"}]}]}}`

	issues, _, err := DecodeTable(doc, DefaultColumns)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, issues[0].Status)
}
