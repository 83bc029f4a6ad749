package sheets

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vilaca/bounty-board/internal/domain"
	"github.com/vilaca/bounty-board/internal/source"
)

// Columns maps issue fields to cell positions in a table row.
type Columns struct {
	IssueNumber int
	ProjectLink int
	TechStack   int
	IssueURL    int
	Title       int
}

// DefaultColumns is the layout of the bounty spreadsheet.
// Column 2 feeds both the issue number and the project link.
var DefaultColumns = Columns{
	IssueNumber: 2,
	ProjectLink: 2,
	TechStack:   5,
	IssueURL:    6,
	Title:       7,
}

// DecodeTable converts a query response document into issues.
// Structural problems (no table, rows not an array, error response) fail the whole batch.
// Malformed rows are reported individually and replaced with default records.
func DecodeTable(doc string, cols Columns) ([]domain.Issue, []*source.RowDecodeError, error) {
	root := gjson.Parse(doc)

	if root.Get("status").String() == "error" {
		detail := root.Get("errors.0.detailed_message").String()
		if detail == "" {
			detail = root.Get("errors.0.message").String()
		}
		return nil, nil, fmt.Errorf("%w: query returned an error: %s", source.ErrDataFormat, detail)
	}

	rows := root.Get("table.rows")
	if !rows.Exists() {
		return nil, nil, fmt.Errorf("%w: document has no table.rows", source.ErrDataFormat)
	}
	if !rows.IsArray() {
		return nil, nil, fmt.Errorf("%w: table.rows is not an array", source.ErrDataFormat)
	}

	var rowErrs []*source.RowDecodeError
	items := rows.Array()
	issues := make([]domain.Issue, 0, len(items))
	for i, row := range items {
		issue, err := decodeRow(i, row, cols)
		if err != nil {
			rowErrs = append(rowErrs, &source.RowDecodeError{Row: i, Err: err})
		}
		issues = append(issues, issue)
	}

	return issues, rowErrs, nil
}

// decodeRow maps one row to an issue. On error it still returns the default record
// for the position so ids stay positional.
func decodeRow(position int, row gjson.Result, cols Columns) (domain.Issue, error) {
	if !row.IsObject() {
		return source.DefaultIssue(position), errors.New("row is not an object")
	}

	cells := row.Get("c")
	if !cells.Exists() || cells.Type == gjson.Null {
		return source.DefaultIssue(position), nil
	}
	if !cells.IsArray() {
		return source.DefaultIssue(position), errors.New("cells are not an array")
	}

	values := cells.Array()
	cell := func(index int) gjson.Result {
		if index < 0 || index >= len(values) {
			return gjson.Result{}
		}
		return values[index].Get("v")
	}

	return domain.Issue{
		ID:          position + 1,
		Title:       source.OrDefault(cellText(cell(cols.Title)), domain.DefaultTitle),
		IssueNumber: cellInt(cell(cols.IssueNumber)),
		ProjectLink: source.OrDefault(cellText(cell(cols.ProjectLink)), domain.DefaultProjectLink),
		TechStack:   source.OrDefault(cellText(cell(cols.TechStack)), domain.DefaultTechStack),
		Status:      domain.StatusOpen,
		IssueURL:    source.OrDefault(cellText(cell(cols.IssueURL)), domain.DefaultIssueURL),
	}, nil
}

// isFalsy reports absent, null, false, zero and empty-string values.
func isFalsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	default:
		return !v.Exists()
	}
}

// cellText returns the textual form of a cell value, or "" when the value is falsy.
func cellText(v gjson.Result) string {
	if isFalsy(v) {
		return ""
	}

	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1e15 {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case gjson.True:
		return "true"
	default:
		return v.Raw
	}
}

// cellInt returns the integer form of a cell value, or 0 when the value is falsy or not numeric.
func cellInt(v gjson.Result) int {
	if isFalsy(v) {
		return 0
	}

	switch v.Type {
	case gjson.Number:
		return int(v.Num)
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v.Str), "#")))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
