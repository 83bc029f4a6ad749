package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/vilaca/bounty-board/internal/domain"
)

// Source defines the interface for issue data sources.
// The board depends on this interface, not on a concrete sheet or file implementation.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Fetch returns a fresh, ordered list of issues. IDs are assigned by position.
	Fetch(ctx context.Context) ([]domain.Issue, error)
}

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	// ErrDataFetch reports that the data could not be retrieved at all:
	// unreachable endpoint, timeout, non-success status or missing configuration.
	ErrDataFetch = errors.New("data fetch failed")

	// ErrDataFormat reports that the payload does not have the expected structure.
	ErrDataFormat = errors.New("data format invalid")
)

// RowDecodeError describes a row that could not be decoded. It is recoverable:
// the row is replaced with a record holding only defaults.
type RowDecodeError struct {
	Row int // zero-based row position
	Err error
}

func (e *RowDecodeError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowDecodeError) Unwrap() error {
	return e.Err
}

// DefaultIssue returns the record used for a row whose cells are all missing.
func DefaultIssue(position int) domain.Issue {
	return domain.Issue{
		ID:          position + 1,
		Title:       domain.DefaultTitle,
		ProjectLink: domain.DefaultProjectLink,
		TechStack:   domain.DefaultTechStack,
		Status:      domain.StatusOpen,
		IssueURL:    domain.DefaultIssueURL,
	}
}

// OrDefault returns value, or fallback when value is empty.
func OrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
