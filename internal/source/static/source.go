package static

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vilaca/bounty-board/internal/domain"
	"github.com/vilaca/bounty-board/internal/source"
)

// issueFile is the on-disk layout of a static issues file.
type issueFile struct {
	Issues []issueEntry `yaml:"issues" json:"issues"`
}

type issueEntry struct {
	Title       string `yaml:"title" json:"title"`
	IssueNumber int    `yaml:"issueNumber" json:"issueNumber"`
	ProjectLink string `yaml:"projectLink" json:"projectLink"`
	TechStack   string `yaml:"techStack" json:"techStack"`
	Status      string `yaml:"status" json:"status"`
	IssueURL    string `yaml:"issueUrl" json:"issueUrl"`
	Category    string `yaml:"category" json:"category"`
}

// Source implements source.Source over a local YAML or JSON file.
// Unlike the sheet source, status and category are assigned per record.
type Source struct {
	path   string
	logger *zap.Logger
}

// NewSource creates a file-backed source. The format is chosen by extension:
// .yaml and .yml are YAML, .json and .jsonc are JSON that may carry comments.
func NewSource(path string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{path: path, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string {
	return "static"
}

// Fetch reads and decodes the file. Every call re-reads it.
func (s *Source) Fetch(ctx context.Context) ([]domain.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrDataFetch, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read issues file: %w", source.ErrDataFetch, err)
	}

	file, err := parse(s.path, data)
	if err != nil {
		return nil, err
	}

	issues, rowErrs := convertIssues(file.Issues)
	for _, rowErr := range rowErrs {
		s.logger.Warn("row decoded with defaults",
			zap.String("source", s.Name()),
			zap.Int("row", rowErr.Row),
			zap.Error(rowErr.Err))
	}
	s.logger.Info("loaded issues",
		zap.String("source", s.Name()),
		zap.String("path", s.path),
		zap.Int("count", len(issues)))

	return issues, nil
}

func parse(path string, data []byte) (*issueFile, error) {
	var file issueFile

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", source.ErrDataFormat, path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", source.ErrDataFormat, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported issues file extension %q", source.ErrDataFormat, filepath.Ext(path))
	}

	return &file, nil
}

// convertIssues converts file entries to domain issues, assigning ids by position.
func convertIssues(entries []issueEntry) ([]domain.Issue, []*source.RowDecodeError) {
	var rowErrs []*source.RowDecodeError
	issues := make([]domain.Issue, 0, len(entries))

	for i, entry := range entries {
		status, err := domain.ParseStatus(entry.Status)
		if err != nil {
			rowErrs = append(rowErrs, &source.RowDecodeError{Row: i, Err: err})
		}

		issues = append(issues, domain.Issue{
			ID:          i + 1,
			Title:       source.OrDefault(strings.TrimSpace(entry.Title), domain.DefaultTitle),
			IssueNumber: entry.IssueNumber,
			ProjectLink: source.OrDefault(strings.TrimSpace(entry.ProjectLink), domain.DefaultProjectLink),
			TechStack:   source.OrDefault(strings.TrimSpace(entry.TechStack), domain.DefaultTechStack),
			Status:      status,
			IssueURL:    source.OrDefault(strings.TrimSpace(entry.IssueURL), domain.DefaultIssueURL),
			Category:    strings.TrimSpace(entry.Category),
		})
	}

	return issues, rowErrs
}
