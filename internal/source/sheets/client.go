package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/vilaca/bounty-board/internal/domain"
	"github.com/vilaca/bounty-board/internal/source"
)

// maxBodyBytes bounds the response read; bounty sheets hold tens of rows.
const maxBodyBytes = 10 << 20

// Config holds configuration for the spreadsheet client.
// A nil Envelope means DefaultEnvelope; a zero Envelope means the body is bare JSON.
type Config struct {
	URL      string
	Envelope *Envelope
	Columns  Columns
}

// Client implements source.Source for a spreadsheet query endpoint.
// It is stateless: every Fetch issues exactly one request and returns a fresh list.
type Client struct {
	url        string
	envelope   Envelope
	columns    Columns
	httpClient source.HTTPClient
	logger     *zap.Logger
}

// NewClient creates a new spreadsheet client.
// Uses dependency injection for HTTPClient so tests can replace the transport.
func NewClient(cfg Config, httpClient source.HTTPClient, logger *zap.Logger) *Client {
	envelope := DefaultEnvelope
	if cfg.Envelope != nil {
		envelope = *cfg.Envelope
	}
	columns := cfg.Columns
	if columns == (Columns{}) {
		columns = DefaultColumns
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		url:        cfg.URL,
		envelope:   envelope,
		columns:    columns,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Name returns the source identifier.
func (c *Client) Name() string {
	return "sheets"
}

// Fetch retrieves the sheet and decodes its rows into issues.
func (c *Client) Fetch(ctx context.Context) ([]domain.Issue, error) {
	body, err := c.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := c.envelope.Unwrap(body)
	if err != nil {
		return nil, err
	}

	issues, rowErrs, err := DecodeTable(doc, c.columns)
	if err != nil {
		return nil, err
	}

	for _, rowErr := range rowErrs {
		c.logger.Warn("row decoded with defaults",
			zap.String("source", c.Name()),
			zap.Int("row", rowErr.Row),
			zap.Error(rowErr.Err))
	}
	c.logger.Info("fetched issues",
		zap.String("source", c.Name()),
		zap.Int("count", len(issues)),
		zap.Int("malformed_rows", len(rowErrs)))

	return issues, nil
}

// doRequest performs the GET and returns the body as text.
func (c *Client) doRequest(ctx context.Context) (string, error) {
	if err := validateURL(c.url); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", source.ErrDataFetch, err)
	}
	req.Header.Set("Accept", "text/plain, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %w", source.ErrDataFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: endpoint returned status %d: %s", source.ErrDataFetch, resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %w", source.ErrDataFetch, err)
	}

	return string(body), nil
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: sheet URL is not configured", source.ErrDataFetch)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid sheet URL: %v", source.ErrDataFetch, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: sheet URL must be an absolute http(s) URL, got %q", source.ErrDataFetch, raw)
	}

	return nil
}
