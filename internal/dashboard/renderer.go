package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vilaca/bounty-board/internal/board"
	"github.com/vilaca/bounty-board/internal/domain"
	"github.com/vilaca/bounty-board/internal/source"
)

// Renderer handles rendering responses to HTTP clients.
// This interface follows Interface Segregation Principle (SOLID-I).
type Renderer interface {
	RenderBoard(w io.Writer, page Page) error
	RenderIssuesJSON(w io.Writer, view board.View) error
	RenderHealth(w io.Writer) error
}

// Page is everything the board page needs.
type Page struct {
	Title string
	View  board.View
	Now   time.Time
}

// HTMLRenderer implements Renderer for HTML responses.
type HTMLRenderer struct{}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) RenderHealth(w io.Writer) error {
	_, err := w.Write([]byte(`{"status":"ok"}`))
	return err
}

// RenderBoard renders the board page for the view's load state:
// a spinner while loading, an error panel on failure, the issues table once loaded.
func (r *HTMLRenderer) RenderBoard(w io.Writer, page Page) error {
	var sb strings.Builder
	view := page.View

	extraHead := ""
	if view.State == board.StateLoading {
		extraHead = `<meta http-equiv="refresh" content="2">`
	}

	sb.WriteString(htmlHead(page.Title, "", extraHead))
	sb.WriteString(`<body>
	<div class="container">
`)
	sb.WriteString(fmt.Sprintf("\t\t<h1>%s</h1>\n", escapeHTML(page.Title)))
	sb.WriteString(r.buildNav(page))

	switch view.State {
	case board.StateLoading:
		sb.WriteString(`
		<div class="loading" role="status">
			<div class="loading-spinner"></div>
			<div>Loading issues...</div>
		</div>
`)
	case board.StateFailed:
		sb.WriteString(r.buildErrorPanel(view.Err))
	default:
		sb.WriteString(r.buildFilters(view))
		sb.WriteString(r.buildTable(view))
	}

	sb.WriteString(`	</div>
`)
	sb.WriteString(htmlFooter())

	_, err := w.Write([]byte(sb.String()))
	return err
}

func (r *HTMLRenderer) buildNav(page Page) string {
	var sb strings.Builder
	sb.WriteString(`		<div class="nav">
`)
	if !page.View.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf(`			<span class="meta updated" title="%s">Updated %s</span>
`, page.View.UpdatedAt.UTC().Format(time.RFC3339), humanize.RelTime(page.View.UpdatedAt, page.Now, "ago", "from now")))
	}
	if page.View.Loading && page.View.State == board.StateLoaded {
		sb.WriteString(`			<span class="meta">Refreshing...</span>
`)
	}
	sb.WriteString(`			<button class="button" onclick="refreshBoard(this)">Refresh</button>
			<button class="theme-toggle" onclick="toggleTheme()" aria-label="Toggle theme">🌙 Dark Mode</button>
		</div>
`)
	return sb.String()
}

func (r *HTMLRenderer) buildErrorPanel(err error) string {
	summary := "The issue list could not be loaded."
	switch {
	case errors.Is(err, source.ErrDataFetch):
		summary = "The issue source could not be reached."
	case errors.Is(err, source.ErrDataFormat):
		summary = "The issue source returned data in an unexpected format."
	}

	detail := ""
	if err != nil {
		detail = err.Error()
	}

	return fmt.Sprintf(`
		<div class="error-panel" role="alert">
			<h2>Could not load issues</h2>
			<p>%s</p>
			<p class="error-detail"><code>%s</code></p>
			<button class="button" onclick="refreshBoard(this)">Retry</button>
		</div>
`, escapeHTML(summary), escapeHTML(detail))
}

func (r *HTMLRenderer) buildFilters(view board.View) string {
	var sb strings.Builder

	sb.WriteString(`
		<form class="filters" method="get" action="/">
			<select id="techFilter" name="tech" class="filter-select" aria-label="Tech stack" onchange="this.form.submit()">`)
	sb.WriteString(selectOptions(view.Labels, view.Filter.Tech, board.All, "All Tech Stacks"))
	sb.WriteString(`</select>
`)
	if view.HasCategories() {
		sb.WriteString(`			<select id="categoryFilter" name="category" class="filter-select" aria-label="Category" onchange="this.form.submit()">`)
		sb.WriteString(selectOptions(view.Categories, view.Filter.Category, board.All, "All Categories"))
		sb.WriteString(`</select>
`)
	}
	sb.WriteString(`			<noscript><button class="button" type="submit">Apply</button></noscript>
		</form>
`)
	sb.WriteString(fmt.Sprintf(`		<div class="filter-count">%d of %d issues</div>
`, len(view.Visible), len(view.Issues)))

	return sb.String()
}

func (r *HTMLRenderer) buildTable(view board.View) string {
	var sb strings.Builder

	sb.WriteString(`		<div class="table-wrapper">
			<table class="issues">
				<thead>
					<tr>
						<th scope="col">ID</th>
						<th scope="col">Issue</th>
						<th scope="col">Project Link</th>
						<th scope="col">Tech Stack</th>
						<th scope="col">Status</th>
						<th scope="col">Issue Link</th>
					</tr>
				</thead>
				<tbody>
`)

	switch {
	case len(view.Issues) == 0:
		sb.WriteString(`					<tr><td colspan="6" class="empty">No issues yet</td></tr>
`)
	case len(view.Visible) == 0:
		sb.WriteString(`					<tr><td colspan="6" class="empty">No issues match the selected filters</td></tr>
`)
	default:
		for _, issue := range view.Visible {
			sb.WriteString(r.buildRow(issue))
		}
	}

	sb.WriteString(`				</tbody>
			</table>
		</div>
`)
	return sb.String()
}

func (r *HTMLRenderer) buildRow(issue domain.Issue) string {
	return fmt.Sprintf(`					<tr data-id="%d">
						<td>#%d</td>
						<td class="issue-title">%s</td>
						<td>%s</td>
						<td class="tech-stack">%s</td>
						<td class="status %s"><span class="status-icon">%s</span> <span class="status-text">%s</span></td>
						<td>%s</td>
					</tr>
`,
		issue.ID,
		issue.ID,
		escapeHTML(issue.Title),
		externalLink(issue.IssueURL, issue.ProjectLink),
		escapeHTML(issue.TechStack),
		statusClass(issue.Status),
		issue.Status.Icon(),
		escapeHTML(string(issue.Status)),
		externalLink(issue.IssueURL, "View"),
	)
}

// statusClass maps a status color to its CSS class.
func statusClass(s domain.Status) string {
	switch s.Color() {
	case "green":
		return "status-open"
	case "yellow":
		return "status-progress"
	case "blue":
		return "status-resolved"
	default:
		return "status-unknown"
	}
}

// issuesResponse is the JSON shape of /api/issues.
type issuesResponse struct {
	State      board.State    `json:"state"`
	Loading    bool           `json:"loading"`
	Source     string         `json:"source"`
	UpdatedAt  *time.Time     `json:"updatedAt,omitempty"`
	Error      string         `json:"error,omitempty"`
	Filter     board.Filter   `json:"filter"`
	Labels     []string       `json:"labels"`
	Categories []string       `json:"categories"`
	Total      int            `json:"total"`
	Count      int            `json:"count"`
	Issues     []domain.Issue `json:"issues"`
}

func (r *HTMLRenderer) RenderIssuesJSON(w io.Writer, view board.View) error {
	resp := issuesResponse{
		State:      view.State,
		Loading:    view.Loading,
		Source:     view.Source,
		Filter:     view.Filter,
		Labels:     view.Labels,
		Categories: view.Categories,
		Total:      len(view.Issues),
		Count:      len(view.Visible),
		Issues:     view.Visible,
	}
	if !view.UpdatedAt.IsZero() {
		updated := view.UpdatedAt
		resp.UpdatedAt = &updated
	}
	if view.Err != nil {
		resp.Error = view.Err.Error()
	}
	if resp.Issues == nil {
		resp.Issues = []domain.Issue{}
	}

	return json.NewEncoder(w).Encode(resp)
}
