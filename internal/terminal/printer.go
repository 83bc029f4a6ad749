// Package terminal prints the board as a table for the list command.
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/vilaca/bounty-board/internal/board"
	"github.com/vilaca/bounty-board/internal/domain"
)

// Printer writes board views to a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer writing to out. Status colors are only used when color is true.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// PrintView prints the visible issues of view, followed by a count line.
func (p *Printer) PrintView(view board.View) error {
	if len(view.Issues) == 0 {
		_, err := fmt.Fprintln(p.out, "No issues yet")
		return err
	}
	if len(view.Visible) == 0 {
		_, err := fmt.Fprintf(p.out, "No issues match the selected filters (%s)\n", describeFilter(view.Filter))
		return err
	}

	data := pterm.TableData{{"ID", "Issue", "#", "Project", "Tech Stack", "Status", "Link"}}
	for _, issue := range view.Visible {
		number := ""
		if issue.IssueNumber != 0 {
			number = strconv.Itoa(issue.IssueNumber)
		}
		data = append(data, []string{
			strconv.Itoa(issue.ID),
			issue.Title,
			number,
			issue.ProjectLink,
			issue.TechStack,
			p.status(issue.Status),
			issue.IssueURL,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	if _, err := fmt.Fprintln(p.out, table); err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.out, "%d of %d issues (%s)\n", len(view.Visible), len(view.Issues), describeFilter(view.Filter))
	return err
}

// status renders the icon and text of a status, colored by its presentation color.
func (p *Printer) status(s domain.Status) string {
	text := s.Icon() + " " + string(s)
	if !p.color {
		return text
	}

	switch s.Color() {
	case "green":
		return pterm.Green(text)
	case "yellow":
		return pterm.Yellow(text)
	case "blue":
		return pterm.Blue(text)
	default:
		return pterm.Gray(text)
	}
}

func describeFilter(f board.Filter) string {
	if f.IsAll() {
		return "all tech stacks"
	}
	var parts []string
	if f.Tech != "" && f.Tech != board.All {
		parts = append(parts, "tech: "+f.Tech)
	}
	if f.Category != "" && f.Category != board.All {
		parts = append(parts, "category: "+f.Category)
	}
	return strings.Join(parts, ", ")
}
