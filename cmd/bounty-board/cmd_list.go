package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/bounty-board/internal/board"
	"github.com/vilaca/bounty-board/internal/terminal"
)

func newListCmd(a *app) *cobra.Command {
	var (
		tech     string
		category string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the issues as a table",
		Long: `Loads the issues once and prints them to the terminal.

Example:
  bounty-board list --tech Python`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, board.Filter{Tech: tech, Category: category}, !noColor)
		},
	}

	cmd.Flags().StringVar(&tech, "tech", board.All, "Only show issues with this tech stack label")
	cmd.Flags().StringVar(&category, "category", board.All, "Only show issues in this category")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (a *app) runList(cmd *cobra.Command, filter board.Filter, color bool) error {
	src, err := buildSource(a.cfg, a.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(a.cfg.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	b := board.New(src, a.logger.Named("board"))
	defer b.Close()

	if err := b.Load(ctx); err != nil {
		return fmt.Errorf("failed to load issues from %s: %w", src.Name(), err)
	}

	snap := b.Snapshot()
	view := snap.View(filter)
	if !view.Filter.Known(snap.Labels, snap.Categories) {
		a.logger.Warn("filter value not present on any issue",
			zap.String("tech", view.Filter.Tech),
			zap.String("category", view.Filter.Category))
	}

	if !color {
		pterm.DisableColor()
	}
	return terminal.NewPrinter(cmd.OutOrStdout(), color).PrintView(view)
}
