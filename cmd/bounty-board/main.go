package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/bounty-board/internal/config"
	"github.com/vilaca/bounty-board/internal/dashboard"
	"github.com/vilaca/bounty-board/internal/domain"
	"github.com/vilaca/bounty-board/internal/logging"
	"github.com/vilaca/bounty-board/internal/source"
	"github.com/vilaca/bounty-board/internal/source/sheets"
	"github.com/vilaca/bounty-board/internal/source/static"
)

// errNoSource is returned when neither a sheet URL nor an issues file is configured.
var errNoSource = errors.New("no data source configured: set SHEET_URL or ISSUES_FILE")

// app holds what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command serves the board.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "bounty-board",
		Short: "Bug bounty issue board",
		Long: `Serves a filterable board of bug bounty issues read from a
published spreadsheet or a local YAML/JSON file.

Run without a subcommand to start the web server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newServeCmd(a), newListCmd(a))
	return rootCmd
}

// init loads configuration (defaults, file, environment, flags) and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// buildSource picks the data source from configuration. The issues file wins over the sheet.
func buildSource(cfg *config.Config, logger *zap.Logger) (source.Source, error) {
	switch {
	case cfg.HasIssuesFile():
		return static.NewSource(cfg.IssuesFile, logger.Named("static")), nil
	case cfg.HasSheetConfig():
		httpClient := &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		}
		return sheets.NewClient(sheets.Config{
			URL: cfg.SheetURL,
			Envelope: &sheets.Envelope{
				PrefixLen: cfg.EnvelopePrefixLen,
				SuffixLen: cfg.EnvelopeSuffixLen,
			},
		}, httpClient, logger.Named("sheets")), nil
	}
	return nil, errNoSource
}

// buildServer wires the board into the HTTP handlers.
// This is the composition root for the web surface.
func buildServer(cfg *config.Config, b dashboard.BoardService, logger *zap.Logger) *http.Server {
	stdLogger := logging.Std(logger)

	handler := dashboard.NewHandler(dashboard.HandlerConfig{
		Renderer: dashboard.NewHTMLRenderer(),
		Logger:   stdLogger,
		Board:    b,
		Title:    cfg.Title,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ErrorLog:          stdLogger,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// unavailableSource stands in when nothing is configured, so the board shows why it is empty.
type unavailableSource struct {
	err error
}

func (s unavailableSource) Name() string {
	return "none"
}

func (s unavailableSource) Fetch(ctx context.Context) ([]domain.Issue, error) {
	return nil, fmt.Errorf("%w: %v", source.ErrDataFetch, s.err)
}
