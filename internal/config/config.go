package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
// Follows Single Responsibility - only holds configuration data.
type Config struct {
	Port int `yaml:"port"`

	// Board title shown in the page header
	Title string `yaml:"title"`

	// Data source. IssuesFile wins when both are set.
	SheetURL   string `yaml:"sheet_url"`
	IssuesFile string `yaml:"issues_file"`

	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	// Envelope around the sheet response document (characters)
	EnvelopePrefixLen int `yaml:"envelope_prefix_len"`
	EnvelopeSuffixLen int `yaml:"envelope_suffix_len"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:                8080,
		Title:               "Bug Bounty Issues",
		FetchTimeoutSeconds: 30,
		EnvelopePrefixLen:   47,
		EnvelopeSuffixLen:   2,
		LogLevel:            "info",
	}
}

// Load loads configuration from an optional YAML file and environment variables.
// The file path comes from the argument, or CONFIG_FILE when the argument is empty.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.fixInvalid()
	return cfg, nil
}

// fixInvalid replaces out-of-range values with their defaults.
func (c *Config) fixInvalid() {
	defaults := Default()
	if c.EnvelopePrefixLen < 0 {
		c.EnvelopePrefixLen = defaults.EnvelopePrefixLen
	}
	if c.EnvelopeSuffixLen < 0 {
		c.EnvelopeSuffixLen = defaults.EnvelopeSuffixLen
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvInt("PORT", c.Port)
	c.Title = getEnvOrDefault("BOARD_TITLE", c.Title)
	c.SheetURL = getEnvOrDefault("GOOGLE_SHEETS_URL", c.SheetURL)
	c.SheetURL = getEnvOrDefault("SHEET_URL", c.SheetURL)
	c.IssuesFile = getEnvOrDefault("ISSUES_FILE", c.IssuesFile)
	c.FetchTimeoutSeconds = getEnvInt("FETCH_TIMEOUT_SECONDS", c.FetchTimeoutSeconds)
	c.EnvelopePrefixLen = getEnvInt("ENVELOPE_PREFIX_LEN", c.EnvelopePrefixLen)
	c.EnvelopeSuffixLen = getEnvInt("ENVELOPE_SUFFIX_LEN", c.EnvelopeSuffixLen)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogJSON = b
		}
	}
}

// RegisterFlags adds the command-line overrides to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	defaults := Default()
	fs.String("config", "", "Path to a YAML config file (default $CONFIG_FILE)")
	fs.Int("port", defaults.Port, "HTTP port to listen on")
	fs.String("sheet-url", "", "Spreadsheet query URL to read issues from")
	fs.String("issues-file", "", "YAML or JSON file to read issues from instead of a sheet")
	fs.Int("fetch-timeout", defaults.FetchTimeoutSeconds, "Fetch timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	fs.Bool("log-json", false, "Write logs as JSON")
}

// ApplyFlags overrides configuration with flags the user set explicitly.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	if fs.Changed("port") {
		if c.Port, err = fs.GetInt("port"); err != nil {
			return err
		}
	}
	if fs.Changed("sheet-url") {
		if c.SheetURL, err = fs.GetString("sheet-url"); err != nil {
			return err
		}
	}
	if fs.Changed("issues-file") {
		if c.IssuesFile, err = fs.GetString("issues-file"); err != nil {
			return err
		}
	}
	if fs.Changed("fetch-timeout") {
		if c.FetchTimeoutSeconds, err = fs.GetInt("fetch-timeout"); err != nil {
			return err
		}
	}
	if fs.Changed("log-level") {
		if c.LogLevel, err = fs.GetString("log-level"); err != nil {
			return err
		}
	}
	if fs.Changed("log-json") {
		if c.LogJSON, err = fs.GetBool("log-json"); err != nil {
			return err
		}
	}
	c.fixInvalid()
	return nil
}

// HasSheetConfig returns true if a sheet URL is configured.
func (c *Config) HasSheetConfig() bool {
	return strings.TrimSpace(c.SheetURL) != ""
}

// HasIssuesFile returns true if a static issues file is configured.
func (c *Config) HasIssuesFile() bool {
	return strings.TrimSpace(c.IssuesFile) != ""
}

// HasSource returns true if any data source is configured.
func (c *Config) HasSource() bool {
	return c.HasSheetConfig() || c.HasIssuesFile()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of key, or defaultValue when unset or invalid.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
