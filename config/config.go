// Package config loads interpreter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt        = " > "
	DefaultHistoryFile   = ".lino_history"
	DefaultStackCapacity = 31337
	DefaultMaxCallDepth  = 10000
	DefaultLogLevel      = "info"
)

// Config holds the settings of one interpreter session.
type Config struct {
	Prompt        string `yaml:"prompt"`
	HistoryFile   string `yaml:"history_file"`
	StackCapacity int    `yaml:"stack_capacity"`
	MaxCallDepth  int    `yaml:"max_call_depth"`
	LogLevel      string `yaml:"log_level"`
	TraceTokens   bool   `yaml:"trace_tokens"`
	TraceAST      bool   `yaml:"trace_ast"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func Default() *Config {
	return &Config{
		Prompt:        DefaultPrompt,
		HistoryFile:   DefaultHistoryFile,
		StackCapacity: DefaultStackCapacity,
		MaxCallDepth:  DefaultMaxCallDepth,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads path over the defaults, so keys missing from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := cfg.decode(file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse is Load for an in-memory document.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil {
		// an empty file leaves the defaults in place
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	var errs ValidationError
	if c.StackCapacity <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("stack_capacity must be positive, got %d", c.StackCapacity))
	}
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive, got %d", c.MaxCallDepth))
	}
	if _, err := log.ValidateLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q is not a known level", c.LogLevel))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HistoryPath resolves the history file against home. It returns "" when
// history is disabled.
func (c *Config) HistoryPath(home string) string {
	if c.HistoryFile == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) || home == "" {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
