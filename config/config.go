package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"gopkg.in/yaml.v3"

	"lino/internals"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "lino.yml"

// Config represents the parsed contents of lino.yml.
type Config struct {
	Path               string `yaml:"-"`
	LogLevel           string `yaml:"log_level"`
	MaxSteps           int    `yaml:"max_steps"`
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
}

var levels = map[string]log.Level{
	"debug":    log.Debug,
	"verbose":  log.Verbose,
	"info":     log.Info,
	"warning":  log.Warning,
	"error":    log.Error,
	"critical": log.Critical,
}

func Default() *Config {
	return &Config{
		LogLevel:           "info",
		MaxSteps:           0,
		Prompt:             ">>> ",
		ContinuationPrompt: "... ",
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	b.WriteString(":")
	for _, issue := range strings.Split(e.Issues.Error(), "\n") {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Issues
}

// Load reads the config at path. An empty path falls back to DefaultFile,
// and to the defaults when that file does not exist either.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = path
			return nil, verr
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes a config document on top of the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	ec := internals.NewErrorCollector()
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		ec.Addf("log_level %q is not one of debug, verbose, info, warning, error, critical", c.LogLevel)
	}
	if c.MaxSteps < 0 {
		ec.Addf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Prompt == "" {
		ec.Addf("prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		ec.Addf("continuation_prompt must not be empty")
	}
	if ec.HasErrors() {
		return &ValidationError{Path: c.Path, Issues: ec.Err()}
	}
	return nil
}

// Level is the logger level named by LogLevel.
func (c *Config) Level() log.Level {
	if lvl, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return log.Info
}

// Apply sets the process wide log level.
func (c *Config) Apply() {
	log.SetLogLevel(c.Level())
}
