// Package config loads exx settings from a TOML file.
//
// Example exx.toml:
//
//	[output]
//	format = "text"
//	color = "auto"
//	max_diagnostics = 0
//	tab_width = 4
//
//	[parser]
//	parse_with_diagnostics = false
//
//	[log]
//	level = "warn"
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "EXX_CONFIG"

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "exx.toml"

// Config holds all settings.
type Config struct {
	Output OutputConfig `toml:"output"`
	Parser ParserConfig `toml:"parser"`
	Log    LogConfig    `toml:"log"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	TabWidth       int    `toml:"tab_width"`
}

// ParserConfig controls the front end.
type ParserConfig struct {
	// ParseWithDiagnostics runs the parser even when the lexer reported
	// errors, with invalid tokens replaced by a placeholder identifier.
	ParseWithDiagnostics bool `toml:"parse_with_diagnostics"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the config file at path. Environment variables
// in path are expanded.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.applyDefaults()
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover finds the config to use: the explicit path if set, then the file
// named by EXX_CONFIG, then ./exx.toml. With none of them present it returns
// the defaults.
func Discover(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.TabWidth == 0 {
		c.Output.TabWidth = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate checks that every setting holds a known value.
func (c *Config) Validate() error {
	var errs []error

	switch c.Output.Format {
	case "text", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format must be text or yaml, got %q", c.Output.Format))
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color))
	}

	if c.Output.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("output.max_diagnostics must not be negative, got %d", c.Output.MaxDiagnostics))
	}
	if c.Output.TabWidth < 1 {
		errs = append(errs, fmt.Errorf("output.tab_width must be positive, got %d", c.Output.TabWidth))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel returns the configured log level. Unknown names map to warn.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", name)
	}
}
