// Package config loads the project configuration from tsfront.yaml or
// tsfront.toml.
//
// A configuration names the project root, the entry modules to compile (as
// glob patterns relative to the root), paths to skip, the source extension
// used to resolve extensionless imports, and the driver's logging, color and
// watch settings. Missing settings take the defaults from Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SourceFileExt is the default source extension.
const SourceFileExt = ".ts"

// FileNames are the configuration file names searched for, in order.
var FileNames = []string{"tsfront.yaml", "tsfront.yml", "tsfront.toml"}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const defaultDebounce = 200 * time.Millisecond

// Config represents a tsfront.yaml / tsfront.toml file.
type Config struct {
	// Root is the project root. Diagnostics report paths relative to it.
	// A relative root is resolved against the directory of the config file.
	Root string `yaml:"root" toml:"root"`

	// Entries are glob patterns, relative to Root, selecting the modules to
	// compile. Every matching file is compiled as its own entry.
	Entries []string `yaml:"entries" toml:"entries"`

	// Exclude lists glob patterns for files and directories to skip.
	Exclude []string `yaml:"exclude" toml:"exclude"`

	// Ext is appended to relative import specifiers without an extension.
	Ext string `yaml:"ext" toml:"ext"`

	// Color selects styled diagnostics: auto, always or never.
	Color string `yaml:"color" toml:"color"`

	Log   LogConfig   `yaml:"log" toml:"log"`
	Watch WatchConfig `yaml:"watch" toml:"watch"`

	// Dir is the directory the configuration was loaded from.
	Dir string `yaml:"-" toml:"-"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn or error
	Format string `yaml:"format" toml:"format"` // text or json
}

type WatchConfig struct {
	// Debounce is how long watch mode waits for further changes before
	// recompiling.
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}

// Format identifies a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the syntax from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%s: unsupported config format (want .yaml, .yml or .toml)", path)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg.Dir = filepath.Dir(abs)
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(cfg.Dir, cfg.Root)
	}
	return cfg, nil
}

// Parse parses configuration content. Unknown keys are rejected.
// The path argument is used only for error messages.
func Parse(data []byte, format Format, path string) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, format)
	}

	cfg.applyDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Find searches for a configuration file starting from dir and walking up
// to parent directories. It returns an empty path and nil error when none
// is found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Root) == "" {
		c.Root = "."
	}
	if c.Ext == "" {
		c.Ext = SourceFileExt
	}
	if len(c.Entries) == 0 {
		c.Entries = []string{"*" + c.Ext, "**/*" + c.Ext}
	}
	if c.Exclude == nil {
		c.Exclude = []string{"node_modules/**", ".git/**"}
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = defaultDebounce
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if !strings.HasPrefix(c.Ext, ".") || len(c.Ext) < 2 {
		return fmt.Errorf("%s: ext %q must be a file extension such as \".ts\"", path, c.Ext)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never (got %q)", path, c.Color)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("%s: log.level: %w", path, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s: log.format must be text or json (got %q)", path, c.Log.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%s: watch.debounce must not be negative", path)
	}
	if _, err := c.Matcher(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger builds the driver logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
