package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-chat2html/internal/confutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxNameLength     = 100  // Style and highlight style names
	MaxDurationLength = 20   // "30s", "1m30s"
	MaxLevelLength    = 10   // "debug", "warn"
)

// Renderer names accepted by renderer.name.
const (
	RendererInline   = "inline"
	RendererMarkdown = "markdown"
)

// Log levels accepted by log.level.
var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds all configuration for conversation rendering.
// Every section decodes from YAML and TOML with the same key names.
type Config struct {
	Input    InputConfig    `yaml:"input" toml:"input"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Image    ImageConfig    `yaml:"image" toml:"image"`
	Style    StyleConfig    `yaml:"style" toml:"style"`
	Renderer RendererConfig `yaml:"renderer" toml:"renderer"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	PDF      PDFConfig      `yaml:"pdf" toml:"pdf"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default output directory (empty = beside source)
}

// ImageConfig defines character image embedding.
type ImageConfig struct {
	Disable bool   `yaml:"disable" toml:"disable"` // Omit the image from assistant turns
	Path    string `yaml:"path" toml:"path"`       // Explicit PNG (empty = discover)
}

// StyleConfig defines the document stylesheet.
type StyleConfig struct {
	Name string `yaml:"name" toml:"name"` // Embedded style name, CSS file path, or raw CSS (empty = default)
}

// RendererConfig selects how turn text becomes HTML.
type RendererConfig struct {
	Name           string `yaml:"name" toml:"name"`                     // "inline" or "markdown" (default: inline)
	HighlightStyle string `yaml:"highlightStyle" toml:"highlightStyle"` // chroma style for markdown code blocks
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // Empty = use embedded assets
}

// PDFConfig defines optional PDF export.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Timeout string `yaml:"timeout" toml:"timeout"` // Go duration, e.g. "30s" (empty = converter default)
}

// TimeoutDuration parses Timeout. Returns zero when Timeout is empty.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout: must be positive, got %s", ErrInvalidValue, p.Timeout)
	}
	return d, nil
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"` // debug, info, warn, error (default: warn)
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"input.defaultDir", c.Input.DefaultDir},
		{"output.defaultDir", c.Output.DefaultDir},
		{"image.path", c.Image.Path},
		{"assets.basePath", c.Assets.BasePath},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	// style.name may hold raw CSS, so it gets the path limit
	if err := validateFieldLength("style.name", c.Style.Name, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("renderer.highlightStyle", c.Renderer.HighlightStyle, MaxNameLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Renderer.Name) {
	case "", RendererInline, RendererMarkdown:
	default:
		return fmt.Errorf("%w: renderer.name %q (must be %s or %s)", ErrInvalidValue, c.Renderer.Name, RendererInline, RendererMarkdown)
	}

	if err := validateFieldLength("pdf.timeout", c.PDF.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}

	if err := validateFieldLength("log.level", c.Log.Level, MaxLevelLength); err != nil {
		return err
	}
	if c.Log.Level != "" && !isLogLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (must be one of %s)", ErrInvalidValue, c.Log.Level, strings.Join(logLevels, ", "))
	}

	return nil
}

func isLogLevel(s string) bool {
	s = strings.ToLower(s)
	for _, l := range logLevels {
		if s == l {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no config file is given:
// inline renderer, embedded default style, image discovery on, no PDF.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{DefaultDir: ""},
		Output:   OutputConfig{DefaultDir: ""},
		Image:    ImageConfig{Disable: false},
		Style:    StyleConfig{Name: ""},
		Renderer: RendererConfig{Name: RendererInline},
		Assets:   AssetsConfig{BasePath: ""},
		PDF:      PDFConfig{Enabled: false},
		Log:      LogConfig{Level: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path and
// its extension selects YAML or TOML. Otherwise, it's treated as a config
// name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := confutil.FormatFor(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := confutil.UnmarshalStrict(format, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in confutil.Extensions order.
// Tries locations in order: current directory, ~/.config/go-chat2html/
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(confutil.Extensions)*2) // 2 locations

	for _, ext := range confutil.Extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range confutil.Extensions {
			userPath := filepath.Join(userConfigDir, "go-chat2html", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
