package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-chat2html/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string        // CHAT2HTML_CONFIG: config file name or path
	Style      string        // CHAT2HTML_STYLE: CSS style name or path
	Timeout    time.Duration // CHAT2HTML_TIMEOUT: PDF generation timeout
	InputDir   string        // CHAT2HTML_INPUT_DIR: default input directory
	OutputDir  string        // CHAT2HTML_OUTPUT_DIR: default output directory
	LogLevel   string        // CHAT2HTML_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid CHAT2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CHAT2HTML_CONFIG":     true,
	"CHAT2HTML_STYLE":      true,
	"CHAT2HTML_TIMEOUT":    true,
	"CHAT2HTML_INPUT_DIR":  true,
	"CHAT2HTML_OUTPUT_DIR": true,
	"CHAT2HTML_LOG_LEVEL":  true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable CHAT2HTML_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CHAT2HTML_CONFIG"),
		Style:      os.Getenv("CHAT2HTML_STYLE"),
		InputDir:   os.Getenv("CHAT2HTML_INPUT_DIR"),
		OutputDir:  os.Getenv("CHAT2HTML_OUTPUT_DIR"),
		LogLevel:   os.Getenv("CHAT2HTML_LOG_LEVEL"),
	}

	if timeout := os.Getenv("CHAT2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CHAT2HTML_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CHAT2HTML_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags, timeout in resolveTimeoutWithEnv)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style.Name == "" {
		cfg.Style.Name = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
}
