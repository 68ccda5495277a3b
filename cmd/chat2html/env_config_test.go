package main

// Notes:
// - loadEnvConfig/warnUnknownEnvVars read the process environment, so these
//   tests use t.Setenv and cannot run in parallel.
// - applyEnvConfig: pure, parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-chat2html/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable reading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("CHAT2HTML_CONFIG", "work")
	t.Setenv("CHAT2HTML_STYLE", "dark")
	t.Setenv("CHAT2HTML_TIMEOUT", "45s")
	t.Setenv("CHAT2HTML_INPUT_DIR", "in")
	t.Setenv("CHAT2HTML_OUTPUT_DIR", "out")
	t.Setenv("CHAT2HTML_LOG_LEVEL", "info")

	got := loadEnvConfig()
	want := &envConfig{
		ConfigPath: "work",
		Style:      "dark",
		Timeout:    45 * time.Second,
		InputDir:   "in",
		OutputDir:  "out",
		LogLevel:   "info",
	}
	if *got != *want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadEnvConfig_InvalidTimeoutIgnored(t *testing.T) {
	for _, v := range []string{"soon", "-5s", "0"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("CHAT2HTML_TIMEOUT", v)
			if got := loadEnvConfig().Timeout; got != 0 {
				t.Errorf("Timeout = %v, want 0", got)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("CHAT2HTML_STLYE", "dark")
	t.Setenv("CHAT2HTML_STYLE", "dark")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "unknown environment variable CHAT2HTML_STLYE") {
		t.Errorf("should warn about typo, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "CHAT2HTML_STYLE ") {
		t.Errorf("should not warn about known variable, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env fills gaps only
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{Style: "dark", InputDir: "env-in", OutputDir: "env-out", LogLevel: "debug"}

	t.Run("fills empty values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Style.Name != "dark" || cfg.Input.DefaultDir != "env-in" ||
			cfg.Output.DefaultDir != "env-out" || cfg.Log.Level != "debug" {
			t.Errorf("applyEnvConfig() = %+v", cfg)
		}
	})

	t.Run("config file wins", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Name = "default"
		cfg.Log.Level = "warn"
		applyEnvConfig(env, cfg)

		if cfg.Style.Name != "default" || cfg.Log.Level != "warn" {
			t.Errorf("config values should be kept, got style %q level %q", cfg.Style.Name, cfg.Log.Level)
		}
	})
}
