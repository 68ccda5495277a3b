package chat2html

import (
	"time"

	"github.com/rs/zerolog"
)

// Renderer names for WithRenderer.
const (
	RendererInline   = "inline"
	RendererMarkdown = "markdown"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds Converter settings applied by options.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string // name, path, or CSS content
	resolvedStyle  string // CSS content after resolution
	renderer       string
	highlightStyle string
	assetPath      string
}

// WithTimeout bounds PDF rendering for each conversion.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		if d > 0 {
			c.cfg.timeout = d
		}
	}
}

// WithStyle selects the document stylesheet. The value may be a style
// name resolved by the asset loader, a CSS file path, or raw CSS.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithRenderer selects how turn text becomes HTML: RendererInline (the
// default) or RendererMarkdown.
func WithRenderer(name string) Option {
	return func(c *Converter) {
		c.cfg.renderer = name
	}
}

// WithHighlightStyle sets the chroma style used for code blocks by the
// markdown renderer.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithAssetPath loads styles and templates from a directory, falling back
// to the embedded assets for anything missing.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithLogger sets the logger for diagnostic messages. The default discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}
