package pipeline

import (
	"bytes"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultHighlightStyle is the chroma style used for code block CSS.
const DefaultHighlightStyle = "github"

// BlockTransformer is implemented by transformers whose output is already
// block-level HTML and must not be wrapped in a paragraph.
type BlockTransformer interface {
	Transformer
	BlockLevel() bool
}

// StyledTransformer is implemented by transformers that need extra CSS in
// the document head.
type StyledTransformer interface {
	Transformer
	CSS() string
}

// MarkdownTransformer renders turn text as GitHub Flavored Markdown with
// goldmark, highlighting fenced code through chroma CSS classes.
type MarkdownTransformer struct {
	md    goldmark.Markdown
	style string
}

// Compile-time interface checks.
var (
	_ Transformer       = (*InlineTransformer)(nil)
	_ BlockTransformer  = (*MarkdownTransformer)(nil)
	_ StyledTransformer = (*MarkdownTransformer)(nil)
)

// NewMarkdownTransformer creates a MarkdownTransformer.
// An empty style selects DefaultHighlightStyle.
func NewMarkdownTransformer(style string) *MarkdownTransformer {
	if style == "" {
		style = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
			// Raw HTML in turns passes through, same as the inline renderer.
			goldmarkhtml.WithUnsafe(),
		),
	)
	return &MarkdownTransformer{md: md, style: style}
}

// Transform converts Markdown to an HTML fragment.
// On conversion failure the text is returned escaped inside a paragraph.
func (t *MarkdownTransformer) Transform(raw string) string {
	var buf bytes.Buffer
	if err := t.md.Convert([]byte(raw), &buf); err != nil {
		return "<p>" + html.EscapeString(raw) + "</p>"
	}
	return strings.TrimSpace(buf.String())
}

// BlockLevel reports that goldmark output carries its own paragraphs.
func (t *MarkdownTransformer) BlockLevel() bool {
	return true
}

// CSS returns the chroma stylesheet matching the highlight classes.
func (t *MarkdownTransformer) CSS() string {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(t.style)); err != nil {
		return ""
	}
	return buf.String()
}
