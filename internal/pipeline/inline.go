package pipeline

import (
	"regexp"
	"strings"
)

// Paragraph boundary inserted for every newline in turn text.
// The surrounding template wraps each turn in a single <p>, so each
// original line renders as its own paragraph.
const paragraphBreak = "</p><p>"

// Precompiled regex patterns for the inline passes.
var (
	// **text** (non-greedy, single line)
	strongPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

	// *text* (non-greedy, single line)
	emphasisPattern = regexp.MustCompile(`\*(.*?)\*`)

	// ```code``` spanning lines
	fencePattern = regexp.MustCompile("(?s)```(.*?)```")

	// [label](http...) only
	linkPattern = regexp.MustCompile(`\[([^\]]*)\]\((http[^)\s]*)\)`)
)

// Transformer turns raw turn text into an HTML fragment.
type Transformer interface {
	Transform(raw string) string
}

// InlineTransformer applies the fixed sequence of regex passes used for
// conversation text. It never escapes the input: markup already present in
// the raw text reaches the document unchanged.
type InlineTransformer struct{}

// Transform applies, in order: strong, emphasis, paragraph breaks, fenced
// code blocks, and links. Later passes see the output of earlier ones.
func (t *InlineTransformer) Transform(raw string) string {
	s := ApplyStrong(raw)
	s = ApplyEmphasis(s)
	s = ApplyParagraphs(s)
	s = ApplyCodeFences(s)
	s = ApplyLinks(s)
	return s
}

// ApplyStrong wraps **text** in <strong>.
func ApplyStrong(s string) string {
	return strongPattern.ReplaceAllString(s, "<strong>$1</strong>")
}

// ApplyEmphasis wraps *text* in a highlight span.
// Must run after ApplyStrong, otherwise **x** reads as two empty spans.
func ApplyEmphasis(s string) string {
	return emphasisPattern.ReplaceAllString(s, `<span class="highlight">$1</span>`)
}

// ApplyParagraphs replaces every newline with a paragraph boundary.
// Leading and trailing newlines are kept, producing empty paragraphs.
func ApplyParagraphs(s string) string {
	return strings.ReplaceAll(s, "\n", paragraphBreak)
}

// ApplyCodeFences turns ```...``` into <pre> blocks.
// Runs after ApplyParagraphs, so boundaries inserted inside the fence are
// turned back into newlines to keep the block content verbatim.
func ApplyCodeFences(s string) string {
	return fencePattern.ReplaceAllStringFunc(s, func(m string) string {
		body := fencePattern.FindStringSubmatch(m)[1]
		body = strings.ReplaceAll(body, paragraphBreak, "\n")
		return "<pre>" + body + "</pre>"
	})
}

// ApplyLinks converts [label](url) to an anchor when url starts with http.
func ApplyLinks(s string) string {
	return linkPattern.ReplaceAllString(s, `<a href="$2">$1</a>`)
}
