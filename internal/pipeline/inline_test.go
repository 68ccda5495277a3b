package pipeline

// Notes:
// - Each pass is tested alone, then Transform is tested end to end so the
//   pass ordering is pinned down.
// - Raw markup in the input is expected to pass through unescaped.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestApplyStrong - Double marker pass
// ---------------------------------------------------------------------------

func TestApplyStrong(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single span", "**a**", "<strong>a</strong>"},
		{"shortest match", "**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
		{"unmatched trailing", "**a", "**a"},
		{"single markers untouched", "*a*", "*a*"},
		{"does not span lines", "**a\nb**", "**a\nb**"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ApplyStrong(tt.input); got != tt.want {
				t.Errorf("ApplyStrong(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEmphasis - Single marker pass
// ---------------------------------------------------------------------------

func TestApplyEmphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single span", "*a*", `<span class="highlight">a</span>`},
		{"two spans", "*a* *b*", `<span class="highlight">a</span> <span class="highlight">b</span>`},
		{"lone marker passes through", "a * b", "a * b"},
		{"leading odd marker", "*a", "*a"},
		{"odd count leaves trailing marker", "*a* b*", `<span class="highlight">a</span> b*`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ApplyEmphasis(tt.input); got != tt.want {
				t.Errorf("ApplyEmphasis(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyParagraphs - Newline pass
// ---------------------------------------------------------------------------

func TestApplyParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no newline", "abc", "abc"},
		{"one newline", "a\nb", "a</p><p>b"},
		{"leading newline kept", "\na", "</p><p>a"},
		{"trailing newline kept", "a\n", "a</p><p>"},
		{"blank line", "a\n\nb", "a</p><p></p><p>b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ApplyParagraphs(tt.input); got != tt.want {
				t.Errorf("ApplyParagraphs(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyCodeFences - Fenced block pass
// ---------------------------------------------------------------------------

func TestApplyCodeFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "```x := 1```", "<pre>x := 1</pre>"},
		{"raw newline", "```a\nb```", "<pre>a\nb</pre>"},
		{"restores paragraph boundary", "```a</p><p>b```", "<pre>a\nb</pre>"},
		{"keeps indentation", "```a\n    b```", "<pre>a\n    b</pre>"},
		{"two fences stay separate", "```a``` x ```b```", "<pre>a</pre> x <pre>b</pre>"},
		{"unterminated fence", "```a", "```a"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ApplyCodeFences(tt.input); got != tt.want {
				t.Errorf("ApplyCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyLinks - Link pass
// ---------------------------------------------------------------------------

func TestApplyLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"http link", "[x](http://a)", `<a href="http://a">x</a>`},
		{"https link", "see [docs](https://go.dev/doc)", `see <a href="https://go.dev/doc">docs</a>`},
		{"ftp left literal", "[x](ftp://a)", "[x](ftp://a)"},
		{"relative left literal", "[x](/path)", "[x](/path)"},
		{"brackets alone", "[x]", "[x]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ApplyLinks(tt.input); got != tt.want {
				t.Errorf("ApplyLinks(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInlineTransformer_Transform - Full pass sequence
// ---------------------------------------------------------------------------

func TestInlineTransformer_Transform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "plain text unchanged",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "plain text with newline",
			input: "hello\nworld",
			want:  "hello</p><p>world",
		},
		{
			name:  "strong",
			input: "**a**",
			want:  "<strong>a</strong>",
		},
		{
			name:  "emphasis",
			input: "*a*",
			want:  `<span class="highlight">a</span>`,
		},
		{
			name:  "strong then emphasis independently",
			input: "**a** *b*",
			want:  `<strong>a</strong> <span class="highlight">b</span>`,
		},
		{
			name:  "code fence keeps newline",
			input: "```code\nline```",
			want:  "<pre>code\nline</pre>",
		},
		{
			name:  "http link",
			input: "[x](http://a)",
			want:  `<a href="http://a">x</a>`,
		},
		{
			name:  "non-http link literal",
			input: "[x](ftp://a)",
			want:  "[x](ftp://a)",
		},
		{
			name:  "raw markup passes through",
			input: "<b>hi</b> & bye",
			want:  "<b>hi</b> & bye",
		},
		{
			name:  "odd asterisks pass through",
			input: "2 * 3 = 6",
			want:  "2 * 3 = 6",
		},
		{
			name:  "mixed",
			input: "**Note**\nsee [site](https://example.com)",
			want:  `<strong>Note</strong></p><p>see <a href="https://example.com">site</a>`,
		},
	}

	tr := &InlineTransformer{}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tr.Transform(tt.input); got != tt.want {
				t.Errorf("Transform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInlineTransformer_CodeFenceSingleBlock(t *testing.T) {
	t.Parallel()

	got := (&InlineTransformer{}).Transform("```code\nline```")
	if n := strings.Count(got, "<pre>"); n != 1 {
		t.Errorf("expected 1 <pre> block, got %d in %q", n, got)
	}
	if strings.Contains(got, paragraphBreak) {
		t.Errorf("code block should not contain paragraph boundary: %q", got)
	}
}
