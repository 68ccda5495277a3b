package chat2html

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-chat2html/internal/assets"
	"github.com/alnah/go-chat2html/internal/fileutil"
	"github.com/alnah/go-chat2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Transformer       = (*pipeline.InlineTransformer)(nil)
	_ pipeline.BlockTransformer  = (*pipeline.MarkdownTransformer)(nil)
	_ pipeline.StyledTransformer = (*pipeline.MarkdownTransformer)(nil)
	_ pipeline.DocumentAssembler = (*pipeline.Assembler)(nil)
	_ pdfConverter               = (*rodConverter)(nil)
	_ pdfRenderer                = (*rodRenderer)(nil)
)

// Converter turns conversation logs into HTML documents, and optionally PDF.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader // internal loader
	publicAssetLoader AssetLoader        // public loader (from WithAssetLoader)
	assembler         pipeline.DocumentAssembler
	pdfConverter      pdfConverter
	logger            zerolog.Logger
}

// publicToInternalAdapter wraps public AssetLoader to internal assets.AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplate(name string) (string, error) {
	return a.pub.LoadTemplate(name)
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithRenderer, WithAssetPath).
// Returns error if asset loading or template parsing fails.
// The browser for PDF output is only started on the first PDF conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	transformer, err := newTransformer(c.cfg.renderer, c.cfg.highlightStyle)
	if err != nil {
		return nil, err
	}

	// Keep a test-injected assembler
	if c.assembler == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading document template: %w", convertAssetError(err))
		}
		c.assembler, err = pipeline.NewAssembler(tmpl, transformer)
		if err != nil {
			return nil, fmt.Errorf("initializing assembler: %w", err)
		}
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// newTransformer selects the turn text renderer by name.
func newTransformer(name, highlightStyle string) (pipeline.Transformer, error) {
	switch strings.ToLower(name) {
	case "", RendererInline:
		return &pipeline.InlineTransformer{}, nil
	case RendererMarkdown:
		return pipeline.NewMarkdownTransformer(highlightStyle), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidRenderer, name, RendererInline, RendererMarkdown)
	}
}

// Convert parses input.Log, assembles the HTML document and, when
// input.PDF is set, renders it to PDF.
// The context is used for cancellation and the PDF timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log, err := ParseLog(input.Log)
	if err != nil {
		return nil, err
	}

	if input.IncludeImage && len(input.Image) > 0 && !IsPNG(input.Image) {
		return nil, ErrInvalidImage
	}
	if input.IncludeImage && len(input.Image) == 0 {
		c.logger.Debug().Msg("no character image supplied, using placeholder")
	}

	htmlContent, err := c.assembler.Assemble(ctx, c.documentData(log, input))
	if err != nil {
		if errors.Is(err, pipeline.ErrDocumentRender) {
			return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
		}
		return nil, err
	}

	c.logger.Debug().
		Int("records", len(log)).
		Int("bytes", len(htmlContent)).
		Msg("document assembled")

	res := &ConvertResult{
		HTML: []byte(htmlContent),
		Log:  log,
	}

	if !input.PDF {
		return res, nil
	}

	// Chrome loads the page from a temp file, so relative links in turns
	// must point back at the log's directory.
	pdfHTML, err := pipeline.ResolveLocalLinks(htmlContent, input.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving links for PDF: %w", err)
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, pdfHTML)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// documentData maps the parsed log onto the assembler model.
func (c *Converter) documentData(log ConversationLog, input Input) *pipeline.DocumentData {
	title := input.Title
	if title == "" {
		title = DefaultTitle
	}

	records := make([]pipeline.RecordData, len(log))
	for i, rec := range log {
		turns := make([]pipeline.TurnData, len(rec.Turns))
		for j, t := range rec.Turns {
			turns[j] = pipeline.TurnData{Role: string(t.Role), Text: t.Text}
		}
		records[i] = pipeline.RecordData{Name: rec.Name, Turns: turns}
	}

	return &pipeline.DocumentData{
		Title:   title,
		CSS:     c.cfg.resolvedStyle,
		Records: records,
		Image: pipeline.ImageData{
			Include: input.IncludeImage,
			PNG:     input.Image,
		},
	}
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// An empty style input selects DefaultStyle.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}
