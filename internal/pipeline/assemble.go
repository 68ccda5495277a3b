package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrDocumentRender indicates the document template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

// Turn roles understood by the assembler. Any other role is dropped.
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
	RoleSystem    = "system"
)

// Container classes and fixed headings per role.
const (
	assistantClass = "gpt-entry"
	userClass      = "human-entry"
	systemClass    = "system-entry"
	userHeading    = "You"
	systemHeading  = "System"
)

// PlaceholderPNG is a 1x1 transparent PNG, base64 encoded.
// Used when an image is requested but none was supplied.
const PlaceholderPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// DocumentData holds everything needed to render one document.
type DocumentData struct {
	Title   string
	CSS     string
	Records []RecordData
	Image   ImageData
}

// RecordData is one named group of turns.
type RecordData struct {
	Name  string
	Turns []TurnData
}

// TurnData is one role-tagged message.
type TurnData struct {
	Role string
	Text string
}

// ImageData controls the assistant avatar.
// With Include unset the image element is omitted. With Include set and no
// PNG bytes, PlaceholderPNG is embedded instead.
type ImageData struct {
	Include bool
	PNG     []byte
}

// DocumentAssembler defines the contract for document assembly.
type DocumentAssembler interface {
	Assemble(ctx context.Context, data *DocumentData) (string, error)
}

// Assembler renders conversation records through an HTML template,
// running every turn through a Transformer.
type Assembler struct {
	tmpl        *template.Template
	transformer Transformer
}

var _ DocumentAssembler = (*Assembler)(nil)

// NewAssembler creates an Assembler from template content.
// A nil transformer selects InlineTransformer.
func NewAssembler(tmplContent string, t Transformer) (*Assembler, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	if t == nil {
		t = &InlineTransformer{}
	}
	return &Assembler{tmpl: tmpl, transformer: t}, nil
}

// documentView is the template model.
type documentView struct {
	Title   string
	CSS     template.CSS
	Entries []entryView
}

type entryView struct {
	Number int
	Name   string
	Blocks []blockView
}

type blockView struct {
	Class   string
	Heading string
	Image   template.URL
	Body    template.HTML
	Block   bool
}

// Assemble renders the full document: header, one entry per record, footer.
func (a *Assembler) Assemble(ctx context.Context, data *DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = &DocumentData{}
	}

	view := documentView{
		Title:   data.Title,
		CSS:     template.CSS(a.css(data.CSS)), // #nosec G203 -- sanitized by sanitizeCSS
		Entries: make([]entryView, 0, len(data.Records)),
	}

	imageSrc := imageURL(data.Image)
	blockLevel := false
	if bt, ok := a.transformer.(BlockTransformer); ok {
		blockLevel = bt.BlockLevel()
	}

	for i, rec := range data.Records {
		entry := entryView{Number: i + 1, Name: rec.Name}
		for _, turn := range rec.Turns {
			if turn.Text == "" {
				continue
			}
			block, ok := newBlock(turn.Role, rec.Name, imageSrc)
			if !ok {
				continue
			}
			// Turn text is trusted markup and is not escaped.
			block.Body = template.HTML(a.transformer.Transform(turn.Text)) // #nosec G203
			block.Block = blockLevel
			entry.Blocks = append(entry.Blocks, block)
		}
		view.Entries = append(view.Entries, entry)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// css joins the style sheet with any CSS the transformer needs.
func (a *Assembler) css(base string) string {
	parts := []string{base}
	if st, ok := a.transformer.(StyledTransformer); ok {
		parts = append(parts, st.CSS())
	}
	return sanitizeCSS(strings.Join(parts, "\n"))
}

// newBlock returns the container for a role, or false for unknown roles.
func newBlock(role, name string, imageSrc template.URL) (blockView, bool) {
	switch role {
	case RoleAssistant:
		return blockView{Class: assistantClass, Heading: name, Image: imageSrc}, true
	case RoleUser:
		return blockView{Class: userClass, Heading: userHeading}, true
	case RoleSystem:
		return blockView{Class: systemClass, Heading: systemHeading}, true
	default:
		return blockView{}, false
	}
}

// imageURL builds the data URL for the assistant image, empty when omitted.
func imageURL(img ImageData) template.URL {
	if !img.Include {
		return ""
	}
	encoded := PlaceholderPNG
	if len(img.PNG) > 0 {
		encoded = base64.StdEncoding.EncodeToString(img.PNG)
	}
	return template.URL("data:image/png;base64," + encoded) // #nosec G203 -- base64 alphabet only
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
