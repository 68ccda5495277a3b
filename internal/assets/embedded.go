package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in CSS style by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readEmbedded("styles", name, ".css", ErrStyleNotFound)
}

// LoadTemplate loads a built-in HTML template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readEmbedded("templates", name, ".html", ErrTemplateNotFound)
}

func readEmbedded(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := builtin.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

// StyleNames lists the built-in style names, sorted.
func StyleNames() []string {
	entries, err := fs.ReadDir(builtin, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
