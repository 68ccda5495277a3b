package chat2html

import (
	"errors"

	"github.com/alnah/go-chat2html/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in light style.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplate is the name of the built-in document template.
	DefaultTemplate = assets.DefaultTemplateName
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from filesystem, embedded assets, or anywhere else.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an html/template document shell by name
	// (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// StyleNames lists the built-in style names, sorted.
func StyleNames() []string {
	return assets.StyleNames()
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}.html for document templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to public sentinels.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.loader.LoadStyle(name)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.loader.LoadTemplate(name)
	return content, convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
