package chat2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("conversation log cannot be empty")
	ErrParseLog       = errors.New("failed to parse conversation log")
	ErrDocumentRender = errors.New("document rendering failed")
	ErrInvalidImage   = errors.New("character image is not a PNG")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Renderer selection errors.
	ErrInvalidRenderer = errors.New("invalid renderer")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
