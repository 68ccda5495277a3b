package chat2html

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-chat2html/internal/fileutil"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// FindCompanionImage returns the lexically first .png file in the input
// file's directory, then in the current working directory.
// Returns "" when neither has one; a missing image is not an error.
func FindCompanionImage(inputPath string) string {
	dirs := []string{filepath.Dir(inputPath)}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return fileutil.FindFirstWithExt(dirs, ".png")
}

// LoadImage reads a PNG file for embedding.
func LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided or discovered image path
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	if !IsPNG(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, path)
	}
	return data, nil
}

// IsPNG reports whether data starts with the PNG file signature.
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}
