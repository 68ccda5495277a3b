package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// logExtension is the extension of conversation log files.
const logExtension = ".json"

// exportSuffix is appended to a directory input to name its mirrored output tree.
const exportSuffix = "_HTML_EXPORT"

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension = errors.New("file must have .json extension")
	ErrNoInputFiles     = errors.New("no conversation logs found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all conversation logs to convert, in lexical order.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateLogExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			// Never re-read a previous export, even when -o points inside the tree
			if path != inputPath && strings.HasSuffix(d.Name(), exportSuffix) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasLogExtension(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a conversation log.
// baseInputDir is empty for a single-file input; otherwise the relative
// directory under it is mirrored into outputDir, or into the export
// directory beside baseInputDir when outputDir is empty.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if baseInputDir == "" {
		if outputDir == "" {
			return filepath.Join(filepath.Dir(inputPath), base+".html")
		}
		if strings.EqualFold(filepath.Ext(outputDir), ".html") {
			return outputDir
		}
		return filepath.Join(outputDir, base+".html")
	}

	if outputDir == "" {
		outputDir = exportDir(baseInputDir)
	}

	relPath, err := filepath.Rel(baseInputDir, inputPath)
	if err != nil {
		return filepath.Join(outputDir, base+".html")
	}
	return filepath.Join(outputDir, filepath.Dir(relPath), base+".html")
}

// exportDir names the mirrored output tree for a directory input.
// "." and ".." have no usable base name, so they resolve to an absolute path first.
func exportDir(root string) string {
	clean := filepath.Clean(root)
	if filepath.Base(clean) == "." || filepath.Base(clean) == ".." {
		if abs, err := filepath.Abs(clean); err == nil {
			clean = abs
		}
	}
	return clean + exportSuffix
}

// pdfOutputPath returns the PDF path corresponding to an HTML path.
func pdfOutputPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
}

// documentTitle derives the page title from the input file name.
func documentTitle(inputPath string) string {
	return strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
}

// hasLogExtension reports whether path ends in .json, ignoring case.
func hasLogExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), logExtension)
}

// validateLogExtension checks that the file has a .json extension.
func validateLogExtension(path string) error {
	if !hasLogExtension(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
