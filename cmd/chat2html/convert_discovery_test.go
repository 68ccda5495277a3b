package main

// Notes:
// - discoverFiles: we test single-file, directory mirroring, lexical order,
//   export-tree skipping and extension filtering against real temp dirs.
// - resolveOutputPath/exportDir: pure path arithmetic, table-driven.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - File discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "chat.json")
	writeFile(t, in, sampleLog)

	got, err := discoverFiles(in, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []FileToConvert{{InputPath: in, OutputPath: filepath.Join(dir, "chat.html")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "logs")
	writeFile(t, filepath.Join(root, "b.json"), sampleLog)
	writeFile(t, filepath.Join(root, "a.JSON"), sampleLog)
	writeFile(t, filepath.Join(root, "sub", "c.json"), sampleLog)
	writeFile(t, filepath.Join(root, "notes.txt"), "skip me")
	writeFile(t, filepath.Join(root, "avatar.png"), "skip me")
	writeFile(t, filepath.Join(root, "old_HTML_EXPORT", "x.json"), sampleLog)

	got, err := discoverFiles(root, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	export := root + exportSuffix
	want := []FileToConvert{
		{InputPath: filepath.Join(root, "a.JSON"), OutputPath: filepath.Join(export, "a.html")},
		{InputPath: filepath.Join(root, "b.json"), OutputPath: filepath.Join(export, "b.html")},
		{InputPath: filepath.Join(root, "sub", "c.json"), OutputPath: filepath.Join(export, "sub", "c.html")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_DirectoryWithOutputDir(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "logs")
	out := filepath.Join(tmp, "site")
	writeFile(t, filepath.Join(root, "deep", "nested", "x.json"), sampleLog)

	got, err := discoverFiles(root, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d files, want 1", len(got))
	}
	if want := filepath.Join(out, "deep", "nested", "x.html"); got[0].OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", got[0].OutputPath, want)
	}
}

func TestDiscoverFiles_EmptyDirectory(t *testing.T) {
	t.Parallel()

	got, err := discoverFiles(t.TempDir(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d files, want 0", len(got))
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := filepath.Join(dir, "chat.txt")
	writeFile(t, txt, sampleLog)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing path", filepath.Join(dir, "missing.json"), os.ErrNotExist},
		{"wrong extension", txt, ErrInvalidExtension},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverFiles(tt.input, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path arithmetic
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		outDir  string
		baseDir string
		want    string
	}{
		{
			name:  "single file beside input",
			input: filepath.Join("a", "chat.json"),
			want:  filepath.Join("a", "chat.html"),
		},
		{
			name:   "single file into output dir",
			input:  filepath.Join("a", "chat.json"),
			outDir: "out",
			want:   filepath.Join("out", "chat.html"),
		},
		{
			name:   "single file to explicit html path",
			input:  filepath.Join("a", "chat.json"),
			outDir: filepath.Join("out", "page.HTML"),
			want:   filepath.Join("out", "page.HTML"),
		},
		{
			name:    "directory mirrored into export tree",
			input:   filepath.Join("logs", "sub", "chat.json"),
			baseDir: "logs",
			want:    filepath.Join("logs"+exportSuffix, "sub", "chat.html"),
		},
		{
			name:    "directory with trailing separator",
			input:   filepath.Join("logs", "chat.json"),
			baseDir: "logs" + string(filepath.Separator),
			want:    filepath.Join("logs"+exportSuffix, "chat.html"),
		},
		{
			name:    "directory mirrored into output dir",
			input:   filepath.Join("logs", "sub", "chat.json"),
			outDir:  "out",
			baseDir: "logs",
			want:    filepath.Join("out", "sub", "chat.html"),
		},
		{
			name:  "dotted base name keeps inner dots",
			input: "v1.2.chat.json",
			want:  "v1.2.chat.html",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.input, tt.outDir, tt.baseDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outDir, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestExportDir(t *testing.T) {
	t.Parallel()

	if got, want := exportDir("logs/"), "logs"+exportSuffix; got != want {
		t.Errorf("exportDir(logs/) = %q, want %q", got, want)
	}

	got := exportDir(".")
	if !filepath.IsAbs(got) || !strings.HasSuffix(got, exportSuffix) {
		t.Errorf("exportDir(.) = %q, want absolute path ending in %s", got, exportSuffix)
	}
}

// ---------------------------------------------------------------------------
// TestPathHelpers - Small naming helpers
// ---------------------------------------------------------------------------

func TestPathHelpers(t *testing.T) {
	t.Parallel()

	if got, want := pdfOutputPath(filepath.Join("out", "chat.html")), filepath.Join("out", "chat.pdf"); got != want {
		t.Errorf("pdfOutputPath() = %q, want %q", got, want)
	}
	if got := documentTitle(filepath.Join("logs", "Session 3.json")); got != "Session 3" {
		t.Errorf("documentTitle() = %q, want %q", got, "Session 3")
	}
	if err := validateLogExtension("chat.Json"); err != nil {
		t.Errorf("validateLogExtension(chat.Json) unexpected error: %v", err)
	}
	if err := validateLogExtension("chat.md"); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("validateLogExtension(chat.md) error = %v, want ErrInvalidExtension", err)
	}
}
