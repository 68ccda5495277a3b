package main

// Notes:
// - This file contains test helpers used across CLI tests.
// - These are not functions under test themselves, but supporting infrastructure.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	chat2html "github.com/alnah/go-chat2html"
	"github.com/alnah/go-chat2html/internal/config"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// sampleLog is a minimal valid conversation log.
const sampleLog = `[{"Character": "Ava", "conversations": [
	{"from": "human", "value": "Hi"},
	{"from": "gpt", "value": "**Hello** there"}
]}]`

// testPNG is a valid PNG header followed by filler bytes.
var testPNG = append([]byte("\x89PNG\r\n\x1a\n"), []byte("test-image")...)

// writeFile creates parent directories and writes content, failing the test on error.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// fixedNow returns a clock that advances by step on each call.
func fixedNow(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns canned results.
type mockConverter struct {
	mu       sync.Mutex
	inputs   []chat2html.Input
	err      error
	errFor   map[string]error // keyed by Input.Title
	pdf      []byte
	closed   bool
	closeErr error
}

func (m *mockConverter) Convert(_ context.Context, in chat2html.Input) (*chat2html.ConvertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inputs = append(m.inputs, in)
	if err, ok := m.errFor[in.Title]; ok {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	res := &chat2html.ConvertResult{HTML: []byte("<html>" + in.Title + "</html>")}
	if in.PDF {
		res.PDF = m.pdf
	}
	return res, nil
}

func (m *mockConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.closeErr
}

func (m *mockConverter) recorded() []chat2html.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]chat2html.Input(nil), m.inputs...)
}

// testEnv returns an Environment writing to buffers. A nil conv uses the
// real library converter.
func testEnv(conv Converter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:          fixedNow(10 * time.Millisecond),
		Stdout:       stdout,
		Stderr:       stderr,
		Config:       config.DefaultConfig(),
		NewConverter: newLibraryConverter,
	}
	if conv != nil {
		env.NewConverter = func(...chat2html.Option) (Converter, error) { return conv, nil }
	}
	return env, stdout, stderr
}

// testParams returns conversion params with a discarding logger.
func testParams(includeImage bool) *conversionParams {
	return &conversionParams{includeImage: includeImage, logger: zerolog.Nop()}
}
