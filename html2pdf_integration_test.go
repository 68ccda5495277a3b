//go:build integration

package chat2html

// Notes:
// - Requires Chrome; rod downloads Chromium on first run if not found.
// - Run with: go test -tags integration ./...

import (
	"bytes"
	"context"
	"testing"
	"time"
)

const testTimeout = 60 * time.Second

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

func TestConvert_PDF_Integration(t *testing.T) {
	conv, err := NewConverter(WithTimeout(testTimeout))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer func() {
		if err := conv.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	for i := 0; i < 2; i++ {
		result, err := conv.Convert(ctx, Input{
			Log:          []byte(sampleLog),
			IncludeImage: true,
			PDF:          true,
		})
		if err != nil {
			t.Fatalf("Convert() #%d error = %v", i+1, err)
		}
		assertValidPDF(t, result.PDF)
	}
}
