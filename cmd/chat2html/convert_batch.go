package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	chat2html "github.com/alnah/go-chat2html"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadInput   = errors.New("failed to read conversation log")
	ErrWriteOutput = errors.New("failed to write output file")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string // Empty unless a PDF was written
	Err        error
	Duration   time.Duration
}

// convertBatch processes files one at a time, in order.
// Remaining files are marked with the context error once ctx is done.
func convertBatch(ctx context.Context, conv Converter, files []FileToConvert, params *conversionParams, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	for i, f := range files {
		if ctx.Err() != nil {
			results[i] = ConversionResult{
				InputPath: f.InputPath,
				Err:       ctx.Err(),
			}
			continue
		}
		results[i] = convertFile(ctx, conv, f, params, env)
	}
	return results
}

// convertFile processes a single file and returns the result.
// Nothing is written unless conversion succeeds.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	convResult, err := conv.Convert(ctx, chat2html.Input{
		Log:          content,
		Title:        documentTitle(f.InputPath),
		IncludeImage: params.includeImage,
		Image:        resolveImage(f.InputPath, params),
		PDF:          params.pdf,
		BaseDir:      filepath.Dir(f.InputPath),
	})
	if err != nil {
		return finish(err)
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, convResult.HTML, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if convResult.PDF != nil {
		pdfPath := pdfOutputPath(f.OutputPath)
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(pdfPath, convResult.PDF, filePermissions); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.PDFPath = pdfPath
	}

	return finish(nil)
}

// resolveImage returns the PNG bytes to embed for one input. A missing or
// unreadable companion image falls back to the placeholder (nil).
func resolveImage(inputPath string, params *conversionParams) []byte {
	if !params.includeImage {
		return nil
	}
	if params.image != nil {
		return params.image
	}

	path := chat2html.FindCompanionImage(inputPath)
	if path == "" {
		params.logger.Debug().Str("input", inputPath).Msg("no companion image found")
		return nil
	}

	data, err := chat2html.LoadImage(path)
	if err != nil {
		params.logger.Warn().Err(err).Str("image", path).Msg("ignoring companion image")
		return nil
	}
	params.logger.Debug().Str("image", path).Msg("using companion image")
	return data
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
