package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// imageFlags holds character image flags.
type imageFlags struct {
	path     string
	disabled bool
}

// assetFlags holds asset-related flags (CSS, custom asset path).
type assetFlags struct {
	style     string // Name, path, or raw CSS
	assetPath string // Override asset directory
}

// rendererFlags holds turn text rendering flags.
type rendererFlags struct {
	name           string
	highlightStyle string
}

// outputFlags holds output mode flags.
type outputFlags struct {
	pdf   bool // Also write <base>.pdf beside the HTML
	watch bool // Re-convert on change until interrupted
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	timeout    string
	image      imageFlags
	assets     assetFlags
	renderer   rendererFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addImageFlags adds character image flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVar(&f.path, "image", "", "character image PNG (default: first *.png beside input, then in cwd)")
	fs.BoolVar(&f.disabled, "no-image", false, "do not embed a character image")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addRendererFlags adds renderer flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.name, "renderer", "", "turn text renderer: inline, markdown")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlight style for the markdown renderer")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF beside each HTML file")
	fs.BoolVar(&f.watch, "watch", false, "re-convert when input files change")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors and usage are written to w.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory, or .html file for a single input")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addImageFlags(fs, &f.image)
	addAssetFlags(fs, &f.assets)
	addRendererFlags(fs, &f.renderer)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
