package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	chat2html "github.com/alnah/go-chat2html"
	"github.com/alnah/go-chat2html/internal/config"
	"github.com/alnah/go-chat2html/internal/hints"
	"github.com/alnah/go-chat2html/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrConversionFailed = errors.New("conversion failed")
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input chat2html.Input) (*chat2html.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*chat2html.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	includeImage bool
	image        []byte // Explicit image, loaded once; nil = discover per file
	pdf          bool
	logger       zerolog.Logger
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	// Load configuration
	cfg, err := loadConfig(flags.common.config, envCfg, env.Config)
	if err != nil {
		return err
	}

	// Environment fills gaps in the file, CLI flags win over both
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg.PDF.Timeout)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Output: env.Stderr})

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files to convert
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 && !flags.outputMode.watch {
		return fmt.Errorf("%w in %s", ErrNoInputFiles, inputPath)
	}

	params := &conversionParams{
		includeImage: !cfg.Image.Disable,
		pdf:          cfg.PDF.Enabled,
		logger:       logger,
	}
	if params.includeImage && cfg.Image.Path != "" {
		params.image, err = chat2html.LoadImage(cfg.Image.Path)
		if err != nil {
			return err
		}
	}

	conv, err := env.NewConverter(converterOptions(cfg, timeout, logger)...)
	if err != nil {
		return fmt.Errorf("initializing converter: %w", err)
	}
	defer func() {
		if closeErr := conv.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("closing converter")
		}
	}()

	logger.Debug().
		Str("input", inputPath).
		Int("files", len(files)).
		Bool("pdf", params.pdf).
		Msg("starting conversion")

	results := convertBatch(ctx, conv, files, params, env)
	failErr := failedError(results)
	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	if flags.outputMode.watch {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Watching %s (Ctrl-C to stop)\n", inputPath)
		}
		return watchAndConvert(ctx, inputPath, outputDir, logger, func(batch []FileToConvert) {
			printResultsWithWriter(convertBatch(ctx, conv, batch, params, env), flags.common.quiet, flags.common.verbose, env)
		})
	}

	return failErr
}

// loadConfig returns the config named by the flag, then by
// CHAT2HTML_CONFIG, falling back to a copy of base.
func loadConfig(flagName string, envCfg *envConfig, base *config.Config) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envCfg.ConfigPath
	}

	if name == "" {
		if base == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *base
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Image flags
	if flags.image.path != "" {
		cfg.Image.Path = flags.image.path
	}
	if flags.image.disabled {
		cfg.Image.Disable = true
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Renderer flags
	if flags.renderer.name != "" {
		cfg.Renderer.Name = flags.renderer.name
	}
	if flags.renderer.highlightStyle != "" {
		cfg.Renderer.HighlightStyle = flags.renderer.highlightStyle
	}

	// Output mode flags
	if flags.outputMode.pdf {
		cfg.PDF.Enabled = true
	}

	// Verbosity maps onto the log level; quiet wins
	if flags.common.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.common.quiet {
		cfg.Log.Level = "error"
	}
}

// converterOptions translates the merged config into library options.
func converterOptions(cfg *config.Config, timeout time.Duration, logger zerolog.Logger) []chat2html.Option {
	opts := []chat2html.Option{
		chat2html.WithStyle(cfg.Style.Name),
		chat2html.WithRenderer(cfg.Renderer.Name),
		chat2html.WithHighlightStyle(cfg.Renderer.HighlightStyle),
		chat2html.WithLogger(logger),
	}
	if timeout > 0 {
		opts = append(opts, chat2html.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, chat2html.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveTimeoutWithEnv picks the PDF timeout with priority
// flag > env > config. Returns 0 when none is set (converter default).
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		return parseTimeout(flagValue)
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		return parseTimeout(configValue)
	}
	return 0, nil
}

// parseTimeout parses a positive Go duration.
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, s)
	}
	return d, nil
}

// batchError reports failed conversions. Unwrap exposes each cause so
// exitCodeFor can classify the batch.
type batchError struct {
	failed int
	causes []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() []error {
	return e.causes
}

// failedError returns a *batchError when any result failed, nil otherwise.
func failedError(results []ConversionResult) error {
	var causes []error
	for _, r := range results {
		if r.Err != nil {
			causes = append(causes, r.Err)
		}
	}
	if len(causes) == 0 {
		return nil
	}
	return &batchError{failed: len(causes), causes: append([]error{ErrConversionFailed}, causes...)}
}

// hintFor returns an actionable hint for common failures, or "".
func hintFor(err error) string {
	var be *batchError
	if errors.As(err, &be) {
		// Per-file hints were printed next to each FAILED line
		return ""
	}

	switch {
	case errors.Is(err, chat2html.ErrParseLog), errors.Is(err, chat2html.ErrEmptyInput):
		return hints.ForParseLog()
	case errors.Is(err, chat2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, chat2html.ErrInvalidImage):
		return hints.ForImage()
	case errors.Is(err, chat2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(chat2html.StyleNames())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, ErrNoInputFiles), errors.Is(err, ErrInvalidExtension):
		return hints.ForNoInputFiles()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the search list from a config-not-found message.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
