package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDebounce coalesces the bursts of events editors emit for one save.
const watchDebounce = 200 * time.Millisecond

// watchAndConvert re-converts conversation logs under inputPath whenever
// they are written, until ctx is canceled. convert receives each debounced
// batch in lexical order and runs on the calling goroutine.
func watchAndConvert(ctx context.Context, inputPath, outputDir string, logger zerolog.Logger, convert func([]FileToConvert)) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("watching %s: %w", inputPath, err)
	}
	isDir := info.IsDir()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if isDir {
		addWatchDirs(watcher, inputPath, logger)
	} else if err := watcher.Add(filepath.Dir(inputPath)); err != nil {
		// Watch the parent: editors often replace the file on save
		return fmt.Errorf("watching %s: %w", inputPath, err)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if isDir && event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					addWatchDirs(watcher, event.Name, logger)
					continue
				}
			}
			if !isWatchTarget(inputPath, isDir, event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			batch := pendingFiles(pending, inputPath, outputDir, isDir)
			clear(pending)
			logger.Debug().Int("files", len(batch)).Msg("change detected")
			convert(batch)
		}
	}
}

// addWatchDirs watches root and every directory below it, skipping export trees.
// Unwatchable directories are logged and skipped.
func addWatchDirs(watcher *fsnotify.Watcher, root string, logger zerolog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasSuffix(d.Name(), exportSuffix) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Warn().Err(err).Str("dir", path).Msg("cannot watch directory")
		}
		return nil
	})
}

// isWatchTarget reports whether a changed path should trigger conversion:
// the input file itself, or any .json file under a directory input.
func isWatchTarget(inputPath string, isDir bool, changed string) bool {
	if !isDir {
		return filepath.Clean(changed) == filepath.Clean(inputPath)
	}
	if !hasLogExtension(changed) {
		return false
	}
	rel, err := filepath.Rel(inputPath, changed)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	for _, part := range strings.Split(filepath.Dir(rel), string(filepath.Separator)) {
		if strings.HasSuffix(part, exportSuffix) {
			return false
		}
	}
	return true
}

// pendingFiles maps changed paths to conversions, sorted by input path.
func pendingFiles(pending map[string]struct{}, inputPath, outputDir string, isDir bool) []FileToConvert {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	base := ""
	if isDir {
		base = inputPath
	}

	files := make([]FileToConvert, 0, len(paths))
	for _, p := range paths {
		files = append(files, FileToConvert{
			InputPath:  p,
			OutputPath: resolveOutputPath(p, outputDir, base),
		})
	}
	return files
}
