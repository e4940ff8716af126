package runner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/donaldgifford/ktstyle/internal/config"
)

// Watch runs the analysis once, then again after every burst of changes to
// Kotlin files below opts.Paths or to the configuration, until ctx is done. Each run
// re-reads the configuration and re-walks every input.
func Watch(ctx context.Context, opts *Options) error {
	opts.defaults()
	logger := opts.Logger

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	for _, p := range opts.Paths {
		if err := addWatches(fsw, p, logger); err != nil {
			return err
		}
	}
	for _, dir := range configDirs(opts) {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("Failed to watch config directory", slog.String("path", dir), slog.Any("error", err))
		}
	}

	code := Run(ctx, opts)
	logger.Info("Watching for changes",
		slog.Any("paths", opts.Paths),
		slog.Duration("debounce", opts.Debounce),
		slog.Int("exit_code", code))

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatches(fsw, event.Name, logger); err != nil {
						logger.Warn("Failed to watch new directory", slog.String("path", event.Name), slog.Any("error", err))
					}
				}
			}
			if !IsKotlin(event.Name) && !config.IsConfigFile(event.Name) {
				continue
			}
			logger.Debug("Change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(opts.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", slog.Any("error", err))

		case <-timer.C:
			code := Run(ctx, opts)
			logger.Info("Re-run complete", slog.Int("exit_code", code))
		}
	}
}

// configDirs lists the directories holding the configuration: those of the
// explicit config paths, or the discovery directory when there are none.
func configDirs(opts *Options) []string {
	if len(opts.ConfigPaths) > 0 {
		dirs := make([]string, 0, len(opts.ConfigPaths))
		for _, p := range opts.ConfigPaths {
			dirs = append(dirs, filepath.Dir(p))
		}
		return dirs
	}
	if opts.Dir != "" {
		return []string{opts.Dir}
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return []string{wd}
}

// addWatches watches root and every directory below it that CollectFiles
// would descend into. A file root watches its directory.
func addWatches(fsw *fsnotify.Watcher, root string, logger *slog.Logger) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fsw.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || skippedDirs[d.Name()]) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Warn("Failed to watch directory", slog.String("path", path), slog.Any("error", err))
		} else {
			logger.Debug("Watching directory", slog.String("path", path))
		}
		return nil
	})
}
