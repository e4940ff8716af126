package runner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// kotlinGlob selects Kotlin sources and scripts below a directory.
const kotlinGlob = "**/*.{kt,kts}"

// skippedDirs are never descended into when walking a directory.
var skippedDirs = map[string]bool{
	"build":        true,
	"out":          true,
	"node_modules": true,
}

// IsKotlin reports whether path names a Kotlin source or script.
func IsKotlin(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".kt" || ext == ".kts"
}

// CollectFiles expands paths into the Kotlin files to analyze. Files are
// taken as given; directories are walked, skipping hidden and build output
// directories. Paths matching any exclude glob are dropped. Each file
// appears once, in the order first found.
func CollectFiles(paths, excludes []string, logger *slog.Logger) ([]string, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || excluded(path, excludes) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("input path: %w", err)
		}

		if !info.IsDir() {
			if !IsKotlin(root) {
				logger.Debug("Skipping non-Kotlin file", slog.String("path", root))
				continue
			}
			add(root)
			continue
		}

		err = doublestar.GlobWalk(os.DirFS(root), kotlinGlob, func(rel string, d fs.DirEntry) error {
			if d.IsDir() || inSkippedDir(rel) {
				return nil
			}
			add(filepath.Join(root, filepath.FromSlash(rel)))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return files, nil
}

// inSkippedDir reports whether any directory of the slash-separated
// relative path is hidden or a build output directory.
func inSkippedDir(rel string) bool {
	dirs := strings.Split(rel, "/")
	for _, dir := range dirs[:len(dirs)-1] {
		if strings.HasPrefix(dir, ".") || skippedDirs[dir] {
			return true
		}
	}
	return false
}

func excluded(path string, excludes []string) bool {
	p := strings.TrimPrefix(filepath.ToSlash(path), "/")
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}
