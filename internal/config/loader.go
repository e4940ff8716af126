package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// configFileNames is the ordered list of config file names to search for.
var configFileNames = []string{
	"ktstyle.yml",
	"ktstyle.yaml",
	".ktstyle.yml",
	".ktstyle.yaml",
	"ktstyle.toml",
}

// Discover returns the path of the first config file found in dir,
// following the standard search order. It returns an empty string if
// no config file is found.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// IsConfigFile reports whether path has one of the discoverable config file
// names.
func IsConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range configFileNames {
		if base == name {
			return true
		}
	}
	return false
}

// LoadOptions selects the configuration for a run.
type LoadOptions struct {
	// Paths are loaded in order and merged; later files win. When empty,
	// Dir is searched with Discover.
	Paths []string
	// Dir is the directory searched when Paths is empty. Defaults to the
	// working directory.
	Dir string
	// BuildUponDefault overlays the user configuration on Default().
	BuildUponDefault bool
}

// Resolved is the outcome of loading configuration for a run.
type Resolved struct {
	// User is exactly what the user's files contain, merged. Validation
	// runs against it.
	User *Store
	// Effective is what rules read.
	Effective *Store
	// Sources lists the files that contributed, in merge order.
	Sources []string
}

// Validation reports whether config.validation is enabled.
func (r *Resolved) Validation() bool {
	return ValueOrDefault(r.Effective.SubConfig("config"), "validation", true)
}

// WarningsAsErrors reports whether config.warningsAsErrors is enabled.
func (r *Resolved) WarningsAsErrors() bool {
	return ValueOrDefault(r.Effective.SubConfig("config"), "warningsAsErrors", false)
}

// Excludes returns the extra validation exclude patterns from config.excludes.
func (r *Resolved) Excludes() []string {
	return ValueOrDefault[[]string](r.Effective.SubConfig("config"), "excludes", nil)
}

// Loader resolves configuration files with layered precedence:
// 1. Default config (only with BuildUponDefault)
// 2. Each explicit or discovered config file, in order
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load resolves the configuration described by opts. Any unreadable or
// malformed file fails the whole load; no partial result is returned.
func (l *Loader) Load(opts LoadOptions) (*Resolved, error) {
	paths := opts.Paths
	if len(paths) == 0 {
		dir := opts.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("getting working directory: %w", err)
			}
			dir = wd
		}
		if found := Discover(dir); found != "" {
			paths = []string{found}
		} else {
			l.logger.Debug("No config file found", slog.String("dir", dir))
		}
	}

	user := Empty
	for _, path := range paths {
		s, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", path), slog.Int("keys", len(s.values)))
		user = Merge(user, s)
	}

	effective := user
	if opts.BuildUponDefault {
		effective = Merge(Default(), user)
		l.logger.Debug("Building upon default config")
	}

	return &Resolved{
		User:      user,
		Effective: effective,
		Sources:   paths,
	}, nil
}
