// Package runner orchestrates the config -> collect -> parse -> lint ->
// report pipeline.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/ktstyle/internal/config"
	"github.com/donaldgifford/ktstyle/internal/lint"
	"github.com/donaldgifford/ktstyle/internal/parser"
	"github.com/donaldgifford/ktstyle/internal/report"
	"github.com/donaldgifford/ktstyle/internal/rules"
)

// Exit codes.
const (
	ExitOK            = 0
	ExitFindings      = 1
	ExitError         = 2
	ExitInvalidConfig = 3
)

// Options configures the runner behavior.
type Options struct {
	// Paths are files or directories to analyze. Defaults to ".".
	Paths []string
	// ConfigPaths are merged in order. When empty the config file is
	// discovered in Dir.
	ConfigPaths      []string
	Dir              string
	BuildUponDefault bool
	// Excludes are doublestar globs for files to skip.
	Excludes []string
	// MaxIssues is the number of findings tolerated before the run fails.
	// Negative disables the check.
	MaxIssues   int
	Parallelism int
	MetricsFile string
	Color       bool
	// Debounce is how long Watch waits for more changes before re-running.
	Debounce time.Duration
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Parallelism <= 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
	if len(o.Paths) == 0 {
		o.Paths = []string{"."}
	}
	if o.Debounce <= 0 {
		o.Debounce = 300 * time.Millisecond
	}
}

// FileResult holds the findings for one analyzed file.
type FileResult struct {
	Path         string
	Findings     []report.Notification
	SyntaxErrors bool
}

// Result is the outcome of one analysis run.
type Result struct {
	Files      []FileResult
	Validation []report.Notification
	Duration   time.Duration
}

// Findings returns every finding in file order.
func (r *Result) Findings() []report.Notification {
	var out []report.Notification
	for _, f := range r.Files {
		out = append(out, f.Findings...)
	}
	return out
}

// Issues counts findings at warning level or above.
func (r *Result) Issues() int {
	n := 0
	for _, f := range r.Files {
		for _, finding := range f.Findings {
			if finding.Level >= report.LevelWarning {
				n++
			}
		}
	}
	return n
}

// Run executes the analysis pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	opts.defaults()
	logger := opts.Logger
	w := report.NewWriter(opts.Stdout, opts.Color)

	resolved, err := LoadConfig(opts)
	if err != nil {
		writeErr(opts.Stderr, "ktstyle: %v\n", err)
		return ExitError
	}

	var validation []report.Notification
	if resolved.Validation() {
		validation, err = ValidateConfig(resolved)
		if err != nil {
			writeErr(opts.Stderr, "ktstyle: %v\n", err)
			return ExitError
		}
		if err := w.Write(validation); err != nil {
			writeErr(opts.Stderr, "ktstyle: %v\n", err)
			return ExitError
		}
		if len(validation) > 0 && resolved.WarningsAsErrors() {
			writeErr(opts.Stderr, "ktstyle: configuration is invalid (%d problems)\n", len(validation))
			return ExitInvalidConfig
		}
	} else {
		logger.Debug("Config validation disabled")
	}

	files, err := CollectFiles(opts.Paths, opts.Excludes, logger)
	if err != nil {
		writeErr(opts.Stderr, "ktstyle: %v\n", err)
		return ExitError
	}

	start := time.Now()
	engine := lint.New(resolved.Effective, rules.Definitions(), logger)
	results, err := Analyze(ctx, engine, files, opts.Parallelism, logger)
	if err != nil {
		writeErr(opts.Stderr, "ktstyle: %v\n", err)
		return ExitError
	}
	res := &Result{Files: results, Validation: validation, Duration: time.Since(start)}

	if err := w.Write(res.Findings()); err != nil {
		writeErr(opts.Stderr, "ktstyle: %v\n", err)
		return ExitError
	}
	if err := w.Summary(len(res.Files), len(res.Findings())); err != nil {
		writeErr(opts.Stderr, "ktstyle: writing summary: %v\n", err)
		return ExitError
	}

	if opts.MetricsFile != "" {
		m := NewMetrics()
		m.Observe(res)
		if err := m.WriteFile(opts.MetricsFile); err != nil {
			writeErr(opts.Stderr, "ktstyle: %v\n", err)
			return ExitError
		}
	}

	logger.Info("Analysis complete",
		slog.Int("files", len(res.Files)),
		slog.Int("findings", len(res.Findings())),
		slog.Duration("duration", res.Duration))

	if opts.MaxIssues >= 0 && res.Issues() > opts.MaxIssues {
		return ExitFindings
	}
	return ExitOK
}

// LoadConfig resolves the configuration files named by opts.
func LoadConfig(opts *Options) (*config.Resolved, error) {
	return config.NewLoader(opts.Logger).Load(config.LoadOptions{
		Paths:            opts.ConfigPaths,
		Dir:              opts.Dir,
		BuildUponDefault: opts.BuildUponDefault,
	})
}

// ValidateConfig checks the user configuration against the default one.
// The built-in excludes are always applied; config.excludes adds more.
func ValidateConfig(resolved *config.Resolved) ([]report.Notification, error) {
	extra, err := config.CompileExcludes(resolved.Excludes())
	if err != nil {
		return nil, fmt.Errorf("config.excludes: %w", err)
	}
	excludes := append(config.DefaultExcludes(), extra...)
	return resolved.User.Validate(config.Default(), excludes), nil
}

// Analyze parses and lints files concurrently, at most parallelism at a
// time. Results keep the order of files. The first read or parse error
// cancels the remaining work.
func Analyze(ctx context.Context, engine *lint.Engine, files []string, parallelism int, logger *slog.Logger) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallelism, 1))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p := parser.New()
			defer p.Close()

			file, err := p.ParseFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if file.HasErrors {
				logger.Warn("Syntax errors, findings may be incomplete", slog.String("path", path))
			}
			results[i] = FileResult{
				Path:         path,
				Findings:     engine.Run(file),
				SyntaxErrors: file.HasErrors,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
