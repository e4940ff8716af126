// Package main is the entry point for ktstyle.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	_ "github.com/donaldgifford/ktstyle/internal/rules" // Register rules via init().
	"github.com/donaldgifford/ktstyle/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPaths      []string
	buildUponDefault bool
	noColor          bool
	logLevel         string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line and maps the outcome to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return runner.ExitOK
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(stderr, "ktstyle: %v\n", err)
	return runner.ExitError
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	var (
		excludes    []string
		maxIssues   int
		parallelism int
		metricsFile string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "ktstyle [paths...]",
		Short: "Static analysis for Kotlin sources",
		Long: `ktstyle checks Kotlin sources against configurable rules.

With no paths, the current directory is analyzed. Configuration is read from
the files given with --config, or discovered as ktstyle.yml in the current
directory.

Exit codes: 0 clean, 1 too many findings, 2 error, 3 invalid configuration.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			opts.Paths = args
			opts.Excludes = excludes
			opts.MaxIssues = maxIssues
			opts.Parallelism = parallelism
			opts.MetricsFile = metricsFile

			if watch {
				return runner.Watch(cmd.Context(), opts)
			}
			if code := runner.Run(cmd.Context(), opts); code != runner.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringArrayVarP(&g.configPaths, "config", "c", nil, "config file (repeatable, later files win)")
	pf.BoolVar(&g.buildUponDefault, "build-upon-default-config", false, "overlay the config on the default config")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	f := cmd.Flags()
	f.StringArrayVar(&excludes, "exclude", nil, "glob of files to skip (repeatable)")
	f.IntVar(&maxIssues, "max-issues", 0, "findings tolerated before failing; negative disables")
	f.IntVar(&parallelism, "parallelism", 0, "files analyzed concurrently (default GOMAXPROCS)")
	f.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	f.BoolVar(&watch, "watch", false, "re-run when sources or config change")

	cmd.AddCommand(generateConfigCmd(), configCmd(g), versionCmd())
	return cmd
}

// options builds runner options from the shared flags.
func (g *globalFlags) options(cmd *cobra.Command) (*runner.Options, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), g.logLevel)
	if err != nil {
		return nil, err
	}
	return &runner.Options{
		ConfigPaths:      g.configPaths,
		BuildUponDefault: g.buildUponDefault,
		Color:            !g.noColor && !color.NoColor,
		Stdout:           cmd.OutOrStdout(),
		Stderr:           cmd.ErrOrStderr(),
		Logger:           logger,
	}, nil
}

// newLogger returns a text logger on w tagged with a fresh run id.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
	return logger.With(slog.String("run_id", uuid.New().String())), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ktstyle %s (%s) %s\n", version, commit, date)
		},
	}
}
