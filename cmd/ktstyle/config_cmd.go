package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ktstyle/internal/config"
	"github.com/donaldgifford/ktstyle/internal/report"
	"github.com/donaldgifford/ktstyle/internal/runner"
	"github.com/donaldgifford/ktstyle/pkg/diff"
)

func generateConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "generate-config [path]",
		Short: "Write the default configuration to a file",
		Long:  "Write the default configuration, listing every rule and property, to path (default ktstyle.yml).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ktstyle.yml"
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("checking %s: %w", path, err)
				}
			}
			if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func configCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(configValidateCmd(g), configDiffCmd(g))
	return cmd
}

func configValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report unknown properties in the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			resolved, err := runner.LoadConfig(opts)
			if err != nil {
				return err
			}
			notes, err := runner.ValidateConfig(resolved)
			if err != nil {
				return err
			}

			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
				return nil
			}
			if err := report.NewWriter(cmd.OutOrStdout(), opts.Color).Write(notes); err != nil {
				return err
			}
			return &exitError{code: runner.ExitInvalidConfig}
		},
	}
}

func configDiffCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show how the effective configuration differs from the default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			resolved, err := runner.LoadConfig(opts)
			if err != nil {
				return err
			}

			base, err := config.Marshal(config.Default())
			if err != nil {
				return err
			}
			effective, err := config.Marshal(resolved.Effective)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), diff.Labeled("default", "effective", string(base), string(effective)))
			return nil
		},
	}
}
