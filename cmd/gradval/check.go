package main

import (
	"errors"
	"fmt"

	"github.com/born-ml/gradval/internal/gradcheck"
	"github.com/spf13/cobra"
)

var errChecksFailed = errors.New("gradient check failed")

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		configPath string
		ops        []string
		samples    int
		workers    int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare analytic gradients with finite differences",
		Long: `Runs every operator (and the square/logexp composites) on a grid of
sample points and compares the backward-pass gradient of each input with a
centered finite difference. Exits non-zero if any sample disagrees.

Settings come from defaults, then --config, then GRADVAL_* environment
variables, then flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := gradcheck.LoadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("ops") {
				cfg.Ops = ops
			}
			if flags.Changed("samples") {
				cfg.Samples = samples
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}

			report, err := gradcheck.Run(cmd.Context(), cfg, root.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range report.Results {
				if verbose || !r.Pass {
					fmt.Fprintln(out, r)
				}
			}
			fmt.Fprintf(out, "%d checks, %d failed\n", len(report.Results), report.Failed)

			if !report.Passed() {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML or JSON config file")
	cmd.Flags().StringSliceVar(&ops, "ops", nil, "cases to check (default all)")
	cmd.Flags().IntVar(&samples, "samples", 0, "sample points per case")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent workers (0 = one per CPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print passing checks too")
	return cmd
}
