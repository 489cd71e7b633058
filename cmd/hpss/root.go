package main

import (
	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hpss",
		Short: "Hash-partitioned stratified sampling",
		Long: `hpss draws deterministic, pairwise-overlap-bounded subsets from a
large item universe, checks whether a given batch of sets is feasible before
spending time generating it, and verifies that an already-generated batch
meets its overlap guarantee.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults built in if omitted)")

	cmd.AddCommand(newFeasibilityCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVerifyCmd())

	return cmd
}
