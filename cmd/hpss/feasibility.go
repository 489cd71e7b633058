package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcalabro/hpss"
)

var (
	feasibilityNumSets     int
	feasibilityItemsPerSet int
	feasibilityThreshold   float64
	feasibilityTotalIcons  uint64
)

func newFeasibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feasibility",
		Short: "Check whether a batch of the given shape is feasible before generating it",
		RunE:  runFeasibility,
	}

	cmd.Flags().IntVar(&feasibilityNumSets, "num-sets", 10, "number of sets the batch would contain")
	cmd.Flags().IntVar(&feasibilityItemsPerSet, "items-per-set", 20, "items per set")
	cmd.Flags().Float64Var(&feasibilityThreshold, "threshold", 0.4, "maximum pairwise Jaccard similarity")
	cmd.Flags().Uint64Var(&feasibilityTotalIcons, "total-icons", 10000, "size of the universe the batch would draw from")

	return cmd
}

func runFeasibility(cmd *cobra.Command, args []string) error {
	verdict, err := hpss.Feasibility(feasibilityNumSets, feasibilityItemsPerSet, feasibilityThreshold, feasibilityTotalIcons)
	if err != nil {
		return fmt.Errorf("feasibility: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(verdict)
}
