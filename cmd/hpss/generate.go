package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/universe"
)

var (
	generateNumSets     int
	generateItemsPerSet int
	generateThreshold   float64
	generateTotalIcons  uint64
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of sets against an in-memory sequential universe",
		Long: `generate draws --num-sets sets of --items-per-set items each from a
universe of --total-icons sequentially numbered items (1..total-icons), with
pairwise Jaccard similarity bounded by --threshold, and prints the result as
JSON to stdout.

This is a convenience for exercising the sampling engine without standing up
a real universe backend; "hpss serve" is the entry point for a real
deployment backed by universe.SQL.`,
		RunE: runGenerate,
	}

	cmd.Flags().IntVar(&generateNumSets, "num-sets", 10, "number of sets to generate")
	cmd.Flags().IntVar(&generateItemsPerSet, "items-per-set", 20, "items per generated set")
	cmd.Flags().Float64Var(&generateThreshold, "threshold", 0.4, "maximum pairwise Jaccard similarity")
	cmd.Flags().Uint64Var(&generateTotalIcons, "total-icons", 10000, "size of the sequential universe to draw from")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	u := universe.NewMemorySequential(generateTotalIcons)

	sets, err := hpss.Generate(context.Background(), generateNumSets, generateItemsPerSet, generateThreshold, u)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(sets)
}
