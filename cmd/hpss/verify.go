package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/internal/verify"
)

var (
	verifyThreshold float64
	verifyInputPath string
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a previously generated batch against an overlap threshold",
		Long: `verify reads a JSON array of sets (the output of "hpss generate") and
confirms every pair of sets has Jaccard similarity at most --threshold,
exiting non-zero if any pair violates it. Batches of more than 200 sets are
checked against MinHash estimates rather than exact similarities.`,
		RunE: runVerify,
	}

	cmd.Flags().Float64Var(&verifyThreshold, "threshold", 0.4, "maximum pairwise Jaccard similarity to allow")
	cmd.Flags().StringVar(&verifyInputPath, "input", "", "path to a JSON file of sets; reads stdin if omitted")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if verifyInputPath == "" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(verifyInputPath)
	}
	if err != nil {
		return fmt.Errorf("verify: read input: %w", err)
	}

	var sets []hpss.OutputSet
	if err := json.Unmarshal(raw, &sets); err != nil {
		return fmt.Errorf("verify: decode sets: %w", err)
	}

	result, err := verify.Check(context.Background(), sets, verifyThreshold)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("verify: %d pair(s) exceed threshold %.4f", len(result.Violations), verifyThreshold)
	}
	return nil
}
