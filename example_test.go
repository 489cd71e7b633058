package hpss_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/universe"
)

// This example demonstrates the two-step flow every caller should follow:
// check feasibility, then generate.
func Example() {
	u := universe.NewMemorySequential(100_000)

	size, err := u.Size(context.Background())
	if err != nil {
		fmt.Println("size error:", err)
		return
	}

	verdict, err := hpss.Feasibility(5, 10, 0.10, size)
	if err != nil {
		fmt.Println("feasibility error:", err)
		return
	}
	if !verdict.Feasible {
		fmt.Println("not feasible:", verdict.Recommendation)
		return
	}

	sets, err := hpss.Generate(context.Background(), 5, 10, 0.10, u)
	if err != nil {
		fmt.Println("generate error:", err)
		return
	}

	fmt.Println("sets:", len(sets))
	fmt.Println("first set size:", len(sets[0].Items))
	// Output:
	// sets: 5
	// first set size: 10
}

// This example shows Generate refusing to sample when the plan is
// infeasible, returning the full verdict instead of a partial result.
func Example_infeasible() {
	u := universe.NewMemorySequential(100_000)

	_, err := hpss.Generate(context.Background(), 1000, 100, 0.01, u)

	var infeasible *hpss.InfeasibleError
	switch {
	case err == nil:
		fmt.Println("unexpectedly succeeded")
	case errors.As(err, &infeasible):
		fmt.Println("infeasible:", infeasible.Verdict.Recommendation)
	default:
		fmt.Println("unexpected error:", err)
	}
	// Output:
	// infeasible: INFEASIBLE_INSUFFICIENT_ICONS
}
