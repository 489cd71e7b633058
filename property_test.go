package hpss

import (
	"context"
	"math/rand"
	"testing"
)

// TestPropertyRandomFeasibleRequests generates random (numSets, itemsPerSet,
// threshold) triples within a comfortably feasible envelope against a fixed
// 10^5 universe and asserts P1-P5 on every one of them.
func TestPropertyRandomFeasibleRequests(t *testing.T) {
	universe := sequentialUniverse(100_000)
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 25; trial++ {
		numSets := 1 + rng.Intn(60)
		itemsPerSet := 5 + rng.Intn(20)
		threshold := 0.05 + rng.Float64()*0.3

		verdict, err := Feasibility(numSets, itemsPerSet, threshold, 100_000)
		if err != nil {
			continue
		}
		if !verdict.Feasible {
			continue
		}

		sets, err := Generate(context.Background(), numSets, itemsPerSet, threshold, universe)
		if err != nil {
			t.Fatalf("trial %d: Generate(%d,%d,%.3f): %v", trial, numSets, itemsPerSet, threshold, err)
		}

		// P1, P2
		for i, set := range sets {
			assertSetInvariants(t, set, itemsPerSet)
			if set.Index != i {
				t.Fatalf("trial %d: P5 violated, set at position %d has Index %d", trial, i, set.Index)
			}
		}

		// P3: sample O(N) random pairs rather than the full N^2/2 scan.
		pairsToSample := len(sets)
		for i := 0; i < pairsToSample; i++ {
			a := rng.Intn(len(sets))
			b := rng.Intn(len(sets))
			if a == b {
				continue
			}
			if sim := jaccard(sets[a].Items, sets[b].Items); sim > threshold {
				t.Fatalf("trial %d: P3 violated: J(%d,%d)=%.4f > T=%.4f", trial, a, b, sim, threshold)
			}
		}

		// P4: re-run and compare byte-for-byte.
		again, err := Generate(context.Background(), numSets, itemsPerSet, threshold, universe)
		if err != nil {
			t.Fatalf("trial %d: second Generate call failed: %v", trial, err)
		}
		for i := range sets {
			if len(sets[i].Items) != len(again[i].Items) {
				t.Fatalf("trial %d: P4 violated at set %d: length mismatch", trial, i)
			}
			for k := range sets[i].Items {
				if sets[i].Items[k] != again[i].Items[k] {
					t.Fatalf("trial %d: P4 violated at set %d item %d", trial, i, k)
				}
			}
		}
	}
}

// TestPropertyZeroThresholdAlwaysDisjoint is a focused restatement of P7
// across several (N, M) combinations.
func TestPropertyZeroThresholdAlwaysDisjoint(t *testing.T) {
	universe := sequentialUniverse(100_000)
	for _, nm := range [][2]int{{5, 10}, {10, 8}, {3, 25}} {
		sets, err := Generate(context.Background(), nm[0], nm[1], 0, universe)
		if err != nil {
			t.Fatalf("Generate(%d,%d,0): %v", nm[0], nm[1], err)
		}
		for i := 0; i < len(sets); i++ {
			for j := i + 1; j < len(sets); j++ {
				if sim := jaccard(sets[i].Items, sets[j].Items); sim != 0 {
					t.Fatalf("N=%d M=%d: J(%d,%d)=%.4f, want 0", nm[0], nm[1], i, j, sim)
				}
			}
		}
	}
}
