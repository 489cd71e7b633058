package hpss

import (
	"context"
	"sort"
)

// The following three constants are part of the algorithm's public identity
// (§6, "Constants frozen by the spec"). Changing any of them changes the output
// of every call ever made against a persisted universe.
const (
	// strataSeedPrime decorrelates (set index, stratum slot) pairs when
	// selecting which strata a set draws from.
	strataSeedPrime = 999983

	// rankMultiplier and rankModulus derive a set-specific ranking key for
	// each candidate item; rankModulus is deliberately the same constant as
	// strataSeedPrime (see design notes in spec.md §6).
	rankMultiplier = 31
	rankModulus    = 999983
)

// candidate is one item pulled from a selected stratum while assembling a
// single set's pool, together with the data needed to rank and
// tie-break it deterministically.
type candidate struct {
	item    int64
	stratum int
	rank    uint64
}

// Generate implements the sampling engine (§4.C) end to end: it runs the
// feasibility oracle first (against universe's Size) and, on an infeasible
// verdict, returns an [InfeasibleError] without enumerating any stratum of
// universe. On a feasible
// verdict it draws numSets sets deterministically and returns them ordered
// ascending by set index, each with items ordered ascending by identifier.
//
// ctx is checked for cancellation between set indices and, for
// stratification depths above 5, before each stratum after the fifth within
// a set; a cancelled
// context yields [ErrCancelled] and discards any partial output.
func Generate(ctx context.Context, numSets, itemsPerSet int, threshold float64, universe Universe) ([]OutputSet, error) {
	plan, err := Plan(numSets, itemsPerSet, threshold)
	if err != nil {
		return nil, err
	}

	total, err := universe.Size(ctx)
	if err != nil {
		return nil, &UniverseError{Op: "size", Err: err}
	}

	verdict := verdictFor(plan, total)
	if !verdict.Feasible {
		return nil, &InfeasibleError{Verdict: verdict}
	}

	sets := make([]OutputSet, numSets)
	for s := 0; s < numSets; s++ {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}

		set, err := sampleOne(ctx, s, plan, universe)
		if err != nil {
			return nil, err
		}
		sets[s] = set
	}

	return sets, nil
}

// sampleOne implements steps 1-5 of §4.C for a single set index.
func sampleOne(ctx context.Context, s int, plan GenerationPlan, universe Universe) (OutputSet, error) {
	pool := make([]candidate, 0, 2*plan.ItemsPerSet)

	for l := 0; l < plan.Depth; l++ {
		if l > 4 {
			if err := ctx.Err(); err != nil {
				return OutputSet{}, ErrCancelled
			}
		}

		p := hashMod64(Hash(int64(s)*strataSeedPrime+int64(l)), K)

		items, err := drainStratum(ctx, universe, p)
		if err != nil {
			return OutputSet{}, err
		}

		for _, item := range items {
			pool = append(pool, candidate{
				item:    item,
				stratum: p,
				rank:    Hash(item*rankMultiplier+int64(s)) % rankModulus,
			})
		}
	}

	// Pre-truncation: keep the 2M candidates of lowest rank, ties broken by
	// ascending item id then ascending originating stratum.
	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.item != b.item {
			return a.item < b.item
		}
		return a.stratum < b.stratum
	})

	limit := 2 * plan.ItemsPerSet
	if limit > len(pool) {
		limit = len(pool)
	}
	pool = pool[:limit]

	// Finalisation: dedupe by identifier, sort ascending, take the first M.
	seen := make(map[int64]struct{}, len(pool))
	items := make([]int64, 0, len(pool))
	for _, c := range pool {
		if _, ok := seen[c.item]; ok {
			continue
		}
		seen[c.item] = struct{}{}
		items = append(items, c.item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	if len(items) < plan.ItemsPerSet {
		return OutputSet{}, &ShortfallError{SetIndex: s, Have: len(items), Need: plan.ItemsPerSet}
	}

	return OutputSet{Index: s, Items: items[:plan.ItemsPerSet]}, nil
}

// drainStratum enumerates every item in stratum p, closing the iterator on
// every exit path.
func drainStratum(ctx context.Context, universe Universe, p int) ([]int64, error) {
	it, err := universe.EnumerateStratum(ctx, p)
	if err != nil {
		return nil, &UniverseError{Op: "enumerate_stratum", Err: err}
	}
	defer it.Close()

	var items []int64
	for it.Next(ctx) {
		items = append(items, it.Item())
	}
	if err := it.Err(); err != nil {
		return nil, &UniverseError{Op: "enumerate_stratum", Err: err}
	}
	return items, nil
}
