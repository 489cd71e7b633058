// Package hpss implements Hash-Partitioned Stratified Sampling: generating a
// batch of N subsets of size M from a large universe of 64-bit item
// identifiers such that every pairwise Jaccard similarity stays at or below
// a caller-supplied threshold.
//
// # Architecture
//
// The package is four cooperating pure functions plus one caller-supplied
// capability:
//
// The [Stratum] function (the "partition oracle") maps an item identifier to
// one of [K] fixed buckets via a stable 64-bit hash. It never allocates and
// never fails.
//
// [Plan] (the "parameter planner") turns (numSets, itemsPerSet, threshold)
// into a [GenerationPlan]: the maximum tolerable pairwise intersection, the
// stratification depth, the required pool size, and the number of distinct
// stratum combinations available at that depth.
//
// [Feasibility] (the "feasibility oracle") wraps [Plan] with a verdict
// suitable for surfacing to a caller before any sampling runs: whether the
// request is satisfiable given the universe's declared size, and a
// human-readable recommendation.
//
// [Generate] (the "sampling engine") is the only entry point that touches
// the universe. It asks the universe for its Size and applies the same
// verdict as [Feasibility]; on an infeasible verdict it returns
// [ErrInfeasible] without enumerating any stratum. On a
// feasible verdict it draws N sets deterministically, each ranked by a
// set-specific hash over its candidate pool, and returns them in ascending
// order by set index with ascending item identifiers within each set.
//
// # Determinism
//
// Every hash used by this package is [Hash], documented in hash.go. Given
// identical parameters and an identical universe, [Generate] returns
// byte-identical output on every call, on every machine, forever — this is
// the central correctness property the package is built around. Changing
// [Hash], [K], or any of the three frozen constants in sample.go changes
// the output of every call that has ever been made against a persisted
// universe. Do not change them without a new major version.
//
// # Concurrency
//
// A single [Generate] call is internally sequential and holds no package
// state; concurrent calls do not interfere with each other and may run on
// separate goroutines against the same or different [Universe] values. The
// natural axis of parallelism is across calls, not within one — see the
// worked example in doc_test.go.
package hpss
