package hpss

import "context"

// Universe is the read-only capability [Generate] consumes; [Feasibility]
// takes only a universe size, typically obtained from Size.
// Implementations decide whether items live in memory, in a partitioned SQL
// table, or somewhere else entirely — see universe/memory.go and
// universe/sql.go for two concrete implementations. A Universe must be
// stable for the duration of one [Generate] call: mutating it concurrently
// with a call breaks the determinism invariant.
type Universe interface {
	// Size returns the total number of items in the universe.
	Size(ctx context.Context) (uint64, error)

	// EnumerateStratum returns every item identifier belonging to stratum p
	// (p in [0, K)), i.e. every id for which [Stratum](id) == p. An
	// implementation backed by a physically partitioned store MUST use the
	// same [Hash] to route rows to partitions, or this contract is
	// violated silently. The returned [StratumIterator] is consumed at
	// most once per call and is always closed by the caller.
	EnumerateStratum(ctx context.Context, p int) (StratumIterator, error)
}

// StratumIterator enumerates the items of a single stratum. Order is
// unspecified — the sampling engine's ranking step does not depend on
// enumeration order — but the sequence must be finite and Close must
// release any underlying resource (a DB cursor, an open file) on every exit
// path, including early termination.
type StratumIterator interface {
	// Next advances the iterator and reports whether a value is available.
	Next(ctx context.Context) bool
	// Item returns the current item identifier. Valid only after a Next
	// call that returned true.
	Item() int64
	// Err returns the first error encountered by Next, if any.
	Err() error
	// Close releases resources held by the iterator. Idempotent.
	Close() error
}
