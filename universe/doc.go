// Package universe provides concrete implementations of hpss.Universe: an
// in-memory one for tests and synthetic runs, and a SQL-backed one for a
// real deployment where the item table is physically partitioned or
// indexed by stratum.
package universe
