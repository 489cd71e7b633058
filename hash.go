package hpss

import "github.com/zeebo/xxh3"

// K is the fixed number of strata the universe is partitioned into. It is a
// process-wide constant: 128 buckets yield roughly 5.4*10^9 stratum
// combinations at depth 6 while keeping a per-stratum scan cheap on a
// universe of 10^5-10^6 items. K is never configurable; a store that mixes
// output produced under two different values of K (or two different [Hash]
// implementations) has silently broken determinism for every set generated
// under the older value.
const K = 128

// hashIdentity names the hash implementation backing [Hash], for operators
// who need to confirm two processes agree on it before sharing a
// partitioned universe or a persisted batch.
const hashIdentity = "xxh3-v1"

// HashIdentity returns the name and version of the 64-bit hash this package
// uses for stratum assignment, stratum selection, and ranking. Two
// deployments must report the same identity to safely share a
// hash-partitioned universe or compare persisted output.
func HashIdentity() string { return hashIdentity }

// Hash is the single stable 64-bit hash this package builds every
// deterministic decision on: stratum assignment ([Stratum]), per-set
// stratum selection, and per-set candidate ranking. It treats x as a signed
// 64-bit integer encoded little-endian, matches the hash a partitioned SQL
// backing store would use to route rows to physical partitions (see
// universe/sql.go), and never changes silently — see [HashIdentity].
//
// Hash is built on xxh3, the same hash gloom-style bloom filters use for
// their one-hashing bit derivation: a single 64-bit mix that distributes
// uniformly enough to derive several independent decisions from it.
func Hash(x int64) uint64 {
	var buf [8]byte
	buf[0] = byte(x)
	buf[1] = byte(x >> 8)
	buf[2] = byte(x >> 16)
	buf[3] = byte(x >> 24)
	buf[4] = byte(x >> 32)
	buf[5] = byte(x >> 40)
	buf[6] = byte(x >> 48)
	buf[7] = byte(x >> 56)
	return xxh3.Hash(buf[:])
}

// Stratum implements the partition oracle: it maps an item identifier to
// one of [K] buckets in [0, K) via [Hash]. Two identifiers with different
// values may land in the same stratum; that is expected and does not affect
// correctness (see sample.go).
func Stratum(id int64) int {
	return hashMod64(Hash(id), K)
}

// hashMod64 is the shared "reduce H(x) into [0, K)" step used both by
// [Stratum] and by the sampling engine's stratum-selection formula. It is
// factored out only to keep the two call sites textually identical to the
// formula in the design notes; it is not part of the public API.
func hashMod64(h uint64, mod int64) int {
	m := int64(h % uint64(mod))
	return int(((m % mod) + mod) % mod)
}
