package universe

import (
	"context"
	"sort"
	"sync"

	"github.com/jcalabro/hpss"
)

// Memory is an in-memory hpss.Universe. Items are bucketed by
// [hpss.Stratum] once, at construction or insertion time, so
// EnumerateStratum never rescans the full item set. Safe for concurrent
// reads; concurrent writes during an in-flight [hpss.Generate] call violate
// the universe's read-only contract regardless of Memory's own locking.
type Memory struct {
	mu        sync.RWMutex
	byStratum [hpss.K][]int64
	size      uint64
}

// NewMemory builds a Memory universe from an explicit slice of item
// identifiers.
func NewMemory(ids []int64) *Memory {
	m := &Memory{}
	for _, id := range ids {
		m.insertLocked(id)
	}
	for p := range m.byStratum {
		sort.Slice(m.byStratum[p], func(i, j int) bool { return m.byStratum[p][i] < m.byStratum[p][j] })
	}
	return m
}

// NewMemorySequential builds a Memory universe with identifiers 1..n, the
// canonical synthetic universe used throughout spec.md §8's worked
// scenarios and this repository's own tests.
func NewMemorySequential(n uint64) *Memory {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i) + 1
	}
	return NewMemory(ids)
}

func (m *Memory) insertLocked(id int64) {
	p := hpss.Stratum(id)
	m.byStratum[p] = append(m.byStratum[p], id)
	m.size++
}

// Add inserts a single item identifier. It shares Memory's lock with Size
// and EnumerateStratum, so concurrent calls do not race, but adding items
// during an in-flight [hpss.Generate] over this universe breaks the
// universe's read-only contract.
func (m *Memory) Add(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := hpss.Stratum(id)
	idx := sort.Search(len(m.byStratum[p]), func(i int) bool { return m.byStratum[p][i] >= id })
	if idx < len(m.byStratum[p]) && m.byStratum[p][idx] == id {
		return // already present
	}
	m.byStratum[p] = append(m.byStratum[p], 0)
	copy(m.byStratum[p][idx+1:], m.byStratum[p][idx:])
	m.byStratum[p][idx] = id
	m.size++
}

func (m *Memory) Size(ctx context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size, nil
}

func (m *Memory) EnumerateStratum(ctx context.Context, p int) (hpss.StratumIterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Copy out so the iterator is stable even if Add runs concurrently
	// with enumeration (a caller misuse this package tolerates rather than
	// panics on).
	items := make([]int64, len(m.byStratum[p]))
	copy(items, m.byStratum[p])
	return &memoryIterator{items: items, idx: -1}, nil
}

type memoryIterator struct {
	items []int64
	idx   int
}

func (it *memoryIterator) Next(ctx context.Context) bool {
	it.idx++
	return it.idx < len(it.items)
}

func (it *memoryIterator) Item() int64  { return it.items[it.idx] }
func (it *memoryIterator) Err() error   { return nil }
func (it *memoryIterator) Close() error { return nil }
