package hpss

import (
	"context"
	"sort"
)

// arrayUniverse is a minimal in-memory [Universe] used only by this
// package's own tests. The production in-memory implementation lives in
// universe/memory.go and is exercised by universe/memory_test.go instead;
// this one stays deliberately dumb so core tests do not depend on it.
type arrayUniverse struct {
	byStratum map[int][]int64
	size      uint64
}

func newArrayUniverse(ids []int64) *arrayUniverse {
	u := &arrayUniverse{byStratum: make(map[int][]int64), size: uint64(len(ids))}
	for _, id := range ids {
		p := Stratum(id)
		u.byStratum[p] = append(u.byStratum[p], id)
	}
	for p := range u.byStratum {
		sort.Slice(u.byStratum[p], func(i, j int) bool { return u.byStratum[p][i] < u.byStratum[p][j] })
	}
	return u
}

func sequentialUniverse(n int64) *arrayUniverse {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i) + 1
	}
	return newArrayUniverse(ids)
}

func (u *arrayUniverse) Size(ctx context.Context) (uint64, error) {
	return u.size, nil
}

func (u *arrayUniverse) EnumerateStratum(ctx context.Context, p int) (StratumIterator, error) {
	return &sliceIterator{items: u.byStratum[p], idx: -1}, nil
}

type sliceIterator struct {
	items []int64
	idx   int
}

func (it *sliceIterator) Next(ctx context.Context) bool {
	it.idx++
	return it.idx < len(it.items)
}

func (it *sliceIterator) Item() int64  { return it.items[it.idx] }
func (it *sliceIterator) Err() error   { return nil }
func (it *sliceIterator) Close() error { return nil }
