package benchmarks

import (
	"context"
	"sync"
	"testing"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/universe"
)

// ============================================================================
// Generate() Throughput Across Batch Shapes
// ============================================================================

func BenchmarkGenerate_SmallBatch(b *testing.B) {
	u := universe.NewMemorySequential(100000)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hpss.Generate(ctx, 10, 20, 0.4, u); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate_MediumBatch(b *testing.B) {
	u := universe.NewMemorySequential(500000)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hpss.Generate(ctx, 200, 50, 0.3, u); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate_TightThreshold(b *testing.B) {
	u := universe.NewMemorySequential(2_000_000)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hpss.Generate(ctx, 50, 100, 0.05, u); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Plan/Feasibility Overhead (pure arithmetic, no universe access)
// ============================================================================

func BenchmarkFeasibility(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hpss.Feasibility(500, 50, 0.3, 10_000_000); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Hash/Stratum Primitives
// ============================================================================

func BenchmarkHash(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hpss.Hash(int64(i))
	}
}

func BenchmarkStratum(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hpss.Stratum(int64(i))
	}
}

// ============================================================================
// Memory Allocation
// ============================================================================

func BenchmarkGenerate_Alloc(b *testing.B) {
	u := universe.NewMemorySequential(200000)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hpss.Generate(ctx, 20, 30, 0.4, u); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Concurrent Generate() Across Independent Requests
// ============================================================================

func BenchmarkGenerate_Concurrent(b *testing.B) {
	const goroutines = 8
	u := universe.NewMemorySequential(1_000_000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for j := 0; j < goroutines; j++ {
			go func() {
				defer wg.Done()
				if _, err := hpss.Generate(ctx, 20, 30, 0.4, u); err != nil {
					b.Error(err)
				}
			}()
		}
		wg.Wait()
	}
	b.ReportMetric(float64(goroutines), "requests/op")
}
