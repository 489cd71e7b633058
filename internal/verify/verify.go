// Package verify checks a generated batch against the pairwise Jaccard bound
// of spec.md §8 (set size, duplicates and ordering are not checked here),
// reimplementing the reference JaccardCalculator and
// OverlapValidationService as a Go package used by the "hpss verify" CLI
// subcommand and available to callers that want to double-check a batch
// obtained from a store.SetStore before trusting it.
package verify

import (
	"context"
	"sort"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/internal/stats"
)

// defaultExactCutoff bounds how many sets get the exact O(N^2 * M) pairwise
// intersection treatment before Result falls back to a MinHash estimate.
// Above the cutoff the exact pass would dominate wall-clock time for
// batches the sizes this service is meant to handle (spec.md §2 notes
// N up to the low thousands).
const defaultExactCutoff = 200

// defaultMinHashFunctions is the signature width used for the MinHash
// fallback. Larger values tighten the estimator's variance at
// proportional cost.
const defaultMinHashFunctions = 192

// Violation records one pair of sets whose observed Jaccard similarity
// exceeds the threshold the batch was generated under.
type Violation struct {
	SetA, SetB int
	Jaccard    float64
}

// Result mirrors the reference implementation's OverlapValidationResult:
// a verdict plus enough detail to explain it.
type Result struct {
	Valid      bool
	Violations []Violation
	MaxJaccard float64
	AvgJaccard float64
	Estimated  bool
}

// Checker holds the exact/estimated crossover point and MinHash signature
// width, so a caller (the HTTP service, via internal/config) can tune the
// accuracy/cost tradeoff without touching package-level state.
type Checker struct {
	ExactCutoff      int
	MinHashFunctions int
}

// NewChecker returns a Checker with the package defaults.
func NewChecker() Checker {
	return Checker{ExactCutoff: defaultExactCutoff, MinHashFunctions: defaultMinHashFunctions}
}

// Check validates that every pair of sets in batch has Jaccard similarity
// at most threshold, using an exact pairwise pass for small batches and a
// MinHash estimate for larger ones. ctx is checked between pairs so a
// caller can cancel a large exact pass.
func (c Checker) Check(ctx context.Context, batch []hpss.OutputSet, threshold float64) (Result, error) {
	cutoff := c.ExactCutoff
	if cutoff <= 0 {
		cutoff = defaultExactCutoff
	}
	if len(batch) <= cutoff {
		return checkExact(ctx, batch, threshold)
	}
	minHash := c.MinHashFunctions
	if minHash <= 0 {
		minHash = defaultMinHashFunctions
	}
	return checkEstimated(ctx, batch, threshold, minHash)
}

// Check is a package-level convenience equivalent to
// NewChecker().Check(ctx, batch, threshold).
func Check(ctx context.Context, batch []hpss.OutputSet, threshold float64) (Result, error) {
	return NewChecker().Check(ctx, batch, threshold)
}

func checkExact(ctx context.Context, batch []hpss.OutputSet, threshold float64) (Result, error) {
	sets := make([]map[int64]struct{}, len(batch))
	for i, s := range batch {
		m := make(map[int64]struct{}, len(s.Items))
		for _, item := range s.Items {
			m[item] = struct{}{}
		}
		sets[i] = m
	}

	var result Result
	var sum float64
	var pairs int
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			j0 := jaccardExact(sets[i], sets[j])
			sum += j0
			pairs++
			if j0 > result.MaxJaccard {
				result.MaxJaccard = j0
			}
			if j0 > threshold {
				result.Violations = append(result.Violations, Violation{
					SetA: batch[i].Index, SetB: batch[j].Index, Jaccard: j0,
				})
			}
		}
	}
	if pairs > 0 {
		result.AvgJaccard = sum / float64(pairs)
	}
	result.Valid = len(result.Violations) == 0
	sortViolations(result.Violations)
	return result, nil
}

func jaccardExact(a, b map[int64]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for item := range small {
		if _, ok := large[item]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func checkEstimated(ctx context.Context, batch []hpss.OutputSet, threshold float64, minHashFunctions int) (Result, error) {
	hasher := stats.NewHasher(minHashFunctions)
	sigs := make([]stats.Signature, len(batch))
	for i, s := range batch {
		sigs[i] = hasher.Signature(s.Items)
	}

	var result Result
	result.Estimated = true
	var sum float64
	var pairs int
	for i := 0; i < len(sigs); i++ {
		for j := i + 1; j < len(sigs); j++ {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			est := stats.EstimateJaccard(sigs[i], sigs[j])
			sum += est
			pairs++
			if est > result.MaxJaccard {
				result.MaxJaccard = est
			}
			if est > threshold {
				result.Violations = append(result.Violations, Violation{
					SetA: batch[i].Index, SetB: batch[j].Index, Jaccard: est,
				})
			}
		}
	}
	if pairs > 0 {
		result.AvgJaccard = sum / float64(pairs)
	}
	result.Valid = len(result.Violations) == 0
	sortViolations(result.Violations)
	return result, nil
}

func sortViolations(v []Violation) {
	sort.Slice(v, func(i, j int) bool {
		if v[i].SetA != v[j].SetA {
			return v[i].SetA < v[j].SetA
		}
		return v[i].SetB < v[j].SetB
	})
}
