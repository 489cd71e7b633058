package hpss

import "math"

// depthFloor implements the collision-avoidance floor from §4.B as a step
// table precomputed for K=128. Each band's depth keeps C(K, depth) > 50*N^2
// (birthday-paradox collision probability under 1%) throughout the band,
// up to about N = 10,400 in the last one; the band edges are rounded down,
// so a few N just above an edge (for example 81 and 82) get one more level
// than that bound alone would need.
func depthFloor(numSets int) int {
	switch {
	case numSets <= 80:
		return 3
	case numSets <= 460:
		return 4
	case numSets <= 2200:
		return 5
	default:
		return 6
	}
}

// combinations computes C(K, l) exactly using 64-bit integer arithmetic via
// the incremental product form c *= (K-i); c /= (i+1), which stays integral
// at every step because a prefix of Pascal's triangle multiplied out this
// way is always divisible by the running factorial. Defined as K for l==1
// per §3.B.6; valid for l in [1,8], where the largest value (K=128, l=8) is
// ~1.4*10^12 and safely fits in uint64.
func combinations(k, l int) uint64 {
	if l <= 0 {
		return 1
	}
	if l == 1 {
		return uint64(k)
	}
	c := uint64(1)
	for i := 0; i < l; i++ {
		c = c * uint64(k-i) / uint64(i+1)
	}
	return c
}

// requiredCombinations returns ceil(numSets / 0.9), the collision-avoidance
// denominator from §4.B, computed exactly in integer arithmetic as
// ceil(numSets*10/9).
func requiredCombinations(numSets int) uint64 {
	n := uint64(numSets)
	return (n*10 + 8) / 9
}

// Plan implements the parameter planner (§4.B): from (numSets, itemsPerSet,
// threshold) it derives the maximum tolerable overlap, the stratification
// depth, the required pool size, and the number of stratum combinations
// available at that depth. It is pure and side-effect free; it never
// touches a [Universe].
func Plan(numSets, itemsPerSet int, threshold float64) (GenerationPlan, error) {
	if numSets < 1 || itemsPerSet < 1 || threshold < 0 || threshold > 1 {
		return GenerationPlan{}, ErrInvalidArguments
	}

	m := float64(itemsPerSet)
	t := threshold

	// o = floor(2*M*T / (1+T))
	maxOverlap := int(math.Floor(2 * m * t / (1 + t)))

	// L_hpss = ceil(M / (M - o)), with the o == M edge case (reached only at
	// T = 1, fully permissive) resolved to 1 per the design notes' open question.
	var depthHPSS int
	if maxOverlap >= itemsPerSet {
		depthHPSS = 1
	} else {
		depthHPSS = int(math.Ceil(m / (m - float64(maxOverlap))))
	}

	depth := max(depthHPSS, depthFloor(numSets))

	maxDepth := min(K, itemsPerSet)
	if maxDepth > 8 {
		maxDepth = 8
	}
	if depth < 1 || depth > maxDepth || depth > 8 {
		return GenerationPlan{}, ErrDepthOutOfRange
	}

	// P* = ceil(1.1 * (M + (N-1)*M*(1 - 2T/(1+T))))
	shrink := 1 - 2*t/(1+t)
	requiredPool := math.Ceil(1.1 * (m + float64(numSets-1)*m*shrink))
	if requiredPool < 0 {
		requiredPool = 0
	}

	return GenerationPlan{
		NumSets:               numSets,
		ItemsPerSet:           itemsPerSet,
		Threshold:             threshold,
		MaxOverlap:            maxOverlap,
		Depth:                 depth,
		RequiredPool:          uint64(requiredPool),
		AvailableCombinations: combinations(K, depth),
		RequiredCombinations:  requiredCombinations(numSets),
	}, nil
}
