package hpss

// Feasibility implements the feasibility oracle (§4.D): it runs the
// parameter planner and returns a structured [Verdict] the caller can act
// on before ever invoking [Generate]. It is pure — totalIcons is supplied by
// the caller, typically from a prior call to a [Universe]'s Size method.
func Feasibility(numSets, itemsPerSet int, threshold float64, totalIcons uint64) (Verdict, error) {
	plan, err := Plan(numSets, itemsPerSet, threshold)
	if err != nil {
		return Verdict{}, err
	}
	return verdictFor(plan, totalIcons), nil
}

// verdictFor applies the recommendation ladder to an already-computed plan.
// Factored out so [Generate] can reuse the plan it needs for sampling
// instead of computing it twice.
func verdictFor(plan GenerationPlan, totalIcons uint64) Verdict {
	var safetyMargin float64
	if plan.RequiredPool > 0 {
		safetyMargin = float64(totalIcons) / float64(plan.RequiredPool)
	}

	var collisionSafety float64
	if plan.RequiredCombinations > 0 {
		collisionSafety = float64(plan.AvailableCombinations) / float64(plan.RequiredCombinations)
	}

	verdict := Verdict{
		TotalIcons:            totalIcons,
		RequiredPool:          plan.RequiredPool,
		MaxOverlap:            plan.MaxOverlap,
		SafetyMargin:          safetyMargin,
		NumPartitions:         K,
		PartitionsPerSet:      plan.Depth,
		AvailableCombinations: plan.AvailableCombinations,
		RequiredCombinations:  plan.RequiredCombinations,
		CollisionSafetyFactor: collisionSafety,
	}

	// Recommendation ladder, §4.D: first matching rule wins.
	switch {
	case totalIcons < plan.RequiredPool:
		verdict.Recommendation = RecommendationInsufficientIcons
	case collisionSafety < 0.5:
		verdict.Recommendation = RecommendationTooManySets
	case collisionSafety < 1.0:
		verdict.Recommendation = RecommendationRisky
	case collisionSafety < 2.0:
		verdict.Recommendation = RecommendationCaution
	default:
		verdict.Recommendation = RecommendationSafe
	}

	verdict.Feasible = totalIcons >= plan.RequiredPool && collisionSafety >= 1.0

	return verdict
}
