package hpss

// OutputSet is one generated subset: Items holds ItemsPerSet distinct
// identifiers in ascending order. Index is the set's ordinal position
// in [0, NumSets) and is preserved regardless of any internal
// parallelism used to compute it (see sample.go).
type OutputSet struct {
	Index int
	Items []int64
}

// GenerationPlan is the immutable result of the parameter planner (§4.B):
// everything the sampling engine and the feasibility oracle need, derived
// once from (numSets, itemsPerSet, threshold).
type GenerationPlan struct {
	NumSets      int
	ItemsPerSet  int
	Threshold    float64
	MaxOverlap   int // o: the largest |A∩B| consistent with the threshold
	Depth        int // L: strata drawn per set
	RequiredPool uint64 // P*: minimum universe size with 10% margin

	// AvailableCombinations is C(K, Depth), the number of distinct
	// depth-sized stratum combinations the universe offers.
	AvailableCombinations uint64

	// RequiredCombinations is ceil(NumSets / 0.9), the collision-avoidance
	// denominator from the birthday-paradox argument in §4.B.
	RequiredCombinations uint64
}

// Recommendation is a human-readable feasibility tier, ordered from worst
// to best. String values are stable and safe to log or expose in an API
// response.
type Recommendation string

const (
	RecommendationInsufficientIcons Recommendation = "INFEASIBLE_INSUFFICIENT_ICONS"
	RecommendationTooManySets       Recommendation = "INFEASIBLE_TOO_MANY_SETS"
	RecommendationRisky             Recommendation = "RISKY"
	RecommendationCaution           Recommendation = "CAUTION"
	RecommendationSafe              Recommendation = "SAFE"
)

// Verdict is the feasibility oracle's structured answer to "can this
// request be satisfied by a universe of this size", per §4.D. Feasible is
// true iff the pool is large enough and CollisionSafetyFactor >= 1.0;
// callers that see Feasible == false must not call [Generate] (or, if they
// do, they will receive an [InfeasibleError] instead of output).
type Verdict struct {
	Feasible               bool
	TotalIcons             uint64
	RequiredPool           uint64
	MaxOverlap             int
	SafetyMargin           float64
	NumPartitions          int
	PartitionsPerSet       int
	AvailableCombinations  uint64
	RequiredCombinations   uint64
	CollisionSafetyFactor  float64
	Recommendation         Recommendation
}
