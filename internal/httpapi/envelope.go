package httpapi

import "time"

// generationRequest is the decoded body of POST /v1/generation.
type generationRequest struct {
	NumSets          int     `json:"numSets"`
	ItemsPerSet      int     `json:"itemsPerSet"`
	OverlapThreshold float64 `json:"overlapThreshold"`
}

// outputSet mirrors hpss.OutputSet for the wire format, keeping the JSON
// field names stable independent of the Go struct's field names.
type outputSet struct {
	Index int     `json:"index"`
	Items []int64 `json:"items"`
}

// generationResponse is returned by POST /v1/generation on success.
type generationResponse struct {
	RequestID       string      `json:"requestId"`
	CreatedAt       time.Time   `json:"createdAt"`
	ExecutionTimeMs int64       `json:"executionTimeMs"`
	ItemsPerSet     int         `json:"itemsPerSet"`
	TotalSets       int         `json:"totalSets"`
	Sets            []outputSet `json:"sets"`
	Stats           *statsBlock `json:"stats,omitempty"`
}

// statsBlock reports the batch's observed similarity statistics, computed
// by internal/verify at generation time.
type statsBlock struct {
	MaxJaccard float64 `json:"maxJaccard"`
	AvgJaccard float64 `json:"avgJaccard"`
	Estimated  bool    `json:"estimated"`
}

// errorResponse is the body of any non-2xx response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// feasibilityResponse mirrors hpss.Verdict for the wire format.
type feasibilityResponse struct {
	Feasible              bool    `json:"feasible"`
	TotalIcons            uint64  `json:"totalIcons"`
	RequiredPool          uint64  `json:"requiredPool"`
	MaxOverlap            int     `json:"maxOverlap"`
	SafetyMargin          float64 `json:"safetyMargin"`
	NumPartitions         int     `json:"numPartitions"`
	PartitionsPerSet      int     `json:"partitionsPerSet"`
	AvailableCombinations uint64  `json:"availableCombinations"`
	RequiredCombinations  uint64  `json:"requiredCombinations"`
	CollisionSafetyFactor float64 `json:"collisionSafetyFactor"`
	Recommendation        string  `json:"recommendation"`
}
