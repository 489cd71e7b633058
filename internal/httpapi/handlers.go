package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/store"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// decodeAndValidate reads r.Body once, validates it against
// generationRequestSchema, and unmarshals it into a generationRequest.
func decodeAndValidate(r *http.Request) (generationRequest, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return generationRequest{}, err
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return generationRequest{}, err
	}
	if err := validateGenerationRequest(payload); err != nil {
		return generationRequest{}, err
	}

	var req generationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return generationRequest{}, err
	}
	return req, nil
}

func (s *Server) withinLimits(req generationRequest) error {
	if s.limits.MaxNumSets > 0 && req.NumSets > s.limits.MaxNumSets {
		return errors.New("numSets exceeds the configured maximum")
	}
	if s.limits.MaxItemsPerSet > 0 && req.ItemsPerSet > s.limits.MaxItemsPerSet {
		return errors.New("itemsPerSet exceeds the configured maximum")
	}
	return nil
}

func (s *Server) handleFeasibility(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.withinLimits(req); err != nil {
		writeError(w, http.StatusBadRequest, "limit_exceeded", err.Error())
		return
	}

	total, err := s.universe.Size(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "universe_unavailable", err.Error())
		return
	}

	verdict, err := hpss.Feasibility(req.NumSets, req.ItemsPerSet, req.OverlapThreshold, total)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if s.metrics != nil {
		s.metrics.RecordFeasibility(string(verdict.Recommendation))
	}

	writeJSON(w, http.StatusOK, feasibilityResponse{
		Feasible:              verdict.Feasible,
		TotalIcons:            verdict.TotalIcons,
		RequiredPool:          verdict.RequiredPool,
		MaxOverlap:            verdict.MaxOverlap,
		SafetyMargin:          verdict.SafetyMargin,
		NumPartitions:         verdict.NumPartitions,
		PartitionsPerSet:      verdict.PartitionsPerSet,
		AvailableCombinations: verdict.AvailableCombinations,
		RequiredCombinations:  verdict.RequiredCombinations,
		CollisionSafetyFactor: verdict.CollisionSafetyFactor,
		Recommendation:        string(verdict.Recommendation),
	})
}

func (s *Server) handleCreateGeneration(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.withinLimits(req); err != nil {
		writeError(w, http.StatusBadRequest, "limit_exceeded", err.Error())
		return
	}

	if s.metrics != nil {
		s.metrics.ActiveGenerations.Inc()
		defer s.metrics.ActiveGenerations.Dec()
	}

	start := time.Now()
	sets, err := hpss.Generate(r.Context(), req.NumSets, req.ItemsPerSet, req.OverlapThreshold, s.universe)
	elapsed := time.Since(start)
	outcome, status, code := classifyGenerateError(err)
	if s.metrics != nil {
		s.metrics.RecordGeneration(outcome, elapsed.Seconds(), len(sets))
		if outcome == "shortfall" {
			s.metrics.RecordShortfall()
		}
	}
	if err != nil {
		writeError(w, status, code, err.Error())
		return
	}

	requestID := uuid.NewString()
	if s.store != nil {
		storeStart := time.Now()
		err := s.store.Save(r.Context(), requestID, sets)
		s.recordStoreOp("save", storeStart, err)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_error", err.Error())
			return
		}
	}

	resp := generationResponse{
		RequestID:       requestID,
		CreatedAt:       time.Now().UTC(),
		ExecutionTimeMs: elapsed.Milliseconds(),
		ItemsPerSet:     req.ItemsPerSet,
		TotalSets:       len(sets),
		Sets:            toWireSets(sets),
	}
	if result, verr := s.checker.Check(r.Context(), sets, req.OverlapThreshold); verr == nil {
		resp.Stats = &statsBlock{MaxJaccard: result.MaxJaccard, AvgJaccard: result.AvgJaccard, Estimated: result.Estimated}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// recordStoreOp records the latency and outcome of a store.SetStore call,
// a no-op if no metrics registry is configured.
func (s *Server) recordStoreOp(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordStoreOperation(operation, status, time.Since(start).Seconds())
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "no_store", "no SetStore is configured")
		return
	}
	requestID := chi.URLParam(r, "requestID")
	start := time.Now()
	sets, err := s.store.Sets(r.Context(), requestID)
	s.recordStoreOp("sets", start, err)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "unknown requestId")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	itemsPerSet := 0
	if len(sets) > 0 {
		itemsPerSet = len(sets[0].Items)
	}
	writeJSON(w, http.StatusOK, generationResponse{
		RequestID:   requestID,
		ItemsPerSet: itemsPerSet,
		TotalSets:   len(sets),
		Sets:        toWireSets(sets),
	})
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "no_store", "no SetStore is configured")
		return
	}
	requestID := chi.URLParam(r, "requestID")
	idx, err := strconv.Atoi(chi.URLParam(r, "setIndex"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "setIndex must be an integer")
		return
	}
	start := time.Now()
	set, err := s.store.Set(r.Context(), requestID, idx)
	s.recordStoreOp("set", start, err)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "unknown requestId or setIndex")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outputSet{Index: set.Index, Items: set.Items})
}

func (s *Server) handleDeleteGeneration(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "no_store", "no SetStore is configured")
		return
	}
	requestID := chi.URLParam(r, "requestID")
	start := time.Now()
	err := s.store.Delete(r.Context(), requestID)
	s.recordStoreOp("delete", start, err)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "unknown requestId")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toWireSets(sets []hpss.OutputSet) []outputSet {
	out := make([]outputSet, len(sets))
	for i, s := range sets {
		out[i] = outputSet{Index: s.Index, Items: s.Items}
	}
	return out
}

// classifyGenerateError maps a Generate() error to an HTTP outcome label,
// status code, and machine-readable error code.
func classifyGenerateError(err error) (outcome string, status int, code string) {
	if err == nil {
		return "ok", http.StatusOK, ""
	}

	var infeasible *hpss.InfeasibleError
	var shortfall *hpss.ShortfallError
	var universeErr *hpss.UniverseError

	switch {
	case errors.As(err, &infeasible):
		return "infeasible", http.StatusUnprocessableEntity, "infeasible"
	case errors.As(err, &shortfall):
		return "shortfall", http.StatusConflict, "shortfall"
	case errors.As(err, &universeErr):
		return "error", http.StatusBadGateway, "universe_unavailable"
	case errors.Is(err, hpss.ErrCancelled):
		return "cancelled", http.StatusGatewayTimeout, "cancelled"
	case errors.Is(err, hpss.ErrInvalidArguments), errors.Is(err, hpss.ErrDepthOutOfRange):
		return "error", http.StatusBadRequest, "invalid_request"
	default:
		return "error", http.StatusInternalServerError, "internal_error"
	}
}
