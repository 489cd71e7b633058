// Package httpapi exposes the generation, feasibility, and retrieval
// operations over HTTP, routed with chi and validated against the JSON
// Schemas in schema.go, in the style the retrieved corpus uses for its own
// JSON-over-HTTP surfaces.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcalabro/hpss"
	"github.com/jcalabro/hpss/internal/config"
	"github.com/jcalabro/hpss/internal/metrics"
	"github.com/jcalabro/hpss/internal/verify"
	"github.com/jcalabro/hpss/store"
)

// Server holds the collaborators the HTTP handlers need: the item
// universe generation draws from, the store batches are persisted to, and
// the metrics registry observations are recorded against.
type Server struct {
	universe hpss.Universe
	store    store.SetStore
	metrics  *metrics.Metrics
	limits   config.GenerationConfig
	checker  verify.Checker
}

// New builds a Server. universe and metrics must be non-nil; a nil store
// is rejected the first time a handler that needs persistence is hit.
func New(universe hpss.Universe, st store.SetStore, m *metrics.Metrics, limits config.GenerationConfig, verifyCfg config.VerifyConfig) *Server {
	checker := verify.Checker{ExactCutoff: verifyCfg.ExactCutoff, MinHashFunctions: verifyCfg.MinHashFunctions}
	return &Server{universe: universe, store: st, metrics: m, limits: limits, checker: checker}
}

// Router builds the chi.Router exposing this Server's endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/feasibility", s.handleFeasibility)
		r.Post("/generation", s.handleCreateGeneration)
		r.Get("/generation/{requestID}", s.handleGetGeneration)
		r.Get("/generation/{requestID}/sets/{setIndex}", s.handleGetSet)
		r.Delete("/generation/{requestID}", s.handleDeleteGeneration)
	})
	return r
}

// instrument records HTTP request latency, reusing the shape of the
// generation duration histogram but keyed by route rather than outcome.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(ww.Status()), time.Since(start).Seconds())
	})
}
