// Package http exposes the service's operational endpoints: health and
// readiness probes, Prometheus metrics, and a read-only catalog query API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/forecast-dataset-prep/internal/catalog"
	"github.com/couchcryptid/forecast-dataset-prep/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and catalog HTTP endpoints.
type Server struct {
	httpServer *http.Server
	catalog    *catalog.Catalog
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /v1/catalog routes.
func NewServer(addr string, ready ReadinessChecker, cat *catalog.Catalog, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog: cat,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /v1/paths/parse", s.handleParsePath)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleCatalog returns the datasets matching the query box given by lon_min,
// lat_min, lon_max, lat_max. mode=intersecting (default) matches any overlap;
// mode=covering matches only datasets whose extents contain the whole box.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	bbox, err := bboxFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var entries []catalog.Entry
	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "intersecting":
		entries, err = s.catalog.Intersecting(bbox)
	case "covering":
		entries, err = s.catalog.Covering(bbox)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "query parameter 'mode' must be 'intersecting' or 'covering'",
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

// handleParsePath decodes a canonical dataset path back into its address.
func (s *Server) handleParsePath(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'path' is required"})
		return
	}

	addr, err := domain.ParsePath(path)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, addr)
}

func bboxFromQuery(r *http.Request) (domain.BoundingBox, error) {
	var bbox domain.BoundingBox
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"lon_min", &bbox.LonMin},
		{"lat_min", &bbox.LatMin},
		{"lon_max", &bbox.LonMax},
		{"lat_max", &bbox.LatMax},
	} {
		v, err := strconv.ParseFloat(r.URL.Query().Get(f.key), 64)
		if err != nil {
			return domain.BoundingBox{}, &domain.MalformedBoundingBoxError{
				Input:  r.URL.RawQuery,
				Reason: "query parameter '" + f.key + "' must be a number",
			}
		}
		*f.dst = v
	}
	return bbox, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
