package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/service"
)

// ForecastRunner triggers refresh runs on demand.
type ForecastRunner interface {
	Refresh(ctx context.Context, opts service.Options) (domain.ForecastResult, error)
	Defaults() service.Options
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and on-demand forecast HTTP
// endpoints. GET /forecast is the manual refresh trigger.
type Server struct {
	httpServer *http.Server
	runner     ForecastRunner
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /forecast routes.
func NewServer(addr string, runner ForecastRunner, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner: runner,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /forecast", s.handleForecast)
	mux.Handle("GET /metrics", promhttp.Handler())

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

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.runner.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleForecast runs a refresh with the configured defaults, overridable
// per request via query parameters.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.runner.Refresh(r.Context(), opts)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrMissingStation) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) optionsFromQuery(r *http.Request) (service.Options, error) {
	opts := s.runner.Defaults()
	q := r.URL.Query()

	if v := q.Get("station"); v != "" {
		opts.Station = v
	}
	if v := q.Get("hours"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil || hours < 0 {
			return opts, errors.New("invalid hours parameter")
		}
		opts.HorizonHours = hours
	}
	if v := q.Get("wind"); v != "" {
		switch domain.WindLabelMode(v) {
		case domain.WindDegrees, domain.WindCardinal8, domain.WindCardinal16:
			opts.Normalize.WindLabel = domain.WindLabelMode(v)
		default:
			return opts, errors.New("invalid wind parameter")
		}
	}
	if v := q.Get("compact"); v != "" {
		opts.Normalize.Compact = parseBoolParam(v)
	}
	if v := q.Get("future"); v != "" {
		opts.OnlyFuture = parseBoolParam(v)
	}
	if v := q.Get("stale"); v != "" {
		opts.StaleFallback = parseBoolParam(v)
	}
	if v := q.Get("diag"); v != "" {
		opts.Diagnostics = parseBoolParam(v)
	}
	return opts, nil
}

func parseBoolParam(v string) bool {
	return v == "true" || v == "1"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
