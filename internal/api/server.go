// Package api exposes the analytics pipeline over HTTP: a stateless
// indicator endpoint mirroring the portal's edge-function contract, the
// full fetch→compute→summarize pipeline, a summary history endpoint and
// a websocket stream for portal widgets.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"market-analytics/internal/metrics"
	"market-analytics/internal/model"
)

// Service is the analytics pipeline the handlers delegate to.
type Service interface {
	// Analyze runs fetch → indicators → level summary for one symbol.
	Analyze(ctx context.Context, symbol, timeframe string) (model.LevelSummary, error)

	// ComputeIndicators computes the requested indicator bundle over
	// caller-supplied candles. A nil names list means all indicators;
	// a non-nil list computes only what it names.
	ComputeIndicators(candles []model.Candle, names []string) (model.IndicatorSet, error)

	// History returns recently recorded summaries, newest first.
	History(ctx context.Context, symbol, timeframe string, n int) ([]model.LevelSummary, error)

	// Ready reports whether the pipeline's backing stores are reachable.
	Ready(ctx context.Context) error
}

// Server holds the HTTP surface.
type Server struct {
	svc            Service
	prom           *metrics.Metrics
	log            *slog.Logger
	streamInterval time.Duration
}

// NewServer creates the HTTP server facade.
func NewServer(svc Service, prom *metrics.Metrics, log *slog.Logger, streamInterval time.Duration) *Server {
	return &Server{
		svc:            svc,
		prom:           prom,
		log:            log,
		streamInterval: streamInterval,
	}
}

// Router sets up HTTP routes for the API server.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/indicators", s.handleIndicators)
	mux.HandleFunc("/api/v1/levels", s.handleLevels)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	mux.Handle("/metrics", s.prom.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := s.svc.Ready(r.Context()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable,
				map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return mux
}

// writeJSON writes v with the given status, logging encode failures.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encode failed", slog.Any("err", err))
	}
}

// writeError writes the {error} body every portal client expects.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
