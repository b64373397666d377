package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"market-analytics/internal/indicator"
	"market-analytics/internal/model"
)

// indicatorRequest is the edge-function-compatible request body. An
// absent indicators field means "all of them"; an explicitly empty
// list means none.
type indicatorRequest struct {
	Candles    []model.Candle `json:"candles"`
	Indicators []string       `json:"indicators"`
}

// indicatorResponse matches the portal contract: success flag plus the
// per-indicator result map with absent entries omitted.
type indicatorResponse struct {
	Success    bool               `json:"success"`
	Indicators model.IndicatorSet `json:"indicators"`
}

// handleIndicators computes an indicator bundle over caller-supplied
// candles. POST only.
func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req indicatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	set, err := s.svc.ComputeIndicators(req.Candles, req.Indicators)
	if err != nil {
		// Both taxonomy cases are caller-input problems: too few candles
		// for any meaningful computation, or non-finite fields.
		if errors.Is(err, indicator.ErrInsufficientCandles) || errors.Is(err, indicator.ErrMalformedCandle) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, indicatorResponse{Success: true, Indicators: set})
}
