package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/btcwatch/btcwatch/internal/advisor"
	"github.com/btcwatch/btcwatch/internal/provider/coingecko"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleSignal serves the crossover signal for the requested lookback.
// Bad input and upstream failures both answer 400 with an error body; the
// dashboard surfaces the message instead of breaking.
func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	hours := s.signalCfg.Hours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "hours must be a positive number"})
			return
		}
		hours = parsed
	}

	points, err := s.source.PricePoints(r.Context(), hours)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	signal, err := advisor.Evaluate(points, s.signalCfg)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, signal)
}

type snapshotResponse struct {
	Snapshot       interface{}            `json:"snapshot"`
	Recommendation advisor.Recommendation `json:"recommendation"`
}

// handleSnapshot serves the one-shot market statistics plus recommendation.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.source.Snapshot(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, coingecko.ErrDataFormat) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, snapshotResponse{
		Snapshot:       snap,
		Recommendation: advisor.Recommend(snap, s.advisorCfg),
	})
}

type healthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Uptime        string    `json:"uptime"`
	Version       string    `json:"version"`
	GoVersion     string    `json:"go_version"`
	NumGoroutines int       `json:"num_goroutines"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
		Version:       s.version,
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
