package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/example/dispatch-board/internal/presenter"
	"github.com/example/dispatch-board/internal/store"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := s.store.Summary()
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": sum,
		"cards":   presenter.StatCards(sum, s.store.Tariff().Currency),
	})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presenter.OrderRows(s.store.ListOrders()))
}

func (s *Server) handleDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presenter.DriverRows(s.store.ListDrivers()))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Tariff())
}

// handleQueue returns the pending orders together with ranked driver
// recommendations, so the dispatch panel renders from one call.
func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Order           presenter.QueueItem      `json:"order"`
		Recommendations []dispatchRecommendation `json:"recommendations"`
	}
	items := presenter.QueueItems(s.store.ListOrders())
	out := make([]entry, 0, len(items))
	for _, it := range items {
		recs, err := s.dispatcher.RecommendDrivers(it.ID)
		if err != nil {
			continue
		}
		conv := make([]dispatchRecommendation, 0, len(recs))
		for _, rec := range recs {
			conv = append(conv, dispatchRecommendation{
				DriverID:   rec.Driver.ID,
				Name:       rec.Driver.Name,
				Vehicle:    rec.Driver.Vehicle,
				Rating:     rec.Driver.Stats.Rating,
				DistanceKm: rec.DistanceKm,
				ETAMinutes: rec.ETAMinutes,
			})
		}
		out = append(out, entry{Order: it, Recommendations: conv})
	}
	writeJSON(w, http.StatusOK, out)
}

type dispatchRecommendation struct {
	DriverID   string  `json:"driver_id"`
	Name       string  `json:"name"`
	Vehicle    string  `json:"vehicle"`
	Rating     float64 `json:"rating"`
	DistanceKm float64 `json:"distance_km"`
	ETAMinutes float64 `json:"eta_minutes"`
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presenter.MapSnapshot(s.store.ListOrders(), s.store.ListDrivers(), s.proj))
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]
	var body struct {
		DriverID string `json:"driver_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.DriverID) == "" {
		writeError(w, http.StatusBadRequest, "select a driver")
		return
	}
	receipt, err := s.dispatcher.Assign(r.Context(), orderID, body.DriverID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]
	if err := s.dispatcher.Complete(r.Context(), orderID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrOrderNotFound), errors.Is(err, store.ErrDriverNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrOrderNotPending), errors.Is(err, store.ErrOrderNotAssigned), errors.Is(err, store.ErrDriverUnavailable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
