package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/dispatch-board/internal/dispatch"
	"github.com/example/dispatch-board/internal/geo"
	"github.com/example/dispatch-board/internal/models"
	"github.com/example/dispatch-board/internal/presenter"
	"github.com/example/dispatch-board/internal/store"
)

// Server is the dashboard API surface. The browser front end is a plain
// HTTP client of these routes plus the /ws live-map feed.
type Server struct {
	store      *store.Store
	dispatcher *dispatch.Service
	proj       *geo.Projector
	hub        *Hub
	logger     *slog.Logger
	mux        *mux.Router
}

func NewServer(st *store.Store, disp *dispatch.Service, proj *geo.Projector, logger *slog.Logger) *Server {
	s := &Server{
		store:      st,
		dispatcher: disp,
		proj:       proj,
		hub:        NewHub(logger),
		logger:     logger,
		mux:        mux.NewRouter(),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.mux.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/summary", s.handleSummary).Methods("GET")
	api.HandleFunc("/orders", s.handleOrders).Methods("GET")
	api.HandleFunc("/drivers", s.handleDrivers).Methods("GET")
	api.HandleFunc("/settings", s.handleSettings).Methods("GET")
	api.HandleFunc("/dispatch/queue", s.handleQueue).Methods("GET")
	api.HandleFunc("/map", s.handleMap).Methods("GET")
	api.HandleFunc("/orders/{order_id}/assign", s.handleAssign).Methods("POST")
	api.HandleFunc("/orders/{order_id}/complete", s.handleComplete).Methods("POST")

	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// PositionsUpdated implements the simulator sink: every movement tick
// pushes a fresh map snapshot to all connected dashboard clients.
func (s *Server) PositionsUpdated(drivers []models.Driver) {
	s.hub.Broadcast(presenter.MapSnapshot(s.store.ListOrders(), drivers, s.proj))
}

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
