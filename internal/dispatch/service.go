package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/example/dispatch-board/internal/eta"
	"github.com/example/dispatch-board/internal/geo"
	"github.com/example/dispatch-board/internal/models"
	"github.com/example/dispatch-board/internal/observability"
	"github.com/example/dispatch-board/internal/store"
)

// Auditor records dispatch decisions durably. Optional.
type Auditor interface {
	RecordAssignment(r store.AssignmentRecord) error
	RecordCompletion(orderID string, completedAt time.Time) error
}

// FareHolder places and settles payment holds for order fares. Optional.
type FareHolder interface {
	HoldFare(ctx context.Context, orderID string, price float64) (string, error)
	CaptureFare(ctx context.Context, paymentIntentID string) error
}

// Receipt summarizes a successful assignment for the caller.
type Receipt struct {
	OrderID    string  `json:"order_id"`
	DriverID   string  `json:"driver_id"`
	FareQuote  float64 `json:"fare_quote"`
	DistanceKm float64 `json:"distance_km"`
	Currency   string  `json:"currency"`
}

// Recommendation is an idle driver ranked for a pending order.
type Recommendation struct {
	Driver     models.Driver `json:"driver"`
	DistanceKm float64       `json:"distance_km"`
	ETAMinutes float64       `json:"eta_minutes"`
}

// Service owns the order/driver state transitions. The store does the
// atomic part; the service layers quoting, audit, payment holds and
// metrics on top. Audit, payments and the routing client are all
// best-effort: their failures are logged, never surfaced.
type Service struct {
	Store           *store.Store
	Proj            *geo.Projector
	Audit           Auditor    // optional
	Payments        FareHolder // optional
	ETAClient       eta.Client // optional OSRM client
	ETACache        *eta.Cache // optional ETA cache
	DefaultSpeedMps float64
	RecommendLimit  int
	Log             *slog.Logger

	mu    sync.Mutex
	holds map[string]string // order id -> payment intent id
}

// Assign dispatches a pending order to an idle driver.
func (s *Service) Assign(ctx context.Context, orderID, driverID string) (Receipt, error) {
	if err := s.Store.AssignDriver(orderID, driverID); err != nil {
		observability.AssignmentFailures.WithLabelValues(failureReason(err)).Inc()
		return Receipt{}, err
	}
	observability.AssignmentsTotal.Inc()
	s.syncBusyGauge()

	o, _ := s.Store.GetOrder(orderID)
	dist := s.routeKm(o)
	rec := Receipt{
		OrderID:    orderID,
		DriverID:   driverID,
		FareQuote:  s.Quote(dist),
		DistanceKm: dist,
		Currency:   s.Store.Tariff().Currency,
	}
	s.Log.Info("order assigned",
		"order_id", orderID,
		"driver_id", driverID,
		"fare_quote", rec.FareQuote,
		"distance_km", rec.DistanceKm,
	)

	if s.Audit != nil {
		err := s.Audit.RecordAssignment(store.AssignmentRecord{
			OrderID:    orderID,
			DriverID:   driverID,
			FareQuote:  rec.FareQuote,
			DistanceKm: rec.DistanceKm,
			AssignedAt: time.Now(),
		})
		if err != nil {
			s.Log.Warn("assignment audit failed", "order_id", orderID, "error", err)
		}
	}
	if s.Payments != nil {
		if holdID, err := s.Payments.HoldFare(ctx, orderID, o.Price); err != nil {
			s.Log.Warn("fare hold failed", "order_id", orderID, "error", err)
		} else {
			s.mu.Lock()
			if s.holds == nil {
				s.holds = make(map[string]string)
			}
			s.holds[orderID] = holdID
			s.mu.Unlock()
		}
	}
	return rec, nil
}

// Complete closes out an assigned order, freeing the driver and capturing
// any fare hold placed at assignment time.
func (s *Service) Complete(ctx context.Context, orderID string) error {
	if err := s.Store.CompleteOrder(orderID); err != nil {
		return err
	}
	observability.CompletionsTotal.Inc()
	s.syncBusyGauge()
	s.Log.Info("order completed", "order_id", orderID)

	if s.Audit != nil {
		if err := s.Audit.RecordCompletion(orderID, time.Now()); err != nil {
			s.Log.Warn("completion audit failed", "order_id", orderID, "error", err)
		}
	}
	s.mu.Lock()
	holdID, ok := s.holds[orderID]
	delete(s.holds, orderID)
	s.mu.Unlock()
	if ok && s.Payments != nil {
		if err := s.Payments.CaptureFare(ctx, holdID); err != nil {
			s.Log.Warn("fare capture failed", "order_id", orderID, "error", err)
		}
	}
	return nil
}

// RecommendDrivers ranks idle drivers by distance to the order's pickup.
func (s *Service) RecommendDrivers(orderID string) ([]Recommendation, error) {
	o, ok := s.Store.GetOrder(orderID)
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	pickup := s.Proj.Project(o.Pickup.Coord)
	out := make([]Recommendation, 0)
	for _, d := range s.Store.ListDrivers() {
		if d.Status != models.DriverIdle {
			continue
		}
		loc := s.Proj.Project(d.Location)
		out = append(out, Recommendation{
			Driver:     d,
			DistanceKm: geo.DistanceKm(loc, pickup),
			ETAMinutes: s.etaMinutes(loc, pickup),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	limit := s.RecommendLimit
	if limit <= 0 {
		limit = 5
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Quote prices a route with the configured tariff.
func (s *Service) Quote(distanceKm float64) float64 {
	t := s.Store.Tariff()
	return t.BaseFare + t.PerKmRate*distanceKm
}

func (s *Service) routeKm(o models.Order) float64 {
	return geo.DistanceKm(s.Proj.Project(o.Pickup.Coord), s.Proj.Project(o.Dropoff.Coord))
}

func (s *Service) etaMinutes(from, to models.LatLng) float64 {
	var sec float64
	if s.ETACache != nil {
		if v, ok := s.ETACache.Get(from, to); ok {
			sec = v
		}
	}
	if sec == 0 {
		if s.ETAClient != nil {
			if v, err := s.ETAClient.EstimateSeconds(from, to); err == nil {
				sec = v
				if s.ETACache != nil {
					s.ETACache.Set(from, to, sec)
				}
			} else {
				sec = eta.EstimateSeconds(from, to, s.DefaultSpeedMps)
			}
		} else {
			sec = eta.EstimateSeconds(from, to, s.DefaultSpeedMps)
		}
	}
	return sec / 60
}

func (s *Service) syncBusyGauge() {
	busy := 0
	for _, d := range s.Store.ListDrivers() {
		if d.Status == models.DriverBusy {
			busy++
		}
	}
	observability.DriversBusy.Set(float64(busy))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, store.ErrDriverNotFound):
		return "driver_not_found"
	case errors.Is(err, store.ErrOrderNotPending):
		return "order_not_pending"
	case errors.Is(err, store.ErrDriverUnavailable):
		return "driver_unavailable"
	default:
		return "other"
	}
}
