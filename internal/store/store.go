package store

import (
	"math"
	"sync"
	"time"

	"github.com/example/dispatch-board/internal/models"
)

// Store is the single source of truth for orders, drivers and the tariff.
// Every accessor copies, every mutation happens under the lock, so the HTTP
// handlers and the movement simulator can share it freely.
type Store struct {
	mu      sync.RWMutex
	orders  []*models.Order
	drivers []*models.Driver
	byOrder map[string]*models.Order
	byDrv   map[string]*models.Driver
	tariff  models.Tariff
}

func New(orders []models.Order, drivers []models.Driver, tariff models.Tariff) *Store {
	s := &Store{
		byOrder: make(map[string]*models.Order, len(orders)),
		byDrv:   make(map[string]*models.Driver, len(drivers)),
		tariff:  tariff,
	}
	for i := range orders {
		o := orders[i]
		s.orders = append(s.orders, &o)
		s.byOrder[o.ID] = &o
	}
	for i := range drivers {
		d := drivers[i]
		d.Location = clampCoord(d.Location)
		s.drivers = append(s.drivers, &d)
		s.byDrv[d.ID] = &d
	}
	return s
}

// ListOrders returns the orders in insertion order. The elements are copies.
func (s *Store) ListOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out
}

func (s *Store) ListDrivers() []models.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		out = append(out, *d)
	}
	return out
}

func (s *Store) GetOrder(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byOrder[id]
	if !ok {
		return models.Order{}, false
	}
	return *o, true
}

func (s *Store) GetDriver(id string) (models.Driver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byDrv[id]
	if !ok {
		return models.Driver{}, false
	}
	return *d, true
}

func (s *Store) Tariff() models.Tariff {
	return s.tariff
}

// Summary aggregates the dashboard counters. The completion rate is defined
// as 0 for an empty order set.
func (s *Store) Summary() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum models.Summary
	sum.TotalOrders = len(s.orders)
	completed := 0
	for _, o := range s.orders {
		if o.Status == models.OrderCompleted {
			completed++
			sum.Revenue += o.Price
		}
	}
	if sum.TotalOrders > 0 {
		sum.CompletionRatePercent = int(math.Round(100 * float64(completed) / float64(sum.TotalOrders)))
	}
	for _, d := range s.drivers {
		if d.Status != models.DriverOffline {
			sum.ActiveDrivers++
		}
	}
	return sum
}

// AssignDriver binds a pending order to an idle driver. The three field
// writes (order status, order driver ref, driver status) happen atomically:
// on any error the store is left untouched. A non-pending order is rejected
// rather than silently re-assigned, and a racing caller that finds the
// driver already busy loses with ErrDriverUnavailable.
func (s *Store) AssignDriver(orderID, driverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byOrder[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	d, ok := s.byDrv[driverID]
	if !ok {
		return ErrDriverNotFound
	}
	if o.Status != models.OrderPending {
		return ErrOrderNotPending
	}
	if d.Status != models.DriverIdle {
		return ErrDriverUnavailable
	}
	o.Status = models.OrderAssigned
	o.DriverID = driverID
	d.Status = models.DriverBusy
	d.Updated = time.Now()
	return nil
}

// CompleteOrder closes out an assigned order and frees its driver. Keeping
// this transition here, next to AssignDriver, keeps the driverID/status
// invariant enforceable in one place.
func (s *Store) CompleteOrder(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byOrder[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if o.Status != models.OrderAssigned {
		return ErrOrderNotAssigned
	}
	o.Status = models.OrderCompleted
	if d, ok := s.byDrv[o.DriverID]; ok {
		d.Status = models.DriverIdle
		d.Stats.TodayOrders++
		d.Updated = time.Now()
	}
	return nil
}

// MoveBusyDriver shifts a driver by (dx, dy) with the result clamped to the
// planar domain. Only busy drivers move; the status check happens under the
// lock so a driver that went idle between the caller's snapshot and this
// call stays put. Reports whether the driver moved.
func (s *Store) MoveBusyDriver(driverID string, dx, dy float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.byDrv[driverID]
	if !ok {
		return false, ErrDriverNotFound
	}
	if d.Status != models.DriverBusy {
		return false, nil
	}
	d.Location = clampCoord(models.Coord{X: d.Location.X + dx, Y: d.Location.Y + dy})
	d.Updated = time.Now()
	return true, nil
}

func clampCoord(c models.Coord) models.Coord {
	return models.Coord{X: clamp(c.X), Y: clamp(c.Y)}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
