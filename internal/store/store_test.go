package store

import (
	"errors"
	"testing"

	"github.com/example/dispatch-board/internal/models"
)

func seeded() *Store {
	return New(SeedOrders(), SeedDrivers(), DefaultTariff())
}

func TestSummaryEmpty(t *testing.T) {
	s := New(nil, nil, DefaultTariff())
	sum := s.Summary()
	if sum.CompletionRatePercent != 0 {
		t.Fatalf("expected 0 completion rate on empty store, got %d", sum.CompletionRatePercent)
	}
	if sum.Revenue != 0 {
		t.Fatalf("expected 0 revenue, got %f", sum.Revenue)
	}
}

func TestSummarySeeded(t *testing.T) {
	sum := seeded().Summary()
	if sum.TotalOrders != 4 {
		t.Fatalf("expected 4 orders, got %d", sum.TotalOrders)
	}
	if sum.ActiveDrivers != 3 {
		t.Fatalf("expected 3 active drivers (one offline), got %d", sum.ActiveDrivers)
	}
	if sum.CompletionRatePercent != 25 {
		t.Fatalf("expected 25%% completion, got %d", sum.CompletionRatePercent)
	}
	if sum.Revenue != 180 {
		t.Fatalf("expected revenue 180, got %f", sum.Revenue)
	}
}

func TestRevenueTracksCompletions(t *testing.T) {
	s := seeded()
	before := s.Summary().Revenue
	// ORD-2023002 is seeded as assigned with price 220
	if err := s.CompleteOrder("ORD-2023002"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	after := s.Summary().Revenue
	if after-before != 220 {
		t.Fatalf("expected revenue to grow by 220, grew by %f", after-before)
	}
}

func TestAssignDriverHappyPath(t *testing.T) {
	s := New(
		[]models.Order{{ID: "O1", Status: models.OrderPending, Pickup: models.Stop{Coord: models.Coord{X: 20, Y: 30}}}},
		[]models.Driver{{ID: "D1", Status: models.DriverIdle}},
		DefaultTariff(),
	)
	if err := s.AssignDriver("O1", "D1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	o := s.ListOrders()[0]
	if o.Status != models.OrderAssigned || o.DriverID != "D1" {
		t.Fatalf("order not assigned: status=%s driver=%q", o.Status, o.DriverID)
	}
	d := s.ListDrivers()[0]
	if d.Status != models.DriverBusy {
		t.Fatalf("driver not busy: %s", d.Status)
	}
}

func TestAssignDriverUnknownIDs(t *testing.T) {
	s := New(
		[]models.Order{{ID: "O1", Status: models.OrderPending}},
		nil,
		DefaultTariff(),
	)
	if err := s.AssignDriver("O1", "D-missing"); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("expected ErrDriverNotFound, got %v", err)
	}
	if err := s.AssignDriver("O-missing", "D1"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	o := s.ListOrders()[0]
	if o.Status != models.OrderPending || o.DriverID != "" {
		t.Fatalf("order mutated on failed assign: %+v", o)
	}
}

func TestAssignDriverRejectsNonPendingOrder(t *testing.T) {
	s := seeded()
	// ORD-2023002 is already assigned to DRV-001
	err := s.AssignDriver("ORD-2023002", "DRV-002")
	if !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending, got %v", err)
	}
	for _, d := range s.ListDrivers() {
		if d.ID == "DRV-002" && d.Status != models.DriverIdle {
			t.Fatalf("rejected assign mutated driver: %s", d.Status)
		}
	}
}

func TestAssignDriverRejectsBusyDriver(t *testing.T) {
	s := seeded()
	// DRV-001 is seeded busy, DRV-004 offline
	if err := s.AssignDriver("ORD-2023001", "DRV-001"); !errors.Is(err, ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable for busy driver, got %v", err)
	}
	if err := s.AssignDriver("ORD-2023001", "DRV-004"); !errors.Is(err, ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable for offline driver, got %v", err)
	}
	o, _ := s.GetOrder("ORD-2023001")
	if o.Status != models.OrderPending {
		t.Fatalf("order mutated: %s", o.Status)
	}
}

func TestCompleteOrderFreesDriver(t *testing.T) {
	s := seeded()
	if err := s.AssignDriver("ORD-2023001", "DRV-002"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	ordersBefore, _ := s.GetDriver("DRV-002")
	if err := s.CompleteOrder("ORD-2023001"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	o, _ := s.GetOrder("ORD-2023001")
	if o.Status != models.OrderCompleted || o.DriverID != "DRV-002" {
		t.Fatalf("unexpected order after completion: %+v", o)
	}
	d, _ := s.GetDriver("DRV-002")
	if d.Status != models.DriverIdle {
		t.Fatalf("driver not freed: %s", d.Status)
	}
	if d.Stats.TodayOrders != ordersBefore.Stats.TodayOrders+1 {
		t.Fatalf("today orders not incremented: %d", d.Stats.TodayOrders)
	}
}

func TestCompleteOrderRequiresAssigned(t *testing.T) {
	s := seeded()
	if err := s.CompleteOrder("ORD-2023001"); !errors.Is(err, ErrOrderNotAssigned) {
		t.Fatalf("expected ErrOrderNotAssigned for pending order, got %v", err)
	}
	if err := s.CompleteOrder("ORD-2023003"); !errors.Is(err, ErrOrderNotAssigned) {
		t.Fatalf("expected ErrOrderNotAssigned for completed order, got %v", err)
	}
}

func TestMoveBusyDriverClamps(t *testing.T) {
	s := New(nil, []models.Driver{{ID: "D1", Status: models.DriverBusy, Location: models.Coord{X: 99.5, Y: 0.2}}}, DefaultTariff())
	moved, err := s.MoveBusyDriver("D1", 3, -3)
	if err != nil || !moved {
		t.Fatalf("move: moved=%v err=%v", moved, err)
	}
	d := s.ListDrivers()[0]
	if d.Location.X != 100 || d.Location.Y != 0 {
		t.Fatalf("expected clamp to (100,0), got (%f,%f)", d.Location.X, d.Location.Y)
	}
}

func TestMoveIgnoresNonBusyDrivers(t *testing.T) {
	s := New(nil, []models.Driver{
		{ID: "D1", Status: models.DriverIdle, Location: models.Coord{X: 10, Y: 10}},
		{ID: "D2", Status: models.DriverOffline, Location: models.Coord{X: 20, Y: 20}},
	}, DefaultTariff())
	for _, id := range []string{"D1", "D2"} {
		moved, err := s.MoveBusyDriver(id, 1, 1)
		if err != nil {
			t.Fatalf("move %s: %v", id, err)
		}
		if moved {
			t.Fatalf("driver %s should not move", id)
		}
	}
	for _, d := range s.ListDrivers() {
		if d.Location.X != 10 && d.Location.X != 20 {
			t.Fatalf("location mutated: %+v", d)
		}
	}
}

func TestListCopiesAreDetached(t *testing.T) {
	s := seeded()
	orders := s.ListOrders()
	orders[0].Status = models.OrderCompleted
	got, _ := s.GetOrder("ORD-2023001")
	if got.Status != models.OrderPending {
		t.Fatalf("caller mutation leaked into store: %s", got.Status)
	}
}
