package presenter

import (
	"testing"

	"github.com/example/dispatch-board/internal/geo"
	"github.com/example/dispatch-board/internal/models"
	"github.com/example/dispatch-board/internal/store"
)

func TestBadgeTones(t *testing.T) {
	cases := map[string]string{
		"COMPLETED": "success",
		"IDLE":      "success",
		"PENDING":   "warning",
		"BUSY":      "warning",
		"ASSIGNED":  "info",
		"OFFLINE":   "secondary",
	}
	for status, tone := range cases {
		if b := NewBadge(status); b.Tone != tone {
			t.Fatalf("badge for %s: expected tone %s, got %s", status, tone, b.Tone)
		}
	}
}

func TestStatCards(t *testing.T) {
	cards := StatCards(models.Summary{TotalOrders: 4, ActiveDrivers: 3, CompletionRatePercent: 25, Revenue: 180}, "TWD")
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	if cards[2].Value != "25%" {
		t.Fatalf("completion card: %q", cards[2].Value)
	}
	if cards[3].Value != "180 TWD" {
		t.Fatalf("revenue card: %q", cards[3].Value)
	}
}

func TestOrderRowsPlaceholderDriver(t *testing.T) {
	rows := OrderRows(store.SeedOrders())
	if rows[0].DriverID != "-" {
		t.Fatalf("unassigned order should show '-', got %q", rows[0].DriverID)
	}
	if rows[1].DriverID != "DRV-001" {
		t.Fatalf("assigned order should show its driver, got %q", rows[1].DriverID)
	}
}

func TestQueueItemsOnlyPending(t *testing.T) {
	items := QueueItems(store.SeedOrders())
	if len(items) != 2 {
		t.Fatalf("expected 2 pending orders, got %d", len(items))
	}
	for _, it := range items {
		if it.Status.Label != string(models.OrderPending) {
			t.Fatalf("non-pending order in queue: %+v", it)
		}
	}
}

func TestMapSnapshotMarkers(t *testing.T) {
	proj := geo.NewProjector(geo.TaipeiBox)
	fc := MapSnapshot(store.SeedOrders(), store.SeedDrivers(), proj)
	if fc.Type != "FeatureCollection" {
		t.Fatalf("bad collection type %q", fc.Type)
	}
	// 2 pending orders + 3 non-offline drivers
	if len(fc.Features) != 5 {
		t.Fatalf("expected 5 markers, got %d", len(fc.Features))
	}
	orders, drivers := 0, 0
	for _, f := range fc.Features {
		switch f.Properties.Kind {
		case "order":
			orders++
		case "driver":
			drivers++
		}
		if len(f.Geometry.Coordinates) != 2 {
			t.Fatalf("marker without lng/lat pair: %+v", f)
		}
		lng, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		if lat < geo.TaipeiBox.MinLat || lat > geo.TaipeiBox.MaxLat || lng < geo.TaipeiBox.MinLng || lng > geo.TaipeiBox.MaxLng {
			t.Fatalf("marker outside bounding box: %f,%f", lat, lng)
		}
	}
	if orders != 2 || drivers != 3 {
		t.Fatalf("expected 2 order and 3 driver markers, got %d/%d", orders, drivers)
	}
}
