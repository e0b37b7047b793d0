package geo

import (
	"math"
	"testing"

	"github.com/example/dispatch-board/internal/models"
)

func TestProjectCorners(t *testing.T) {
	p := NewProjector(TaipeiBox)
	nw := p.Project(models.Coord{X: 0, Y: 0})
	if nw.Lat != TaipeiBox.MaxLat || nw.Lng != TaipeiBox.MinLng {
		t.Fatalf("origin should land on the northwest corner, got %+v", nw)
	}
	se := p.Project(models.Coord{X: 100, Y: 100})
	if se.Lat != TaipeiBox.MinLat || se.Lng != TaipeiBox.MaxLng {
		t.Fatalf("(100,100) should land on the southeast corner, got %+v", se)
	}
}

func TestProjectMonotonic(t *testing.T) {
	p := NewProjector(TaipeiBox)
	a := p.Project(models.Coord{X: 10, Y: 50})
	b := p.Project(models.Coord{X: 60, Y: 50})
	if b.Lng <= a.Lng {
		t.Fatalf("lng must grow with x: %f vs %f", a.Lng, b.Lng)
	}
	c := p.Project(models.Coord{X: 10, Y: 90})
	if c.Lat >= a.Lat {
		t.Fatalf("lat must fall with y: %f vs %f", a.Lat, c.Lat)
	}
}

func TestUnprojectInverts(t *testing.T) {
	p := NewProjector(TaipeiBox)
	for _, c := range []models.Coord{{X: 0, Y: 0}, {X: 20, Y: 30}, {X: 55.5, Y: 40.25}, {X: 100, Y: 100}} {
		got := p.Unproject(p.Project(c))
		if math.Abs(got.X-c.X) > 1e-9 || math.Abs(got.Y-c.Y) > 1e-9 {
			t.Fatalf("roundtrip of %+v produced %+v", c, got)
		}
	}
}

func TestHaversineZero(t *testing.T) {
	if d := Haversine(0, 0, 0, 0); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := models.LatLng{Lat: 25.03, Lng: 121.52}
	b := models.LatLng{Lat: 25.08, Lng: 121.57}
	if DistanceKm(a, b) != DistanceKm(b, a) {
		t.Fatalf("distance should be symmetric")
	}
	if DistanceKm(a, b) <= 0 {
		t.Fatalf("distinct points must be a positive distance apart")
	}
}
