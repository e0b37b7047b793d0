package geo

import (
	"math"

	"github.com/example/dispatch-board/internal/models"
)

// BoundingBox is the geographic rectangle the planar 0..100 domain maps onto.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// TaipeiBox covers the metro area the sample fleet operates in.
var TaipeiBox = BoundingBox{MinLat: 24.96, MaxLat: 25.21, MinLng: 121.45, MaxLng: 121.62}

// Projector converts between planar coordinates and geographic ones.
// Display-only: y=0 is the northern edge, so lat falls as y grows while
// lng grows with x.
type Projector struct {
	box BoundingBox
}

func NewProjector(box BoundingBox) *Projector {
	return &Projector{box: box}
}

func (p *Projector) Project(c models.Coord) models.LatLng {
	return models.LatLng{
		Lat: p.box.MaxLat - (c.Y/100)*(p.box.MaxLat-p.box.MinLat),
		Lng: p.box.MinLng + (c.X/100)*(p.box.MaxLng-p.box.MinLng),
	}
}

// Unproject is the exact inverse of Project within float tolerance.
func (p *Projector) Unproject(ll models.LatLng) models.Coord {
	return models.Coord{
		X: 100 * (ll.Lng - p.box.MinLng) / (p.box.MaxLng - p.box.MinLng),
		Y: 100 * (p.box.MaxLat - ll.Lat) / (p.box.MaxLat - p.box.MinLat),
	}
}

// Haversine distance in meters
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const R = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// DistanceKm is Haversine between two projected points, in kilometers.
func DistanceKm(a, b models.LatLng) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng) / 1000
}
