package presenter

import (
	"github.com/example/dispatch-board/internal/geo"
	"github.com/example/dispatch-board/internal/models"
)

// GeoJSON shapes for the live map: pending-order pickups and every driver
// that is not offline, projected into the configured bounding box.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string      `json:"type"`
	Geometry   Geometry    `json:"geometry"`
	Properties MarkerProps `json:"properties"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // lng, lat
}

type MarkerProps struct {
	Kind   string `json:"kind"` // "order" or "driver"
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status,omitempty"`
}

// MapSnapshot builds the marker set for one render of the map.
func MapSnapshot(orders []models.Order, drivers []models.Driver, proj *geo.Projector) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, o := range orders {
		if o.Status != models.OrderPending {
			continue
		}
		fc.Features = append(fc.Features, marker("order", o.ID, o.Pickup.Address, "", proj.Project(o.Pickup.Coord)))
	}
	for _, d := range drivers {
		if d.Status == models.DriverOffline {
			continue
		}
		fc.Features = append(fc.Features, marker("driver", d.ID, d.Name, string(d.Status), proj.Project(d.Location)))
	}
	return fc
}

func marker(kind, id, label, status string, ll models.LatLng) Feature {
	return Feature{
		Type:     "Feature",
		Geometry: Geometry{Type: "Point", Coordinates: []float64{ll.Lng, ll.Lat}},
		Properties: MarkerProps{
			Kind:   kind,
			ID:     id,
			Label:  label,
			Status: status,
		},
	}
}
