package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAssigned  OrderStatus = "ASSIGNED"
	OrderCompleted OrderStatus = "COMPLETED"
)

type DriverStatus string

const (
	DriverIdle    DriverStatus = "IDLE"
	DriverBusy    DriverStatus = "BUSY"
	DriverOffline DriverStatus = "OFFLINE"
)

// Coord is a point in the abstract 0..100 planar space drivers and
// stops live in before geographic projection.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Stop is one end of a delivery route.
type Stop struct {
	Address string `json:"address"`
	Coord   Coord  `json:"coord"`
}

type Order struct {
	ID        string      `json:"id"`
	Status    OrderStatus `json:"status"`
	Customer  Customer    `json:"customer"`
	Pickup    Stop        `json:"pickup"`
	Dropoff   Stop        `json:"dropoff"`
	DriverID  string      `json:"driver_id,omitempty"` // empty until assigned
	Price     float64     `json:"price"`
	CreatedAt time.Time   `json:"created_at"`
}

type DriverStats struct {
	TodayOrders int     `json:"today_orders"`
	Rating      float64 `json:"rating"` // 0..5
}

type Driver struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Status   DriverStatus `json:"status"`
	Location Coord        `json:"location"`
	Vehicle  string       `json:"vehicle"`
	Stats    DriverStats  `json:"stats"`
	Updated  time.Time    `json:"updated"`
}

// Tariff is the read-only pricing configuration.
type Tariff struct {
	BaseFare  float64 `json:"base_fare"`
	PerKmRate float64 `json:"per_km_rate"`
	Currency  string  `json:"currency"`
}

type Summary struct {
	TotalOrders           int     `json:"total_orders"`
	ActiveDrivers         int     `json:"active_drivers"`
	CompletionRatePercent int     `json:"completion_rate_percent"`
	Revenue               float64 `json:"revenue"`
}

// PositionEvent is the wire shape published for every simulated driver
// movement and consumed by the position mirror.
type PositionEvent struct {
	DriverID string       `json:"driver_id"`
	Status   DriverStatus `json:"status"`
	Loc      Coord        `json:"loc"`
	Geo      LatLng       `json:"geo"`
	At       time.Time    `json:"at"`
}
