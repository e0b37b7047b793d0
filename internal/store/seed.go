package store

import (
	"time"

	"github.com/example/dispatch-board/internal/models"
)

var tz = time.FixedZone("CST", 8*3600)

// SeedOrders returns the fixed sample order book the process starts with.
func SeedOrders() []models.Order {
	return []models.Order{
		{
			ID:        "ORD-2023001",
			Status:    models.OrderPending,
			Customer:  models.Customer{Name: "Alice Chen", Phone: "0912-345-678"},
			Pickup:    models.Stop{Address: "1 City Hall Rd, Xinyi District", Coord: models.Coord{X: 20, Y: 30}},
			Dropoff:   models.Stop{Address: "Sec. 4, Zhongxiao E Rd, Daan District", Coord: models.Coord{X: 45, Y: 55}},
			Price:     150,
			CreatedAt: time.Date(2023, 11, 29, 10, 0, 0, 0, tz),
		},
		{
			ID:        "ORD-2023002",
			Status:    models.OrderAssigned,
			Customer:  models.Customer{Name: "Bob Lin", Phone: "0922-123-456"},
			Pickup:    models.Stop{Address: "County Blvd, Banqiao District", Coord: models.Coord{X: 10, Y: 80}},
			Dropoff:   models.Stop{Address: "Ximending, Wanhua District", Coord: models.Coord{X: 30, Y: 70}},
			DriverID:  "DRV-001",
			Price:     220,
			CreatedAt: time.Date(2023, 11, 29, 10, 5, 0, 0, tz),
		},
		{
			ID:        "ORD-2023003",
			Status:    models.OrderCompleted,
			Customer:  models.Customer{Name: "Charlie Wang", Phone: "0933-987-654"},
			Pickup:    models.Stop{Address: "Nanjing E Rd, Songshan District", Coord: models.Coord{X: 60, Y: 20}},
			Dropoff:   models.Stop{Address: "Ruiguang Rd, Neihu District", Coord: models.Coord{X: 80, Y: 15}},
			DriverID:  "DRV-002",
			Price:     180,
			CreatedAt: time.Date(2023, 11, 29, 9, 30, 0, 0, tz),
		},
		{
			ID:        "ORD-2023004",
			Status:    models.OrderPending,
			Customer:  models.Customer{Name: "David Wu", Phone: "0944-555-666"},
			Pickup:    models.Stop{Address: "Chongqing S Rd, Zhongzheng District", Coord: models.Coord{X: 35, Y: 60}},
			Dropoff:   models.Stop{Address: "Zhongzheng Rd, Yonghe District", Coord: models.Coord{X: 38, Y: 85}},
			Price:     135,
			CreatedAt: time.Date(2023, 11, 29, 10, 15, 0, 0, tz),
		},
	}
}

// SeedDrivers returns the fixed sample fleet.
func SeedDrivers() []models.Driver {
	return []models.Driver{
		{
			ID:       "DRV-001",
			Name:     "Ming Wang",
			Status:   models.DriverBusy,
			Location: models.Coord{X: 25, Y: 75},
			Vehicle:  "scooter",
			Stats:    models.DriverStats{TodayOrders: 5, Rating: 4.8},
		},
		{
			ID:       "DRV-002",
			Name:     "Dahua Lee",
			Status:   models.DriverIdle,
			Location: models.Coord{X: 55, Y: 40},
			Vehicle:  "van",
			Stats:    models.DriverStats{TodayOrders: 3, Rating: 4.9},
		},
		{
			ID:       "DRV-003",
			Name:     "Zhihao Chang",
			Status:   models.DriverIdle,
			Location: models.Coord{X: 40, Y: 50},
			Vehicle:  "scooter",
			Stats:    models.DriverStats{TodayOrders: 8, Rating: 4.7},
		},
		{
			ID:       "DRV-004",
			Name:     "Shufen Chen",
			Status:   models.DriverOffline,
			Location: models.Coord{X: 90, Y: 90},
			Vehicle:  "scooter",
			Stats:    models.DriverStats{TodayOrders: 0, Rating: 5.0},
		},
	}
}

// DefaultTariff is the read-only pricing configuration.
func DefaultTariff() models.Tariff {
	return models.Tariff{BaseFare: 80, PerKmRate: 15, Currency: "TWD"}
}
