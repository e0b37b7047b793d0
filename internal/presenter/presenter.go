package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/dispatch-board/internal/models"
)

// Badge is a status chip with a display tone the front end maps to a color.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"` // success, warning, info, secondary
}

// NewBadge maps any order or driver status onto a tone.
func NewBadge(status string) Badge {
	switch strings.ToLower(status) {
	case "completed", "online", "idle":
		return Badge{Label: status, Tone: "success"}
	case "pending", "busy":
		return Badge{Label: status, Tone: "warning"}
	case "assigned":
		return Badge{Label: status, Tone: "info"}
	default:
		return Badge{Label: status, Tone: "secondary"}
	}
}

type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// StatCards turns the store summary into the four dashboard cards.
func StatCards(sum models.Summary, currency string) []StatCard {
	return []StatCard{
		{Title: "Orders today", Value: fmt.Sprintf("%d", sum.TotalOrders)},
		{Title: "Drivers online", Value: fmt.Sprintf("%d", sum.ActiveDrivers)},
		{Title: "Completion rate", Value: fmt.Sprintf("%d%%", sum.CompletionRatePercent)},
		{Title: "Revenue today", Value: fmt.Sprintf("%.0f %s", sum.Revenue, currency)},
	}
}

type OrderRow struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Customer  string `json:"customer"`
	Pickup    string `json:"pickup"`
	Dropoff   string `json:"dropoff"`
	DriverID  string `json:"driver_id"`
	Status    Badge  `json:"status"`
	Price     string `json:"price"`
}

func OrderRows(orders []models.Order) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		driver := o.DriverID
		if driver == "" {
			driver = "-"
		}
		rows = append(rows, OrderRow{
			ID:        o.ID,
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
			Customer:  o.Customer.Name,
			Pickup:    o.Pickup.Address,
			Dropoff:   o.Dropoff.Address,
			DriverID:  driver,
			Status:    NewBadge(string(o.Status)),
			Price:     fmt.Sprintf("%.0f", o.Price),
		})
	}
	return rows
}

type DriverRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Vehicle     string  `json:"vehicle"`
	Status      Badge   `json:"status"`
	TodayOrders int     `json:"today_orders"`
	Rating      float64 `json:"rating"`
}

func DriverRows(drivers []models.Driver) []DriverRow {
	rows := make([]DriverRow, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, DriverRow{
			ID:          d.ID,
			Name:        d.Name,
			Vehicle:     d.Vehicle,
			Status:      NewBadge(string(d.Status)),
			TodayOrders: d.Stats.TodayOrders,
			Rating:      d.Stats.Rating,
		})
	}
	return rows
}

// QueueItem is one pending order in the dispatch panel.
type QueueItem struct {
	ID      string `json:"id"`
	Status  Badge  `json:"status"`
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
	Price   string `json:"price"`
}

// QueueItems lists only pending orders, oldest first (insertion order).
func QueueItems(orders []models.Order) []QueueItem {
	items := make([]QueueItem, 0)
	for _, o := range orders {
		if o.Status != models.OrderPending {
			continue
		}
		items = append(items, QueueItem{
			ID:      o.ID,
			Status:  NewBadge(string(o.Status)),
			Pickup:  o.Pickup.Address,
			Dropoff: o.Dropoff.Address,
			Price:   fmt.Sprintf("%.0f", o.Price),
		})
	}
	return items
}
