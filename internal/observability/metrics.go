package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "dispatch_board", Name: "assignments_total", Help: "Total successful driver assignments"})
	AssignmentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dispatch_board", Name: "assignment_failures_total", Help: "Rejected assignment attempts"},
		[]string{"reason"},
	)
	CompletionsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "dispatch_board", Name: "completions_total", Help: "Total completed orders"})
	DriversBusy      = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "dispatch_board", Name: "drivers_busy", Help: "Number of busy drivers"})
	SimTicksTotal    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "dispatch_board", Name: "sim_ticks_total", Help: "Movement simulator ticks"})
	WSClients        = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "dispatch_board", Name: "ws_clients", Help: "Connected live-map websocket clients"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dispatch_board", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dispatch_board",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
