package sim

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/example/dispatch-board/internal/models"
	"github.com/example/dispatch-board/internal/observability"
	"github.com/example/dispatch-board/internal/store"
)

// Sink receives the full driver snapshot after every tick that moved
// at least one driver.
type Sink interface {
	PositionsUpdated(drivers []models.Driver)
}

// Simulator nudges every busy driver by a small random delta on a fixed
// period, standing in for real location pings. Idle and offline drivers
// never move. Run stops when its context is cancelled; nothing here owns
// the process lifetime.
type Simulator struct {
	store    *store.Store
	interval time.Duration
	step     float64
	rnd      *rand.Rand
	sinks    []Sink
	log      *slog.Logger
}

func New(st *store.Store, interval time.Duration, step float64, rnd *rand.Rand, log *slog.Logger, sinks ...Sink) *Simulator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{store: st, interval: interval, step: step, rnd: rnd, sinks: sinks, log: log}
}

// Run ticks until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.log.Info("simulator started", "interval", s.interval.String(), "step", s.step)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("simulator stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick performs one movement pass and returns the number of drivers moved.
func (s *Simulator) Tick() int {
	observability.SimTicksTotal.Inc()
	moved := 0
	for _, d := range s.store.ListDrivers() {
		if d.Status != models.DriverBusy {
			continue
		}
		dx := (s.rnd.Float64()*2 - 1) * s.step
		dy := (s.rnd.Float64()*2 - 1) * s.step
		ok, err := s.store.MoveBusyDriver(d.ID, dx, dy)
		if err != nil {
			s.log.Warn("move failed", "driver_id", d.ID, "error", err)
			continue
		}
		if ok {
			moved++
		}
	}
	if moved > 0 && len(s.sinks) > 0 {
		snapshot := s.store.ListDrivers()
		for _, sink := range s.sinks {
			sink.PositionsUpdated(snapshot)
		}
	}
	return moved
}
