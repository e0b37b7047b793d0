package sim

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/example/dispatch-board/internal/models"
	"github.com/example/dispatch-board/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type captureSink struct{ calls int }

func (c *captureSink) PositionsUpdated(drivers []models.Driver) { c.calls++ }

func testStore() *store.Store {
	return store.New(nil, []models.Driver{
		{ID: "busy", Status: models.DriverBusy, Location: models.Coord{X: 50, Y: 50}},
		{ID: "edge", Status: models.DriverBusy, Location: models.Coord{X: 0, Y: 100}},
		{ID: "idle", Status: models.DriverIdle, Location: models.Coord{X: 10, Y: 10}},
		{ID: "off", Status: models.DriverOffline, Location: models.Coord{X: 90, Y: 90}},
	}, store.DefaultTariff())
}

func TestTickMovesOnlyBusyDriversWithinBounds(t *testing.T) {
	st := testStore()
	s := New(st, time.Second, 1, rand.New(rand.NewSource(42)), testLogger())
	for i := 0; i < 500; i++ {
		if moved := s.Tick(); moved != 2 {
			t.Fatalf("tick %d: expected 2 moves, got %d", i, moved)
		}
		for _, d := range st.ListDrivers() {
			if d.Location.X < 0 || d.Location.X > 100 || d.Location.Y < 0 || d.Location.Y > 100 {
				t.Fatalf("driver %s escaped the domain: %+v", d.ID, d.Location)
			}
			switch d.ID {
			case "idle":
				if d.Location != (models.Coord{X: 10, Y: 10}) {
					t.Fatalf("idle driver moved: %+v", d.Location)
				}
			case "off":
				if d.Location != (models.Coord{X: 90, Y: 90}) {
					t.Fatalf("offline driver moved: %+v", d.Location)
				}
			}
		}
	}
}

func TestTickStepBound(t *testing.T) {
	st := testStore()
	s := New(st, time.Second, 1, rand.New(rand.NewSource(7)), testLogger())
	before, _ := st.GetDriver("busy")
	s.Tick()
	after, _ := st.GetDriver("busy")
	if dx := after.Location.X - before.Location.X; dx > 1 || dx < -1 {
		t.Fatalf("x delta exceeds step: %f", dx)
	}
	if dy := after.Location.Y - before.Location.Y; dy > 1 || dy < -1 {
		t.Fatalf("y delta exceeds step: %f", dy)
	}
}

func TestTickNotifiesSinks(t *testing.T) {
	sink := &captureSink{}
	s := New(testStore(), time.Second, 1, rand.New(rand.NewSource(1)), testLogger(), sink)
	s.Tick()
	if sink.calls != 1 {
		t.Fatalf("expected one sink notification, got %d", sink.calls)
	}
}

func TestTickSkipsSinksWhenNothingMoved(t *testing.T) {
	st := store.New(nil, []models.Driver{{ID: "idle", Status: models.DriverIdle}}, store.DefaultTariff())
	sink := &captureSink{}
	s := New(st, time.Second, 1, rand.New(rand.NewSource(1)), testLogger(), sink)
	s.Tick()
	if sink.calls != 0 {
		t.Fatalf("sink notified despite no movement")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(testStore(), time.Millisecond, 1, rand.New(rand.NewSource(1)), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
