package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/dispatch-board/internal/geo"
	"github.com/example/dispatch-board/internal/models"
)

// Producer publishes driver position events so off-process consumers (the
// redis mirror, analytics) can follow the fleet without polling the API.
type Producer struct {
	writer *kafka.Writer
	proj   *geo.Projector
	log    *slog.Logger
}

func NewProducer(brokers []string, topic string, proj *geo.Projector, log *slog.Logger) *Producer {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return &Producer{writer: w, proj: proj, log: log}
}

// PositionsUpdated implements the simulator sink: one message per driver,
// keyed by driver id so per-driver ordering holds. Best-effort; a publish
// failure never stalls the simulation.
func (p *Producer) PositionsUpdated(drivers []models.Driver) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msgs := make([]kafka.Message, 0, len(drivers))
	for _, d := range drivers {
		ev := models.PositionEvent{
			DriverID: d.ID,
			Status:   d.Status,
			Loc:      d.Location,
			Geo:      p.proj.Project(d.Location),
			At:       d.Updated,
		}
		b, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		msgs = append(msgs, kafka.Message{Key: []byte(d.ID), Value: b})
	}
	if len(msgs) == 0 {
		return
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.log.Warn("position publish failed", "error", err)
	}
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
