package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/example/dispatch-board/internal/logging"
	"github.com/example/dispatch-board/internal/models"
)

// The consumer mirrors simulated driver positions from Kafka into a Redis
// GEO index so other tools can answer "who is near X" without touching the
// dashboard process.

var (
	msgsConsumed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "position_mirror_messages_consumed_total",
		Help: "Total driver position messages consumed",
	})
	msgsInvalid = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "position_mirror_messages_invalid_total",
		Help: "Total invalid messages received",
	})
	redisUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "position_mirror_redis_updates_total",
		Help: "Total successful redis updates",
	})
	redisErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "position_mirror_redis_errors_total",
		Help: "Total redis errors",
	})
)

func init() {
	prometheus.MustRegister(msgsConsumed, msgsInvalid, redisUpdates, redisErrors)
}

func main() {
	var metricsAddr string
	flag.StringVar(&metricsAddr, "metrics-addr", ":2112", "address to serve prometheus metrics on")
	flag.Parse()

	logger := logging.NewLogger(os.Getenv("LOG_LEVEL"), "position-mirror")

	brokers := []string{"localhost:9092"}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = brokers[:0]
		for _, b := range strings.Split(v, ",") {
			if s := strings.TrimSpace(b); s != "" {
				brokers = append(brokers, s)
			}
		}
	}
	topic := envOr("KAFKA_TOPIC", "driver-positions")
	group := envOr("KAFKA_GROUP", "dispatch-board-position-mirror")
	geoKey := envOr("REDIS_GEO_KEY", "driver_positions")
	redisAddr := envOr("REDIS_ADDR", "localhost:6379")

	rc := redis.NewClient(&redis.Options{Addr: redisAddr, Password: os.Getenv("REDIS_PASSWORD")})
	mirror := &redisMirror{c: rc, geoKey: geoKey}

	// metrics and health server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
		mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			if err := rc.Ping(r.Context()).Err(); err != nil {
				http.Error(w, "redis not ready", 503)
				return
			}
			w.WriteHeader(200)
			w.Write([]byte("ready"))
		})
		logger.Info("metrics/health listening", "addr", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := kafka.NewReader(kafka.ReaderConfig{Brokers: brokers, Topic: topic, GroupID: group, MinBytes: 10e3, MaxBytes: 10e6})
	defer func() {
		_ = r.Close()
		_ = rc.Close()
	}()

	logger.Info("consuming positions", "topic", topic, "brokers", brokers, "group", group)

	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("shutting down")
				return
			}
			logger.Warn("kafka read error", "error", err, "backoff", backoff.String())
			time.Sleep(backoff)
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = time.Second

		msgsConsumed.Inc()

		var ev models.PositionEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil || ev.DriverID == "" {
			msgsInvalid.Inc()
			logger.Warn("invalid position message", "error", err)
			continue
		}

		if err := mirrorWithRetry(ctx, mirror, ev, 3, 200*time.Millisecond); err != nil {
			redisErrors.Inc()
			logger.Error("redis mirror failed", "driver_id", ev.DriverID, "error", err)
			continue
		}
		redisUpdates.Inc()
	}
}

// PositionMirror is the small subset of redis operations we need, split out
// so the retry loop is testable without a redis server.
type PositionMirror interface {
	GeoAdd(ctx context.Context, loc *redis.GeoLocation) error
	SetMeta(ctx context.Context, driverID string, values map[string]interface{}) error
}

type redisMirror struct {
	c      *redis.Client
	geoKey string
}

func (r *redisMirror) GeoAdd(ctx context.Context, loc *redis.GeoLocation) error {
	_, err := r.c.GeoAdd(ctx, r.geoKey, loc).Result()
	return err
}

func (r *redisMirror) SetMeta(ctx context.Context, driverID string, values map[string]interface{}) error {
	_, err := r.c.HSet(ctx, "driver:meta:"+driverID, values).Result()
	return err
}

// mirrorWithRetry writes one position event with retry/backoff.
func mirrorWithRetry(ctx context.Context, pm PositionMirror, ev models.PositionEvent, attempts int, delay time.Duration) error {
	loc := &redis.GeoLocation{Longitude: ev.Geo.Lng, Latitude: ev.Geo.Lat, Name: ev.DriverID}
	meta := map[string]interface{}{
		"status": string(ev.Status),
		"x":      strconv.FormatFloat(ev.Loc.X, 'f', 3, 64),
		"y":      strconv.FormatFloat(ev.Loc.Y, 'f', 3, 64),
		"at":     ev.At.Format(time.RFC3339),
	}
	for i := 0; i < attempts; i++ {
		if err := pm.GeoAdd(ctx, loc); err != nil {
			if i == attempts-1 {
				return err
			}
			time.Sleep(delay)
			delay *= 2
			continue
		}
		if err := pm.SetMeta(ctx, ev.DriverID, meta); err != nil {
			if i == attempts-1 {
				return err
			}
			time.Sleep(delay)
			delay *= 2
			continue
		}
		return nil
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
