package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig captures all tunable parameters for the dashboard API process.
// Values are primarily loaded from environment variables with sane defaults
// so the binary can run locally without excessive setup.
type ServerConfig struct {
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	SimInterval time.Duration
	SimStep     float64 // max absolute planar delta per axis per tick

	MapMinLat float64
	MapMaxLat float64
	MapMinLng float64
	MapMaxLng float64

	KafkaBrokers []string
	KafkaTopic   string

	PGDSN string

	OSRMEndpoint    string
	DefaultSpeedMps float64
	RecommendLimit  int

	LogLevel      string
	RunMigrations bool
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:        ":8080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		SimInterval:     3 * time.Second,
		SimStep:         1,
		MapMinLat:       24.96,
		MapMaxLat:       25.21,
		MapMinLng:       121.45,
		MapMaxLng:       121.62,
		KafkaTopic:      "driver-positions",
		DefaultSpeedMps: 10,
		RecommendLimit:  5,
		LogLevel:        "info",
	}
}

func LoadServerConfig() (ServerConfig, error) {
	cfg := defaultServerConfig()
	var errs []error

	setStringFromEnv(&cfg.HTTPAddr, "HTTP_ADDR")
	setDurationFromEnv(&cfg.ReadTimeout, "HTTP_READ_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.IdleTimeout, "HTTP_IDLE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT", &errs)

	setDurationFromEnv(&cfg.SimInterval, "SIM_INTERVAL", &errs)
	setFloatFromEnv(&cfg.SimStep, "SIM_STEP", &errs)

	setFloatFromEnv(&cfg.MapMinLat, "MAP_MIN_LAT", &errs)
	setFloatFromEnv(&cfg.MapMaxLat, "MAP_MAX_LAT", &errs)
	setFloatFromEnv(&cfg.MapMinLng, "MAP_MIN_LNG", &errs)
	setFloatFromEnv(&cfg.MapMaxLng, "MAP_MAX_LNG", &errs)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	setStringFromEnv(&cfg.KafkaTopic, "KAFKA_TOPIC")

	cfg.PGDSN = os.Getenv("PG_DSN")

	setStringFromEnv(&cfg.OSRMEndpoint, "OSRM_ENDPOINT")
	setFloatFromEnv(&cfg.DefaultSpeedMps, "DEFAULT_SPEED_MPS", &errs)
	setIntFromEnv(&cfg.RecommendLimit, "RECOMMEND_LIMIT", &errs)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	cfg.RunMigrations = strings.EqualFold(os.Getenv("MIGRATE"), "true")

	if cfg.SimInterval <= 0 {
		errs = append(errs, fmt.Errorf("SIM_INTERVAL must be > 0"))
	}
	if cfg.SimStep <= 0 {
		errs = append(errs, fmt.Errorf("SIM_STEP must be > 0"))
	}
	if cfg.RecommendLimit <= 0 {
		errs = append(errs, fmt.Errorf("RECOMMEND_LIMIT must be > 0"))
	}
	if cfg.MapMinLat >= cfg.MapMaxLat || cfg.MapMinLng >= cfg.MapMaxLng {
		errs = append(errs, fmt.Errorf("map bounding box must have min < max on both axes"))
	}

	return cfg, errors.Join(errs...)
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setFloatFromEnv(target *float64, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = f
	}
}

func setIntFromEnv(target *int, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = i
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
