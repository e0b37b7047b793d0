package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/example/dispatch-board/internal/config"
	"github.com/example/dispatch-board/internal/dispatch"
	"github.com/example/dispatch-board/internal/eta"
	"github.com/example/dispatch-board/internal/geo"
	httpapi "github.com/example/dispatch-board/internal/http"
	"github.com/example/dispatch-board/internal/logging"
	"github.com/example/dispatch-board/internal/payments"
	"github.com/example/dispatch-board/internal/sim"
	"github.com/example/dispatch-board/internal/store"
	"github.com/example/dispatch-board/internal/stream"
)

func main() {
	cfg, err := config.LoadServerConfig()
	logger := logging.NewLogger(cfg.LogLevel, "server")
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.PGDSN != "" && cfg.RunMigrations {
		runMigrations(cfg.PGDSN, logger)
	}

	st := store.New(store.SeedOrders(), store.SeedDrivers(), store.DefaultTariff())
	proj := geo.NewProjector(geo.BoundingBox{
		MinLat: cfg.MapMinLat,
		MaxLat: cfg.MapMaxLat,
		MinLng: cfg.MapMinLng,
		MaxLng: cfg.MapMaxLng,
	})

	disp := &dispatch.Service{
		Store:           st,
		Proj:            proj,
		DefaultSpeedMps: cfg.DefaultSpeedMps,
		RecommendLimit:  cfg.RecommendLimit,
		Log:             logger,
	}
	if cfg.OSRMEndpoint != "" {
		disp.ETAClient = eta.NewOSRMClient(cfg.OSRMEndpoint)
		disp.ETACache = eta.NewCache(30 * time.Second)
	}
	if cfg.PGDSN != "" {
		if audit, err := store.NewPGAudit(cfg.PGDSN); err != nil {
			logger.Warn("audit store unavailable, continuing without it", "error", err)
		} else {
			disp.Audit = audit
			defer audit.Close()
		}
	}
	if os.Getenv("STRIPE_API_KEY") != "" {
		disp.Payments = payments.NewStripeClient(st.Tariff().Currency)
	}

	apiServer := httpapi.NewServer(st, disp, proj, logger)

	sinks := []sim.Sink{apiServer}
	if len(cfg.KafkaBrokers) > 0 {
		producer := stream.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, proj, logger)
		defer producer.Close()
		sinks = append(sinks, producer)
	}
	simulator := sim.New(st, cfg.SimInterval, cfg.SimStep, nil, logger, sinks...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go simulator.Run(ctx)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      apiServer,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("dispatch board listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// runMigrations applies the bundled schema when MIGRATE=true, mirroring a
// one-shot deploy step. Failures are logged but not fatal: the audit trail
// is optional capacity.
func runMigrations(dsn string, logger *slog.Logger) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("migration db open error", "error", err)
		return
	}
	defer db.Close()
	b, err := os.ReadFile(filepath.Join("migrations", "001_create_assignments.sql"))
	if err != nil {
		logger.Error("migration read error", "error", err)
		return
	}
	if _, err := db.Exec(string(b)); err != nil {
		logger.Error("migration exec error", "error", err)
		return
	}
	logger.Info("migration applied", "file", "001_create_assignments.sql")
}
