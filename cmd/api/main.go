package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os/signal"
	"syscall"

	"pulsecheck/config"
	"pulsecheck/internals/app"
	"pulsecheck/internals/server"
	"pulsecheck/pkg/logger"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	// Context with signals attached -> Done channel closes on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize base logger
	log := logger.Init(cfg)
	log.Info().Msg("logger initialized")

	// Inject dependencies. Storage init failure is the only fatal one.
	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}
	log.Info().Msg("dependencies initialized")

	// start alert workers
	container.AlertSvc.Start()
	// start the scheduled cycle loop
	container.Orchestrator.Start()
	log.Info().
		Dur("cadence", cfg.Scheduler.Cadence).
		Msg("scheduler started")

	// Register routes
	router := app.RegisterRoutes(container)
	log.Info().Msg("routes registered")

	// HTTP server runs in its own goroutine
	srv := server.New(fmt.Sprintf(":%d", cfg.Port), router, log)
	srv.Start()

	// main goroutine waits for the shutdown signal
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// 1. Stop HTTP server (stop accepting requests)
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// 2. Shutdown background workers & infra
	if err := container.Shutdown(); err != nil {
		log.Error().Err(err).Msg("dependencies shutdown failed")
	}

	log.Info().Msg("graceful shutdown complete")
}
