package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"revenue_leak_backend/internal/diagnostic"
	"revenue_leak_backend/internal/events"
	apphttp "revenue_leak_backend/internal/http"
	"revenue_leak_backend/internal/http/router"
	"revenue_leak_backend/internal/presets"
	"revenue_leak_backend/internal/telemetry"
	"revenue_leak_backend/platform/config"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"
	"revenue_leak_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Prometheus collectors, exposed on /metrics
	met := metrics.New()

	// Shared validator instance for dependency injection
	val := validator.New()

	// Input schema presets; the first load must succeed before serving
	presetsSvc := presets.NewService(cfg.GetPresetsPath(), eventBus, met, log)
	if err := presetsSvc.Load(ctx); err != nil {
		log.Error("failed to load input schema presets", "error", err, "path", cfg.GetPresetsPath())
		panic("failed to load input schema presets: " + err.Error())
	}
	if cfg.IsPresetsWatchEnabled() {
		go func() {
			if err := presetsSvc.Watch(ctx); err != nil {
				log.Error("schema watcher stopped", "error", err)
			}
		}()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Telemetry subscribes to domain events (not HTTP-facing)
	telemetry.New(met, log).RegisterHandlers(eventBus)

	diagnosticModule := diagnostic.NewModule(cfg, eventBus, val, met, log)
	diagnosticModule.RegisterHandlers(eventBus)

	presetsModule := presets.NewModule(presetsSvc)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Metrics:  met,
		Health:   presetsSvc,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			diagnosticModule,
			presetsModule,
		},
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(app),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		IdleTimeout:  cfg.GetIdleTimeout(),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		// WebSocket connections are hijacked, Shutdown does not close them.
		diagnosticModule.Hub().Close()
		// Let in-flight event handlers finish before exiting.
		eventBus.Wait()
		log.Info("server stopped")

	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
