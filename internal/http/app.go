// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"revenue_leak_backend/internal/events"
	"revenue_leak_backend/platform/config"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.AppConfig
	config.HTTPConfig
	config.RateLimitConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and rate limit settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Metrics collects HTTP and domain metrics; its handler is mounted on /metrics.
	Metrics *metrics.Metrics
	// Health is used for readiness checks (e.g. presets loaded).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
