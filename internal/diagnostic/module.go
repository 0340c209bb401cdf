// Package diagnostic bundles the revenue leak estimation endpoints: report,
// batch and what-if computations over HTTP plus the interactive WebSocket
// stream.
package diagnostic

import (
	"revenue_leak_backend/internal/diagnostic/handler"
	"revenue_leak_backend/internal/diagnostic/service"
	"revenue_leak_backend/internal/diagnostic/stream"
	"revenue_leak_backend/internal/events"
	apphttp "revenue_leak_backend/internal/http"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"
	"revenue_leak_backend/platform/validator"
)

// Module wires the diagnostic HTTP routes and the stream hub.
type Module struct {
	handler *handler.Handler
	hub     *stream.Hub
}

// NewModule builds the diagnostic module.
func NewModule(cfg stream.Config, bus events.Bus, val *validator.Validator, met *metrics.Metrics, log *logger.Logger) *Module {
	svc := service.New(log, bus, met)
	return &Module{
		handler: handler.New(svc, val),
		hub:     stream.New(svc, val, cfg, log, met),
	}
}

func (m *Module) Name() string {
	return "diagnostic"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/diagnostics")
	group.POST("/report", m.handler.Report)
	group.POST("/batch", m.handler.Batch)
	group.POST("/series", m.handler.Series)
	group.GET("/stream", m.hub.Serve)
}

// RegisterHandlers subscribes the stream hub to schema update events.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	m.hub.RegisterHandlers(bus)
}

// Hub exposes the stream hub so the composition root can close sessions
// during shutdown.
func (m *Module) Hub() *stream.Hub {
	return m.hub
}

var _ apphttp.Module = (*Module)(nil)
