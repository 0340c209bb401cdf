package presets

import (
	apphttp "revenue_leak_backend/internal/http"
)

// Module wires the input schema HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule builds the presets module around an already constructed service.
// The composition root owns the service so it can drive Load and Watch.
func NewModule(svc *Service) *Module {
	return &Module{handler: NewHandler(svc), service: svc}
}

func (m *Module) Name() string {
	return "presets"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/inputs")
	group.GET("/schema", m.handler.GetSchema)
}

// Service returns the underlying presets service.
func (m *Module) Service() *Service {
	return m.service
}

var _ apphttp.Module = (*Module)(nil)
