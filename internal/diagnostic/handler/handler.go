// Package handler exposes the diagnostic HTTP endpoints.
package handler

import (
	"net/http"

	"revenue_leak_backend/internal/diagnostic/engine"
	"revenue_leak_backend/internal/diagnostic/service"
	"revenue_leak_backend/internal/diagnostic/transport"
	"revenue_leak_backend/platform/httpkit"
	"revenue_leak_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for diagnostic reports.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a diagnostic handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Report computes a full diagnostic report for one scenario.
// POST /api/v1/diagnostics/report
func (h *Handler) Report(c *gin.Context) {
	var req transport.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result := h.svc.Diagnose(c.Request.Context(), req.Params())
	httpkit.OK(c, transport.FromResult(result))
}

// Batch computes reports for up to 50 scenarios in one call. Results come
// back in request order.
// POST /api/v1/diagnostics/batch
func (h *Handler) Batch(c *gin.Context) {
	var req transport.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	params := make([]engine.Params, len(req.Scenarios))
	for i, scenario := range req.Scenarios {
		params[i] = scenario.Params()
	}

	results, err := h.svc.DiagnoseBatch(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.ReportResponse, len(results))
	for i, r := range results {
		items[i] = transport.FromResult(r)
	}
	httpkit.OK(c, transport.BatchResponse{Items: items, Total: len(items)})
}

// Series computes what-if curves around a base scenario: one point per
// follow-up attempt count and one per response-time step.
// POST /api/v1/diagnostics/series
func (h *Handler) Series(c *gin.Context) {
	var req transport.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	httpkit.OK(c, h.svc.Projection(c.Request.Context(), req.Params()))
}
