package presets

import (
	"revenue_leak_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// SchemaResponse carries the schema plus the version clients use to detect
// staleness against stream notifications.
type SchemaResponse struct {
	Version int64  `json:"version"`
	Schema  Schema `json:"schema"`
}

// Handler serves the input schema.
type Handler struct {
	svc *Service
}

// NewHandler creates a presets handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetSchema returns the current input schema presets.
// GET /api/v1/inputs/schema
func (h *Handler) GetSchema(c *gin.Context) {
	schema, version := h.svc.Snapshot()
	httpkit.OK(c, SchemaResponse{Version: version, Schema: schema})
}
