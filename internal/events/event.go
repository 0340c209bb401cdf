// Package events provides domain event definitions for decoupled
// communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"revenue_leak_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Diagnostic Domain Events
// =============================================================================

// ReportComputed is published after every diagnostic report computation.
// It carries the classification outcome and headline figures so that
// subscribers (telemetry, streaming) never need the full result.
type ReportComputed struct {
	BaseEvent
	FollowUpStatus    string  `json:"followUpStatus"`
	ResponseStatus    string  `json:"responseStatus"`
	LossAnnual        float64 `json:"lossAnnual"`
	EfficiencyPercent float64 `json:"efficiencyPercent"`
}

func (e ReportComputed) EventName() string { return "diagnostic.report.computed" }

// =============================================================================
// Presets Domain Events
// =============================================================================

// SchemaUpdated is published when the input schema presets are reloaded
// from disk, either at startup or after a file change.
type SchemaUpdated struct {
	BaseEvent
	Path    string `json:"path"`
	Version int64  `json:"version"`
}

func (e SchemaUpdated) EventName() string { return "presets.schema.updated" }
