// Package telemetry turns domain events into Prometheus series. It is the
// only bridge between the event bus and the metrics registry, so domain
// services never talk to collectors for classification counts.
package telemetry

import (
	"context"

	"revenue_leak_backend/internal/events"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"
)

// Recorder subscribes to domain events and records them as metrics.
type Recorder struct {
	met *metrics.Metrics
	log *logger.Logger
}

// New creates a telemetry recorder.
func New(met *metrics.Metrics, log *logger.Logger) *Recorder {
	return &Recorder{met: met, log: log}
}

// RegisterHandlers subscribes the recorder to all relevant domain events.
func (r *Recorder) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.ReportComputed{}.EventName(), r)
}

// Handle routes events to the appropriate metric recorders.
func (r *Recorder) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ReportComputed:
		r.met.RecordReport(e.FollowUpStatus, e.ResponseStatus)
	}
	return nil
}
