// Package service orchestrates diagnostic computations. The math lives in
// the engine package; this layer adds timing, event publication and the
// batch and what-if variants of a single computation.
package service

import (
	"context"
	"time"

	"revenue_leak_backend/internal/diagnostic/engine"
	"revenue_leak_backend/internal/diagnostic/transport"
	"revenue_leak_backend/internal/events"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"

	"golang.org/x/sync/errgroup"
)

// batchConcurrency caps the number of scenarios computed in parallel.
const batchConcurrency = 8

// responseCurveMinutes is the minute ladder evaluated by Projection. It is
// denser near the inflection point of the response model (just under an
// hour) where the factor moves fastest.
var responseCurveMinutes = []float64{1, 5, 10, 15, 30, 45, 60, 90, 120, 180, 240, 360, 720, 1440}

// Service computes diagnostic reports and publishes their outcomes.
type Service struct {
	log *logger.Logger
	bus events.Bus
	met *metrics.Metrics
}

// New creates a diagnostic service. Bus and metrics may be nil in tests.
func New(log *logger.Logger, bus events.Bus, met *metrics.Metrics) *Service {
	return &Service{log: log, bus: bus, met: met}
}

// Diagnose computes one report and publishes a ReportComputed event with
// the classification outcome and headline figures.
func (s *Service) Diagnose(ctx context.Context, p engine.Params) engine.Result {
	start := time.Now()
	result := engine.Compute(p)
	if s.met != nil {
		s.met.ObserveCompute(time.Since(start))
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.ReportComputed{
			BaseEvent:         events.NewBaseEvent(),
			FollowUpStatus:    string(result.FollowUp.Status),
			ResponseStatus:    string(result.Response.Status),
			LossAnnual:        result.Total.LossAnnual,
			EfficiencyPercent: result.Total.EfficiencyPercent,
		})
	}
	return result
}

// DiagnoseBatch computes every scenario and returns the results in request
// order. Computation fans out across a bounded worker group; each scenario
// is reported exactly as if it had been submitted alone.
func (s *Service) DiagnoseBatch(ctx context.Context, params []engine.Params) ([]engine.Result, error) {
	results := make([]engine.Result, len(params))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, p := range params {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Diagnose(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Projection evaluates what-if curves around a base scenario: the follow-up
// curve varies the attempt count from 0 to 10, the response curve walks the
// minute ladder. Every point is a full computation with the remaining
// inputs held at their base values. Curve points do not publish events;
// only explicit reports do.
func (s *Service) Projection(ctx context.Context, base engine.Params) transport.SeriesResponse {
	start := time.Now()

	followUp := make([]transport.FollowUpCurvePoint, 0, 11)
	for attempts := 0; attempts <= 10; attempts++ {
		p := base
		p.FollowUpAttempts = attempts
		r := engine.Compute(p)
		followUp = append(followUp, transport.FollowUpCurvePoint{
			Attempts:    attempts,
			Factor:      r.FollowUp.Factor,
			Status:      string(r.FollowUp.Status),
			LossRevenue: r.FollowUp.LossRevenue,
		})
	}

	response := make([]transport.ResponseCurvePoint, 0, len(responseCurveMinutes))
	for _, minutes := range responseCurveMinutes {
		p := base
		p.ResponseTimeMinutes = minutes
		r := engine.Compute(p)
		response = append(response, transport.ResponseCurvePoint{
			Minutes:     minutes,
			Factor:      r.Response.Factor,
			Status:      string(r.Response.Status),
			LossRevenue: r.Response.LossRevenue,
		})
	}

	if s.met != nil {
		s.met.ObserveCompute(time.Since(start))
	}
	return transport.SeriesResponse{FollowUp: followUp, Response: response}
}
