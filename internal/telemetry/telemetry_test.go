package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"revenue_leak_backend/internal/events"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"
)

func scrape(t *testing.T, met *metrics.Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	met.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("scrape status: got %d, want 200", rr.Code)
	}
	return rr.Body.String()
}

func TestRecorder_CountsReportsByStatus(t *testing.T) {
	log := logger.New("development")
	met := metrics.New()
	bus := events.NewInMemoryBus(log)
	New(met, log).RegisterHandlers(bus)

	publish := func(fu, resp string) {
		if err := bus.PublishSync(context.Background(), events.ReportComputed{
			BaseEvent:      events.NewBaseEvent(),
			FollowUpStatus: fu,
			ResponseStatus: resp,
		}); err != nil {
			t.Fatalf("PublishSync: %v", err)
		}
	}
	publish("WARNING", "IMPROVE")
	publish("WARNING", "IMPROVE")
	publish("CRITICAL", "EXCELLENT")

	body := scrape(t, met)
	want := []string{
		`revleak_reports_computed_total{follow_up_status="WARNING",response_status="IMPROVE"} 2`,
		`revleak_reports_computed_total{follow_up_status="CRITICAL",response_status="EXCELLENT"} 1`,
	}
	for _, line := range want {
		if !strings.Contains(body, line) {
			t.Errorf("exposition missing %q", line)
		}
	}
}

func TestRecorder_IgnoresUnrelatedEvents(t *testing.T) {
	log := logger.New("development")
	met := metrics.New()
	bus := events.NewInMemoryBus(log)
	New(met, log).RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), events.SchemaUpdated{
		BaseEvent: events.NewBaseEvent(),
		Path:      "config/presets.yaml",
		Version:   1,
	}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if body := scrape(t, met); strings.Contains(body, "revleak_reports_computed_total{") {
		t.Error("schema event incremented report counter")
	}
}
