package presets

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"revenue_leak_backend/internal/events"
	"revenue_leak_backend/platform/logger"
)

func loadFromString(t *testing.T, content string) *Schema {
	t.Helper()
	schema, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return schema
}

// loadStringErr writes yaml to a temp file and calls Load, returning any error.
func loadStringErr(t *testing.T, content string) (*Schema, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp presets: %v", err)
	}
	return Load(path)
}

func TestLoad_Defaults(t *testing.T) {
	schema := loadFromString(t, "{}\n")

	if schema.Leads.Default != DefaultLeads {
		t.Errorf("leads default: got %v, want %v", schema.Leads.Default, DefaultLeads)
	}
	if schema.ConversionRate.Max != 100 {
		t.Errorf("conversionRate max: got %v, want 100", schema.ConversionRate.Max)
	}
	if schema.AverageTicket.Default != DefaultAverageTicket {
		t.Errorf("averageTicket default: got %v, want %v", schema.AverageTicket.Default, DefaultAverageTicket)
	}
	if schema.FollowUpAttempts.Max != MaxEffectiveAttemptCount {
		t.Errorf("followUpAttempts max: got %v, want %v", schema.FollowUpAttempts.Max, MaxEffectiveAttemptCount)
	}

	// A form seeded from these presets starts at one hour and tops out at a
	// full day, keeping the steep middle of the response model reachable.
	if schema.ResponseTimeMinutes.Default != 60 {
		t.Errorf("responseTimeMinutes default: got %v, want 60", schema.ResponseTimeMinutes.Default)
	}
	if schema.ResponseTimeMinutes.Max != 1440 {
		t.Errorf("responseTimeMinutes max: got %v, want 1440", schema.ResponseTimeMinutes.Max)
	}
	if schema.ResponseTimeMinutes.Min != 1 {
		t.Errorf("responseTimeMinutes min: got %v, want 1", schema.ResponseTimeMinutes.Min)
	}
}

func TestLoad_Overrides(t *testing.T) {
	yaml := `
averageTicket:
  label: "Deal size"
  unit: "EUR"
  min: 0
  max: 250000
  step: 500
  default: 12000
responseTimeMinutes:
  default: 30
`
	schema := loadFromString(t, yaml)

	if schema.AverageTicket.Label != "Deal size" {
		t.Errorf("label: got %q", schema.AverageTicket.Label)
	}
	if schema.AverageTicket.Max != 250000 {
		t.Errorf("max: got %v, want 250000", schema.AverageTicket.Max)
	}
	if schema.AverageTicket.Default != 12000 {
		t.Errorf("default: got %v, want 12000", schema.AverageTicket.Default)
	}
	if schema.ResponseTimeMinutes.Default != 30 {
		t.Errorf("responseTimeMinutes default: got %v, want 30", schema.ResponseTimeMinutes.Default)
	}
	// Untouched fields keep their built-in presets.
	if schema.Leads.Default != DefaultLeads {
		t.Errorf("leads default: got %v, want %v", schema.Leads.Default, DefaultLeads)
	}
}

func TestLoad_PartialFieldOverride(t *testing.T) {
	schema := loadFromString(t, "leads:\n  max: 500\n")

	if schema.Leads.Max != 500 {
		t.Errorf("max: got %v, want 500", schema.Leads.Max)
	}
	if schema.Leads.Default != DefaultLeads {
		t.Errorf("default: got %v, want %v", schema.Leads.Default, DefaultLeads)
	}
	if schema.Leads.Label != "Leads per month" {
		t.Errorf("label: got %q", schema.Leads.Label)
	}
	if schema.Leads.Step != 10 {
		t.Errorf("step: got %v, want 10", schema.Leads.Step)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero step", "leads:\n  step: 0\n"},
		{"max below min", "averageTicket:\n  min: 100\n  max: 50\n  default: 100\n"},
		{"default above max", "leads:\n  max: 50\n"},
		{"conversion rate beyond 100", "conversionRate:\n  max: 150\n"},
		{"zero response minimum", "responseTimeMinutes:\n  min: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadStringErr(t, tt.yaml); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	if _, err := loadStringErr(t, "leads: [not: a: mapping\n"); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

// --- service ----------------------------------------------------------------

type captureBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *captureBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *captureBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func writeSchemaFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write schema file: %v", err)
	}
}

func TestService_LoadPublishesSchemaUpdated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	writeSchemaFile(t, path, "{}\n")

	bus := &captureBus{}
	svc := NewService(path, bus, nil, logger.New("development"))

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.events) != 2 {
		t.Fatalf("published %d events, want 2", len(bus.events))
	}
	for i, e := range bus.events {
		upd, ok := e.(events.SchemaUpdated)
		if !ok {
			t.Fatalf("event %d has type %T, want SchemaUpdated", i, e)
		}
		if upd.Version != int64(i+1) {
			t.Errorf("event %d version: got %d, want %d", i, upd.Version, i+1)
		}
		if upd.Path != path {
			t.Errorf("event %d path: got %q, want %q", i, upd.Path, path)
		}
	}
}

func TestService_PingRequiresLoadedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	writeSchemaFile(t, path, "{}\n")

	svc := NewService(path, nil, nil, logger.New("development"))
	if err := svc.Ping(context.Background()); err == nil {
		t.Fatal("Ping before Load: expected error, got nil")
	}

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("Ping after Load: %v", err)
	}
}

func TestService_FailedReloadKeepsPreviousSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	writeSchemaFile(t, path, "leads:\n  max: 750\n")

	svc := NewService(path, nil, nil, logger.New("development"))
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	writeSchemaFile(t, path, "leads:\n  step: 0\n")
	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("reload of invalid schema: expected error, got nil")
	}

	schema, version := svc.Snapshot()
	if schema.Leads.Max != 750 {
		t.Errorf("schema after failed reload: leads max got %v, want 750", schema.Leads.Max)
	}
	if version != 1 {
		t.Errorf("version after failed reload: got %d, want 1", version)
	}
}
