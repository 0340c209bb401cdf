// Package presets serves the diagnostic input schema: the bounds, steps and
// default values a client form should offer for each of the five inputs.
// The schema lives in a YAML file and can be hot reloaded, so product teams
// tune the form without a deploy.
package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in field bounds used when the YAML file omits them.
const (
	DefaultLeads             = 100
	DefaultConversionRate    = 10
	DefaultAverageTicket     = 5000
	DefaultFollowUpAttempts  = 3
	DefaultResponseMinutes   = 60
	MaxResponseMinutes       = 1440
	MaxEffectiveAttemptCount = 10
)

// Field describes one diagnostic input for form rendering.
type Field struct {
	// Label is the human-readable field name shown next to the control.
	Label string `yaml:"label" json:"label"`

	// Unit is the display unit, empty for dimensionless fields.
	Unit string `yaml:"unit" json:"unit,omitempty"`

	// Min and Max bound the control. Both are inclusive.
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`

	// Step is the slider or spinner increment.
	Step float64 `yaml:"step" json:"step"`

	// Default is the value the form starts at.
	Default float64 `yaml:"default" json:"default"`
}

// Schema is the full input schema served to clients. Fields map 1:1 to the
// diagnostic request payload.
type Schema struct {
	Leads               Field `yaml:"leads" json:"leads"`
	ConversionRate      Field `yaml:"conversionRate" json:"conversionRate"`
	AverageTicket       Field `yaml:"averageTicket" json:"averageTicket"`
	FollowUpAttempts    Field `yaml:"followUpAttempts" json:"followUpAttempts"`
	ResponseTimeMinutes Field `yaml:"responseTimeMinutes" json:"responseTimeMinutes"`
}

// Load reads and parses the YAML schema file at path.
// Missing fields keep their built-in defaults.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read file: %w", err)
	}

	schema := defaults()
	if err := yaml.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("presets: parse yaml: %w", err)
	}

	if err := validate(schema); err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}
	return schema, nil
}

// defaults returns a Schema pre-populated with the built-in presets.
func defaults() *Schema {
	return &Schema{
		Leads: Field{
			Label:   "Leads per month",
			Unit:    "leads",
			Min:     0,
			Max:     1000,
			Step:    10,
			Default: DefaultLeads,
		},
		ConversionRate: Field{
			Label:   "Conversion rate",
			Unit:    "%",
			Min:     0,
			Max:     100,
			Step:    0.5,
			Default: DefaultConversionRate,
		},
		AverageTicket: Field{
			Label:   "Average ticket",
			Unit:    "$",
			Min:     0,
			Max:     100000,
			Step:    100,
			Default: DefaultAverageTicket,
		},
		FollowUpAttempts: Field{
			Label:   "Follow-up attempts per lead",
			Min:     0,
			Max:     MaxEffectiveAttemptCount,
			Step:    1,
			Default: DefaultFollowUpAttempts,
		},
		ResponseTimeMinutes: Field{
			Label:   "First response time",
			Unit:    "min",
			Min:     1,
			Max:     MaxResponseMinutes,
			Step:    1,
			Default: DefaultResponseMinutes,
		},
	}
}

// validate checks structural constraints on every field.
func validate(s *Schema) error {
	fields := []struct {
		name string
		f    Field
	}{
		{"leads", s.Leads},
		{"conversionRate", s.ConversionRate},
		{"averageTicket", s.AverageTicket},
		{"followUpAttempts", s.FollowUpAttempts},
		{"responseTimeMinutes", s.ResponseTimeMinutes},
	}
	for _, fd := range fields {
		if fd.f.Max <= fd.f.Min {
			return fmt.Errorf("%s: max must be greater than min", fd.name)
		}
		if fd.f.Step <= 0 {
			return fmt.Errorf("%s: step must be positive", fd.name)
		}
		if fd.f.Default < fd.f.Min || fd.f.Default > fd.f.Max {
			return fmt.Errorf("%s: default %v outside [%v, %v]", fd.name, fd.f.Default, fd.f.Min, fd.f.Max)
		}
	}
	if s.ConversionRate.Max > 100 {
		return fmt.Errorf("conversionRate: max cannot exceed 100")
	}
	if s.ResponseTimeMinutes.Min <= 0 {
		return fmt.Errorf("responseTimeMinutes: min must be positive")
	}
	return nil
}
