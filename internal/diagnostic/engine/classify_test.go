package engine

import "testing"

func TestFollowUpStatus_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		want   Status
	}{
		{"well below warning band", 0.10, StatusAdequate},
		{"just below warning floor", 0.299999, StatusAdequate},
		{"exactly the warning floor", 0.30, StatusWarning},
		{"inside the warning band", 0.45, StatusWarning},
		{"exactly the critical boundary", 0.60, StatusWarning},
		{"just above the critical boundary", 0.600001, StatusCritical},
		{"maximum loss", 1.0, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := followUpStatus(tt.factor); got != tt.want {
				t.Fatalf("factor %v: expected %s, got %s", tt.factor, tt.want, got)
			}
		})
	}
}

func TestResponseStatus_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		want   Status
	}{
		{"near zero", 0.01, StatusExcellent},
		{"just below excellent ceiling", 0.149999, StatusExcellent},
		{"exactly the excellent ceiling", 0.15, StatusGood},
		{"just below good ceiling", 0.349999, StatusGood},
		{"exactly the good ceiling", 0.35, StatusImprove},
		{"just below improve ceiling", 0.599999, StatusImprove},
		{"exactly the improve ceiling", 0.60, StatusWarning},
		{"just below warning ceiling", 0.849999, StatusWarning},
		{"exactly the warning ceiling", 0.85, StatusCritical},
		{"maximum loss", 1.0, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseStatus(tt.factor); got != tt.want {
				t.Fatalf("factor %v: expected %s, got %s", tt.factor, tt.want, got)
			}
		})
	}
}

// TestResponseStatus_ByMinutes pins the label the full model produces at
// operationally meaningful response times. The labels derive from the factor
// ladder: an hour lands in IMPROVE, and CRITICAL only begins around five
// hours. A reappearance of direct minute buckets (where an hour was the
// WARNING line and anything past it CRITICAL) breaks these rows.
func TestResponseStatus_ByMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		want    Status
	}{
		{1, StatusExcellent},
		{5, StatusExcellent},
		{10, StatusExcellent},
		{12, StatusGood},
		{30, StatusGood},
		{59, StatusImprove},
		{60, StatusImprove},
		{61, StatusImprove},
		{180, StatusWarning},
		{240, StatusWarning},
		{360, StatusCritical},
		{1440, StatusCritical},
	}

	for _, tt := range tests {
		got := responseStatus(responseFactor(tt.minutes))
		if got != tt.want {
			t.Fatalf("minutes %v: expected %s, got %s", tt.minutes, tt.want, got)
		}
	}
}

func TestResponseStatus_MonotonicInMinutes(t *testing.T) {
	minutes := []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90, 120, 180, 300, 600, 1440}

	prevRank := -1
	for _, m := range minutes {
		rank := severityRank(responseStatus(responseFactor(m)))
		if rank < prevRank {
			t.Fatalf("label improved as response slowed at %v minutes", m)
		}
		prevRank = rank
	}
}

func TestFollowUpStatus_MonotonicInAttempts(t *testing.T) {
	prevRank := severityRank(followUpStatus(followUpFactor(0)))
	for attempts := 1; attempts <= 10; attempts++ {
		rank := severityRank(followUpStatus(followUpFactor(attempts)))
		if rank > prevRank {
			t.Fatalf("label worsened as attempts rose to %d", attempts)
		}
		prevRank = rank
	}
}

// severityRank orders statuses from best to worst for the monotonicity checks.
func severityRank(s Status) int {
	switch s {
	case StatusExcellent:
		return 0
	case StatusGood:
		return 1
	case StatusAdequate:
		return 2
	case StatusImprove:
		return 3
	case StatusWarning:
		return 4
	case StatusCritical:
		return 5
	default:
		return 6
	}
}
