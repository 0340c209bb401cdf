package engine

import "testing"

func TestRevenueBars_MirrorsResult(t *testing.T) {
	r := Compute(Params{
		Leads:               100,
		ConversionRate:      10,
		AverageTicket:       5000,
		FollowUpAttempts:    3,
		ResponseTimeMinutes: 60,
	})

	bars := RevenueBars(r)
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}

	if bars[0].Label != LabelCurrentRevenue || bars[0].Value != r.CurrentRevenue {
		t.Fatalf("expected first bar %s=%v, got %s=%v",
			LabelCurrentRevenue, r.CurrentRevenue, bars[0].Label, bars[0].Value)
	}
	if bars[1].Label != LabelFollowUpLoss || bars[1].Value != r.FollowUp.LossRevenue {
		t.Fatalf("expected second bar %s=%v, got %s=%v",
			LabelFollowUpLoss, r.FollowUp.LossRevenue, bars[1].Label, bars[1].Value)
	}
	if bars[2].Label != LabelResponseLoss || bars[2].Value != r.Response.LossRevenue {
		t.Fatalf("expected third bar %s=%v, got %s=%v",
			LabelResponseLoss, r.Response.LossRevenue, bars[2].Label, bars[2].Value)
	}
}

func TestLossComposition_BothSlices(t *testing.T) {
	r := Compute(Params{
		Leads:               100,
		ConversionRate:      10,
		AverageTicket:       5000,
		FollowUpAttempts:    3,
		ResponseTimeMinutes: 60,
	})

	slices := LossComposition(r)
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if slices[0].Label != LabelFollowUpLoss || slices[0].Value != r.FollowUp.LossAnnual {
		t.Fatalf("unexpected first slice %+v", slices[0])
	}
	if slices[1].Label != LabelResponseLoss || slices[1].Value != r.Response.LossAnnual {
		t.Fatalf("unexpected second slice %+v", slices[1])
	}
}

func TestLossComposition_FiltersZeroSlices(t *testing.T) {
	// Ten attempts zero out the follow-up leak while the response leak stays.
	r := Compute(Params{
		Leads:               100,
		ConversionRate:      10,
		AverageTicket:       5000,
		FollowUpAttempts:    10,
		ResponseTimeMinutes: 60,
	})

	slices := LossComposition(r)
	if len(slices) != 1 {
		t.Fatalf("expected 1 slice, got %d", len(slices))
	}
	if slices[0].Label != LabelResponseLoss {
		t.Fatalf("expected remaining slice %s, got %s", LabelResponseLoss, slices[0].Label)
	}
	if slices[0].Value != r.Response.LossAnnual {
		t.Fatalf("expected slice value %v, got %v", r.Response.LossAnnual, slices[0].Value)
	}
}
