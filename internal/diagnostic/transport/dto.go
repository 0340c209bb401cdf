package transport

import "revenue_leak_backend/internal/diagnostic/engine"

// ComputeRequest carries the five diagnostic inputs. Pointer fields keep
// legitimate zero values distinguishable from missing ones, and the ranges
// mirror the documented input domains; the engine itself never clamps.
type ComputeRequest struct {
	Leads               *float64 `json:"leads" validate:"required,gte=0"`
	ConversionRate      *float64 `json:"conversionRate" validate:"required,gte=0,lte=100"`
	AverageTicket       *float64 `json:"averageTicket" validate:"required,gte=0"`
	FollowUpAttempts    *int     `json:"followUpAttempts" validate:"required,gte=0"`
	ResponseTimeMinutes *float64 `json:"responseTimeMinutes" validate:"required,gt=0"`
}

// Params converts the request into engine inputs. Callers must validate first.
func (r ComputeRequest) Params() engine.Params {
	return engine.Params{
		Leads:               *r.Leads,
		ConversionRate:      *r.ConversionRate,
		AverageTicket:       *r.AverageTicket,
		FollowUpAttempts:    *r.FollowUpAttempts,
		ResponseTimeMinutes: *r.ResponseTimeMinutes,
	}
}

// BatchRequest carries up to 50 scenarios to compute in one call.
type BatchRequest struct {
	Scenarios []ComputeRequest `json:"scenarios" validate:"required,min=1,max=50,dive"`
}

// LossResponse is one leak block of a report.
type LossResponse struct {
	Status      string  `json:"status"`
	Factor      float64 `json:"factor"`
	LossSales   float64 `json:"lossSales"`
	LossRevenue float64 `json:"lossRevenue"`
	LossAnnual  float64 `json:"lossAnnual"`
}

// TotalsResponse aggregates both leaks.
type TotalsResponse struct {
	LossSales         float64 `json:"lossSales"`
	LossRevenue       float64 `json:"lossRevenue"`
	LossAnnual        float64 `json:"lossAnnual"`
	EfficiencyPercent float64 `json:"efficiencyPercent"`
}

// ChartPointResponse is one labeled value of a chart series.
type ChartPointResponse struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartsResponse carries the presentation-ready projections of a report.
type ChartsResponse struct {
	RevenueBars     []ChartPointResponse `json:"revenueBars"`
	LossComposition []ChartPointResponse `json:"lossComposition"`
}

// ReportResponse is the full diagnostic payload for one scenario.
type ReportResponse struct {
	CurrentSales   float64        `json:"currentSales"`
	CurrentRevenue float64        `json:"currentRevenue"`
	AnnualRevenue  float64        `json:"annualRevenue"`
	FollowUp       LossResponse   `json:"followUp"`
	Response       LossResponse   `json:"response"`
	Total          TotalsResponse `json:"total"`
	Charts         ChartsResponse `json:"charts"`
}

// BatchResponse wraps the reports for a batch request, in request order.
type BatchResponse struct {
	Items []ReportResponse `json:"items"`
	Total int              `json:"total"`
}

// FollowUpCurvePoint is one what-if evaluation of the follow-up model.
type FollowUpCurvePoint struct {
	Attempts    int     `json:"attempts"`
	Factor      float64 `json:"factor"`
	Status      string  `json:"status"`
	LossRevenue float64 `json:"lossRevenue"`
}

// ResponseCurvePoint is one what-if evaluation of the response-time model.
type ResponseCurvePoint struct {
	Minutes     float64 `json:"minutes"`
	Factor      float64 `json:"factor"`
	Status      string  `json:"status"`
	LossRevenue float64 `json:"lossRevenue"`
}

// SeriesResponse carries both what-if curves for one base scenario.
type SeriesResponse struct {
	FollowUp []FollowUpCurvePoint `json:"followUp"`
	Response []ResponseCurvePoint `json:"response"`
}

// FromResult maps an engine result onto the wire shape, including chart
// projections. Values mirror the result exactly; no rounding or formatting.
func FromResult(r engine.Result) ReportResponse {
	return ReportResponse{
		CurrentSales:   r.CurrentSales,
		CurrentRevenue: r.CurrentRevenue,
		AnnualRevenue:  r.AnnualRevenue,
		FollowUp:       fromLoss(r.FollowUp),
		Response:       fromLoss(r.Response),
		Total: TotalsResponse{
			LossSales:         r.Total.LossSales,
			LossRevenue:       r.Total.LossRevenue,
			LossAnnual:        r.Total.LossAnnual,
			EfficiencyPercent: r.Total.EfficiencyPercent,
		},
		Charts: fromCharts(r),
	}
}

func fromLoss(l engine.Loss) LossResponse {
	return LossResponse{
		Status:      string(l.Status),
		Factor:      l.Factor,
		LossSales:   l.LossSales,
		LossRevenue: l.LossRevenue,
		LossAnnual:  l.LossAnnual,
	}
}

func fromCharts(r engine.Result) ChartsResponse {
	bars := engine.RevenueBars(r)
	barPoints := make([]ChartPointResponse, 0, len(bars))
	for _, b := range bars {
		barPoints = append(barPoints, ChartPointResponse{Label: b.Label, Value: b.Value})
	}

	slices := engine.LossComposition(r)
	slicePoints := make([]ChartPointResponse, 0, len(slices))
	for _, s := range slices {
		slicePoints = append(slicePoints, ChartPointResponse{Label: s.Label, Value: s.Value})
	}

	return ChartsResponse{RevenueBars: barPoints, LossComposition: slicePoints}
}
