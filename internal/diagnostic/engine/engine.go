// Package engine implements the revenue-leak estimation model: a pure,
// stateless computation from five commercial-process inputs to a structured
// diagnostic of how much monthly and annual revenue a sales operation forfeits
// to weak follow-up and slow first response.
package engine

import "math"

const (
	monthsPerYear = 12

	// The follow-up decay curve is calibrated over 0..10 attempts; inputs
	// above the cap are clamped for the formula only.
	maxEffectiveAttempts = 10

	followUpRecoverableShare = 0.50
	followUpCloseRate        = 0.12

	responseRecoverableShare = 0.60
	responseCloseRate        = 0.15
	responseSlope            = 2.5
	responseMidpointLog      = 1.78
)

// Params holds the five caller-adjustable inputs describing a sales operation.
// The engine accepts them as-is: range enforcement belongs to the input layer,
// and non-finite values propagate into the result rather than being coerced.
type Params struct {
	Leads               float64
	ConversionRate      float64
	AverageTicket       float64
	FollowUpAttempts    int
	ResponseTimeMinutes float64
}

// Loss describes one leak: the modeled loss factor, its status label, and the
// sales and revenue forfeited per month and per year.
type Loss struct {
	Status      Status
	Factor      float64
	LossSales   float64
	LossRevenue float64
	LossAnnual  float64
}

// Totals aggregates both leaks and the resulting efficiency score.
type Totals struct {
	LossSales         float64
	LossRevenue       float64
	LossAnnual        float64
	EfficiencyPercent float64
}

// Result is the complete diagnostic derived from one set of Params. It is a
// pure function of the inputs: identical Params yield a field-for-field
// identical Result, so callers may memoize freely.
type Result struct {
	CurrentSales   float64
	CurrentRevenue float64
	AnnualRevenue  float64
	FollowUp       Loss
	Response       Loss
	Total          Totals
}

// Compute runs the four model stages (baseline, follow-up leak, response-time
// leak, aggregation) and returns the assembled diagnostic. It performs no I/O,
// holds no state and completes in constant time.
func Compute(p Params) Result {
	currentSales := p.Leads * p.ConversionRate / 100
	currentRevenue := currentSales * p.AverageTicket
	nonConverted := p.Leads - currentSales

	followUp := followUpLoss(nonConverted, p.AverageTicket, p.FollowUpAttempts)
	response := responseLoss(nonConverted, p.AverageTicket, p.ResponseTimeMinutes)

	return Result{
		CurrentSales:   currentSales,
		CurrentRevenue: currentRevenue,
		AnnualRevenue:  currentRevenue * monthsPerYear,
		FollowUp:       followUp,
		Response:       response,
		Total:          totals(currentSales, followUp, response),
	}
}

// followUpLoss models the leak from insufficient contact persistence. At most
// half of the non-converted pool is considered reachable through better
// follow-up, and recovered leads close at an assumed 12%.
func followUpLoss(nonConverted, averageTicket float64, attempts int) Loss {
	factor := followUpFactor(attempts)

	maxRecoverable := nonConverted * followUpRecoverableShare
	recoverable := maxRecoverable * factor
	lossSales := recoverable * followUpCloseRate
	lossRevenue := lossSales * averageTicket

	return Loss{
		Status:      followUpStatus(factor),
		Factor:      factor,
		LossSales:   lossSales,
		LossRevenue: lossRevenue,
		LossAnnual:  lossRevenue * monthsPerYear,
	}
}

// followUpFactor maps contact attempts to a loss factor with logarithmic
// diminishing returns: 1.0 at zero attempts, 0.0 at ten or more.
//
// FORMULA: factor = max(0, 1 - ln(min(attempts,10)+1) / ln(11))
func followUpFactor(attempts int) float64 {
	safe := min(attempts, maxEffectiveAttempts)
	raw := 1 - math.Log(float64(safe)+1)/math.Log(maxEffectiveAttempts+1)
	return math.Max(0, raw)
}

// responseLoss models the leak from slow first response. Up to 60% of the
// non-converted pool is considered time-sensitive, and recovered leads close
// at an assumed 15%.
func responseLoss(nonConverted, averageTicket, minutes float64) Loss {
	factor := responseFactor(minutes)

	maxRecoverable := nonConverted * responseRecoverableShare
	recoverable := maxRecoverable * factor
	lossSales := recoverable * responseCloseRate
	lossRevenue := lossSales * averageTicket

	return Loss{
		Status:      responseStatus(factor),
		Factor:      factor,
		LossSales:   lossSales,
		LossRevenue: lossRevenue,
		LossAnnual:  lossRevenue * monthsPerYear,
	}
}

// responseFactor maps first-response minutes to a loss factor via a logistic
// curve over log-scaled time. The inflection sits near 59 minutes
// (10^1.78 - 1), so responses within the hour stay on the favorable side.
//
// FORMULA: factor = 1 / (1 + e^(-2.5 * (log10(minutes+1) - 1.78)))
func responseFactor(minutes float64) float64 {
	timeLog := math.Log10(minutes + 1)
	return 1 / (1 + math.Exp(-responseSlope*(timeLog-responseMidpointLog)))
}

// totals sums the two leaks (independent leaks, added rather than compounded)
// and derives the efficiency score.
func totals(currentSales float64, followUp, response Loss) Totals {
	lossSales := followUp.LossSales + response.LossSales
	return Totals{
		LossSales:         lossSales,
		LossRevenue:       followUp.LossRevenue + response.LossRevenue,
		LossAnnual:        followUp.LossAnnual + response.LossAnnual,
		EfficiencyPercent: efficiencyPercent(currentSales, lossSales),
	}
}

// efficiencyPercent is the share of achievable sales currently realized.
// A zero denominator means no sales and no recoverable loss, which reports
// as fully efficient.
//
// FORMULA: efficiency = currentSales / (currentSales + totalLossSales) * 100
func efficiencyPercent(currentSales, totalLossSales float64) float64 {
	denominator := currentSales + totalLossSales
	if denominator == 0 {
		return 100
	}
	return currentSales / denominator * 100
}
