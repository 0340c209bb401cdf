package engine

// Status labels a loss factor for presentation. Labels are machine keys;
// display copy and localization belong to the caller.
type Status string

const (
	StatusExcellent Status = "EXCELLENT"
	StatusGood      Status = "GOOD"
	StatusImprove   Status = "IMPROVE"
	StatusAdequate  Status = "ADEQUATE"
	StatusWarning   Status = "WARNING"
	StatusCritical  Status = "CRITICAL"
)

// Follow-up thresholds. Both boundaries classify as WARNING: the critical
// band is strictly above 0.60 and the warning band is closed at 0.30.
const (
	followUpCriticalAbove = 0.60
	followUpWarningFloor  = 0.30
)

// Response thresholds bucket the computed factor, not raw minutes, so the
// label stays monotonic with the modeled loss across the whole input range.
const (
	responseExcellentBelow = 0.15
	responseGoodBelow      = 0.35
	responseImproveBelow   = 0.60
	responseWarningBelow   = 0.85
)

// followUpStatus classifies the follow-up loss factor on the three-level
// ladder.
func followUpStatus(factor float64) Status {
	switch {
	case factor > followUpCriticalAbove:
		return StatusCritical
	case factor >= followUpWarningFloor:
		return StatusWarning
	default:
		return StatusAdequate
	}
}

// responseStatus classifies the response-time loss factor on the five-level
// ladder.
func responseStatus(factor float64) Status {
	switch {
	case factor < responseExcellentBelow:
		return StatusExcellent
	case factor < responseGoodBelow:
		return StatusGood
	case factor < responseImproveBelow:
		return StatusImprove
	case factor < responseWarningBelow:
		return StatusWarning
	default:
		return StatusCritical
	}
}
