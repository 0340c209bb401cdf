package engine

// Chart series labels. Machine keys; the widget maps them to display copy.
const (
	LabelCurrentRevenue = "current_revenue"
	LabelFollowUpLoss   = "follow_up_loss"
	LabelResponseLoss   = "response_loss"
)

// RevenueBar is one labeled bar of the monthly revenue breakdown.
type RevenueBar struct {
	Label string
	Value float64
}

// CompositionSlice is one slice of the annual loss composition.
type CompositionSlice struct {
	Label string
	Value float64
}

// RevenueBars projects a result onto the three-bar monthly series: realized
// revenue next to the two monthly leak estimates. Values mirror the result
// exactly.
func RevenueBars(r Result) []RevenueBar {
	return []RevenueBar{
		{Label: LabelCurrentRevenue, Value: r.CurrentRevenue},
		{Label: LabelFollowUpLoss, Value: r.FollowUp.LossRevenue},
		{Label: LabelResponseLoss, Value: r.Response.LossRevenue},
	}
}

// LossComposition projects a result onto the annual loss split. Zero-valued
// slices are filtered so renderers never draw empty wedges.
func LossComposition(r Result) []CompositionSlice {
	slices := make([]CompositionSlice, 0, 2)
	if r.FollowUp.LossAnnual != 0 {
		slices = append(slices, CompositionSlice{Label: LabelFollowUpLoss, Value: r.FollowUp.LossAnnual})
	}
	if r.Response.LossAnnual != 0 {
		slices = append(slices, CompositionSlice{Label: LabelResponseLoss, Value: r.Response.LossAnnual})
	}
	return slices
}
