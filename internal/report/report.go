// Package report derives chart- and table-ready projections from a
// simulation result. Every function is pure: a nil result yields a no-data
// sentinel (ok == false), never a panic, so callers can render a
// call-to-action instead of an empty chart.
package report

import "github.com/greencart/console/internal/fleet"

// Series is a labeled value sequence ready for charting. Labels and Values
// are index-aligned.
type Series struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// DeliveryChart projects the on-time/late split of a run.
func DeliveryChart(result *fleet.SimulationResult) (Series, bool) {
	if result == nil {
		return Series{}, false
	}
	onTime := result.KPIs.OnTimeDeliveries
	late := result.KPIs.TotalDeliveries - onTime
	return Series{
		Title:  "Delivery Performance",
		Labels: []string{"On-time", "Late"},
		Values: []float64{float64(onTime), float64(late)},
	}, true
}

// FuelCostChart projects the fuel-cost breakdown as a labeled series,
// keeping the traffic levels in the order the service reported them.
func FuelCostChart(result *fleet.SimulationResult) (Series, bool) {
	if result == nil {
		return Series{}, false
	}
	breakdown := result.KPIs.FuelCostBreakdown
	s := Series{
		Title:  "Fuel Cost by Traffic Level",
		Labels: make([]string, 0, len(breakdown)),
		Values: make([]float64, 0, len(breakdown)),
	}
	for _, entry := range breakdown {
		s.Labels = append(s.Labels, entry.Level)
		s.Values = append(s.Values, entry.Cost)
	}
	return s, true
}

// Preview is a truncated view of the per-order outcomes. HasMore tells the
// caller to offer a link to the full detail view.
type Preview struct {
	Orders  []fleet.OrderOutcome `json:"orders"`
	HasMore bool                 `json:"hasMore"`
	Total   int                  `json:"total"`
}

// OrderPreview returns the first limit entries of the per-order sequence,
// unmodified and in order. A non-positive limit returns everything.
func OrderPreview(result *fleet.SimulationResult, limit int) (Preview, bool) {
	if result == nil {
		return Preview{}, false
	}
	orders := result.PerOrder
	total := len(orders)
	if limit > 0 && total > limit {
		orders = orders[:limit]
	}
	out := make([]fleet.OrderOutcome, len(orders))
	copy(out, orders)
	return Preview{Orders: out, HasMore: limit > 0 && total > limit, Total: total}, true
}
