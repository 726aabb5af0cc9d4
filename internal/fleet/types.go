// Package fleet defines the wire types of the GreenCart logistics service:
// drivers, routes, orders, and simulation results.
package fleet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Traffic levels as the service reports them.
const (
	TrafficLow    = "Low"
	TrafficMedium = "Medium"
	TrafficHigh   = "High"
)

// Order statuses.
const (
	StatusPending   = "Pending"
	StatusDelivered = "Delivered"
)

// User is the authenticated operator profile.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Driver is a delivery driver record. ID is server-assigned and absent
// until creation succeeds.
type Driver struct {
	ID                string    `json:"_id,omitempty"`
	Name              string    `json:"name"`
	Email             string    `json:"email,omitempty"`
	CurrentShiftHours float64   `json:"currentShiftHours"`
	IsActive          bool      `json:"isActive"`
	Past7DayHours     []float64 `json:"past7DayHours,omitempty"`
}

// Route is a delivery route. RouteID is the operator-facing key and is
// immutable after creation.
type Route struct {
	ID              string  `json:"_id,omitempty"`
	RouteID         string  `json:"routeId"`
	DistanceKm      float64 `json:"distanceKm"`
	TrafficLevel    string  `json:"trafficLevel"`
	BaseTimeMinutes int     `json:"baseTimeMinutes"`
}

// Order is a customer order assigned to a route. OrderID is immutable after
// creation. AssignedRouteID names a Route.RouteID; the server is authoritative
// about whether it exists.
type Order struct {
	ID              string  `json:"_id,omitempty"`
	OrderID         string  `json:"orderId"`
	ValueRs         float64 `json:"valueRs"`
	AssignedRouteID string  `json:"assignedRouteId"`
	Status          string  `json:"status"`
}

// SimulationParams are the inputs to a simulation run.
type SimulationParams struct {
	NumberOfDrivers   int    `json:"numberOfDrivers"`
	RouteStartTime    string `json:"routeStartTime"`
	MaxHoursPerDriver int    `json:"maxHoursPerDriver"`
}

// SimulationResult is one simulation run as returned by the service. It is
// immutable once received; projections are derived from it, never written
// back into it.
type SimulationResult struct {
	ID        string         `json:"_id"`
	CreatedAt time.Time      `json:"createdAt"`
	KPIs      KPISet         `json:"kpis"`
	PerOrder  []OrderOutcome `json:"perOrder"`
}

// KPISet holds the aggregate metrics of one simulation run.
type KPISet struct {
	TotalProfit       float64       `json:"totalProfit"`
	Efficiency        float64       `json:"efficiency"`
	TotalDeliveries   int           `json:"totalDeliveries"`
	OnTimeDeliveries  int           `json:"onTimeDeliveries"`
	FuelCostBreakdown CostBreakdown `json:"fuelCostBreakdown"`
}

// OrderOutcome is the per-order line of a simulation result.
type OrderOutcome struct {
	OrderID        string  `json:"orderId"`
	ValueRs        float64 `json:"valueRs"`
	AssignedDriver string  `json:"assignedDriver"`
	OnTime         bool    `json:"onTime"`
	Profit         float64 `json:"profit"`
}

// CostEntry is one traffic level's share of the fuel cost.
type CostEntry struct {
	Level string
	Cost  float64
}

// CostBreakdown is the fuel-cost-by-traffic-level mapping. The service sends
// it as a JSON object; key order is preserved so charts label their series in
// the order the service chose.
type CostBreakdown []CostEntry

// Get returns the cost for a traffic level and whether it is present.
func (b CostBreakdown) Get(level string) (float64, bool) {
	for _, e := range b {
		if e.Level == level {
			return e.Cost, true
		}
	}
	return 0, false
}

// UnmarshalJSON decodes a JSON object while keeping its key order.
func (b *CostBreakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*b = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fleet: fuelCostBreakdown: expected object, got %v", tok)
	}

	out := CostBreakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("fleet: fuelCostBreakdown: non-string key %v", keyTok)
		}
		var cost float64
		if err := dec.Decode(&cost); err != nil {
			return fmt.Errorf("fleet: fuelCostBreakdown[%s]: %w", key, err)
		}
		out = append(out, CostEntry{Level: key, Cost: cost})
	}
	*b = out
	return nil
}

// MarshalJSON encodes the breakdown as a JSON object in entry order.
func (b CostBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Level)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Cost)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
