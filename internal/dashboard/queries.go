package dashboard

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/greencart/console/internal/api"
	"github.com/greencart/console/internal/db"
	"github.com/greencart/console/internal/fleet"
	"github.com/greencart/console/internal/report"
	"github.com/greencart/console/internal/sync"
)

// Overview is the data behind the landing page: entity counts, the latest
// simulation with its projections, or the no-data call-to-action.
type Overview struct {
	TotalDrivers int
	TotalRoutes  int
	TotalOrders  int

	// HasResult is false when no simulation has been run yet; the page
	// renders a call-to-action instead of charts.
	HasResult bool
	Result    *fleet.SimulationResult
	Delivery  report.Series
	FuelCost  report.Series
	Preview   report.Preview

	// FromCache marks a result served from the local cache because the
	// service was unreachable.
	FromCache bool
	ErrMsg    string
}

// loadOverview assembles the overview. Each page view owns fresh
// synchronizer instances; nothing is shared across requests.
func loadOverview(ctx context.Context, client *api.Client, gdb *gorm.DB, previewLimit int) Overview {
	var ov Overview

	drivers := sync.New(client, sync.Drivers())
	routes := sync.New(client, sync.Routes())
	orders := sync.New(client, sync.Orders())
	if err := drivers.Load(ctx); err != nil {
		ov.ErrMsg = drivers.Err()
	}
	if err := routes.Load(ctx); err != nil {
		ov.ErrMsg = routes.Err()
	}
	if err := orders.Load(ctx); err != nil {
		ov.ErrMsg = orders.Err()
	}
	ov.TotalDrivers = drivers.Len()
	ov.TotalRoutes = routes.Len()
	ov.TotalOrders = orders.Len()

	result, err := client.LatestSimulation(ctx)
	switch {
	case err == nil:
		ov.HasResult = true
		ov.Result = &result
		if err := db.UpsertSimulation(gdb, result); err != nil {
			log.Printf("dashboard: %v", err)
		}
	case api.IsNotFound(err):
		// No simulation yet: an absent-data state, not an error.
	default:
		// Service unreachable: fall back to the last cached run.
		cached, ok, cacheErr := db.LatestSimulation(gdb)
		if cacheErr == nil && ok {
			ov.HasResult = true
			ov.Result = &cached
			ov.FromCache = true
		} else {
			ov.ErrMsg = api.Reason(err, "Failed to load latest simulation")
		}
	}

	if ov.HasResult {
		ov.Delivery, _ = report.DeliveryChart(ov.Result)
		ov.FuelCost, _ = report.FuelCostChart(ov.Result)
		ov.Preview, _ = report.OrderPreview(ov.Result, previewLimit)
	}
	return ov
}

// loadSimulation fetches one run by id, falling back to the cache when the
// service is unreachable. ok is false when the run does not exist anywhere.
func loadSimulation(ctx context.Context, client *api.Client, gdb *gorm.DB, id string) (fleet.SimulationResult, bool, bool) {
	result, err := client.Simulation(ctx, id)
	if err == nil {
		if err := db.UpsertSimulation(gdb, result); err != nil {
			log.Printf("dashboard: %v", err)
		}
		return result, true, false
	}
	if api.IsNotFound(err) {
		return fleet.SimulationResult{}, false, false
	}
	cached, ok, cacheErr := db.SimulationByID(gdb, id)
	if cacheErr == nil && ok {
		return cached, true, true
	}
	return fleet.SimulationResult{}, false, false
}
