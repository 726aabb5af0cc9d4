package dashboard

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/greencart/console/internal/api"
	"github.com/greencart/console/internal/db"
	"github.com/greencart/console/internal/notify"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

type refresherOpts struct {
	Client   *api.Client
	DB       *gorm.DB
	Cron     string
	Notifier notify.Notifier
}

// startRefresher polls /simulate/latest on the configured schedule and caches
// the result, so the dashboard has a last-known run when the service goes
// away and the SSE stream hears about runs started elsewhere. Returns a stop
// function.
func startRefresher(ctx context.Context, opts refresherOpts) (func(), error) {
	sched, err := cronParser.Parse(opts.Cron)
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse refresh cron %q: %w", opts.Cron, err)
	}

	runner := cron.New(cron.WithParser(cronParser))
	runner.Schedule(sched, cron.FuncJob(func() {
		refreshOnce(ctx, opts)
	}))
	runner.Start()

	return func() { runner.Stop() }, nil
}

// refreshOnce fetches the latest run, caches it, and notifies when it is one
// the cache has not seen.
func refreshOnce(ctx context.Context, opts refresherOpts) {
	result, err := opts.Client.LatestSimulation(ctx)
	if err != nil {
		if !api.IsNotFound(err) {
			log.Printf("dashboard: refresh: %v", err)
		}
		return
	}

	_, seen, err := db.SimulationByID(opts.DB, result.ID)
	if err != nil {
		log.Printf("dashboard: refresh: %v", err)
	}
	if err := db.UpsertSimulation(opts.DB, result); err != nil {
		log.Printf("dashboard: refresh: %v", err)
		return
	}

	if !seen && opts.Notifier != nil {
		if err := opts.Notifier.Post(ctx, notify.SimulationEvent(result)); err != nil {
			log.Printf("dashboard: notify: %v", err)
		}
	}
}
