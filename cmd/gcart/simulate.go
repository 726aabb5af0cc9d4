package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/greencart/console/internal/api"
	"github.com/greencart/console/internal/db"
	"github.com/greencart/console/internal/fleet"
	"github.com/greencart/console/internal/notify"
	"github.com/greencart/console/internal/report"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run and inspect delivery simulations",
	}
	cmd.PersistentFlags().StringP("config", "c", "gcart.yaml", "path to config file")

	cmd.AddCommand(newSimulateRunCmd())
	cmd.AddCommand(newSimulateLatestCmd())
	cmd.AddCommand(newSimulateShowCmd())
	cmd.AddCommand(newSimulateHistoryCmd())
	return cmd
}

func simulateApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	app, err := openApp(cmd.Context(), configPath)
	if err != nil {
		return nil, err
	}
	if err := app.requireAuth(); err != nil {
		return nil, err
	}
	return app, nil
}

func newSimulateRunCmd() *cobra.Command {
	var (
		drivers   int
		startTime string
		maxHours  int
		doNotify  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a delivery simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := simulateApp(cmd)
			if err != nil {
				return err
			}
			result, err := app.client.RunSimulation(cmd.Context(), fleet.SimulationParams{
				NumberOfDrivers:   drivers,
				RouteStartTime:    startTime,
				MaxHoursPerDriver: maxHours,
			})
			if err != nil {
				return fmt.Errorf("%s", api.Reason(err, "Simulation failed"))
			}

			if err := db.UpsertSimulation(app.gdb, result); err != nil {
				log.Printf("simulate: %v", err)
			}

			printResult(cmd, result, 10)

			if doNotify {
				n, err := app.notifier()
				if err != nil {
					return err
				}
				if n == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No notification targets configured")
					return nil
				}
				defer n.Close()
				if err := n.Post(cmd.Context(), notify.SimulationEvent(result)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&drivers, "drivers", 5, "number of drivers to simulate")
	cmd.Flags().StringVar(&startTime, "start-time", "09:00", "route start time (HH:MM)")
	cmd.Flags().IntVar(&maxHours, "max-hours", 8, "max hours per driver")
	cmd.Flags().BoolVar(&doNotify, "notify", false, "post the result to configured chat channels")
	return cmd
}

func newSimulateLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent simulation result",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := simulateApp(cmd)
			if err != nil {
				return err
			}
			result, err := app.client.LatestSimulation(cmd.Context())
			if api.IsNotFound(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No simulations have been run yet. Start one with 'gcart simulate run'.")
				return nil
			}
			if err != nil {
				// Service unreachable: show the last cached run if we have one.
				cached, ok, cacheErr := db.LatestSimulation(app.gdb)
				if cacheErr == nil && ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Service unreachable — showing last cached result.")
					printResult(cmd, cached, 10)
					return nil
				}
				return fmt.Errorf("%s", api.Reason(err, "Failed to load latest simulation"))
			}
			if err := db.UpsertSimulation(app.gdb, result); err != nil {
				log.Printf("simulate: %v", err)
			}
			printResult(cmd, result, 10)
			return nil
		},
	}
}

func newSimulateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one simulation result in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := simulateApp(cmd)
			if err != nil {
				return err
			}
			result, err := app.client.Simulation(cmd.Context(), args[0])
			if api.IsNotFound(err) {
				return fmt.Errorf("no simulation with id %s", args[0])
			}
			if err != nil {
				cached, ok, cacheErr := db.SimulationByID(app.gdb, args[0])
				if cacheErr == nil && ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Service unreachable — showing cached result.")
					printResult(cmd, cached, 0)
					return nil
				}
				return fmt.Errorf("%s", api.Reason(err, "Failed to load simulation"))
			}
			if err := db.UpsertSimulation(app.gdb, result); err != nil {
				log.Printf("simulate: %v", err)
			}
			printResult(cmd, result, 0)
			return nil
		},
	}
}

func newSimulateHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := simulateApp(cmd)
			if err != nil {
				return err
			}
			runs, err := app.client.Simulations(cmd.Context())
			if err != nil && !api.IsNotFound(err) {
				return fmt.Errorf("%s", api.Reason(err, "Failed to load simulation history"))
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No simulations have been run yet.")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04"),
					formatRupees(r.KPIs.TotalProfit),
					fmt.Sprintf("%.2f%%", r.KPIs.Efficiency),
					fmt.Sprintf("%d/%d", r.KPIs.OnTimeDeliveries, r.KPIs.TotalDeliveries),
				})
			}
			printTable(cmd.OutOrStdout(), []string{"RUN", "WHEN", "PROFIT ₹", "EFFICIENCY", "ON TIME"}, rows)
			return nil
		},
	}
}

// printResult renders KPIs, the delivery/fuel projections, and the per-order
// table, truncated to previewLimit rows (0 means all).
func printResult(cmd *cobra.Command, result fleet.SimulationResult, previewLimit int) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Simulation %s (run %s)\n", result.ID, result.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  Total Profit: ₹%s\n", formatRupees(result.KPIs.TotalProfit))
	fmt.Fprintf(out, "  Efficiency:   %.2f%%\n", result.KPIs.Efficiency)

	if delivery, ok := report.DeliveryChart(&result); ok {
		for i, label := range delivery.Labels {
			fmt.Fprintf(out, "  %-8s %.0f\n", label+":", delivery.Values[i])
		}
	}
	if fuel, ok := report.FuelCostChart(&result); ok && len(fuel.Labels) > 0 {
		fmt.Fprintln(out, "  Fuel cost by traffic level:")
		for i, label := range fuel.Labels {
			fmt.Fprintf(out, "    %-8s ₹%s\n", label, formatRupees(fuel.Values[i]))
		}
	}

	preview, ok := report.OrderPreview(&result, previewLimit)
	if !ok || len(preview.Orders) == 0 {
		return
	}
	fmt.Fprintln(out)
	rows := make([][]string, 0, len(preview.Orders))
	for _, o := range preview.Orders {
		rows = append(rows, []string{
			o.OrderID,
			formatRupees(o.ValueRs),
			o.AssignedDriver,
			yesNo(o.OnTime, "On Time", "Late"),
			formatRupees(o.Profit),
		})
	}
	printTable(out, []string{"ORDER", "VALUE ₹", "DRIVER", "STATUS", "PROFIT ₹"}, rows)
	if preview.HasMore {
		fmt.Fprintf(out, "… and %d more orders (run 'gcart simulate show %s')\n",
			preview.Total-len(preview.Orders), result.ID)
	}
}
