package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/greencart/console/internal/fleet"
	"github.com/greencart/console/internal/sync"
)

func newRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Manage delivery routes",
	}
	cmd.PersistentFlags().StringP("config", "c", "gcart.yaml", "path to config file")

	cmd.AddCommand(newRouteListCmd())
	cmd.AddCommand(newRouteAddCmd())
	cmd.AddCommand(newRouteUpdateCmd())
	cmd.AddCommand(newRouteRmCmd())
	return cmd
}

func routeSync(cmd *cobra.Command) (*app, *sync.Synchronizer[fleet.Route], error) {
	configPath, _ := cmd.Flags().GetString("config")
	app, err := openApp(cmd.Context(), configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := app.requireAuth(); err != nil {
		return nil, nil, err
	}
	return app, sync.New(app.client, sync.Routes()), nil
}

func newRouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, routes, err := routeSync(cmd)
			if err != nil {
				return err
			}
			if err := routes.Load(cmd.Context()); err != nil {
				return surfaced(err, routes.Err())
			}
			rows := make([][]string, 0, routes.Len())
			for _, r := range routes.Items() {
				rows = append(rows, []string{
					r.ID,
					r.RouteID,
					strconv.FormatFloat(r.DistanceKm, 'f', -1, 64),
					r.TrafficLevel,
					strconv.Itoa(r.BaseTimeMinutes),
				})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "ROUTE", "DISTANCE KM", "TRAFFIC", "BASE MIN"}, rows)
			return nil
		},
	}
}

func newRouteAddCmd() *cobra.Command {
	var (
		routeID  string
		distance float64
		traffic  string
		baseTime int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, routes, err := routeSync(cmd)
			if err != nil {
				return err
			}
			created, err := routes.Create(cmd.Context(), fleet.Route{
				RouteID:         routeID,
				DistanceKm:      distance,
				TrafficLevel:    traffic,
				BaseTimeMinutes: baseTime,
			})
			if err != nil {
				return surfaced(err, routes.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created route %s (%s)\n", created.RouteID, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&routeID, "route-id", "", "operator-facing route key (required, immutable)")
	cmd.Flags().Float64Var(&distance, "distance-km", 0, "route distance in km (required)")
	cmd.Flags().StringVar(&traffic, "traffic", fleet.TrafficMedium, "traffic level: Low, Medium, or High")
	cmd.Flags().IntVar(&baseTime, "base-time", 0, "base delivery time in minutes (required)")
	cmd.MarkFlagRequired("route-id")
	cmd.MarkFlagRequired("distance-km")
	cmd.MarkFlagRequired("base-time")
	return cmd
}

func newRouteUpdateCmd() *cobra.Command {
	var (
		distance float64
		traffic  string
		baseTime int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a route",
		Long:  "Updates only the fields whose flags are given. The route key itself is fixed at creation and cannot change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, routes, err := routeSync(cmd)
			if err != nil {
				return err
			}
			if err := routes.Load(cmd.Context()); err != nil {
				return surfaced(err, routes.Err())
			}

			patch := map[string]any{}
			if cmd.Flags().Changed("distance-km") {
				patch["distanceKm"] = distance
			}
			if cmd.Flags().Changed("traffic") {
				patch["trafficLevel"] = traffic
			}
			if cmd.Flags().Changed("base-time") {
				patch["baseTimeMinutes"] = baseTime
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			if err := routes.Update(cmd.Context(), args[0], patch); err != nil {
				return surfaced(err, routes.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated route %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().Float64Var(&distance, "distance-km", 0, "route distance in km")
	cmd.Flags().StringVar(&traffic, "traffic", "", "traffic level: Low, Medium, or High")
	cmd.Flags().IntVar(&baseTime, "base-time", 0, "base delivery time in minutes")
	return cmd
}

func newRouteRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, routes, err := routeSync(cmd)
			if err != nil {
				return err
			}
			if err := routes.Load(cmd.Context()); err != nil {
				return surfaced(err, routes.Err())
			}

			before := routes.Len()
			confirm := confirmPrompt(cmd, "Delete this route?", yes)
			if err := routes.Remove(cmd.Context(), args[0], confirm); err != nil {
				return surfaced(err, routes.Err())
			}
			if routes.Len() == before {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted route %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
