package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greencart/console/internal/fleet"
	"github.com/greencart/console/internal/sync"
)

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
	}
	cmd.PersistentFlags().StringP("config", "c", "gcart.yaml", "path to config file")

	cmd.AddCommand(newOrderListCmd())
	cmd.AddCommand(newOrderAddCmd())
	cmd.AddCommand(newOrderUpdateCmd())
	cmd.AddCommand(newOrderRmCmd())
	return cmd
}

func orderSync(cmd *cobra.Command) (*app, *sync.Synchronizer[fleet.Order], error) {
	configPath, _ := cmd.Flags().GetString("config")
	app, err := openApp(cmd.Context(), configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := app.requireAuth(); err != nil {
		return nil, nil, err
	}
	return app, sync.New(app.client, sync.Orders()), nil
}

func newOrderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, orders, err := orderSync(cmd)
			if err != nil {
				return err
			}
			if err := orders.Load(cmd.Context()); err != nil {
				return surfaced(err, orders.Err())
			}
			rows := make([][]string, 0, orders.Len())
			for _, o := range orders.Items() {
				rows = append(rows, []string{
					o.ID,
					o.OrderID,
					formatRupees(o.ValueRs),
					o.AssignedRouteID,
					o.Status,
				})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "ORDER", "VALUE ₹", "ROUTE", "STATUS"}, rows)
			return nil
		},
	}
}

func newOrderAddCmd() *cobra.Command {
	var (
		orderID string
		value   float64
		route   string
		status  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an order",
		Long:  "Creates an order assigned to a route key. The service is authoritative about whether the route exists.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, orders, err := orderSync(cmd)
			if err != nil {
				return err
			}
			created, err := orders.Create(cmd.Context(), fleet.Order{
				OrderID:         orderID,
				ValueRs:         value,
				AssignedRouteID: route,
				Status:          status,
			})
			if err != nil {
				return surfaced(err, orders.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created order %s (%s)\n", created.OrderID, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&orderID, "order-id", "", "operator-facing order key (required, immutable)")
	cmd.Flags().Float64Var(&value, "value", 0, "order value in rupees (required)")
	cmd.Flags().StringVar(&route, "route", "", "assigned route key (required)")
	cmd.Flags().StringVar(&status, "status", fleet.StatusPending, "order status: Pending or Delivered")
	cmd.MarkFlagRequired("order-id")
	cmd.MarkFlagRequired("value")
	cmd.MarkFlagRequired("route")
	return cmd
}

func newOrderUpdateCmd() *cobra.Command {
	var (
		value  float64
		route  string
		status string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an order",
		Long:  "Updates only the fields whose flags are given. The order key itself is fixed at creation and cannot change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, orders, err := orderSync(cmd)
			if err != nil {
				return err
			}
			if err := orders.Load(cmd.Context()); err != nil {
				return surfaced(err, orders.Err())
			}

			patch := map[string]any{}
			if cmd.Flags().Changed("value") {
				patch["valueRs"] = value
			}
			if cmd.Flags().Changed("route") {
				patch["assignedRouteId"] = route
			}
			if cmd.Flags().Changed("status") {
				patch["status"] = status
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			if err := orders.Update(cmd.Context(), args[0], patch); err != nil {
				return surfaced(err, orders.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated order %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "order value in rupees")
	cmd.Flags().StringVar(&route, "route", "", "assigned route key")
	cmd.Flags().StringVar(&status, "status", "", "order status: Pending or Delivered")
	return cmd
}

func newOrderRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, orders, err := orderSync(cmd)
			if err != nil {
				return err
			}
			if err := orders.Load(cmd.Context()); err != nil {
				return surfaced(err, orders.Err())
			}

			before := orders.Len()
			confirm := confirmPrompt(cmd, "Delete this order?", yes)
			if err := orders.Remove(cmd.Context(), args[0], confirm); err != nil {
				return surfaced(err, orders.Err())
			}
			if orders.Len() == before {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted order %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
