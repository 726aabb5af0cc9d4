package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greencart/console/internal/fleet"
	"github.com/greencart/console/internal/sync"
)

func newDriverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "Manage drivers",
	}
	cmd.PersistentFlags().StringP("config", "c", "gcart.yaml", "path to config file")

	cmd.AddCommand(newDriverListCmd())
	cmd.AddCommand(newDriverAddCmd())
	cmd.AddCommand(newDriverUpdateCmd())
	cmd.AddCommand(newDriverRmCmd())
	return cmd
}

func driverSync(cmd *cobra.Command) (*app, *sync.Synchronizer[fleet.Driver], error) {
	configPath, _ := cmd.Flags().GetString("config")
	app, err := openApp(cmd.Context(), configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := app.requireAuth(); err != nil {
		return nil, nil, err
	}
	return app, sync.New(app.client, sync.Drivers()), nil
}

func newDriverListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, drivers, err := driverSync(cmd)
			if err != nil {
				return err
			}
			if err := drivers.Load(cmd.Context()); err != nil {
				return surfaced(err, drivers.Err())
			}
			rows := make([][]string, 0, drivers.Len())
			for _, d := range drivers.Items() {
				rows = append(rows, []string{
					d.ID,
					d.Name,
					d.Email,
					strconv.FormatFloat(d.CurrentShiftHours, 'f', -1, 64),
					yesNo(d.IsActive, "active", "inactive"),
				})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "SHIFT HOURS", "STATUS"}, rows)
			return nil
		},
	}
}

func newDriverAddCmd() *cobra.Command {
	var (
		name       string
		email      string
		shiftHours float64
		active     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, drivers, err := driverSync(cmd)
			if err != nil {
				return err
			}
			created, err := drivers.Create(cmd.Context(), fleet.Driver{
				Name:              name,
				Email:             email,
				CurrentShiftHours: shiftHours,
				IsActive:          active,
			})
			if err != nil {
				return surfaced(err, drivers.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created driver %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "driver name (required)")
	cmd.Flags().StringVar(&email, "email", "", "driver email")
	cmd.Flags().Float64Var(&shiftHours, "shift-hours", 0, "current shift hours")
	cmd.Flags().BoolVar(&active, "active", true, "whether the driver is active")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDriverUpdateCmd() *cobra.Command {
	var (
		name       string
		email      string
		shiftHours float64
		active     bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a driver",
		Long:  "Updates only the fields whose flags are given; everything else is left as-is.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, drivers, err := driverSync(cmd)
			if err != nil {
				return err
			}
			if err := drivers.Load(cmd.Context()); err != nil {
				return surfaced(err, drivers.Err())
			}

			patch := map[string]any{}
			if cmd.Flags().Changed("name") {
				patch["name"] = name
			}
			if cmd.Flags().Changed("email") {
				patch["email"] = email
			}
			if cmd.Flags().Changed("shift-hours") {
				patch["currentShiftHours"] = shiftHours
			}
			if cmd.Flags().Changed("active") {
				patch["isActive"] = active
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			if err := drivers.Update(cmd.Context(), args[0], patch); err != nil {
				return surfaced(err, drivers.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated driver %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "driver name")
	cmd.Flags().StringVar(&email, "email", "", "driver email")
	cmd.Flags().Float64Var(&shiftHours, "shift-hours", 0, "current shift hours")
	cmd.Flags().BoolVar(&active, "active", true, "whether the driver is active")
	return cmd
}

func newDriverRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a driver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, drivers, err := driverSync(cmd)
			if err != nil {
				return err
			}
			if err := drivers.Load(cmd.Context()); err != nil {
				return surfaced(err, drivers.Err())
			}

			before := drivers.Len()
			confirm := confirmPrompt(cmd, "Delete this driver?", yes)
			if err := drivers.Remove(cmd.Context(), args[0], confirm); err != nil {
				return surfaced(err, drivers.Err())
			}
			if drivers.Len() == before {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted driver %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirmPrompt builds the removal confirmation step: --yes affirms
// unconditionally, otherwise the operator answers y/N on the terminal.
func confirmPrompt(cmd *cobra.Command, question string, yes bool) sync.Confirm {
	return func(entity any) bool {
		if yes {
			return true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
