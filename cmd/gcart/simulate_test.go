package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/greencart/console/internal/fleet"
)

func TestSimulateCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"simulate", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("simulate --help failed: %v", err)
	}

	out := buf.String()
	for _, sub := range []string{"run", "latest", "show", "history"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestNewSimulateRunCmd_Defaults(t *testing.T) {
	cmd := newSimulateRunCmd()

	cases := map[string]string{
		"drivers":    "5",
		"start-time": "09:00",
		"max-hours":  "8",
		"notify":     "false",
	}
	for name, want := range cases {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag", name)
			continue
		}
		if flag.DefValue != want {
			t.Errorf("--%s default = %q, want %q", name, flag.DefValue, want)
		}
	}
}

func TestPrintResult(t *testing.T) {
	cmd := &cobra.Command{}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	result := fleet.SimulationResult{
		ID:        "sim-1",
		CreatedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		KPIs: fleet.KPISet{
			TotalProfit:      45230.5,
			Efficiency:       80,
			TotalDeliveries:  10,
			OnTimeDeliveries: 8,
			FuelCostBreakdown: fleet.CostBreakdown{
				{Level: "Low", Cost: 120},
				{Level: "High", Cost: 340},
			},
		},
		PerOrder: []fleet.OrderOutcome{
			{OrderID: "O1", ValueRs: 1200, AssignedDriver: "Amit", OnTime: true, Profit: 180},
			{OrderID: "O2", ValueRs: 800, AssignedDriver: "Priya", OnTime: false, Profit: -40},
			{OrderID: "O3", ValueRs: 950, AssignedDriver: "Amit", OnTime: true, Profit: 120},
		},
	}

	printResult(cmd, result, 2)

	out := buf.String()
	if !strings.Contains(out, "Simulation sim-1") {
		t.Errorf("missing header: %s", out)
	}
	if !strings.Contains(out, "₹45,230.50") {
		t.Errorf("missing formatted profit: %s", out)
	}
	if !strings.Contains(out, "80.00%") {
		t.Errorf("missing efficiency: %s", out)
	}
	if !strings.Contains(out, "On-time:") || !strings.Contains(out, "Late:") {
		t.Errorf("missing delivery split: %s", out)
	}
	// Fuel labels appear in the order the service sent them.
	if low, high := strings.Index(out, "Low"), strings.Index(out, "High"); low < 0 || high < 0 || low > high {
		t.Errorf("fuel breakdown out of order: %s", out)
	}
	if !strings.Contains(out, "O1") || !strings.Contains(out, "O2") {
		t.Errorf("missing preview rows: %s", out)
	}
	if strings.Contains(out, "O3") {
		t.Errorf("preview not truncated: %s", out)
	}
	if !strings.Contains(out, "1 more orders") {
		t.Errorf("missing truncation note: %s", out)
	}
}

func TestPrintResult_NoLimit(t *testing.T) {
	cmd := &cobra.Command{}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	result := fleet.SimulationResult{
		ID: "sim-2",
		KPIs: fleet.KPISet{
			TotalDeliveries:  2,
			OnTimeDeliveries: 2,
		},
		PerOrder: []fleet.OrderOutcome{
			{OrderID: "O1", OnTime: true},
			{OrderID: "O2", OnTime: true},
		},
	}

	printResult(cmd, result, 0)

	out := buf.String()
	if !strings.Contains(out, "O1") || !strings.Contains(out, "O2") {
		t.Errorf("limit 0 should print every order: %s", out)
	}
	if strings.Contains(out, "more orders") {
		t.Errorf("nothing was truncated: %s", out)
	}
}
