package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRouteCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"route", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("route --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Manage delivery routes") {
		t.Errorf("expected help to mention 'Manage delivery routes', got: %s", out)
	}
	for _, sub := range []string{"list", "add", "update", "rm"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestNewRouteAddCmd_Flags(t *testing.T) {
	cmd := newRouteAddCmd()
	for _, name := range []string{"route-id", "distance-km", "traffic", "base-time"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag", name)
		}
	}

	traffic := cmd.Flags().Lookup("traffic")
	if traffic.DefValue != "Medium" {
		t.Errorf("--traffic default = %q, want Medium", traffic.DefValue)
	}
}

func TestNewRouteUpdateCmd_NoRouteIDFlag(t *testing.T) {
	// The route key is fixed at creation; update must not even offer it.
	cmd := newRouteUpdateCmd()
	if cmd.Flags().Lookup("route-id") != nil {
		t.Error("update must not accept --route-id")
	}
	for _, name := range []string{"distance-km", "traffic", "base-time"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag", name)
		}
	}
}
