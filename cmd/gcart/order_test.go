package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestOrderCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"order", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("order --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Manage orders") {
		t.Errorf("expected help to mention 'Manage orders', got: %s", out)
	}
	for _, sub := range []string{"list", "add", "update", "rm"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestNewOrderAddCmd_Flags(t *testing.T) {
	cmd := newOrderAddCmd()
	for _, name := range []string{"order-id", "value", "route", "status"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag", name)
		}
	}

	status := cmd.Flags().Lookup("status")
	if status.DefValue != "Pending" {
		t.Errorf("--status default = %q, want Pending", status.DefValue)
	}
}

func TestNewOrderUpdateCmd_NoOrderIDFlag(t *testing.T) {
	cmd := newOrderUpdateCmd()
	if cmd.Flags().Lookup("order-id") != nil {
		t.Error("update must not accept --order-id")
	}
}
